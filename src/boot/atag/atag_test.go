package atag

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tagBuilder lays out a tag list the way the firmware does.
type tagBuilder struct {
	buf bytes.Buffer
}

func (b *tagBuilder) add(k Kind, words ...uint32) *tagBuilder {
	b.raw(uint32(len(words)+headerWords), k, words...)
	return b
}

func (b *tagBuilder) raw(size uint32, k Kind, words ...uint32) *tagBuilder {
	binary.Write(&b.buf, binary.LittleEndian, size)
	binary.Write(&b.buf, binary.LittleEndian, uint32(k))
	for _, w := range words {
		binary.Write(&b.buf, binary.LittleEndian, w)
	}
	return b
}

func (b *tagBuilder) cmdline(s string) *tagBuilder {
	text := append([]byte(s), 0)
	for len(text)%4 != 0 {
		text = append(text, 0)
	}
	binary.Write(&b.buf, binary.LittleEndian, uint32(headerWords+len(text)/4))
	binary.Write(&b.buf, binary.LittleEndian, uint32(Cmdline))
	b.buf.Write(text)
	return b
}

func (b *tagBuilder) end() *tagBuilder {
	return b.raw(0, None)
}

func (b *tagBuilder) bytes() []byte {
	return b.buf.Bytes()
}

func firmwareList() []byte {
	b := &tagBuilder{}
	b.add(Core, 0, 0, 0)
	b.add(Mem, 0x1c00_0000, 0)
	b.add(Revision, 0x10)
	b.cmdline("dma.dmachans=0x7f35 bcm2708_fb.fbwidth=656 console=ttyAMA0 bcm2708.disk_led_gpio=47")
	b.end()
	return b.bytes()
}

func TestFindPresent(t *testing.T) {
	l := New(firmwareList(), 0x100)
	mem, ok := l.Find(Mem)
	if !ok {
		t.Fatalf("expected to find MEM tag")
	}
	if diff := cmp.Diff(MemInfo{Size: 0x1c00_0000, Start: 0}, mem.Mem()); diff != "" {
		t.Errorf("MEM decoded wrong (-want +got):\n%s", diff)
	}
	if mem.Addr != 0x100+5*4 {
		t.Errorf("expected MEM tag at 0x%x but was at 0x%x", 0x100+5*4, mem.Addr)
	}
	rev, ok := l.Find(Revision)
	if !ok || rev.Revision() != 0x10 {
		t.Errorf("expected revision 0x10, got %x (found=%v)", rev.Revision(), ok)
	}
}

func TestFindAbsent(t *testing.T) {
	l := New(firmwareList(), 0x100)
	if _, ok := l.Find(Initrd2); ok {
		t.Errorf("expected no INITRD2 tag")
	}
	if _, ok := l.Find(None); ok {
		t.Errorf("end marker must never be returned as a tag")
	}
}

func TestCmdline(t *testing.T) {
	l := New(firmwareList(), 0x100)
	s, ok := l.Cmdline()
	if !ok {
		t.Fatalf("expected a command line")
	}
	if !strings.HasSuffix(s, "bcm2708.disk_led_gpio=47") {
		t.Errorf("command line was cut or padded wrong: %q", s)
	}
}

func TestWalkStopsAtEnd(t *testing.T) {
	b := &tagBuilder{}
	b.add(Core).add(Revision, 0x1).end()
	// garbage after the end marker must never be seen
	b.add(Mem, 1, 2)
	l := New(b.bytes(), 0)
	kinds := []Kind{}
	for _, tag := range l.Tags() {
		kinds = append(kinds, tag.Kind)
	}
	if diff := cmp.Diff([]Kind{Core, Revision}, kinds); diff != "" {
		t.Errorf("wrong tags walked (-want +got):\n%s", diff)
	}
}

func TestWalkStopsOnDegenerateSize(t *testing.T) {
	b := &tagBuilder{}
	b.add(Revision, 0x2)
	b.raw(1, Mem) // size can't cover its own header
	b.add(Serial, 1, 2)
	l := New(b.bytes(), 0)
	if len(l.Tags()) != 1 {
		t.Errorf("expected walk to stop at degenerate tag, got %d tags", len(l.Tags()))
	}
	if _, ok := l.Find(Serial); ok {
		t.Errorf("found a tag past a corrupt one")
	}
}

func TestWalkStopsAtWindow(t *testing.T) {
	// no end marker and a last tag that claims to run off the window
	b := &tagBuilder{}
	b.add(Revision, 0x2)
	b.raw(0x1000, Mem, 1, 2)
	l := New(b.bytes(), 0)
	if len(l.Tags()) != 1 {
		t.Errorf("expected one tag, got %d", len(l.Tags()))
	}
	// unterminated but in bounds: we just run out
	b = &tagBuilder{}
	b.add(Revision, 0x2).add(Serial, 0x1, 0x2)
	l = New(b.bytes(), 0)
	if len(l.Tags()) != 2 {
		t.Errorf("expected two tags, got %d", len(l.Tags()))
	}
}

func TestEmptyList(t *testing.T) {
	l := New(nil, 0x100)
	if _, ok := l.Cmdline(); ok {
		t.Errorf("expected no command line from empty memory")
	}
	l = New((&tagBuilder{}).end().bytes(), 0x100)
	if len(l.Tags()) != 0 {
		t.Errorf("expected nothing before end marker")
	}
}

func TestCmdlineWithoutTerminator(t *testing.T) {
	b := &tagBuilder{}
	b.raw(3, Cmdline)
	b.buf.WriteString("abcd")
	b.end()
	l := New(b.bytes(), 0)
	s, ok := l.Cmdline()
	if !ok || s != "abcd" {
		t.Errorf("expected abcd, got %q (%v)", s, ok)
	}
}

func TestPrintAll(t *testing.T) {
	b := &tagBuilder{}
	b.add(Core)
	b.add(Mem, 0x1000, 0x8000)
	b.cmdline("console=ttyAMA0")
	b.add(Kind(0x1234_5678), 0xdeadbeef, 0x01020304)
	b.end()
	var out bytes.Buffer
	New(b.bytes(), 0x100).PrintAll(&out)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	expected := []string{
		"0x00000100: CORE      (empty)",
		"0x00000108: MEM       start = 0x00008000, size = 0x00001000",
		`0x00000118: CMDLINE   "console=ttyAMA0"`,
		"0x00000130: UNKNOWN(0x12345678) size = 4",
		"    00000138: EF BE AD DE  04 03 02 01  ",
	}
	if diff := cmp.Diff(expected, lines); diff != "" {
		t.Errorf("wrong listing (-want +got):\n%s", diff)
	}
}

func TestPrintDecoded(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		words    []uint32
		expected string
	}{
		{"core", Core, []uint32{1, 0x1000, 0}, "CORE      flags = 0x1, pagesize = 0x1000, rootdev = 0x0"},
		{"videotext", VideoText, []uint32{0x0003_0201, 0x0000_5004, 0x0010_0119},
			"VIDEOTEXT x,y = 1,2, page = 3, mode = 4, cols = 80, lines = 25, vga = 1, points = 16"},
		{"ramdisk", Ramdisk, []uint32{1, 0x1000, 0x20}, "RAMDISK   flags = 0x1, size = 0x1000, start = 0x20"},
		{"initrd", Initrd2, []uint32{0x0080_0000, 0x0010_0000}, "INITRD2   start = 0x00800000, size = 0x00100000"},
		{"serial", Serial, []uint32{0x89ab_cdef, 0x0123_4567}, "SERIAL    0x0123456789abcdef"},
		{"revision", Revision, []uint32{0x10}, "REVISION  0x00000010"},
		{"videolfb", VideoLFB, []uint32{0x01a0_0290, 0x0520_0010, 0x1c00_6000, 0x0004_2a00, 0, 0},
			"VIDEOLFB  656x416x16, linelength = 1312, base = 0x1c006000, size = 0x00042a00"},
	}
	for _, test := range tests {
		b := &tagBuilder{}
		b.add(test.kind, test.words...).end()
		var out bytes.Buffer
		New(b.bytes(), 0x2000).PrintAll(&out)
		expected := "0x00002000: " + test.expected + "\n"
		if out.String() != expected {
			t.Errorf("%s: expected %q but got %q", test.name, expected, out.String())
		}
	}
}

func TestDecoders(t *testing.T) {
	b := &tagBuilder{}
	b.add(VideoText, 0x0003_0201, 0x0000_5004, 0x0010_0119)
	b.add(VideoLFB, 0x01a0_0290, 0x0520_0010, 0x1c00_6000, 0x0004_2a00, 0x0b05_0605, 0x0000_0010)
	b.add(Initrd2, 0x0080_0000, 0x0010_0000)
	b.add(Serial, 0x89ab_cdef, 0x0123_4567)
	b.end()
	l := New(b.bytes(), 0)

	vt, _ := l.Find(VideoText)
	if diff := cmp.Diff(VideoTextInfo{X: 1, Y: 2, Page: 3, Mode: 4, Cols: 80, Lines: 25, IsVGA: 1, Points: 16},
		vt.VideoText()); diff != "" {
		t.Errorf("VIDEOTEXT decoded wrong (-want +got):\n%s", diff)
	}
	lfb, _ := l.Find(VideoLFB)
	if diff := cmp.Diff(VideoLFBInfo{
		Width: 656, Height: 416, Depth: 16, LineLength: 1312,
		Base: 0x1c00_6000, Size: 0x0004_2a00,
		RedSize: 5, RedPos: 6, GreenSize: 5, GreenPos: 11, BlueSize: 0x10,
	}, lfb.VideoLFB()); diff != "" {
		t.Errorf("VIDEOLFB decoded wrong (-want +got):\n%s", diff)
	}
	rd, _ := l.Find(Initrd2)
	if rd.Initrd() != (InitrdInfo{Start: 0x0080_0000, Size: 0x0010_0000}) {
		t.Errorf("INITRD2 decoded wrong: %+v", rd.Initrd())
	}
	ser, _ := l.Find(Serial)
	if ser.Serial() != 0x0123_4567_89ab_cdef {
		t.Errorf("SERIAL decoded wrong: %x", ser.Serial())
	}
}

func TestHeaderOnlyTagIsWalked(t *testing.T) {
	b := &tagBuilder{}
	b.add(Core)
	b.cmdline("bcm2709.disk_led_gpio=47")
	b.end()
	l := New(b.bytes(), 0x100)
	if len(l.Tags()) != 2 {
		t.Errorf("expected an empty CORE and the CMDLINE, got %d tags", len(l.Tags()))
	}
	if s, ok := l.Cmdline(); !ok || s != "bcm2709.disk_led_gpio=47" {
		t.Errorf("expected to find the command line after an empty CORE, got %q (%v)", s, ok)
	}
}

func TestKindString(t *testing.T) {
	if Cmdline.String() != "CMDLINE" {
		t.Errorf("bad name %s", Cmdline.String())
	}
	if Kind(7).String() != "UNKNOWN(0x00000007)" {
		t.Errorf("bad unknown name %s", Kind(7).String())
	}
}
