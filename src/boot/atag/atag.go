// Package atag walks the boot tags the firmware leaves in memory for the
// kernel.  Each tag is a two word header (size in words including the header,
// then kind) followed by a kind specific payload.  The list ends with a NONE
// tag.
//
// Nothing here allocates or changes the tags, a List is just a window onto
// memory that belongs to the firmware.
package atag

import (
	"encoding/binary"
	"fmt"
)

// Kind identifies what a tag carries.
type Kind uint32

const (
	None      Kind = 0x0000_0000
	Core      Kind = 0x5441_0001
	Mem       Kind = 0x5441_0002
	VideoText Kind = 0x5441_0003
	Ramdisk   Kind = 0x5441_0004
	Initrd2   Kind = 0x5442_0005
	Serial    Kind = 0x5441_0006
	Revision  Kind = 0x5441_0007
	VideoLFB  Kind = 0x5441_0008
	Cmdline   Kind = 0x5441_0009
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case Core:
		return "CORE"
	case Mem:
		return "MEM"
	case VideoText:
		return "VIDEOTEXT"
	case Ramdisk:
		return "RAMDISK"
	case Initrd2:
		return "INITRD2"
	case Serial:
		return "SERIAL"
	case Revision:
		return "REVISION"
	case VideoLFB:
		return "VIDEOLFB"
	case Cmdline:
		return "CMDLINE"
	}
	return fmt.Sprintf("UNKNOWN(0x%08x)", uint32(k))
}

// headerWords is the size of a tag with no payload at all.
const headerWords = 2
const headerBytes = headerWords * 4

// Tag is one record in the list.  Size is in 32 bit words and includes the
// header.
type Tag struct {
	Kind    Kind
	Size    uint32
	Addr    uint32
	payload []byte
}

// Payload is the raw bytes after the header.
func (t Tag) Payload() []byte {
	return t.payload
}

func (t Tag) word(i int) uint32 {
	if (i+1)*4 > len(t.payload) {
		return 0
	}
	return binary.LittleEndian.Uint32(t.payload[i*4:])
}

func (t Tag) half(off int) uint16 {
	if off+2 > len(t.payload) {
		return 0
	}
	return binary.LittleEndian.Uint16(t.payload[off:])
}

func (t Tag) byteAt(off int) uint8 {
	if off >= len(t.payload) {
		return 0
	}
	return t.payload[off]
}

// List is a read only view of a boot tag list that starts at Base.
type List struct {
	mem  []byte
	base uint32
}

// New makes a List over mem, which is assumed to have been copied (or
// mapped) from PHYS addr base.  Walking never looks outside of mem.
func New(mem []byte, base uint32) *List {
	return &List{mem: mem, base: base}
}

// Base returns the PHYS addr of the first tag.
func (l *List) Base() uint32 {
	return l.base
}

// Walk calls fn with each tag in order until fn returns false or the list
// runs out.  The list runs out at a NONE tag, at a tag whose size can't even
// cover its header, or at a tag that would go past the end of the window.
// A corrupt list is just a short list.
func (l *List) Walk(fn func(Tag) bool) {
	off := uint64(0)
	limit := uint64(len(l.mem))
	for off+headerBytes <= limit {
		size := binary.LittleEndian.Uint32(l.mem[off:])
		kind := Kind(binary.LittleEndian.Uint32(l.mem[off+4:]))
		if kind == None || size < headerWords {
			return
		}
		end := off + uint64(size)*4
		if end > limit {
			return
		}
		t := Tag{
			Kind:    kind,
			Size:    size,
			Addr:    l.base + uint32(off),
			payload: l.mem[off+headerBytes : end],
		}
		if !fn(t) {
			return
		}
		off = end
	}
}

// Tags returns every tag Walk would visit.
func (l *List) Tags() []Tag {
	var result []Tag
	l.Walk(func(t Tag) bool {
		result = append(result, t)
		return true
	})
	return result
}

// Find returns the first tag of the given kind.  Callers must handle the
// false case, firmware is not obliged to give us anything.
func (l *List) Find(k Kind) (Tag, bool) {
	var found Tag
	ok := false
	l.Walk(func(t Tag) bool {
		if t.Kind == k {
			found = t
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Cmdline is Find(Cmdline) followed by decoding the text.
func (l *List) Cmdline() (string, bool) {
	t, ok := l.Find(Cmdline)
	if !ok {
		return "", false
	}
	return t.Cmdline(), true
}
