package atag

import (
	"fmt"
	"io"
)

// PrintAll writes one line per tag to w.  Kinds we know about get their
// fields decoded, anything else gets dumped as hex words.
func (l *List) PrintAll(w io.Writer) {
	l.Walk(func(t Tag) bool {
		printTag(w, t)
		return true
	})
}

func printTag(w io.Writer, t Tag) {
	fmt.Fprintf(w, "0x%08x: %-9s ", t.Addr, t.Kind)
	switch t.Kind {
	case Core:
		if t.Size == headerWords {
			fmt.Fprintf(w, "(empty)\n")
			return
		}
		c := t.Core()
		fmt.Fprintf(w, "flags = %#x, pagesize = %#x, rootdev = %#x\n", c.Flags, c.PageSize, c.RootDev)
	case Mem:
		m := t.Mem()
		fmt.Fprintf(w, "start = 0x%08x, size = 0x%08x\n", m.Start, m.Size)
	case VideoText:
		v := t.VideoText()
		fmt.Fprintf(w, "x,y = %d,%d, page = %d, mode = %d, cols = %d, lines = %d, vga = %d, points = %d\n",
			v.X, v.Y, v.Page, v.Mode, v.Cols, v.Lines, v.IsVGA, v.Points)
	case Ramdisk:
		r := t.Ramdisk()
		fmt.Fprintf(w, "flags = %#x, size = %#x, start = %#x\n", r.Flags, r.Size, r.Start)
	case Initrd2:
		i := t.Initrd()
		fmt.Fprintf(w, "start = 0x%08x, size = 0x%08x\n", i.Start, i.Size)
	case Serial:
		fmt.Fprintf(w, "0x%016x\n", t.Serial())
	case Revision:
		fmt.Fprintf(w, "0x%08x\n", t.Revision())
	case VideoLFB:
		v := t.VideoLFB()
		fmt.Fprintf(w, "%dx%dx%d, linelength = %d, base = 0x%08x, size = 0x%08x\n",
			v.Width, v.Height, v.Depth, v.LineLength, v.Base, v.Size)
	case Cmdline:
		fmt.Fprintf(w, "%q\n", t.Cmdline())
	default:
		fmt.Fprintf(w, "size = %d\n", t.Size)
		hexDump(w, t.Addr+headerBytes, t.payload)
	}
}

// hexDump prints 16 bytes per line, address first, grouped by words.
func hexDump(w io.Writer, addr uint32, data []byte) {
	for start := 0; start < len(data); start += 16 {
		fmt.Fprintf(w, "    %08X: ", addr+uint32(start))
		for b := start; b < start+16 && b < len(data); b++ {
			fmt.Fprintf(w, "%02X ", data[b])
			if b%4 == 3 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}
}
