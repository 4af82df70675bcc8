package atag

// CoreInfo is the payload of a CORE tag.  A CORE tag with no payload is
// legal, in which case everything is zero.
type CoreInfo struct {
	Flags    uint32
	PageSize uint32
	RootDev  uint32
}

// MemInfo describes one region of physical memory.
type MemInfo struct {
	Size  uint32
	Start uint32
}

// VideoTextInfo is the payload of a VIDEOTEXT tag.
type VideoTextInfo struct {
	X, Y   uint8
	Page   uint16
	Mode   uint8
	Cols   uint8
	EgaBx  uint16
	Lines  uint8
	IsVGA  uint8
	Points uint16
}

// RamdiskInfo is the payload of a RAMDISK tag.
type RamdiskInfo struct {
	Flags uint32
	Size  uint32 // in KiB
	Start uint32 // block number
}

// InitrdInfo is the payload of an INITRD2 tag.
type InitrdInfo struct {
	Start uint32
	Size  uint32
}

// VideoLFBInfo is the payload of a VIDEOLFB tag.
type VideoLFBInfo struct {
	Width, Height, Depth, LineLength uint16
	Base, Size                       uint32
	RedSize, RedPos                  uint8
	GreenSize, GreenPos              uint8
	BlueSize, BluePos                uint8
	RsvdSize, RsvdPos                uint8
}

// Core decodes a CORE tag.
func (t Tag) Core() CoreInfo {
	return CoreInfo{Flags: t.word(0), PageSize: t.word(1), RootDev: t.word(2)}
}

// Mem decodes a MEM tag.
func (t Tag) Mem() MemInfo {
	return MemInfo{Size: t.word(0), Start: t.word(1)}
}

// VideoText decodes a VIDEOTEXT tag.
func (t Tag) VideoText() VideoTextInfo {
	return VideoTextInfo{
		X:      t.byteAt(0),
		Y:      t.byteAt(1),
		Page:   t.half(2),
		Mode:   t.byteAt(4),
		Cols:   t.byteAt(5),
		EgaBx:  t.half(6),
		Lines:  t.byteAt(8),
		IsVGA:  t.byteAt(9),
		Points: t.half(10),
	}
}

// Ramdisk decodes a RAMDISK tag.
func (t Tag) Ramdisk() RamdiskInfo {
	return RamdiskInfo{Flags: t.word(0), Size: t.word(1), Start: t.word(2)}
}

// Initrd decodes an INITRD2 tag.
func (t Tag) Initrd() InitrdInfo {
	return InitrdInfo{Start: t.word(0), Size: t.word(1)}
}

// Serial decodes a SERIAL tag into the 64 bit board serial number.
func (t Tag) Serial() uint64 {
	return uint64(t.word(1))<<32 | uint64(t.word(0))
}

// Revision decodes a REVISION tag.
func (t Tag) Revision() uint32 {
	return t.word(0)
}

// VideoLFB decodes a VIDEOLFB tag.
func (t Tag) VideoLFB() VideoLFBInfo {
	return VideoLFBInfo{
		Width:      t.half(0),
		Height:     t.half(2),
		Depth:      t.half(4),
		LineLength: t.half(6),
		Base:       t.word(2),
		Size:       t.word(3),
		RedSize:    t.byteAt(16),
		RedPos:     t.byteAt(17),
		GreenSize:  t.byteAt(18),
		GreenPos:   t.byteAt(19),
		BlueSize:   t.byteAt(20),
		BluePos:    t.byteAt(21),
		RsvdSize:   t.byteAt(22),
		RsvdPos:    t.byteAt(23),
	}
}

// Cmdline decodes a CMDLINE tag.  The text is NUL terminated inside the
// payload, a missing terminator means the text fills the payload.
func (t Tag) Cmdline() string {
	for i, c := range t.payload {
		if c == 0 {
			return string(t.payload[:i])
		}
	}
	return string(t.payload)
}
