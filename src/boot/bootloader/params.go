package bootloader

import "fmt"

// Registers is what the boot stub received from the firmware in r0, r1 and
// r2.  We hand these unmodified to whatever we end up loading.
type Registers struct {
	R0    uint32 // always 0 on the pi
	R1    uint32 // machine type
	ATAGs uint32 // PHYS addr of the boot tags
}

func (r Registers) String() string {
	return fmt.Sprintf("R0 = 0x%08x, R1 = 0x%08x, ATAGs @ 0x%08x", r.R0, r.R1, r.ATAGs)
}

// TagAddr returns where the boot tags are.  Old firmware leaves r2 zero and
// just puts them at the traditional spot.
func (r Registers) TagAddr() uint32 {
	if r.ATAGs == 0 {
		return ATAGAddr
	}
	return r.ATAGs
}

// TagWindow is how many bytes from TagAddr the walker may look at.  Tags below
// LoadAddr are never allowed to run into the kernel we are about to receive.
func (r Registers) TagWindow() int {
	addr := r.TagAddr()
	if addr < LoadAddr {
		return int(LoadAddr - addr)
	}
	return MaxTagWindow
}

var injected Registers

// Inject records the registers the firmware started us with.  The board entry
// point calls it once before any package code runs.
func Inject(r0, r1, r2 uint32) {
	injected = Registers{R0: r0, R1: r1, ATAGs: r2}
}

// Injected returns the registers as the entry point saw them.
func Injected() Registers {
	return injected
}
