package bootloader

// LoadAddr is the PHYS addr the kernel is received into and jumped to.  This
// is where the firmware would have put kernel.img if we were not here.
const LoadAddr = 0x8000

// LoaderAddr is where the firmware places us (kernel_address in config.txt).
// Anything loaded at LoadAddr must end at or before here or the incoming
// image would overwrite the code that is receiving it.
const LoaderAddr = 0x200_0000

// ATAGAddr is where the firmware leaves the boot tags when r2 is not usable.
const ATAGAddr = 0x100

// MaxTagWindow is the most bytes of boot tags we are willing to look at when
// they are somewhere other than below LoadAddr.
const MaxTagWindow = 0x4000

// HaltSpin is how many times we go around the busy loop before announcing
// that the loaded image came back to us.  Not calibrated to any clock.
const HaltSpin = 10_000_000
