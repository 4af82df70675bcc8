//go:build tinygo && arm
// +build tinygo,arm

package dispatch

import (
	"device/arm"
	"unsafe"

	"raspbootin/src/boot/bootloader"
)

// MetalJumper branches to a PHYS addr with the boot registers loaded.
type MetalJumper struct{}

// Jump is the only place we treat memory as code.  Everything goes through
// ip so the compiler's choice of register for args can't be clobbered while
// r0-r2 are loaded.
func (MetalJumper) Jump(entry uint32, regs bootloader.Registers) {
	args := [4]uint32{regs.R0, regs.R1, regs.ATAGs, entry}
	arm.AsmFull(`
		push {r4, lr}
		mov ip, {args}
		ldr r0, [ip]
		ldr r1, [ip, #4]
		ldr r2, [ip, #8]
		ldr ip, [ip, #12]
		blx ip
		pop {r4, lr}
	`, map[string]interface{}{
		"args": uintptr(unsafe.Pointer(&args)),
	})
}

// NopSpinner waits by running nops, the optimizer can't remove them.
type NopSpinner struct{}

func (NopSpinner) Spin(n int) {
	for i := 0; i < n; i++ {
		arm.Asm("nop")
	}
}
