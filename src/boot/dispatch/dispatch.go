// Package dispatch hands the cpu to a freshly loaded kernel.
package dispatch

import (
	"raspbootin/src/boot/bootloader"
	"raspbootin/src/boot/handshake"
	"raspbootin/src/lib/trust"
)

const HaltMessage = "\r\n*** system halting ***"

// Jumper starts executing at entry with r0, r1, r2 set from regs.  It is
// not supposed to come back.
type Jumper interface {
	Jump(entry uint32, regs bootloader.Registers)
}

// Spinner burns n iterations doing nothing useful.
type Spinner interface {
	Spin(n int)
}

// Boot jumps to img, passing along exactly the registers we were given.  If
// the kernel ever returns we wait a bit, say goodbye and return so the boot
// stub can park the cpu.  After the jump we never touch img's memory again.
func Boot(j Jumper, s Spinner, log *trust.Logger, img handshake.Image, regs bootloader.Registers) {
	j.Jump(img.Addr, regs)

	s.Spin(bootloader.HaltSpin)
	log.Printf("%s", HaltMessage)
}
