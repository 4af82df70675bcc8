package rpi

import "raspbootin/src/boot/archinfo"

//This file is for things that are the same on every raspberry pi model we
//boot on.  The things that differ come from the archinfo profile.

// offsets from the start of the MMIO window
const (
	GPIOOffset  = 0x0020_0000
	UART0Offset = 0x0020_1000
)

// Peripherals is where the MMIO window lives for a given board.
type Peripherals struct {
	Base uintptr
}

// For returns the peripheral layout of the profile's board.
func For(p archinfo.Profile) Peripherals {
	return Peripherals{Base: uintptr(p.PeripheralBase)}
}

// GPIO is the PHYS addr of the GPIO register block.
func (p Peripherals) GPIO() uintptr {
	return p.Base + GPIOOffset
}

// UART0 is the PHYS addr of the PL011 register block.
func (p Peripherals) UART0() uintptr {
	return p.Base + UART0Offset
}
