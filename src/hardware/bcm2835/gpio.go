//go:build tinygo
// +build tinygo

package bcm2835

import (
	"runtime/volatile"
	"unsafe"
)

type GPIORegisterMap struct {
	FuncSelect               [6]volatile.Register32 //0x00,04,08,0C,10, and 14
	reserved00               volatile.Register32    //0x18
	OutputSet                [2]volatile.Register32 //0x1C,20
	reserved01               volatile.Register32    //0x24
	OutputClear              [2]volatile.Register32 //0x28,2C
	reserved03               volatile.Register32    //0x30
	Level                    [2]volatile.Register32 //0x34,38
	reserved04               volatile.Register32    //0x3C
	EventDetectStatus0       volatile.Register32    //0x40
	EventDetectStatus1       volatile.Register32    //0x44
	reserved05               volatile.Register32    //0x48
	RisingEdgeDetectEnable0  volatile.Register32    //0x4C
	RisingEdgeDetectEnable1  volatile.Register32    //0x50
	reserved06               volatile.Register32    //0x54
	FallingEdgeDetectEnable0 volatile.Register32    //0x58
	FallingEdgeDetectEnable1 volatile.Register32    //0x5C
	reserved07               volatile.Register32    //0x60
	HighDetectEnable0        volatile.Register32    //0x64
	HighDetectEnable1        volatile.Register32    //0x68
	reserved08               volatile.Register32    //0x6C
	LowDetectEnable0         volatile.Register32    //0x70
	LowDetectEnable1         volatile.Register32    //0x74
	reserved09               volatile.Register32    //0x78
	AsyncRisingEdgeDetect0   volatile.Register32    //0x7C
	AsyncRisingEdgeDetect1   volatile.Register32    //0x80
	reserved0A               volatile.Register32    //0x84
	AsyncFallingEdgeDetect0  volatile.Register32    //0x88
	AsyncFallingEdgeDetect1  volatile.Register32    //0x8C
	reserved0B               volatile.Register32    //0x90
	PullUpDownEnable         volatile.Register32    //0x94
	PullUpDownEnableClock    [2]volatile.Register32 //0x98,9C
}

// GPIOAt maps the register block at the PHYS addr.
func GPIOAt(addr uintptr) *GPIORegisterMap {
	return (*GPIORegisterMap)(unsafe.Pointer(addr))
}

// SetMode sets the function of pin.  Returns false for a pin we don't have.
func (g *GPIORegisterMap) SetMode(pin uint8, mode GPIOMode) bool {
	reg, shift, ok := funcSelectSlot(pin)
	if !ok {
		return false
	}
	g.FuncSelect[reg].ReplaceBits(uint32(mode), 7, shift)
	return true
}

// Set drives pin high.
func (g *GPIORegisterMap) Set(pin uint8) {
	bank, bit := pinBank(pin)
	g.OutputSet[bank].Set(bit)
}

// Clear drives pin low.
func (g *GPIORegisterMap) Clear(pin uint8) {
	bank, bit := pinBank(pin)
	g.OutputClear[bank].Set(bit)
}

// DisablePulls turns off the pull up/down on the pins in mask (bank 0).  The
// 150 cycle waits are from the datasheet.
func (g *GPIORegisterMap) DisablePulls(mask uint32, wait func(int)) {
	g.PullUpDownEnable.Set(0)
	wait(150)
	g.PullUpDownEnableClock[0].Set(mask)
	wait(150)
	g.PullUpDownEnableClock[0].Set(0)
}
