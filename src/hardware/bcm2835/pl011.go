//go:build tinygo
// +build tinygo

package bcm2835

import (
	"runtime/volatile"
	"unsafe"
)

type PL011RegisterMap struct {
	Data                 volatile.Register32    //0x00
	RxStatus             volatile.Register32    //0x04
	reserved00           [4]volatile.Register32 //0x08-0x14
	Flags                volatile.Register32    //0x18, readonly
	reserved01           volatile.Register32    //0x1C
	IrDALowPower         volatile.Register32    //0x20
	IntegerBaud          volatile.Register32    //0x24
	FractionalBaud       volatile.Register32    //0x28
	LineControl          volatile.Register32    //0x2C
	Control              volatile.Register32    //0x30
	FIFOLevelSelect      volatile.Register32    //0x34
	InterruptMaskSet     volatile.Register32    //0x38
	RawInterruptStatus   volatile.Register32    //0x3C
	MaskedInterruptStats volatile.Register32    //0x40
	InterruptClear       volatile.Register32    //0x44
}

const (
	flagRxEmpty = 1 << 4
	flagTxFull  = 1 << 5

	lineFIFOEnable = 1 << 4
	lineWord8      = 3 << 5

	controlEnable   = 1 << 0
	controlTxEnable = 1 << 8
	controlRxEnable = 1 << 9
)

// UART is the PL011 on GPIO 14/15, polled, no interrupts.  It never fails,
// it just waits.
type UART struct {
	regs *PL011RegisterMap
	gpio *GPIORegisterMap
	wait func(int)
}

// NewUART returns the uart with registers at uartAddr, using the gpio block
// at gpioAddr for pin setup.  wait is a cycle-ish busy loop.
func NewUART(uartAddr, gpioAddr uintptr, wait func(int)) *UART {
	return &UART{
		regs: (*PL011RegisterMap)(unsafe.Pointer(uartAddr)),
		gpio: GPIOAt(gpioAddr),
		wait: wait,
	}
}

// Configure sets up 115200 8N1 with the fifos on.  The firmware sets the
// uart clock to 3MHz: 3000000/(16*115200) = 1.627 -> IBRD 1, FBRD 40.
func (u *UART) Configure() {
	u.regs.Control.Set(0)

	u.gpio.SetMode(TXD0Pin, GPIOAltFunc0)
	u.gpio.SetMode(RXD0Pin, GPIOAltFunc0)
	u.gpio.DisablePulls(1<<TXD0Pin|1<<RXD0Pin, u.wait)

	u.regs.InterruptClear.Set(0x7FF)
	u.regs.IntegerBaud.Set(1)
	u.regs.FractionalBaud.Set(40)
	u.regs.LineControl.Set(lineFIFOEnable | lineWord8)
	u.regs.InterruptMaskSet.Set(0)
	u.regs.Control.Set(controlEnable | controlTxEnable | controlRxEnable)
}

// ReadByte blocks until a byte shows up.
func (u *UART) ReadByte() (byte, error) {
	for u.regs.Flags.HasBits(flagRxEmpty) {
	}
	return byte(u.regs.Data.Get()), nil
}

// WriteByte blocks until there is room in the transmit fifo.
func (u *UART) WriteByte(c byte) error {
	for u.regs.Flags.HasBits(flagTxFull) {
	}
	u.regs.Data.Set(uint32(c))
	return nil
}

// Write lets the uart be the console.  \n goes out as \r\n.
func (u *UART) Write(p []byte) (int, error) {
	for _, c := range p {
		if c == '\n' {
			u.WriteByte('\r')
		}
		u.WriteByte(c)
	}
	return len(p), nil
}

func (u *UART) WriteString(s string) {
	u.Write([]byte(s))
}
