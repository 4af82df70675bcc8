//go:build tinygo
// +build tinygo

package bcm2835

// LED is an output pin with a light on it.
type LED struct {
	gpio      *GPIORegisterMap
	pin       uint8
	activeLow bool
	on        bool
}

// NewLED configures pin as an output and turns the LED off.
func NewLED(gpioAddr uintptr, pin uint8, activeLow bool) *LED {
	l := &LED{gpio: GPIOAt(gpioAddr), pin: pin, activeLow: activeLow}
	l.gpio.SetMode(pin, GPIOOutput)
	l.Set(false)
	return l
}

func (l *LED) Set(on bool) {
	l.on = on
	if on != l.activeLow {
		l.gpio.Set(l.pin)
	} else {
		l.gpio.Clear(l.pin)
	}
}

func (l *LED) Toggle() {
	l.Set(!l.on)
}
