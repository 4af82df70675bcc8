//go:build tinygo && arm
// +build tinygo,arm

package main

import (
	"raspbootin/src/boot/archinfo"
	"raspbootin/src/boot/atag"
	"raspbootin/src/boot/bootloader"
	"raspbootin/src/boot/dispatch"
	"raspbootin/src/boot/handshake"
	"raspbootin/src/hardware/bcm2835"
	"raspbootin/src/hardware/rpi"
	"raspbootin/src/lib/trust"
	"raspbootin/src/tinygo_runtime"
)

var spinner dispatch.NopSpinner

// tinygo_runtime has already cleared bss, saved r0-r2 and run the package
// initializers before we get here.  When main returns the start stub parks the
// cpu in wfe forever.
func main() {
	regs := bootloader.Injected()

	// figure out what kind of pi we are on before saying anything, the
	// uart is in a different place on the pi 2
	tags := atag.FromAddr(uintptr(regs.TagAddr()), regs.TagWindow())
	profile := archinfo.Select(tags.Cmdline())

	periph := rpi.For(profile)
	uart := bcm2835.NewUART(periph.UART0(), periph.GPIO(), spinner.Spin)
	uart.Configure()
	tinygo_runtime.Console = uart
	led := bcm2835.NewLED(periph.GPIO(), profile.LEDPin, profile.LEDActiveLow)
	led.Set(true)

	logger := trust.NewLogger(uart)
	logger.SetLevel(trust.InfoMask)

	hs := handshake.New(handshake.DefaultConfig(), uart, handshake.MetalLoader{}, logger, profile, regs, tags)
	hs.SetBlinker(led)
	img, err := hs.Run()
	if err != nil {
		// the uart can't fail, so this is here for completeness only
		logger.Errorf("handshake: %v", err)
		return
	}
	led.Set(false)
	dispatch.Boot(dispatch.MetalJumper{}, spinner, logger, img, regs)
}
