// Package archinfo knows which raspberry pi models we can boot on and how to
// tell them apart from the kernel command line the firmware builds for us.
package archinfo

import (
	"fmt"
	"strings"
)

// Profile is the little we need to know about a board to talk to it.
type Profile struct {
	Model          string
	PeripheralBase uint32 // PHYS addr of the MMIO window
	LEDPin         uint8  // GPIO of the activity LED
	LEDActiveLow   bool   // LED lights when the pin is driven low
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (peripherals @ 0x%08x, led gpio %d)", p.Model, p.PeripheralBase, p.LEDPin)
}

// Index of a profile in the table.
type Index int

const (
	RPi Index = iota
	RPiPlus
	RPi2
	NumProfiles
)

var profiles = [NumProfiles]Profile{
	RPi:     {Model: "Raspberry Pi b", PeripheralBase: 0x2000_0000, LEDPin: 16, LEDActiveLow: true},
	RPiPlus: {Model: "Raspberry Pi b+", PeripheralBase: 0x2000_0000, LEDPin: 47},
	RPi2:    {Model: "Raspberry Pi b 2", PeripheralBase: 0x3F00_0000, LEDPin: 47},
}

// the firmware passes the activity LED pin to the kernel and it only
// differs from the old default on the newer boards
const (
	plusMarker = "bcm2708.disk_led_gpio=47"
	pi2Marker  = "bcm2709.disk_led_gpio=47"
)

// Get returns the profile at i.
func Get(i Index) Profile {
	return profiles[i]
}

// All returns the table in order, first entry is the default.
func All() []Profile {
	result := make([]Profile, NumProfiles)
	copy(result, profiles[:])
	return result
}

// Find returns the position of the first literal, case sensitive match of
// token in s, or -1.
func Find(s, token string) int {
	return strings.Index(s, token)
}

// Select picks the profile for the command line.  When the firmware gave us
// no command line (ok false) we stay with the basic pi.  The b+ marker is
// checked first and wins.
func Select(cmdline string, ok bool) Profile {
	if !ok {
		return profiles[RPi]
	}
	switch {
	case Find(cmdline, plusMarker) >= 0:
		return profiles[RPiPlus]
	case Find(cmdline, pi2Marker) >= 0:
		return profiles[RPi2]
	}
	return profiles[RPi]
}
