package bcm2835

// NumPins is how many GPIOs the SoC has.
const NumPins = 54

type GPIOMode uint32 //3 bits wide
const GPIOInput GPIOMode = 0
const GPIOOutput GPIOMode = 1
const GPIOAltFunc5 GPIOMode = 2
const GPIOAltFunc4 GPIOMode = 3
const GPIOAltFunc0 GPIOMode = 4
const GPIOAltFunc1 GPIOMode = 5
const GPIOAltFunc2 GPIOMode = 6
const GPIOAltFunc3 GPIOMode = 7

// uart0 lives on 14 and 15 in alt function 0
const (
	TXD0Pin = 14
	RXD0Pin = 15
)

// funcSelectSlot says which FuncSelect register and what shift hold pin's 3
// mode bits. Ten pins per register.
func funcSelectSlot(pin uint8) (reg int, shift uint8, ok bool) {
	if pin >= NumPins {
		return 0, 0, false
	}
	return int(pin / 10), (pin % 10) * 3, true
}

// pinBank splits a pin into which of the two 32 bit banks it is in and the
// bit inside that bank.
func pinBank(pin uint8) (int, uint32) {
	return int(pin / 32), 1 << (pin % 32)
}
