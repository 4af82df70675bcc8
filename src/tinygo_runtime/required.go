//go:build tinygo
// +build tinygo

package tinygo_runtime

import (
	"device/arm"
	"io"
	"runtime"
	"unsafe"

	"raspbootin/src/boot/bootloader"
)

// Console gets runtime output (panics, println).  Until main sets it the
// uart isn't configured yet and output is dropped.
var Console io.ByteWriter

//go:extern _sbss
var _sbss [0]byte

//go:extern _ebss
var _ebss [0]byte

//export runtime.external_putchar
func putchar(c uint8) {
	if Console != nil {
		Console.WriteByte(c)
	}
}

func zeroBSS() {
	// Initialize .bss: zero-initialized global variables.
	ptr := unsafe.Pointer(&_sbss)
	for ptr != unsafe.Pointer(&_ebss) {
		*(*uint8)(ptr) = 0
		ptr = unsafe.Pointer(uintptr(ptr) + 1)
	}
}

// main is where the start stub branches once it has a stack, with the
// firmware's r0, r1 and r2 still in place.  The registers are saved after
// bss is cleared and before any package initializer runs.
//
//export main
func main(r0, r1, r2 uint32) {
	zeroBSS()
	bootloader.Inject(r0, r1, r2)
	runtime.Run()
}

//export runtime.external_postinit
func postinit() {
}

//export runtime.external_abort
func abort() {
	putchar('\n')
	for _, c := range []byte("# raspbootin aborting...\n") {
		putchar(c)
	}
	for {
		arm.Asm("nop")
	}
}

//export runtime.external_ticks
func external_ticks() uint64 {
	return uint64(0)
}

//export runtime.external_sleep_ticks
func external_sleep_ticks(d uint64) {
	return
}
