//go:build tinygo
// +build tinygo

package handshake

import (
	"runtime/volatile"
	"unsafe"
)

// MetalLoader is the Loader used on the real hardware, addr is PHYS.
type MetalLoader struct{}

func (MetalLoader) Write(addr uint32, value uint8) {
	volatile.StoreUint8((*uint8)(unsafe.Pointer(uintptr(addr))), value)
}
