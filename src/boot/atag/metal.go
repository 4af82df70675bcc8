//go:build tinygo
// +build tinygo

package atag

import "unsafe"

// FromAddr makes a List over physical memory starting at addr and running
// for window bytes.  Only meaningful on the board, where addr is a real
// PHYS addr handed to us by the firmware.
func FromAddr(addr uintptr, window int) *List {
	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), window)
	return New(mem, uint32(addr))
}
