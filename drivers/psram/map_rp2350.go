//go:build tinygo && rp2350

package psram

import (
	"runtime/volatile"
	"unsafe"
)

const xipCtrlAddr uintptr = 0x400c_8000

const xipWritableM1 = 1 << 11

// Map allows writes through memory window 1 and returns the mapped device.
// Init must have been called before.
func Map() *Device {
	ctrl := (*volatile.Register32)(unsafe.Pointer(xipCtrlAddr))
	ctrl.SetBits(xipWritableM1)
	return NewDevice(unsafe.Slice((*uint32)(unsafe.Pointer(uintptr(BaseAddr))), Size/4))
}
