//go:build tinygo

package rp

import "runtime/interrupt"

// Critical runs f with interrupts disabled.
func Critical(f func()) {
	state := interrupt.Disable()
	f()
	interrupt.Restore(state)
}
