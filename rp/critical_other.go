//go:build !tinygo

package rp

// Critical runs f. There are no interrupts to mask off target.
func Critical(f func()) {
	f()
}
