//go:build debug

package debug

import "fmt"

// Guard assertions with side effects or allocations with `if debug.Enabled
// {...}` so release builds drop them entirely.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}

func AssertInRange(v, lo, hi int, what string) {
	if v < lo || v > hi {
		panic(fmt.Sprintf("%s out of range: %d not in [%d, %d]", what, v, lo, hi))
	}
}
