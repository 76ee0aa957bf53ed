//go:build !debug

// Package debug provides assertions for invariants of the capture pipeline
// that only break with broken wiring or a broken caller. They panic when built
// with the debug tag and compile to nothing otherwise.
package debug

// Guard assertions with side effects or allocations with `if debug.Enabled
// {...}` so release builds drop them entirely.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}

// AssertInRange panics if v is outside [lo, hi].
func AssertInRange(v, lo, hi int, what string) {}
