package rp

import "time"

// Delayer blocks for at least d. Implementations used during bring-up must not
// yield to a scheduler.
type Delayer interface {
	Delay(d time.Duration)
}

type DelayFunc func(d time.Duration)

func (f DelayFunc) Delay(d time.Duration) { f(d) }

// Spin busy-waits for at least d.
var Spin Delayer = DelayFunc(spin)

func spin(d time.Duration) {
	start := time.Now()
	for time.Since(start) < d {
	}
}
