package sim

import "time"

// LED is the status LED. It implements rp.Pin.
type LED struct {
	On     bool
	Pulses int
	Rising []time.Duration // times of the rising edges

	clock *Clock
}

func (l *LED) Set(high bool) {
	if high && !l.On {
		l.Pulses++
		l.Rising = append(l.Rising, l.clock.Now())
	}
	l.On = high
}
