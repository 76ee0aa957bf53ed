package sim

import "time"

// Clock is simulated time. It implements rp.Delayer without blocking.
type Clock struct {
	now time.Duration
}

func (c *Clock) Delay(d time.Duration) {
	c.now += d
}

// Now returns the time since power on.
func (c *Clock) Now() time.Duration {
	return c.now
}
