package rp

// Pin is a push-pull output. machine.Pin implements it on target.
type Pin interface {
	Set(high bool)
}

// ClockOutput is a clock routed to a GPOUT pin.
type ClockOutput interface {
	Enable()
	Disable()
}
