// Package status signals progress and faults on the status LED, the only
// diagnostic the device has in the field.
package status

import (
	"fmt"
	"time"

	"github.com/monocap/monocap/rp"
)

// Code is a fault blink code: the LED blinks Code times, then pauses.
type Code uint8

const (
	PSRAM Code = iota + 1
	UnknownSensor
	SensorInit
	Counter
	Capture
	ImageWrite
)

var codeNames = [...]string{
	PSRAM:         "psram init",
	UnknownSensor: "unknown sensor",
	SensorInit:    "sensor init",
	Counter:       "counter",
	Capture:       "capture",
	ImageWrite:    "image write",
}

func (c Code) String() string {
	if int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

const (
	pulse = 250 * time.Millisecond
	pause = 2 * time.Second

	// Period of the pattern shown after a single shot was stored.
	donePeriod = 300 * time.Millisecond

	// Flash shown after each frame of a sweep was captured.
	flash = 50 * time.Millisecond
)

// LED drives the status LED.
type LED struct {
	pin   rp.Pin
	delay rp.Delayer
}

func New(pin rp.Pin, delay rp.Delayer) *LED {
	pin.Set(false)
	return &LED{pin: pin, delay: delay}
}

func (l *LED) Set(on bool) { l.pin.Set(on) }

func (l *LED) blink(n int, on, off time.Duration) {
	for range n {
		l.pin.Set(true)
		l.delay.Delay(on)
		l.pin.Set(false)
		l.delay.Delay(off)
	}
}

// Blink shows code once, followed by a pause.
func (l *LED) Blink(code Code) {
	l.blink(int(code), pulse, pulse)
	l.delay.Delay(pause)
}

// Flash shows n short flashes.
func (l *LED) Flash(n int) {
	l.blink(n, flash, flash)
}

// Halt shows code forever.
func (l *LED) Halt(code Code) {
	for {
		l.Blink(code)
	}
}

// Done blinks steadily forever to show that the work is done.
func (l *LED) Done() {
	for {
		l.blink(1, donePeriod, donePeriod)
	}
}
