package sim

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/monocap/monocap/rp/pio"
)

const (
	testStrobe = 5
	testData   = 6
)

func newCaptureSM(t *testing.T) *StateMachine {
	t.Helper()
	p, cfg, err := pio.Capture(testStrobe, 10)
	assert.NoError(t, err)
	sm := &StateMachine{}
	assert.NoError(t, sm.Configure(p, cfg))
	pio.Reset(sm)
	return sm
}

// clockIn drives one sample through sm with the strobe low, then high.
func clockIn(sm *StateMachine, v uint16) {
	gpio := uint32(v) << testData
	for range 3 {
		sm.step(gpio)
	}
	for range 3 {
		sm.step(gpio | 1<<testStrobe)
	}
}

func TestCapturePacking(t *testing.T) {
	sm := newCaptureSM(t)
	for _, v := range []uint16{0x3ff, 0x001, 0x200, 0x155, 0x2aa, 0x000} {
		clockIn(sm, v)
	}
	assert.Equal(t, 2, sm.Pushed)
	w, ok := sm.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x3ff<<20|0x001<<10|0x200), w)
	w, ok = sm.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x155<<20|0x2aa<<10), w)
	_, ok = sm.Pop()
	assert.False(t, ok)
}

func TestCaptureIgnoresHeldStrobe(t *testing.T) {
	sm := newCaptureSM(t)
	gpio := uint32(1<<testStrobe | 0x3ff<<testData)
	for range 100 {
		sm.step(gpio)
	}
	// Without a falling edge nothing is sampled.
	assert.Equal(t, 0, sm.Pushed)
	assert.Equal(t, uint8(0), sm.count)
}

func TestCaptureStallsOnFullFIFO(t *testing.T) {
	sm := newCaptureSM(t)
	for i := range 8 * 3 {
		clockIn(sm, uint16(i))
	}
	assert.Equal(t, 8, sm.Pushed)
	assert.Equal(t, 0, sm.Stalls)

	// Complete the ninth word: the push stalls and the sample is held back.
	clockIn(sm, 1)
	clockIn(sm, 2)
	clockIn(sm, 3)
	assert.Equal(t, 8, sm.Pushed)
	assert.True(t, sm.Stalls > 0)

	_, ok := sm.Pop()
	assert.True(t, ok)
	sm.step(uint32(3)<<testData | 1<<testStrobe)
	assert.Equal(t, 9, sm.Pushed)
	for range 7 {
		sm.Pop()
	}
	w, ok := sm.Pop()
	assert.True(t, ok)
	assert.Equal(t, uint32(1<<20|2<<10|3), w)
}

func TestCaptureDisabled(t *testing.T) {
	sm := newCaptureSM(t)
	sm.SetEnabled(false)
	for range 4 {
		clockIn(sm, 0x3ff)
	}
	assert.Equal(t, 0, sm.Pushed)
	assert.False(t, sm.Enabled())
}

func TestConfigureRejectsWrap(t *testing.T) {
	p := pio.CaptureProgram(testStrobe, 10)
	p.Wrap = 3
	sm := &StateMachine{}
	assert.Error(t, sm.Configure(p, pio.Config{}))
}
