package psram_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/rp"
	"github.com/monocap/monocap/rp/qmi"
	"github.com/monocap/monocap/sim"
)

const sysclk = 150_000_000

func newPSRAM() (*sim.PSRAM, *sim.Clock) {
	clock := &sim.Clock{}
	return sim.NewPSRAM(clock, sysclk, 64<<10), clock
}

func TestReadID(t *testing.T) {
	tests := map[string]bool{
		"spi": false,
		"qpi": true,
	}
	for name, quad := range tests {
		t.Run(name, func(t *testing.T) {
			dev, _ := newPSRAM()
			dev.SetQuad(quad)
			id := psram.ReadID(dev)
			assert.Equal(t, dev.ID, id)
			assert.True(t, id.Good())
			assert.False(t, dev.Quad())
		})
	}
}

func TestSetupBadDie(t *testing.T) {
	dev, clock := newPSRAM()
	dev.ID.KGD = 0x55
	_, err := psram.Setup(dev, clock, sysclk)
	assert.True(t, errors.Is(err, psram.ErrIdentity))
	assert.Error(t, dev.Mapped())
}

func TestInitRoundTrip(t *testing.T) {
	dev, clock := newPSRAM()
	dev.SetQuad(true)
	_, err := psram.Setup(dev, clock, sysclk)
	assert.NoError(t, err)
	assert.Equal(t, []uint8{0xf5, 0x9f, 0x66, 0x99, 0x35}, dev.Commands)

	mem, err := dev.Map()
	assert.NoError(t, err)

	data := []byte("linear memory after bring-up")
	for _, off := range []int64{0, 1, 2, 3, 4095, int64(mem.Size() - len(data))} {
		n, err := mem.WriteAt(data, off)
		assert.NoError(t, err)
		assert.Equal(t, len(data), n)

		rx := make([]byte, len(data))
		_, err = mem.ReadAt(rx, off)
		if err != nil && err != io.EOF {
			t.Fatal(err)
		}
		if !bytes.Equal(data, rx) {
			t.Fatalf("offset %d: expected %q, got %q", off, data, rx)
		}
	}
}

func TestInitWithoutResetDelay(t *testing.T) {
	dev, _ := newPSRAM()
	psram.Init(dev, rp.DelayFunc(func(time.Duration) {}), sysclk)
	_, err := dev.Map()
	assert.True(t, errors.Is(err, sim.ErrNotMapped))
}

func TestTiming(t *testing.T) {
	tests := map[string]struct {
		sysclk               uint32
		clkdiv, maxSel, minD uint8
	}{
		"150MHz": {150_000_000, 2, 18, 4},
		"133MHz": {133_000_000, 1, 16, 4},
		"200MHz": {200_000_000, 2, 25, 5},
		"48MHz":  {48_000_000, 1, 6, 2},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			timing := psram.Timing(tc.sysclk)
			if timing.ClkDiv != tc.clkdiv || timing.MaxSelect != tc.maxSel || timing.MinDeselect != tc.minD {
				t.Fatalf("expected clkdiv %d max select %d min deselect %d, got %+v",
					tc.clkdiv, tc.maxSel, tc.minD, timing)
			}
			assert.Equal(t, timing.ClkDiv, timing.RxDelay)
		})
	}
}

func TestFrame(t *testing.T) {
	mem := psram.NewDevice(make([]uint32, 8))
	f, err := mem.Frame(8)
	assert.NoError(t, err)
	assert.Len(t, f, 8)
	_, err = mem.Frame(9)
	assert.True(t, errors.Is(err, psram.ErrFrameSize))
}

// ramBus runs direct mode sequences itself, the way the chip runs them from
// RAM, and fails on any bus access outside of a sequence.
type ramBus struct {
	*sim.PSRAM
	t         *testing.T
	clock     *sim.Clock
	running   bool
	sequences int
}

func (b *ramBus) check() {
	if !b.running {
		b.t.Fatal("direct mode access outside of a sequence")
	}
}

func (b *ramBus) Configure(cfg qmi.Config) { b.check(); b.PSRAM.Configure(cfg) }

func (b *ramBus) Transact(cmd qmi.Command) uint32 { b.check(); return b.PSRAM.Transact(cmd) }

func (b *ramBus) SetWindow(w qmi.Window) { b.check(); b.PSRAM.SetWindow(w) }

func (b *ramBus) Sequence(ops []qmi.Op, rx []uint32) {
	b.running = true
	b.sequences++
	n := 0
	for _, op := range ops {
		switch op.Kind {
		case qmi.OpConfigure:
			b.Configure(op.Config)
		case qmi.OpTransact:
			rx[n] = b.Transact(op.Cmd)
			n++
		case qmi.OpWait:
			b.clock.Delay(time.Duration(op.Cycles) * time.Second / sysclk)
		case qmi.OpSetWindow:
			b.SetWindow(op.Window)
		}
	}
	last := ops[len(ops)-1]
	assert.Equal(b.t, qmi.OpConfigure, last.Kind)
	assert.False(b.t, last.Config.Enable)
	b.running = false
}

func TestSetupRunsFromSequences(t *testing.T) {
	dev, clock := newPSRAM()
	dev.SetQuad(true)
	bus := &ramBus{PSRAM: dev, t: t, clock: clock}

	// Waits are spent in cycles by the sequence, not on the delayer.
	_, err := psram.Setup(bus, rp.DelayFunc(func(time.Duration) {}), sysclk)
	assert.NoError(t, err)
	assert.Equal(t, 2, bus.sequences)
	assert.Equal(t, []uint8{0xf5, 0x9f, 0x66, 0x99, 0x35}, dev.Commands)
	_, err = dev.Map()
	assert.NoError(t, err)
}

func TestDeviceBounds(t *testing.T) {
	mem := psram.NewDevice(make([]uint32, 2))
	_, err := mem.ReadAt(make([]byte, 1), 9)
	assert.True(t, errors.Is(err, psram.ErrOutOfRange))
	_, err = mem.WriteAt(make([]byte, 1), -1)
	assert.True(t, errors.Is(err, psram.ErrOutOfRange))

	n, err := mem.WriteAt([]byte{1, 2, 3, 4}, 6)
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(err, io.ErrShortWrite))

	rx := make([]byte, 4)
	n, err = mem.ReadAt(rx, 6)
	assert.Equal(t, 2, n)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, []byte{1, 2}, rx[:n])
}
