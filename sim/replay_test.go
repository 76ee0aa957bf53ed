package sim_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/soypat/saleae"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/frame"
	"github.com/monocap/monocap/rp/pio"
	"github.com/monocap/monocap/sim"
)

const (
	strobe = 5
	width  = 15
	height = 4
)

func newBoard(t *testing.T) (*sim.Board, *camera.Sensor) {
	t.Helper()
	b := sim.NewBoard(sim.BoardConfig{
		Sysclk:    150_000_000,
		PSRAMSize: 4 << 10,
		FRAMSize:  2048,
		Strobe:    strobe,
		DataBase:  strobe + 1,
	})
	p, cfg, err := pio.Capture(strobe, 10)
	assert.NoError(t, err)
	assert.NoError(t, b.SM.Configure(p, cfg))

	pins := camera.Pins{Clock: b.Sensor.Clock(), Standby: b.Sensor.Standby(), Trigger: b.Sensor.Trigger()}
	s := camera.New(mt9m001.New(b.Sensor), pins, b.Clock,
		camera.Config{Width: width, Height: height, Frequency: 5_800_000})
	assert.NoError(t, s.Init())
	return b, s
}

func capture(t *testing.T, b *sim.Board, s *camera.Sensor) []uint32 {
	t.Helper()
	buf := make([]uint32, frame.Words(width, height))
	assert.NoError(t, s.Capture(context.Background(), b.SM, b.Stream(), buf))
	return buf
}

func TestRecordReplay(t *testing.T) {
	b, s := newBoard(t)
	b.Recorder = sim.NewRecorder(strobe, strobe+1, 10)
	want := capture(t, b, s)

	// Through the file format and back.
	var signals []io.Reader
	for _, f := range b.Recorder.Files() {
		var buf bytes.Buffer
		_, err := f.WriteTo(&buf)
		assert.NoError(t, err)
		signals = append(signals, &buf)
	}
	replay, err := sim.ReadReplay(signals...)
	assert.NoError(t, err)
	assert.True(t, replay.Duration() > 0)

	b, s = newBoard(t)
	b.Sensor.Scene = func(row, col int) uint16 { return 0 }
	b.Sensor.Replay = replay
	assert.Equal(t, want, capture(t, b, s))

	// The replay restarts with every trigger.
	assert.Equal(t, want, capture(t, b, s))
}

func TestReplayChannels(t *testing.T) {
	files := sim.NewRecorder(strobe, strobe+1, 10).Files()
	_, err := sim.NewReplay(files[:1]...)
	assert.True(t, errors.Is(err, sim.ErrReplayChannels))

	files[1].Header.End = 1
	_, err = sim.NewReplay(files...)
	assert.Error(t, err)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestReplaySample(t *testing.T) {
	file := func(initial uint32, data ...float64) *saleae.DigitalFile {
		f := &saleae.DigitalFile{Data: data}
		f.Header.InitialState = initial
		f.Header.End = 1
		return f
	}
	r, err := sim.NewReplay(file(0, 0.25, 0.5), file(1, 0.5))
	assert.NoError(t, err)

	samples := []struct {
		at     float64
		strobe bool
		data   uint16
	}{
		{0, false, 1},
		{0.25, true, 1},
		{0.5, false, 0},
		{1, false, 0},
	}
	for _, s := range samples {
		strobe, data, ok := r.Sample(seconds(s.at))
		assert.True(t, ok)
		assert.Equal(t, s.strobe, strobe)
		assert.Equal(t, s.data, data)
	}
	_, _, ok := r.Sample(seconds(1.5))
	assert.False(t, ok)

	r.Rewind()
	strobe, _, _ := r.Sample(0)
	assert.False(t, strobe)
}

func TestReplayConstantSignals(t *testing.T) {
	b, s := newBoard(t)
	b.Sensor.Scene = func(row, col int) uint16 { return 0x01f }
	b.Recorder = sim.NewRecorder(strobe, strobe+1, 10)
	capture(t, b, s)

	files := b.Recorder.Files()
	replay, err := sim.NewReplay(files...)
	assert.NoError(t, err)

	// D5 and up never change. Their levels hold until the very end.
	for i := 6; i < len(files); i++ {
		assert.Len(t, files[i].Data, 1)
	}
	_, data, ok := replay.Sample(replay.Duration())
	assert.True(t, ok)
	assert.Equal(t, uint16(0), data&0x3e0)
}
