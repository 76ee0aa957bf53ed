package firmware_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
	"tinygo.org/x/drivers"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/fram"
	"github.com/monocap/monocap/drivers/imagefs"
	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/drivers/status"
	"github.com/monocap/monocap/firmware"
	"github.com/monocap/monocap/frame"
	"github.com/monocap/monocap/rp/dma"
	"github.com/monocap/monocap/sim"
)

const (
	sysclk   = 150_000_000
	strobe   = 5
	width    = 15
	height   = 4
	sensorHz = 5_800_000
)

// card keeps stored images in memory.
type card map[string][]byte

func (c card) WriteImage(name string, payload []byte) error {
	c[name] = append([]byte(nil), payload...)
	return nil
}

type failingCard struct{}

var errCardFull = errors.New("card full")

func (failingCard) WriteImage(string, []byte) error { return errCardFull }

type rig struct {
	board *sim.Board
	hw    *firmware.Hardware
	card  card
}

func newRig(t *testing.T) *rig {
	t.Helper()
	board := sim.NewBoard(sim.BoardConfig{
		Sysclk:    sysclk,
		PSRAMSize: 64 << 10,
		FRAMSize:  fram.Size,
		Strobe:    strobe,
		DataBase:  strobe + 1,
	})
	r := &rig{board: board, card: card{}}
	r.hw = &firmware.Hardware{
		QMI:     board.PSRAM,
		Sysclk:  sysclk,
		Delay:   board.Clock,
		Map:     board.PSRAM.Map,
		Strobe:  strobe,
		SM:      board.SM,
		Stream:  board.Stream(),
		Counter: firmware.NewCounter(fram.New(board.FRAM, board.FRAM.CS())),
		Images:  r.card,
		LED:     status.New(board.LED, board.Clock),
	}
	r.setBus(board.Sensor)
	return r
}

// setBus attaches the sensor controller to bus.
func (r *rig) setBus(bus drivers.I2C) {
	s := r.board.Sensor
	r.hw.Sensor = camera.New(mt9m001.New(bus),
		camera.Pins{Clock: s.Clock(), Standby: s.Standby(), Trigger: s.Trigger()},
		r.board.Clock,
		camera.Config{Width: width, Height: height, Frequency: sensorHz})
}

func (r *rig) run(t *testing.T, cfg firmware.Config) ([]string, error) {
	t.Helper()
	return firmware.Run(context.Background(), cfg, r.hw, log.NewTestLogger(t))
}

func checkGradient(t *testing.T, payload []byte, gain float64) {
	t.Helper()
	img, err := frame.Unpack(payload, width, height)
	assert.NoError(t, err)
	for y := range height {
		for x := range width {
			want := uint16(min(float64(sim.Gradient(y, x))*gain, 0x3ff))
			assert.Equal(t, want, img.Value(x, y))
		}
	}
}

func TestSingleShot(t *testing.T) {
	r := newRig(t)
	names, err := r.run(t, firmware.SingleShot)
	assert.NoError(t, err)
	assert.Equal(t, []string{"IMG_000.RAW"}, names)
	checkGradient(t, r.card["IMG_000.RAW"], 1)

	assert.False(t, r.board.Sensor.Awake())
	assert.False(t, r.board.LED.On)
	assert.Equal(t, 1, r.board.LED.Pulses)
	assert.Equal(t, 1, r.board.DMA[0].Starts)

	// The counter survives the reboot.
	names, err = r.run(t, firmware.SingleShot)
	assert.NoError(t, err)
	assert.Equal(t, []string{"IMG_001.RAW"}, names)
}

func TestSingleShotVolume(t *testing.T) {
	r := newRig(t)
	path := filepath.Join(t.TempDir(), "card.img")
	vol, err := imagefs.Create(path, 64<<20)
	assert.NoError(t, err)
	r.hw.Images = vol

	_, err = r.run(t, firmware.SingleShot)
	assert.NoError(t, err)
	assert.NoError(t, vol.Close())

	vol, err = imagefs.Open(path)
	assert.NoError(t, err)
	defer vol.Close()
	payload, err := vol.ReadImage("IMG_000.RAW")
	assert.NoError(t, err)
	assert.Len(t, payload, frame.Words(width, height)*4)
	checkGradient(t, payload, 1)
}

func TestSweep(t *testing.T) {
	r := newRig(t)
	r.hw.Stream = r.board.DoubleStream(4)
	cfg := firmware.Sweep
	cfg.Gain = 2

	names, err := r.run(t, cfg)
	assert.NoError(t, err)
	assert.Len(t, names, cfg.Shots)
	for i, name := range names {
		assert.Equal(t, fmt.Sprintf("IM%05d.RAW", i), name)
		checkGradient(t, r.card[name], 2)
	}
	// One pulse while capturing and three flashes per frame.
	assert.Equal(t, cfg.Shots*4, r.board.LED.Pulses)

	// The last shot was exposed for 1/500 s.
	want, err := camera.ShutterWidth(1, 500, sensorHz, r.board.Sensor.Reg(mt9m001.RegShutterDelay), width, 0)
	assert.NoError(t, err)
	assert.Equal(t, want, r.board.Sensor.Reg(mt9m001.RegShutterWidth))
}

// otherChip answers like a sensor with a different chip version.
type otherChip struct{ *sim.Sensor }

func (o otherChip) Tx(addr uint16, w, r []byte) error {
	err := o.Sensor.Tx(addr, w, r)
	if err == nil && len(r) == 2 {
		r[0], r[1] = 0x84, 0x11
	}
	return err
}

// deadBus never acknowledges.
type deadBus struct{}

func (deadBus) Tx(uint16, []byte, []byte) error { return sim.ErrNack }

// stuckPin ignores every level change.
type stuckPin struct{}

func (stuckPin) Set(bool) {}

func TestFaults(t *testing.T) {
	tests := map[string]struct {
		setup func(r *rig)
		cfg   firmware.Config
		code  status.Code
		err   error
	}{
		"bad die": {
			setup: func(r *rig) { r.board.PSRAM.ID.KGD = 0x55 },
			code:  status.PSRAM,
			err:   psram.ErrIdentity,
		},
		"no sensor": {
			setup: func(r *rig) { r.setBus(deadBus{}) },
			code:  status.UnknownSensor,
			err:   sim.ErrNack,
		},
		"other sensor": {
			setup: func(r *rig) { r.setBus(otherChip{r.board.Sensor}) },
			code:  status.UnknownSensor,
			err:   camera.ErrUnknownSensor,
		},
		"counter corrupt": {
			setup: func(r *rig) {
				r.board.FRAM.Mem[8] ^= 0xff
				r.board.FRAM.Mem[24] ^= 0xff
			},
			code: status.Counter,
			err:  firmware.ErrCounterCorrupt,
		},
		"frame too large": {
			setup: func(r *rig) {
				r.hw.Sensor = camera.New(mt9m001.New(r.board.Sensor),
					camera.Pins{
						Clock:   r.board.Sensor.Clock(),
						Standby: r.board.Sensor.Standby(),
						Trigger: r.board.Sensor.Trigger(),
					},
					r.board.Clock,
					camera.Config{Width: 1313, Height: 1048, Frequency: sensorHz})
			},
			code: status.Capture,
			err:  psram.ErrFrameSize,
		},
		"no trigger": {
			setup: func(r *rig) {
				s := r.board.Sensor
				r.hw.Sensor = camera.New(mt9m001.New(s),
					camera.Pins{Clock: s.Clock(), Standby: s.Standby(), Trigger: stuckPin{}},
					r.board.Clock,
					camera.Config{Width: width, Height: height, Frequency: sensorHz})
			},
			cfg:  firmware.Config{Shots: 1, Denominators: []uint32{10}, Gain: 1, Timeout: 20 * time.Millisecond, FileName: imagefs.ShotName},
			code: status.Capture,
			err:  dma.ErrTransfer,
		},
		"card full": {
			setup: func(r *rig) { r.hw.Images = failingCard{} },
			code:  status.ImageWrite,
			err:   errCardFull,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := newRig(t)
			tt.setup(r)
			cfg := tt.cfg
			if cfg.Shots == 0 {
				cfg = firmware.SingleShot
			}
			_, err := r.run(t, cfg)
			assert.Error(t, err)
			assert.Equal(t, tt.code, firmware.FaultCode(err))
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestCaptureFaultLeavesSensorAwake(t *testing.T) {
	r := newRig(t)
	s := r.board.Sensor
	r.hw.Sensor = camera.New(mt9m001.New(s),
		camera.Pins{Clock: s.Clock(), Standby: s.Standby(), Trigger: stuckPin{}},
		r.board.Clock,
		camera.Config{Width: width, Height: height, Frequency: sensorHz})
	cfg := firmware.SingleShot
	cfg.Timeout = 20 * time.Millisecond

	_, err := r.run(t, cfg)
	assert.Equal(t, status.Capture, firmware.FaultCode(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, s.Awake())
	assert.Equal(t, camera.Draining, r.hw.Sensor.State())
}
