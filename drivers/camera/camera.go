// Package camera drives one capture cycle of an MT9M001 in snapshot mode.
//
// The sensor is kept in standby with its clock stopped between operations.
// Every public operation wakes it, does its register work and puts it back
// to sleep, with one exception: a failing Capture returns right away and
// leaves the sensor awake. Callers treat that as fatal.
package camera

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/rp"
	"github.com/monocap/monocap/rp/dma"
	"github.com/monocap/monocap/rp/pio"
)

var ErrUnknownSensor = errors.New("camera: unknown sensor")

// Settling time after changing the chip enable bit.
const settle = time.Millisecond

// Fixed correction of the even row, odd column analog offset. Calibrated on
// the prototype, the other three phases stay at their defaults.
const analogOffset = 2

// Config is the fixed capture geometry and the frequency of the clock fed to
// the sensor.
type Config struct {
	Width     uint16 // column size register, odd
	Height    uint16 // row size register
	Frequency uint32 // Hz
}

// Pins are the sensor's control signals.
type Pins struct {
	Clock   rp.ClockOutput
	Standby rp.Pin // active high
	Trigger rp.Pin
}

type State uint8

const (
	Asleep State = iota
	Waking
	Configuring
	Armed
	Capturing
	Draining
	Sleeping
)

func (s State) String() string {
	switch s {
	case Asleep:
		return "asleep"
	case Waking:
		return "waking"
	case Configuring:
		return "configuring"
	case Armed:
		return "armed"
	case Capturing:
		return "capturing"
	case Draining:
		return "draining"
	case Sleeping:
		return "sleeping"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Sensor controls the sensor and owns its bus, the state machine and the
// stream while capturing.
type Sensor struct {
	dev   *mt9m001.Device
	pins  Pins
	delay rp.Delayer
	cfg   Config
	state State

	num, den uint32
	gain     float32
	testData bool
}

func New(dev *mt9m001.Device, pins Pins, delay rp.Delayer, cfg Config) *Sensor {
	return &Sensor{
		dev:   dev,
		pins:  pins,
		delay: delay,
		cfg:   cfg,
		num:   1,
		den:   10,
		gain:  1,
	}
}

func (s *Sensor) State() State { return s.state }

func (s *Sensor) Config() Config { return s.cfg }

func (s *Sensor) wake() error {
	s.state = Waking
	s.pins.Clock.Enable()
	s.pins.Standby.Set(false)
	out := mt9m001.OutputControlDefault.SetChipEnable(true).SetUseTestData(s.testData)
	if err := s.dev.SetOutputControl(out); err != nil {
		return err
	}
	s.delay.Delay(settle)
	return nil
}

func (s *Sensor) sleep() error {
	s.state = Sleeping
	out := mt9m001.OutputControlDefault.SetChipEnable(false)
	if err := s.dev.SetOutputControl(out); err != nil {
		return err
	}
	s.delay.Delay(settle)
	s.pins.Standby.Set(true)
	s.pins.Clock.Disable()
	s.state = Asleep
	return nil
}

// awake runs f with the sensor woken up and puts it back to sleep afterwards,
// also if f failed.
func (s *Sensor) awake(f func() error) error {
	err := s.wake()
	if err == nil {
		err = f()
	}
	return errors.Join(err, s.sleep())
}

// IsKnownSensor reports whether the chip version identifies a MT9M001.
func (s *Sensor) IsKnownSensor() (bool, error) {
	var version uint16
	err := s.awake(func() (err error) {
		version, err = s.dev.ChipVersion()
		return err
	})
	if err != nil {
		return false, err
	}
	return version == mt9m001.ChipVersionMT9M001, nil
}

// Init resets the sensor into snapshot mode with the configured window at the
// sensor's origin and no blanking. It stops at the first failing register
// write.
func (s *Sensor) Init() error {
	return s.awake(func() error {
		s.state = Configuring
		steps := []func() error{
			func() error { return s.dev.SetReset(1) },
			func() error { return s.dev.SetReset(0) },
			func() error {
				return s.dev.SetReadOptions1(mt9m001.ReadOptions1Default.SetSnapshotMode(true))
			},
			func() error {
				return s.dev.SetCalCtrl(mt9m001.CalCtrlDefault.SetManualBlackLevelOverride(true))
			},
			func() error { return s.dev.SetColumnStart(0) },
			func() error { return s.dev.SetColumnSize(s.cfg.Width) },
			func() error { return s.dev.SetRowStart(0) },
			func() error { return s.dev.SetRowSize(s.cfg.Height) },
			func() error { return s.dev.SetHorizontalBlanking(0) },
			func() error { return s.dev.SetVerticalBlanking(0) },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetShutterSpeed sets the exposure time of the following captures to
// num/den seconds.
func (s *Sensor) SetShutterSpeed(num, den uint32) {
	s.num, s.den = num, den
}

// SetGain sets the analog gain of the following captures, at least 1.
func (s *Sensor) SetGain(gain float32) {
	s.gain = gain
}

// SetTestPattern makes the following captures read out the sensor's test
// pattern instead of the pixel array.
func (s *Sensor) SetTestPattern(on bool) {
	s.testData = on
}

// Capture exposes one frame and moves it through sm and stream into dst,
// which must hold exactly the words the sensor's window produces.
//
// On error the sensor may be left awake.
func (s *Sensor) Capture(ctx context.Context, sm pio.StateMachine, stream *dma.Stream, dst []uint32) error {
	if err := s.wake(); err != nil {
		return err
	}

	s.state = Configuring
	pio.Reset(sm)
	if err := s.dev.SetGlobalGain(uint16(GainCode(s.gain))); err != nil {
		return err
	}
	if err := s.dev.SetEvenRowOddColumnAnalogOffset(analogOffset); err != nil {
		return err
	}
	delay, err := s.dev.ShutterDelay()
	if err != nil {
		return err
	}
	columns, err := s.dev.ColumnSize()
	if err != nil {
		return err
	}
	hblank, err := s.dev.HorizontalBlanking()
	if err != nil {
		return err
	}
	width, err := ShutterWidth(s.num, s.den, s.cfg.Frequency, delay, columns, hblank)
	if err != nil {
		return err
	}
	if err := s.dev.SetShutterWidth(width); err != nil {
		return err
	}

	s.state = Armed
	transfer, err := stream.Arm(dst)
	if err != nil {
		return err
	}

	s.state = Capturing
	s.pins.Trigger.Set(true)
	s.pins.Trigger.Set(false)

	s.state = Draining
	if err := transfer.Wait(ctx); err != nil {
		return err
	}
	sm.SetEnabled(false)

	return s.sleep()
}

// Width returns the column size the sensor is programmed with.
func (s *Sensor) Width() (v uint16, err error) {
	err = s.awake(func() error {
		v, err = s.dev.ColumnSize()
		return err
	})
	return v, err
}

// Height returns the row size the sensor is programmed with.
func (s *Sensor) Height() (v uint16, err error) {
	err = s.awake(func() error {
		v, err = s.dev.RowSize()
		return err
	})
	return v, err
}
