package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/rp"
)

// ErrNack is returned by the sensor's bus when no device acknowledged the
// address, e.g. because the sensor has no clock.
var ErrNack = errors.New("i2c: no acknowledge")

// Horizontal blanking the sensor adds to the programmed value, in pixels.
const extraBlanking = 4

// Sensor models an MT9M001 in snapshot mode: its register file behind the
// two-wire interface, the standby and trigger inputs, the external clock and
// the parallel pixel bus.
type Sensor struct {
	// Scene is the image in front of the lens, 10 bit per pixel. It is only
	// sampled within the programmed window.
	Scene func(row, col int) uint16

	// Replay drives the pixel bus instead of the synthetic readout if set.
	Replay *Replay

	// Trace records every hardware interaction in order.
	Trace []string

	clock   *Clock
	tick    time.Duration
	strobe  uint8
	data    uint8
	regs    map[mt9m001.Reg]uint16
	ptr     mt9m001.Reg
	clkOn   bool
	standby bool
	trigger bool

	readout readout
}

type readout struct {
	exposure    int64 // ticks left until readout starts
	active      bool
	rows, cols  int
	blank       int
	row, col    int
	phase       int
	replayTicks int64
	gain        float64
	testData    bool
}

// NewSensor returns a powered sensor in standby with its registers at their
// defaults. The pixel bus drives the pixel valid strobe on GPIO strobe and
// the data bits on the GPIOs following dataBase. tick is the period of the
// system clock the bus is sampled with.
func NewSensor(clock *Clock, tick time.Duration, strobe, dataBase uint8) *Sensor {
	s := &Sensor{
		Scene:   Gradient,
		clock:   clock,
		tick:    tick,
		strobe:  strobe,
		data:    dataBase,
		standby: true,
	}
	s.reset()
	return s
}

// Gradient is the default scene.
func Gradient(row, col int) uint16 {
	return uint16(row*3+col) & 0x3ff
}

func (s *Sensor) reset() {
	s.regs = make(map[mt9m001.Reg]uint16)
	for _, r := range mt9m001.Registers() {
		s.regs[r] = r.Default()
	}
}

func (s *Sensor) trace(format string, args ...any) {
	s.Trace = append(s.Trace, fmt.Sprintf(format, args...))
}

// Reg returns the current value of register r.
func (s *Sensor) Reg(r mt9m001.Reg) uint16 {
	return s.regs[r]
}

// Awake reports whether the sensor responds to a trigger.
func (s *Sensor) Awake() bool {
	out := mt9m001.OutputControl(s.regs[mt9m001.RegOutputControl])
	en := mt9m001.ChipEnable(s.regs[mt9m001.RegChipEnable])
	return s.clkOn && !s.standby && out.ChipEnable() && en.ChipEnable()
}

// Tx implements drivers.I2C. The two-wire interface only answers with the
// clock running and standby released.
func (s *Sensor) Tx(addr uint16, w, r []byte) error {
	if addr != mt9m001.Addr || !s.clkOn || s.standby {
		return ErrNack
	}
	switch len(w) {
	case 0:
	case 1:
		s.ptr = mt9m001.Reg(w[0])
	case 3:
		s.ptr = mt9m001.Reg(w[0])
		s.write(s.ptr, uint16(w[1])<<8|uint16(w[2]))
	default:
		return fmt.Errorf("sim: unexpected %d byte write", len(w))
	}
	if len(r) > 0 {
		if len(r) != 2 {
			return fmt.Errorf("sim: unexpected %d byte read", len(r))
		}
		v := s.regs[s.ptr]
		r[0], r[1] = uint8(v>>8), uint8(v)
		s.trace("get %v", s.ptr)
	}
	return nil
}

func (s *Sensor) write(reg mt9m001.Reg, v uint16) {
	s.trace("set %v %#04x", reg, v)
	if _, ok := s.regs[reg]; !ok || reg == mt9m001.RegChipVersion {
		return
	}
	if reg == mt9m001.RegReset && v&1 != 0 {
		s.reset()
	}
	s.regs[reg] = v
}

type pinFunc func(high bool)

func (f pinFunc) Set(high bool) { f(high) }

func level(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

// Standby returns the standby input, active high.
func (s *Sensor) Standby() rp.Pin {
	return pinFunc(func(high bool) {
		s.trace("standby %s", level(high))
		s.standby = high
		if high {
			s.readout = readout{}
		}
	})
}

// Trigger returns the snapshot trigger input. A rising edge starts an
// exposure if the sensor is awake and in snapshot mode.
func (s *Sensor) Trigger() rp.Pin {
	return pinFunc(func(high bool) {
		s.trace("trigger %s", level(high))
		rising := high && !s.trigger
		s.trigger = high
		if rising {
			s.snapshot()
		}
	})
}

type clockOutput struct{ s *Sensor }

func (c clockOutput) Enable() {
	c.s.trace("clock on")
	c.s.clkOn = true
}

func (c clockOutput) Disable() {
	c.s.trace("clock off")
	c.s.clkOn = false
}

// Clock returns the sensor's clock input.
func (s *Sensor) Clock() rp.ClockOutput {
	return clockOutput{s}
}

func (s *Sensor) snapshot() {
	opts := mt9m001.ReadOptions1(s.regs[mt9m001.RegReadOptions1])
	if !s.Awake() || !opts.SnapshotMode() || s.readout.active {
		s.trace("trigger ignored")
		return
	}
	cols := int(s.regs[mt9m001.RegColumnSize]) + 1
	blank := int(s.regs[mt9m001.RegHorizontalBlanking]) + extraBlanking
	rowTicks := int64(cols+blank) * 4
	out := mt9m001.OutputControl(s.regs[mt9m001.RegOutputControl])
	s.readout = readout{
		exposure: int64(s.regs[mt9m001.RegShutterWidth]) * rowTicks,
		active:   true,
		rows:     int(s.regs[mt9m001.RegRowSize]) + 1,
		cols:     cols,
		blank:    blank,
		gain:     float64(camera.Gain(uint8(s.regs[mt9m001.RegGlobalGain]))),
		testData: out.UseTestData(),
	}
	if s.Replay != nil {
		s.Replay.Rewind()
	}
}

// exposing returns the ticks until the readout starts.
func (s *Sensor) exposing() int64 {
	if !s.readout.active {
		return 0
	}
	return s.readout.exposure
}

// skip advances through the exposure without driving the bus.
func (s *Sensor) skip(ticks int64) {
	s.readout.exposure -= ticks
	s.clock.Delay(time.Duration(ticks) * s.tick)
}

func (s *Sensor) pixel(row, col int) uint16 {
	if s.readout.testData {
		return uint16((row^col)&1) * 0x3ff
	}
	v := float64(s.Scene(row, col)) * s.readout.gain
	return uint16(min(v, 0x3ff))
}

// step advances the sensor by one tick and returns the levels of all GPIOs it
// drives.
func (s *Sensor) step() uint32 {
	ro := &s.readout
	if !ro.active || !s.clkOn {
		return 0
	}
	if ro.exposure > 0 {
		ro.exposure--
		return 0
	}
	if s.Replay != nil {
		strobe, data, ok := s.Replay.Sample(time.Duration(ro.replayTicks) * s.tick)
		ro.replayTicks++
		if !ok {
			ro.active = false
		}
		return s.bus(strobe, data)
	}

	var gpio uint32
	if ro.col < ro.cols {
		gpio = s.bus(ro.phase >= 2, s.pixel(ro.row, ro.col))
	}
	ro.phase++
	if ro.phase == 4 {
		ro.phase = 0
		ro.col++
		if ro.col == ro.cols+ro.blank {
			ro.col = 0
			ro.row++
			if ro.row == ro.rows {
				ro.active = false
			}
		}
	}
	return gpio
}

func (s *Sensor) bus(strobe bool, data uint16) uint32 {
	gpio := uint32(data&0x3ff) << s.data
	if strobe {
		gpio |= 1 << s.strobe
	}
	return gpio
}
