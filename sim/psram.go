package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/rp/qmi"
)

const psramResetTime = 50 * time.Nanosecond

var ErrNotMapped = errors.New("psram not mapped")

// PSRAM models an APS6404L on memory window 1 of the memory interface. It
// implements qmi.DirectBus.
type PSRAM struct {
	ID     psram.ID
	Sysclk uint32

	clock *Clock
	words []uint32

	csr      qmi.Config
	window   *qmi.Window
	quad     bool
	resetEn  bool
	resetAt  time.Duration
	tx       []qmi.Command
	Commands []uint8 // commands the device accepted, in order
}

// NewPSRAM returns a device of size bytes in SPI mode, as after power on.
func NewPSRAM(clock *Clock, sysclk uint32, size int) *PSRAM {
	return &PSRAM{
		ID:      psram.ID{Manufacturer: 0x0d, KGD: psram.KnownGoodDie, Density: 0x40},
		Sysclk:  sysclk,
		clock:   clock,
		words:   make([]uint32, size/4),
		resetAt: -time.Hour,
	}
}

// SetQuad forces the device into QPI mode, as left behind by a previous boot.
func (m *PSRAM) SetQuad(quad bool) { m.quad = quad }

func (m *PSRAM) Quad() bool { return m.quad }

func (m *PSRAM) Configure(cfg qmi.Config) {
	if m.csr.Select && !cfg.Select {
		m.deselect()
	}
	m.csr = cfg
}

func (m *PSRAM) Transact(cmd qmi.Command) uint32 {
	if !m.csr.Enable {
		panic("psram: direct mode transfer with direct mode disabled")
	}
	if !m.csr.Select {
		return 0
	}
	m.tx = append(m.tx, cmd)
	if len(m.tx) > 1 && m.tx[0] == qmi.Byte(0x9f) && !m.quad {
		switch len(m.tx) {
		case 5:
			return uint32(m.ID.Manufacturer)
		case 6:
			return uint32(m.ID.KGD)
		case 7:
			return uint32(m.ID.Density)
		}
	}
	return 0xff
}

func (m *PSRAM) SetWindow(w qmi.Window) {
	m.window = &w
}

func (m *PSRAM) deselect() {
	tx := m.tx
	m.tx = m.tx[:0]
	if len(tx) == 0 {
		return
	}
	if m.clock.Now()-m.resetAt < psramResetTime {
		return // still in reset
	}

	first := tx[0]
	width := qmi.Single
	if m.quad {
		width = qmi.Quad
	}
	if first.Width != width || first.Wide {
		return
	}
	cmd := uint8(first.Data)
	resetEn := m.resetEn
	m.resetEn = false

	switch {
	case cmd == 0x66:
		m.resetEn = true
	case cmd == 0x99 && resetEn:
		m.quad = false
		m.resetAt = m.clock.Now()
	case cmd == 0x35 && !m.quad:
		m.quad = true
	case cmd == 0xf5 && m.quad:
		m.quad = false
	case cmd == 0x9f && !m.quad:
	default:
		return
	}
	m.Commands = append(m.Commands, cmd)
}

// Mapped returns an error if window 1 is not in a state in which ordinary
// loads and stores reach the device correctly.
func (m *PSRAM) Mapped() error {
	switch {
	case m.csr.Enable:
		return fmt.Errorf("%w: direct mode enabled", ErrNotMapped)
	case !m.csr.AutoSelect:
		return fmt.Errorf("%w: chip select not automatic", ErrNotMapped)
	case !m.quad:
		return fmt.Errorf("%w: device in SPI mode", ErrNotMapped)
	case m.window == nil:
		return fmt.Errorf("%w: window not configured", ErrNotMapped)
	}

	w := m.window
	quad := qmi.Format{Prefix: qmi.Quad, Addr: qmi.Quad, Suffix: qmi.Quad, Dummy: qmi.Quad, Data: qmi.Quad, PrefixLen: 8}
	read := quad
	read.DummyLen = 24
	switch {
	case w.ReadCmd != 0xeb || w.Read != read:
		return fmt.Errorf("%w: bad read format", ErrNotMapped)
	case w.WriteCmd != 0x38 || w.Write != quad:
		return fmt.Errorf("%w: bad write format", ErrNotMapped)
	}

	t := w.Timing
	if t.ClkDiv == 0 || m.Sysclk/uint32(t.ClkDiv) > psram.MaxFreq {
		return fmt.Errorf("%w: clock too fast", ErrNotMapped)
	}
	periodNs := 1e9 / float64(m.Sysclk)
	if float64(t.MaxSelect)*64*periodNs > 8000 {
		return fmt.Errorf("%w: chip select low too long", ErrNotMapped)
	}
	if float64(t.MinDeselect)*periodNs < 18 {
		return fmt.Errorf("%w: chip select high too short", ErrNotMapped)
	}
	return nil
}

// Map returns the mapped device once Mapped reports no error.
func (m *PSRAM) Map() (*psram.Device, error) {
	if err := m.Mapped(); err != nil {
		return nil, err
	}
	return psram.NewDevice(m.words), nil
}
