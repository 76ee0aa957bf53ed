// Package psram brings up an APS6404L QSPI PSRAM on memory window 1 of the
// RP2350 memory interface and provides access to it once it is mapped.
package psram

import (
	"errors"
	"fmt"
	"time"

	"github.com/monocap/monocap/rp"
	"github.com/monocap/monocap/rp/qmi"
)

const (
	BaseAddr = 0x1100_0000
	Size     = 8 << 20

	// KnownGoodDie is the known good die byte of a part that passed the
	// manufacturer's test.
	KnownGoodDie = 0x5d

	MaxFreq = 133_000_000

	maxSelectNs   = 8000 // tCEM
	minDeselectNs = 18   // tCPH
	resetNs       = 100  // tRST is 50ns

	directClkDiv = 30
)

const (
	cmdEnterQuad   = 0x35
	cmdExitQuad    = 0xf5
	cmdReadID      = 0x9f
	cmdResetEnable = 0x66
	cmdReset       = 0x99
	cmdQuadRead    = 0xeb
	cmdQuadWrite   = 0x38
)

// Direct mode with chip select 1 released and asserted.
var (
	direct   = qmi.Config{Enable: true, ClkDiv: directClkDiv}
	selected = qmi.Config{Enable: true, ClkDiv: directClkDiv, Select: true}
)

var ErrIdentity = errors.New("psram: known good die check failed")

// ID is the identification returned by the READ ID command.
type ID struct {
	Manufacturer uint8
	KGD          uint8
	Density      uint8
}

func (id ID) Good() bool { return id.KGD == KnownGoodDie }

func (id ID) String() string {
	return fmt.Sprintf("MF %#02x KGD %#02x EID %#02x", id.Manufacturer, id.KGD, id.Density)
}

// ReadID reads the identification of the device. The device is left in SPI
// mode with the memory window disabled, Init must be called afterwards.
func ReadID(bus qmi.DirectBus) ID {
	ops := []qmi.Op{qmi.Configure(direct)}
	ops = append(ops, exitQuad()...)
	ops = append(ops, qmi.Configure(selected))
	for i := range 7 {
		b := byte(0)
		if i == 0 {
			b = cmdReadID
		}
		ops = append(ops, qmi.Transact(qmi.Byte(b)))
	}
	ops = append(ops, qmi.Configure(direct), qmi.Configure(qmi.Config{}))

	rx := qmi.Run(bus, rp.Spin, ops)
	rx = rx[len(rx)-3:]
	return ID{Manufacturer: uint8(rx[0]), KGD: uint8(rx[1]), Density: uint8(rx[2])}
}

// Init resets the device, switches it to QPI mode and maps it linearly at
// BaseAddr. sysclk is the system clock frequency in Hz.
func Init(bus qmi.DirectBus, delay rp.Delayer, sysclk uint32) {
	ops := []qmi.Op{qmi.Configure(direct)}
	ops = append(ops, exitQuad()...)
	ops = append(ops, command(qmi.Byte(cmdResetEnable))...)
	ops = append(ops, command(qmi.Byte(cmdReset))...)
	ops = append(ops, qmi.Wait(resetNs*time.Nanosecond, sysclk))
	ops = append(ops, command(qmi.Byte(cmdEnterQuad))...)
	ops = append(ops, qmi.SetWindow(WindowFor(sysclk)), qmi.Configure(qmi.Config{AutoSelect: true}))
	qmi.Run(bus, delay, ops)
}

// Setup checks the identification and initializes the device.
func Setup(bus qmi.DirectBus, delay rp.Delayer, sysclk uint32) (ID, error) {
	id := ReadID(bus)
	if !id.Good() {
		return id, fmt.Errorf("%w: %v", ErrIdentity, id)
	}
	Init(bus, delay, sysclk)
	return id, nil
}

// WindowFor returns the memory window configuration for running the device at
// the highest frequency below MaxFreq with system clock sysclk.
func WindowFor(sysclk uint32) qmi.Window {
	return qmi.Window{
		Timing: Timing(sysclk),
		Read: qmi.Format{
			Prefix: qmi.Quad, Addr: qmi.Quad, Suffix: qmi.Quad, Dummy: qmi.Quad, Data: qmi.Quad,
			PrefixLen: 8,
			DummyLen:  24,
		},
		ReadCmd: cmdQuadRead,
		Write: qmi.Format{
			Prefix: qmi.Quad, Addr: qmi.Quad, Suffix: qmi.Quad, Dummy: qmi.Quad, Data: qmi.Quad,
			PrefixLen: 8,
		},
		WriteCmd: cmdQuadWrite,
	}
}

// Timing converts the device limits to system clock cycles at sysclk Hz.
// Maximum durations are rounded down and minimum durations are rounded up
// with one cycle margin.
func Timing(sysclk uint32) qmi.Timing {
	clk := uint64(sysclk)
	clkdiv := (clk + MaxFreq - 1) / MaxFreq

	maxSelect := maxSelectNs * clk / 1e9 / 64
	minDeselect := (minDeselectNs*clk+1e9-1)/1e9 + 1

	return qmi.Timing{
		Cooldown:    1,
		PageBreak:   qmi.PageBreak1024,
		MaxSelect:   uint8(min(maxSelect, 0x3f)),
		MinDeselect: uint8(min(minDeselect, 0x1f)),
		RxDelay:     uint8(min(clkdiv, 0x7)),
		ClkDiv:      uint8(clkdiv),
	}
}

// exitQuad leaves QPI mode in case the device is still in it from before a
// warm reset. Devices in SPI mode ignore the command.
func exitQuad() []qmi.Op {
	return command(qmi.QuadByte(cmdExitQuad))
}

func command(cmd qmi.Command) []qmi.Op {
	return []qmi.Op{qmi.Configure(selected), qmi.Transact(cmd), qmi.Configure(direct)}
}
