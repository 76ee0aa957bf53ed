// Package mt9m001 implements the two-wire register interface of the Aptina
// MT9M001 monochrome CMOS sensor.
//
// All registers are 16 bit wide and transferred most significant byte first.
// Writes are checked against the register's legal values before anything is
// sent to the sensor. There is no local copy of the register set, every access
// goes to the bus.
package mt9m001

//go:generate go run mkregs.go mt9m001.json regs.go

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"tinygo.org/x/drivers"
)

// Addr is the sensor's 7 bit bus address.
const Addr = 0x5d

// ChipVersionMT9M001 is the value of RegChipVersion on a MT9M001C12STM.
const ChipVersionMT9M001 = 0x8431

var (
	ErrBus             = errors.New("mt9m001: bus transfer failed")
	ErrValueOutOfRange = errors.New("mt9m001: value out of range")
	ErrReadOnly        = errors.New("mt9m001: register is read-only")
	ErrUnknownRegister = errors.New("mt9m001: unknown register")
)

// Reg is a register address.
type Reg uint8

func (r Reg) String() string {
	if reg, ok := catalog[r]; ok {
		return reg.name
	}
	return fmt.Sprintf("Reg(%#02x)", uint8(r))
}

// Registers returns all register addresses in ascending order.
func Registers() []Reg {
	return slices.Sorted(maps.Keys(catalog))
}

// Default returns the register's value after reset.
func (r Reg) Default() uint16 {
	return catalog[r].def
}

type parity uint8

const (
	parityAny parity = iota
	parityEven
	parityOdd
)

type register struct {
	name     string
	def      uint16
	writable uint16 // bits that can take any value
	fixed    uint16 // values of the remaining bits
	min      uint16
	parity   parity
	readOnly bool
}

// Valid reports whether v is a legal value for the register.
func (r *register) valid(v uint16) bool {
	switch {
	case v&^r.writable != r.fixed:
		return false
	case v < r.min:
		return false
	case r.parity == parityEven && v&1 != 0:
		return false
	case r.parity == parityOdd && v&1 == 0:
		return false
	}
	return true
}

// Check returns an error wrapping ErrValueOutOfRange if v can't be written to
// reg. It doesn't access the bus.
func Check(reg Reg, v uint16) error {
	r, ok := catalog[reg]
	switch {
	case !ok:
		return fmt.Errorf("%w: %#02x", ErrUnknownRegister, uint8(reg))
	case r.readOnly:
		return fmt.Errorf("%w: %v", ErrReadOnly, reg)
	case !r.valid(v):
		return fmt.Errorf("%w: %v = %#04x", ErrValueOutOfRange, reg, v)
	}
	return nil
}

func setBit[T ~uint16](v T, bit uint, b bool) T {
	if b {
		return v | 1<<bit
	}
	return v &^ (1 << bit)
}

// Device is a sensor on a two-wire bus.
type Device struct {
	bus drivers.I2C
	buf [3]byte
}

func New(bus drivers.I2C) *Device {
	return &Device{bus: bus}
}

// Get reads the register reg.
func (d *Device) Get(reg Reg) (uint16, error) {
	if _, ok := catalog[reg]; !ok {
		return 0, fmt.Errorf("%w: %#02x", ErrUnknownRegister, uint8(reg))
	}
	d.buf[0] = uint8(reg)
	if err := d.bus.Tx(Addr, d.buf[:1], nil); err != nil {
		return 0, fmt.Errorf("%w: select %v: %w", ErrBus, reg, err)
	}
	if err := d.bus.Tx(Addr, nil, d.buf[1:3]); err != nil {
		return 0, fmt.Errorf("%w: read %v: %w", ErrBus, reg, err)
	}
	return uint16(d.buf[1])<<8 | uint16(d.buf[2]), nil
}

// Set writes v to the register reg. Illegal values are rejected without
// accessing the bus.
func (d *Device) Set(reg Reg, v uint16) error {
	if err := Check(reg, v); err != nil {
		return err
	}
	d.buf = [3]byte{uint8(reg), uint8(v >> 8), uint8(v)}
	if err := d.bus.Tx(Addr, d.buf[:], nil); err != nil {
		return fmt.Errorf("%w: write %v: %w", ErrBus, reg, err)
	}
	return nil
}
