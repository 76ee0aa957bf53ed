// Package fram implements the FM25L16B 2 KiB ferroelectric RAM on a SPI bus.
// Writes complete at bus speed and need no page handling.
package fram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unsafe"

	"golang.org/x/exp/constraints"
	"tinygo.org/x/drivers"

	"github.com/monocap/monocap/rp"
)

const Size = 2048

const (
	cmdWREN  = 0x06
	cmdREAD  = 0x03
	cmdWRITE = 0x02
)

var ErrBus = errors.New("fram: bus transfer failed")

// Device is a FM25L16B. It implements io.ReaderAt and io.WriterAt.
type Device struct {
	bus drivers.SPI
	cs  rp.Pin
	hdr [3]byte
}

func New(bus drivers.SPI, cs rp.Pin) *Device {
	cs.Set(true)
	return &Device{bus: bus, cs: cs}
}

func (d *Device) selected(f func() error) error {
	d.cs.Set(false)
	err := f()
	d.cs.Set(true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBus, err)
	}
	return nil
}

func (d *Device) header(cmd byte, addr int64) []byte {
	d.hdr[0] = cmd
	binary.BigEndian.PutUint16(d.hdr[1:], uint16(addr))
	return d.hdr[:]
}

func (d *Device) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off >= Size {
		return 0, io.EOF
	}
	p = p[:min(len(p), int(Size-off))]
	err = d.selected(func() error {
		if err := d.bus.Tx(d.header(cmdREAD, off), nil); err != nil {
			return err
		}
		return d.bus.Tx(nil, p)
	})
	if err != nil {
		return 0, err
	}
	if off+int64(len(p)) == Size {
		return len(p), io.EOF
	}
	return len(p), nil
}

func (d *Device) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off+int64(len(p)) > Size {
		return 0, io.ErrShortWrite
	}
	err = d.selected(func() error {
		return d.bus.Tx([]byte{cmdWREN}, nil)
	})
	if err != nil {
		return 0, err
	}
	err = d.selected(func() error {
		if err := d.bus.Tx(d.header(cmdWRITE, off), nil); err != nil {
			return err
		}
		return d.bus.Tx(p, nil)
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read returns the integer stored at addr in the machine's byte order.
func Read[T constraints.Integer](d *Device, addr int64) (v T, err error) {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	n, err := d.ReadAt(buf, addr)
	if n == len(buf) {
		err = nil
	}
	return v, err
}

// Write stores v at addr in the machine's byte order.
func Write[T constraints.Integer](d *Device, addr int64, v T) error {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	_, err := d.WriteAt(buf, addr)
	return err
}
