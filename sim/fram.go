package sim

import (
	"errors"

	"github.com/monocap/monocap/rp"
)

var ErrPowerLoss = errors.New("sim: power lost")

const (
	framWREN  = 0x06
	framWRDI  = 0x04
	framRDSR  = 0x05
	framREAD  = 0x03
	framWRITE = 0x02
)

// FRAM models an FM25L16B on a SPI bus. It implements drivers.SPI, the chip
// select is returned by CS.
type FRAM struct {
	Mem []byte

	selected bool
	wel      bool
	pos      int
	op       byte
	addr     int

	budget int // bytes to write before power fails, <0 for unlimited
	failed bool
}

// NewFRAM returns a blank part of size bytes.
func NewFRAM(size int) *FRAM {
	return &FRAM{Mem: make([]byte, size), budget: -1}
}

// CutPowerAfter makes the device lose power after n more bytes were written to
// the array. All transfers fail afterwards until PowerOn is called.
func (f *FRAM) CutPowerAfter(n int) {
	f.budget = n
}

// PowerOn restores power. The memory array keeps its contents.
func (f *FRAM) PowerOn() {
	f.budget, f.failed = -1, false
	f.selected, f.wel = false, false
}

// CS returns the active low chip select.
func (f *FRAM) CS() rp.Pin {
	return pinFunc(func(high bool) {
		if high && f.selected && f.op == framWRITE {
			f.wel = false
		}
		f.selected = !high
		f.pos = 0
	})
}

func (f *FRAM) Tx(w, r []byte) error {
	n := max(len(w), len(r))
	for i := range n {
		var b byte
		if w != nil {
			b = w[i]
		}
		out, err := f.Transfer(b)
		if err != nil {
			return err
		}
		if r != nil {
			r[i] = out
		}
	}
	return nil
}

func (f *FRAM) Transfer(b byte) (byte, error) {
	if f.failed {
		return 0, ErrPowerLoss
	}
	if !f.selected {
		return 0xff, nil
	}
	pos := f.pos
	f.pos++
	if pos == 0 {
		f.op = b
		switch b {
		case framWREN:
			f.wel = true
		case framWRDI:
			f.wel = false
		}
		return 0, nil
	}
	switch f.op {
	case framRDSR:
		if f.wel {
			return 0x02, nil
		}
		return 0, nil
	case framREAD, framWRITE:
		switch pos {
		case 1:
			f.addr = int(b) << 8
			return 0, nil
		case 2:
			f.addr = (f.addr | int(b)) & (len(f.Mem) - 1)
			return 0, nil
		}
	default:
		return 0, nil
	}

	if f.op == framREAD {
		v := f.Mem[f.addr]
		f.addr = (f.addr + 1) & (len(f.Mem) - 1)
		return v, nil
	}
	if !f.wel {
		return 0, nil
	}
	if f.budget == 0 {
		f.failed = true
		return 0, ErrPowerLoss
	}
	if f.budget > 0 {
		f.budget--
	}
	f.Mem[f.addr] = b
	f.addr = (f.addr + 1) & (len(f.Mem) - 1)
	return 0, nil
}
