package firmware

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sigurn/crc8"

	"github.com/monocap/monocap/drivers/fram"
)

var ErrCounterCorrupt = errors.New("firmware: image counter corrupt")

// Counter record layout in FRAM. The primary record is at address 0, the
// mirror follows it. Each record is the counter in the machine's byte order
// followed by its checksum.
const (
	primaryAddr = 0
	mirrorAddr  = 16
	crcOffset   = 8
)

var counterCRC = crc8.MakeTable(crc8.CRC8)

// Counter is the persistent image counter. Values are never handed out
// twice, even across power loss. After a power loss during Next one value may
// be skipped.
type Counter struct {
	dev *fram.Device
}

func NewCounter(dev *fram.Device) *Counter {
	return &Counter{dev: dev}
}

func checksum(v uint64) uint8 {
	b := unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v))
	return crc8.Checksum(b, counterCRC)
}

func (c *Counter) load(addr int64) (v uint64, ok bool, err error) {
	v, err = fram.Read[uint64](c.dev, addr)
	if err != nil {
		return 0, false, err
	}
	sum, err := fram.Read[uint8](c.dev, addr+crcOffset)
	if err != nil {
		return 0, false, err
	}
	return v, sum == checksum(v), nil
}

func (c *Counter) store(addr int64, v uint64) error {
	if err := fram.Write(c.dev, addr, v); err != nil {
		return err
	}
	return fram.Write(c.dev, addr+crcOffset, checksum(v))
}

// Peek returns the value the next call to Next will return.
func (c *Counter) Peek() (uint64, error) {
	primary, ok, err := c.load(primaryAddr)
	if err != nil {
		return 0, err
	}
	if ok {
		return primary, nil
	}
	mirror, ok, err := c.load(mirrorAddr)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrCounterCorrupt
	}
	// The primary record was torn while being advanced past the mirror.
	return mirror + 1, nil
}

// Next returns the current counter value and advances the counter. Both
// records are brought up to the current value first, so that one of them is
// intact at any point a write can be torn.
func (c *Counter) Next() (uint64, error) {
	n, err := c.Peek()
	if err != nil {
		return 0, fmt.Errorf("counter: %w", err)
	}
	for _, addr := range []int64{primaryAddr, mirrorAddr} {
		v, ok, err := c.load(addr)
		if err != nil {
			return 0, fmt.Errorf("counter: %w", err)
		}
		if ok && v == n {
			continue
		}
		if err := c.store(addr, n); err != nil {
			return 0, fmt.Errorf("counter: %w", err)
		}
	}
	for _, addr := range []int64{primaryAddr, mirrorAddr} {
		if err := c.store(addr, n+1); err != nil {
			return 0, fmt.Errorf("counter: %w", err)
		}
	}
	return n, nil
}
