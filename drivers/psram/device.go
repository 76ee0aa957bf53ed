package psram

import (
	"errors"
	"io"

	"github.com/monocap/monocap/rp"
)

// Device implements io.ReaderAt and io.WriterAt on the mapped memory. Frames
// captured by DMA are taken from it as word slices with Frame.
//
// Device is not safe for concurrent use. The capture pipeline owns it
// exclusively while a frame is in flight.
type Device struct {
	words []uint32
}

// NewDevice returns a device on the mapped word memory words.
func NewDevice(words []uint32) *Device {
	return &Device{words: words}
}

var (
	ErrOutOfRange = errors.New("psram: offset out of range")
	ErrFrameSize  = errors.New("psram: frame exceeds memory size")
)

func (v *Device) Size() int {
	return len(v.words) * 4
}

// Frame returns the first n words of memory.
func (v *Device) Frame(n int) ([]uint32, error) {
	if n > len(v.words) {
		return nil, ErrFrameSize
	}
	return v.words[:n:n], nil
}

func (v *Device) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off > int64(v.Size()) {
		return 0, ErrOutOfRange
	}
	left := v.Size() - int(off)
	if len(p) >= left {
		p = p[:left]
		err = io.EOF
	}

	rp.ReadWords(v.words, int(off), p)
	return len(p), err
}

func (v *Device) WriteAt(p []byte, off int64) (n int, err error) {
	if off < 0 || off > int64(v.Size()) {
		return 0, ErrOutOfRange
	}
	left := v.Size() - int(off)
	if len(p) > left {
		p = p[:left]
		err = io.ErrShortWrite
	}

	rp.WriteWords(v.words, int(off), p)
	return len(p), err
}
