// Package frame describes the raw frames captured from the sensor: pixels
// of 10 bit packed three to a 32 bit word, the first pixel in the highest
// bits, each row one pixel wider than the programmed column size.
package frame

import (
	"encoding/binary"
	"errors"
	"unsafe"

	"github.com/monocap/monocap/rp/pio"
)

// Pad is the number of pixels the sensor reads out beyond the column size.
const Pad = 1

const (
	bits = 10
	mask = 1<<bits - 1
)

var ErrSize = errors.New("frame: payload size doesn't match geometry")

// Words returns the length in words of a frame with the given column and row
// size.
func Words(width, height int) int {
	return ((width+Pad)*height + pio.SamplesPerWord - 1) / pio.SamplesPerWord
}

// Bytes returns the raw payload of words without copying. All supported
// targets are little endian, so the words appear least significant byte
// first.
func Bytes(words []uint32) []byte {
	if len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*4)
}

// Unpack returns the frame stored in a raw payload.
func Unpack(payload []byte, width, height int) (*Packed, error) {
	n := Words(width, height)
	if len(payload) != n*4 {
		return nil, ErrSize
	}
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(payload[i*4:])
	}
	return NewPacked(words, width, height), nil
}
