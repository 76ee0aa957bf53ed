package frame_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/monocap/monocap/frame"
)

func TestWords(t *testing.T) {
	tests := map[string]struct {
		width, height, words int
	}{
		"full frame": {1313, 1048, 459024},
		"exact":      {2, 1, 1},
		"rounded up": {3, 1, 2},
		"small":      {15, 4, 22},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.words, frame.Words(tc.width, tc.height))
		})
	}
}

func TestLayout(t *testing.T) {
	p := frame.NewPacked(make([]uint32, frame.Words(5, 1)), 5, 1)
	for x, v := range []uint16{0x3ff, 0x001, 0x200, 0x155, 0x2aa} {
		p.SetValue(x, 0, v)
	}
	assert.Equal(t, uint32(0x3ff<<20|0x001<<10|0x200), p.Pix[0])
	// The pad pixel is the third sample of the second word.
	assert.Equal(t, uint32(0x155<<20|0x2aa<<10), p.Pix[1])

	b := frame.Bytes(p.Pix)
	assert.Len(t, b, 8)
	assert.Equal(t, []byte{0x00, 0x06, 0xf0, 0x3f}, b[:4])
}

func TestUnpack(t *testing.T) {
	const width, height = 7, 3
	words := make([]uint32, frame.Words(width, height))
	src := frame.NewPacked(words, width, height)
	for y := range height {
		for x := range width {
			src.SetValue(x, y, uint16(y*100+x))
		}
	}

	p, err := frame.Unpack(frame.Bytes(words), width, height)
	assert.NoError(t, err)
	for y := range height {
		for x := range width {
			assert.Equal(t, uint16(y*100+x), p.Value(x, y))
		}
	}
	assert.Equal(t, uint16(0), p.Value(width, 0))

	_, err = frame.Unpack(frame.Bytes(words)[1:], width, height)
	assert.True(t, errors.Is(err, frame.ErrSize))
}

func TestGray16(t *testing.T) {
	p := frame.NewPacked(make([]uint32, 1), 2, 1)
	p.Set(0, 0, color.Gray16{Y: 0xffff})
	p.Set(1, 0, color.Gray16{Y: 0x8000})
	img := p.Gray16()
	assert.Equal(t, color.Gray16{Y: 0xffff}, img.Gray16At(0, 0))
	assert.Equal(t, uint16(0x200), p.Value(1, 0))
	assert.Equal(t, color.Gray16{Y: 0x8020}, img.Gray16At(1, 0))
}
