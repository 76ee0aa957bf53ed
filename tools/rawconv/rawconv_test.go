package rawconv

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"golang.org/x/image/tiff"

	"github.com/monocap/monocap/frame"
)

func testFrame() []byte {
	const w, h = 5, 3
	img := frame.NewPacked(make([]uint32, frame.Words(w, h)), w, h)
	for y := range h {
		for x := range w {
			img.SetValue(x, y, uint16(x*200+y))
		}
	}
	return frame.Bytes(img.Pix)
}

func TestConvert(t *testing.T) {
	decoders := map[string]func(*bytes.Buffer) (image.Image, error){
		"png":  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		"tiff": func(b *bytes.Buffer) (image.Image, error) { return tiff.Decode(b) },
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, Convert(&buf, testFrame(), 5, 3, format))
			img, err := decode(&buf)
			assert.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 5, 3), img.Bounds())
			for y := range 3 {
				for x := range 5 {
					v := uint16(x*200 + y)
					want := color.Gray16{Y: v<<6 | v>>4}
					assert.Equal(t, want, color.Gray16Model.Convert(img.At(x, y)))
				}
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, errors.Is(Convert(&buf, testFrame(), 5, 3, "jpeg"), ErrFormat))
	assert.True(t, errors.Is(Convert(&buf, testFrame(), 7, 3, "png"), frame.ErrSize))
}
