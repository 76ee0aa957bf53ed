package frame

import (
	"image"
	"image/color"

	"github.com/monocap/monocap/rp/pio"
)

// Packed is a frame in its captured layout. It implements draw.Image with 16
// bit grayscale colors, hiding the pad column.
type Packed struct {
	Pix    []uint32
	Stride int // pixels per row
	Rect   image.Rectangle
}

// NewPacked returns a view of words as a frame with the given column and row
// size.
func NewPacked(words []uint32, width, height int) *Packed {
	return &Packed{
		Pix:    words,
		Stride: width + Pad,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func (p *Packed) ColorModel() color.Model { return color.Gray16Model }

func (p *Packed) Bounds() image.Rectangle {
	return p.Rect
}

// PixOffset returns the word holding the pixel at (x, y) and the shift of its
// bits within the word.
func (p *Packed) PixOffset(x, y int) (word int, shift uint) {
	i := (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
	slot := i % pio.SamplesPerWord
	return i / pio.SamplesPerWord, uint(pio.SamplesPerWord-1-slot) * bits
}

// Value returns the 10 bit sample at (x, y).
func (p *Packed) Value(x, y int) uint16 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	word, shift := p.PixOffset(x, y)
	return uint16(p.Pix[word]>>shift) & mask
}

// SetValue stores the 10 bit sample v at (x, y).
func (p *Packed) SetValue(x, y int, v uint16) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	word, shift := p.PixOffset(x, y)
	p.Pix[word] = p.Pix[word]&^(mask<<shift) | uint32(v&mask)<<shift
}

func (p *Packed) At(x, y int) color.Color {
	v := p.Value(x, y)
	return color.Gray16{Y: v<<6 | v>>4}
}

func (p *Packed) Set(x, y int, c color.Color) {
	g := color.Gray16Model.Convert(c).(color.Gray16)
	p.SetValue(x, y, g.Y>>6)
}

// Gray16 returns a copy of the frame for the image encoders.
func (p *Packed) Gray16() *image.Gray16 {
	img := image.NewGray16(p.Rect)
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			img.SetGray16(x, y, p.At(x, y).(color.Gray16))
		}
	}
	return img
}
