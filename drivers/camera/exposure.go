package camera

import (
	"fmt"

	"github.com/monocap/monocap/drivers/mt9m001"
)

// Global gain register codes. Up to 4x the gain is set in steps of 1/8,
// up to 8x in steps of 1/4 with the analog doubling bit set, and above that
// in steps of 1 with the digital gain bits. The register takes codes up to
// 0x7f, the datasheet only specifies up to 15x (0x67).
const minGainCode = 0x08

// GainCode returns the global gain register value closest below gain. Gains
// below 1 are raised to 1. Codes above 0x7f are rejected by the register, so
// capturing with a gain above 39 fails.
func GainCode(gain float32) uint8 {
	var code float32
	switch {
	case gain <= 4:
		code = 0x08 + (gain-1)/0.125
	case gain <= 8:
		code = 0x51 + (gain-4)/0.25
	default:
		code = 0x61 + max(gain-9, 0)
	}
	return uint8(min(max(code, minGainCode), 0xff))
}

// Gain returns the gain a global gain register code sets.
func Gain(code uint8) float32 {
	switch {
	case code < 0x40:
		return float32(code) / 8
	case code <= 0x60:
		return float32(code-0x40) / 4
	}
	return 8 + float32(code-0x60)
}

// ShutterWidth returns the shutter width register value exposing for num/den
// seconds on a sensor clocked at freq Hz, given its shutter delay, column size
// and horizontal blanking.
func ShutterWidth(num, den, freq uint32, delay, columns, hblank uint16) (uint16, error) {
	if den == 0 {
		return 0, fmt.Errorf("%w: exposure %d/0", mt9m001.ErrValueOutOfRange, num)
	}
	periods := uint64(num) * uint64(freq) / uint64(den)
	width := (periods + 180 + 4*uint64(delay)) / (uint64(columns) + uint64(hblank) + 226)
	if width > 0x3fff {
		return 0, fmt.Errorf("%w: exposure %d/%d needs shutter width %d",
			mt9m001.ErrValueOutOfRange, num, den, width)
	}
	return uint16(width), nil
}
