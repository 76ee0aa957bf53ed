package firmware

import (
	"time"

	"github.com/monocap/monocap/drivers/imagefs"
)

// Config is one deployment configuration of the firmware.
type Config struct {
	Name string

	// Shots is the number of frames taken per run. Shot i is exposed for
	// 1/Denominators[i%len(Denominators)] s.
	Shots        int
	Denominators []uint32
	Gain         float32

	// TestPattern reads out the sensor's test pattern instead of an image.
	TestPattern bool

	// Timeout bounds the wait for a frame, 0 waits forever.
	Timeout time.Duration

	// Flashes shown after each frame was stored.
	Flashes int

	// FileName returns the name of the image with counter value n.
	FileName func(n uint64) string
}

// SingleShot takes one frame at boot.
var SingleShot = Config{
	Name:         "single-shot",
	Shots:        1,
	Denominators: []uint32{10},
	Gain:         1,
	FileName:     imagefs.ShotName,
}

// Sweep takes a series of frames stepping through the exposure times.
var Sweep = Config{
	Name:         "sweep",
	Shots:        12,
	Denominators: []uint32{10, 20, 50, 100, 200, 500},
	Gain:         1,
	Timeout:      5 * time.Second,
	Flashes:      3,
	FileName:     imagefs.SweepName,
}

func (c *Config) denominator(shot int) uint32 {
	return c.Denominators[shot%len(c.Denominators)]
}

var configs = []*Config{&SingleShot, &Sweep}

// Lookup returns the configuration called name.
func Lookup(name string) (Config, bool) {
	for _, c := range configs {
		if c.Name == name {
			return *c, true
		}
	}
	return Config{}, false
}
