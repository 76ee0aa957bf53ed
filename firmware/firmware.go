// Package firmware is the capture application: it brings up the PSRAM,
// checks and initializes the sensor and then takes the configured series of
// frames, storing each one under a name derived from the persistent image
// counter.
//
// Any failure ends the run with a Fault carrying the blink code for the stage
// that failed. Nothing is retried.
package firmware

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/imagefs"
	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/drivers/status"
	"github.com/monocap/monocap/frame"
	"github.com/monocap/monocap/rp"
	"github.com/monocap/monocap/rp/dma"
	"github.com/monocap/monocap/rp/pio"
	"github.com/monocap/monocap/rp/qmi"
)

// PSRAM power up time after the supply is stable.
const psramPowerUp = 300 * time.Microsecond

// Width of the sensor's pixel data bus.
const busWidth = 10

// Hardware is the board as seen by the application.
type Hardware struct {
	QMI    qmi.DirectBus
	Sysclk uint32
	Delay  rp.Delayer

	// Map makes the initialized PSRAM accessible as memory.
	Map func() (*psram.Device, error)

	Sensor  *camera.Sensor
	Strobe  uint8 // GPIO of the pixel valid strobe, D0 follows
	SM      pio.StateMachine
	Stream  *dma.Stream
	Counter *Counter
	Images  imagefs.Writer
	LED     *status.LED
}

// Run executes cfg on hw. It returns the names of the stored images.
func Run(ctx context.Context, cfg Config, hw *Hardware, logger *log.Logger) ([]string, error) {
	logger.Info("starting", log.String("config", cfg.Name))

	hw.Delay.Delay(psramPowerUp)
	id, err := psram.Setup(hw.QMI, hw.Delay, hw.Sysclk)
	if err != nil {
		return nil, fault(status.PSRAM, err)
	}
	mem, err := hw.Map()
	if err != nil {
		return nil, fault(status.PSRAM, err)
	}
	logger.Debug("psram ready", log.Stringer("id", id), log.Int("size", mem.Size()))

	known, err := hw.Sensor.IsKnownSensor()
	if err != nil {
		return nil, fault(status.UnknownSensor, err)
	}
	if !known {
		return nil, fault(status.UnknownSensor, camera.ErrUnknownSensor)
	}
	if err := hw.Sensor.Init(); err != nil {
		return nil, fault(status.SensorInit, err)
	}
	prog, smcfg, err := pio.Capture(hw.Strobe, busWidth)
	if err != nil {
		return nil, fault(status.Capture, err)
	}
	if err := hw.SM.Configure(prog, smcfg); err != nil {
		return nil, fault(status.Capture, err)
	}
	geometry := hw.Sensor.Config()
	words := frame.Words(int(geometry.Width), int(geometry.Height))
	buf, err := mem.Frame(words)
	if err != nil {
		return nil, fault(status.Capture, err)
	}
	logger.Debug("sensor ready",
		log.Int("width", int(geometry.Width)),
		log.Int("height", int(geometry.Height)),
		log.Int("words", words))

	var names []string
	for shot := range cfg.Shots {
		n, err := hw.Counter.Next()
		if err != nil {
			return names, fault(status.Counter, err)
		}
		name := cfg.FileName(n)

		den := cfg.denominator(shot)
		hw.Sensor.SetShutterSpeed(1, den)
		hw.Sensor.SetGain(cfg.Gain)
		hw.Sensor.SetTestPattern(cfg.TestPattern)

		hw.LED.Set(true)
		err = capture(ctx, cfg.Timeout, hw, buf)
		hw.LED.Set(false)
		if err != nil {
			return names, fault(status.Capture, fmt.Errorf("%s: %w", name, err))
		}

		if err := hw.Images.WriteImage(name, frame.Bytes(buf)); err != nil {
			return names, fault(status.ImageWrite, err)
		}
		names = append(names, name)
		hw.LED.Flash(cfg.Flashes)
		logger.Info("stored image",
			log.String("name", name),
			log.Int("shot", shot+1),
			log.String("exposure", fmt.Sprintf("1/%d", den)))
	}
	return names, nil
}

func capture(ctx context.Context, timeout time.Duration, hw *Hardware, buf []uint32) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return hw.Sensor.Capture(ctx, hw.SM, hw.Stream, buf)
}
