//go:build tinygo && rp2350

// Command monocap is the capture firmware. It runs the configuration selected
// at link time and then shows the outcome on the status LED forever:
//
//	tinygo flash -target pico2 -ldflags "-X main.mode=sweep" ./cmd/monocap
package main

import (
	"context"

	"github.com/retroenv/retrogolib/log"

	"github.com/monocap/monocap/debug"
	"github.com/monocap/monocap/firmware"
	"github.com/monocap/monocap/machine"
)

var mode = firmware.SingleShot.Name

func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if debug.Enabled {
		cfg.Level = log.DebugLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	logger := newLogger()
	led := machine.LED()

	cfg, ok := firmware.Lookup(mode)
	if !ok {
		panic("unknown configuration " + mode)
	}

	hw, err := machine.Setup(led)
	if err == nil {
		_, err = firmware.Run(context.Background(), cfg, hw, logger)
	}
	if err != nil {
		logger.Error("capture failed", log.Err(err))
		led.Halt(firmware.FaultCode(err))
	}
	logger.Info("done")
	led.Done()
}
