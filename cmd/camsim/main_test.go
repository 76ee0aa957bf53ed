package main

import (
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"

	"github.com/monocap/monocap/drivers/fram"
	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/firmware"
	"github.com/monocap/monocap/machine"
)

func TestConfigure(t *testing.T) {
	cfg, err := configure(options{mode: "sweep", timeout: -1})
	assert.NoError(t, err)
	assert.Equal(t, firmware.Sweep.Shots, cfg.Shots)
	assert.Equal(t, firmware.Sweep.Timeout, cfg.Timeout)

	cfg, err = configure(options{
		mode:    "single-shot",
		shots:   3,
		gain:    2.5,
		dens:    "10, 1000",
		timeout: time.Second,
		test:    true,
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, cfg.Shots)
	assert.Equal(t, float32(2.5), cfg.Gain)
	assert.Equal(t, []uint32{10, 1000}, cfg.Denominators)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.True(t, cfg.TestPattern)
	assert.Equal(t, "IMG_007.RAW", cfg.FileName(7))

	_, err = configure(options{mode: "burst"})
	assert.Error(t, err)
	_, err = configure(options{mode: "sweep", dens: "10,0"})
	assert.Error(t, err)
}

func TestBoardConfig(t *testing.T) {
	cfg := boardConfig(psram.Size)
	assert.Equal(t, uint32(machine.Sysclk), cfg.Sysclk)
	assert.Equal(t, uint8(machine.PinStrobe), cfg.Strobe)
	assert.Equal(t, uint8(machine.PinD0), cfg.DataBase)
	assert.Equal(t, psram.Size, cfg.PSRAMSize)
	assert.Equal(t, fram.Size, cfg.FRAMSize)
}
