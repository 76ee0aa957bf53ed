// Package machine describes the capture board: pin assignment, clocks and the
// fixed capture geometry. On target, Setup brings up the peripherals and
// returns them wired for the firmware.
package machine

import "github.com/monocap/monocap/drivers/camera"

// System clock in Hz.
const Sysclk = 150_000_000

// Sensor
const (
	PinTrigger  = 1
	PinSDA      = 2
	PinSCL      = 3
	PinStandby  = 4
	PinStrobe   = 5 // pixel valid, D0..D9 follow
	PinD0       = PinStrobe + 1
	PinClockOut = 21 // GPOUT0

	SensorFrequency = 5_800_000
	I2CFrequency    = 100_000
)

// Capture window in register units. Every row carries one pad pixel beyond
// the column size.
const (
	Width  = 1313
	Height = 1048
)

// Memory
const (
	PinPSRAMCS = 0 // XIP_CS1

	PinFRAMSDI = 16
	PinFRAMCS  = 17
	PinFRAMSCK = 18
	PinFRAMSDO = 19

	FRAMFrequency = 4_000_000
)

// SD card on SPI1.
const (
	PinSDSDI = 24
	PinSDCS  = 25
	PinSDSCK = 26
	PinSDSDO = 27

	SDFrequency = 24_000_000
)

const PinLED = 20

// Camera returns the sensor configuration of the board.
func Camera() camera.Config {
	return camera.Config{Width: Width, Height: Height, Frequency: SensorFrequency}
}
