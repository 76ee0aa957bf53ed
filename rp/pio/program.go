// Package pio holds the capture program for the PIO and the state machine
// configuration it expects.
//
// The program samples the sensor's parallel pixel bus. It waits for a rising
// edge of the pixel valid strobe and shifts the data pins into the ISR. With
// autopush at three samples per word every push is one complete packed word,
// the first sample in the highest bits.
package pio

import "errors"

// Program is a PIO program with its wrap boundaries relative to its first
// instruction.
type Program struct {
	Instructions []uint16
	Origin       int8 // -1 for relocatable
	WrapTarget   uint8
	Wrap         uint8
}

// SamplesPerWord is the number of bus samples packed into one RX FIFO word.
const SamplesPerWord = 3

var ErrBusWidth = errors.New("pio: bus too wide to pack three samples per word")

// CaptureProgram returns the program sampling width data pins on every rising
// edge of GPIO strobe.
func CaptureProgram(strobe, width uint8) Program {
	return Program{
		Instructions: []uint16{
			Wait(false, WaitGPIO, strobe),
			Wait(true, WaitGPIO, strobe),
			In(SrcPins, width),
		},
		Origin:     -1,
		WrapTarget: 0,
		Wrap:       2,
	}
}

// Config is the state machine configuration.
type Config struct {
	PinBase  uint8 // first pin handed to the state machine
	PinCount uint8 // pins configured as inputs
	InBase   uint8

	ClkDivInt  uint16
	ClkDivFrac uint8

	ShiftRight    bool
	Autopush      bool
	PushThreshold uint8 // bits, 32 encoded as 0
	JoinRx        bool
}

// Capture returns the program and configuration for a bus of width data pins
// following directly after the strobe pin.
func Capture(strobe, width uint8) (Program, Config, error) {
	if width == 0 || int(width)*SamplesPerWord > 32 {
		return Program{}, Config{}, ErrBusWidth
	}
	p := CaptureProgram(strobe, width)
	cfg := Config{
		PinBase:       strobe,
		PinCount:      width + 1,
		InBase:        strobe + 1,
		ClkDivInt:     1,
		Autopush:      true,
		PushThreshold: width * SamplesPerWord,
		JoinRx:        true,
	}
	return p, cfg, nil
}

// StateMachine is a PIO state machine.
type StateMachine interface {
	// Configure loads p and applies cfg. The state machine is left disabled.
	Configure(p Program, cfg Config) error
	SetEnabled(enabled bool)
	ClearFIFOs()
	// Restart clears the shift counters and ISR and jumps to the program's
	// first instruction.
	Restart()
}

// Reset stops sm, drops anything left in its FIFOs and starts it again at its
// first instruction, as after Configure.
func Reset(sm StateMachine) {
	sm.SetEnabled(false)
	sm.ClearFIFOs()
	sm.Restart()
	sm.SetEnabled(true)
}
