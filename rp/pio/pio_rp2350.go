//go:build tinygo && rp2350

package pio

import (
	"machine"
	"unsafe"

	rppio "github.com/tinygo-org/pio/rp2-pio"
)

// Hardware is a state machine of PIO0 or PIO1.
type Hardware struct {
	sm     rppio.StateMachine
	offset uint8
}

// Claim claims a free state machine of block.
func Claim(block *rppio.PIO) (*Hardware, error) {
	sm, err := block.ClaimStateMachine()
	if err != nil {
		return nil, err
	}
	return &Hardware{sm: sm}, nil
}

func (h *Hardware) Configure(p Program, cfg Config) error {
	block := h.sm.PIO()
	offset, err := block.AddProgram(p.Instructions, p.Origin)
	if err != nil {
		return err
	}
	h.offset = offset

	for pin := cfg.PinBase; pin < cfg.PinBase+cfg.PinCount; pin++ {
		machine.Pin(pin).Configure(machine.PinConfig{Mode: block.PinMode()})
	}
	h.sm.SetPindirsConsecutive(machine.Pin(cfg.PinBase), cfg.PinCount, false)

	smcfg := rppio.DefaultStateMachineConfig()
	smcfg.SetWrap(offset+p.WrapTarget, offset+p.Wrap)
	smcfg.SetInPins(machine.Pin(cfg.InBase))
	smcfg.SetClkDivIntFrac(cfg.ClkDivInt, cfg.ClkDivFrac)
	smcfg.SetInShift(cfg.ShiftRight, cfg.Autopush, uint16(cfg.PushThreshold))
	if cfg.JoinRx {
		smcfg.SetFIFOJoin(rppio.FifoJoinRx)
	}
	h.sm.Init(offset, smcfg)
	return nil
}

func (h *Hardware) SetEnabled(enabled bool) { h.sm.SetEnabled(enabled) }

func (h *Hardware) ClearFIFOs() { h.sm.ClearFIFOs() }

func (h *Hardware) Restart() {
	h.sm.Restart()
	h.sm.ClkDivRestart()
	h.sm.Jmp(h.offset, rppio.JmpAlways)
}

// RxFIFO returns the address of the RX FIFO for reading by DMA.
func (h *Hardware) RxFIFO() uintptr {
	return uintptr(unsafe.Pointer(h.sm.RxReg()))
}

// DREQ returns the DMA request signal of the RX FIFO.
func (h *Hardware) DREQ() uint32 {
	return uint32(h.sm.PIO().BlockIndex())*8 + uint32(h.sm.StateMachineIndex()) + 4
}
