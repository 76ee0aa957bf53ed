package sim

import (
	"fmt"

	"github.com/monocap/monocap/rp/pio"
)

// StateMachine interprets PIO programs one instruction per system clock. It
// implements pio.StateMachine. Only the instructions the capture program uses
// are supported.
type StateMachine struct {
	prog    pio.Program
	cfg     pio.Config
	enabled bool

	pc    uint8
	isr   uint32
	count uint8
	fifo  []uint32

	// Pushed counts all words pushed to the RX FIFO, Stalls the cycles an
	// autopush found the FIFO full.
	Pushed, Stalls int
}

func (sm *StateMachine) Configure(p pio.Program, cfg pio.Config) error {
	if len(p.Instructions) == 0 || len(p.Instructions) > 32 {
		return fmt.Errorf("sim: program of %d instructions", len(p.Instructions))
	}
	if int(p.Wrap) >= len(p.Instructions) || p.WrapTarget > p.Wrap {
		return fmt.Errorf("sim: wrap %d..%d outside program", p.WrapTarget, p.Wrap)
	}
	sm.prog, sm.cfg = p, cfg
	sm.enabled = false
	sm.ClearFIFOs()
	sm.Restart()
	return nil
}

func (sm *StateMachine) SetEnabled(enabled bool) { sm.enabled = enabled }

func (sm *StateMachine) Enabled() bool { return sm.enabled }

func (sm *StateMachine) ClearFIFOs() { sm.fifo = sm.fifo[:0] }

func (sm *StateMachine) Restart() {
	sm.pc, sm.isr, sm.count = 0, 0, 0
}

func (sm *StateMachine) depth() int {
	if sm.cfg.JoinRx {
		return 8
	}
	return 4
}

// Pop removes the oldest word from the RX FIFO.
func (sm *StateMachine) Pop() (uint32, bool) {
	if len(sm.fifo) == 0 {
		return 0, false
	}
	v := sm.fifo[0]
	sm.fifo = append(sm.fifo[:0], sm.fifo[1:]...)
	return v, true
}

// step executes one cycle with the GPIO input levels gpio.
func (sm *StateMachine) step(gpio uint32) {
	if !sm.enabled {
		return
	}
	in := pio.Decode(sm.prog.Instructions[sm.pc])
	switch in.Op {
	case pio.OpWait:
		if pio.WaitSrc(in.Arg1&0x3) != pio.WaitGPIO {
			panic("sim: unsupported wait source")
		}
		polarity := in.Arg1&0x4 != 0
		if (gpio>>in.Arg2)&1 != 0 != polarity {
			return
		}
	case pio.OpIn:
		if pio.Src(in.Arg1) != pio.SrcPins {
			panic("sim: unsupported in source")
		}
		n := in.Arg2
		if n == 0 {
			n = 32
		}
		v := gpio >> sm.cfg.InBase
		if n < 32 {
			v &= 1<<n - 1
		}
		isr := sm.isr<<n | v
		if sm.cfg.ShiftRight {
			isr = sm.isr>>n | v<<(32-n)
		}
		count := sm.count + n
		if sm.cfg.Autopush && count >= sm.threshold() {
			// The instruction stalls until the FIFO has room.
			if len(sm.fifo) == sm.depth() {
				sm.Stalls++
				return
			}
			sm.fifo = append(sm.fifo, isr)
			sm.Pushed++
			isr, count = 0, 0
		}
		sm.isr, sm.count = isr, count
	case pio.OpJmp:
		if in.Arg1 != 0 {
			panic("sim: unsupported jmp condition")
		}
		sm.pc = in.Arg2
		return
	default:
		panic(fmt.Sprintf("sim: unsupported instruction %#04x", sm.prog.Instructions[sm.pc]))
	}
	if sm.pc == sm.prog.Wrap {
		sm.pc = sm.prog.WrapTarget
	} else {
		sm.pc++
	}
}

func (sm *StateMachine) threshold() uint8 {
	if sm.cfg.PushThreshold == 0 {
		return 32
	}
	return sm.cfg.PushThreshold
}
