package qmi

import (
	"time"

	"github.com/monocap/monocap/rp"
)

type OpKind uint8

const (
	OpConfigure OpKind = iota
	OpTransact
	OpWait
	OpSetWindow
)

// Op is one step of a direct mode sequence.
type Op struct {
	Kind   OpKind
	Config Config
	Cmd    Command
	Window Window

	// Wait time, and the same in system clock cycles for busy-waiting
	// without a timer.
	Duration time.Duration
	Cycles   uint32
}

func Configure(cfg Config) Op { return Op{Kind: OpConfigure, Config: cfg} }

func Transact(cmd Command) Op { return Op{Kind: OpTransact, Cmd: cmd} }

func SetWindow(w Window) Op { return Op{Kind: OpSetWindow, Window: w} }

// Wait returns a step waiting at least d on a system clock of sysclk Hz.
func Wait(d time.Duration, sysclk uint32) Op {
	cycles := (uint64(d)*uint64(sysclk) + uint64(time.Second) - 1) / uint64(time.Second)
	return Op{Kind: OpWait, Duration: d, Cycles: uint32(cycles)}
}

// Sequencer is a bus able to run a whole sequence without fetching
// instructions from the memory windows.
type Sequencer interface {
	Sequence(ops []Op, rx []uint32)
}

// Run executes ops on bus with interrupts disabled and returns the data
// received by every transact step, in order. The sequence must leave direct
// mode disabled. Buses implementing Sequencer run it themselves, otherwise
// waits are spent on delay.
func Run(bus DirectBus, delay rp.Delayer, ops []Op) []uint32 {
	n := 0
	for _, op := range ops {
		if op.Kind == OpTransact {
			n++
		}
	}
	rx := make([]uint32, n)
	if seq, ok := bus.(Sequencer); ok {
		rp.Critical(func() { seq.Sequence(ops, rx) })
		return rx
	}
	rp.Critical(func() {
		n := 0
		for _, op := range ops {
			switch op.Kind {
			case OpConfigure:
				bus.Configure(op.Config)
			case OpTransact:
				rx[n] = bus.Transact(op.Cmd)
				n++
			case OpWait:
				delay.Delay(op.Duration)
			case OpSetWindow:
				bus.SetWindow(op.Window)
			}
		}
	})
	return rx
}
