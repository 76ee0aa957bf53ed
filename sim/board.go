package sim

import (
	"time"

	"github.com/monocap/monocap/rp/dma"
)

// Cycles the board runs per poll of a busy DMA channel.
const pollBudget = 1 << 12

// Board wires the models like the PCB does: the sensor's pixel bus to the
// state machine's input pins and the state machine's RX FIFO to two DMA
// channels.
type Board struct {
	Clock  *Clock
	Sensor *Sensor
	SM     *StateMachine
	DMA    [2]*Channel
	PSRAM  *PSRAM
	FRAM   *FRAM
	LED    *LED

	// Recorder captures the pixel bus if set.
	Recorder *Recorder

	tick time.Duration
}

// BoardConfig selects the board's clocks and pin assignment.
type BoardConfig struct {
	Sysclk    uint32
	PSRAMSize int
	FRAMSize  int
	Strobe    uint8 // GPIO of the pixel valid strobe
	DataBase  uint8 // GPIO of D0
}

func NewBoard(cfg BoardConfig) *Board {
	clock := &Clock{}
	tick := max(time.Second/time.Duration(cfg.Sysclk), 1)
	b := &Board{
		Clock:  clock,
		Sensor: NewSensor(clock, tick, cfg.Strobe, cfg.DataBase),
		SM:     &StateMachine{},
		PSRAM:  NewPSRAM(clock, cfg.Sysclk, cfg.PSRAMSize),
		FRAM:   NewFRAM(cfg.FRAMSize),
		LED:    &LED{clock: clock},
		tick:   tick,
	}
	for i := range b.DMA {
		b.DMA[i] = &Channel{b: b}
	}
	return b
}

// Stream returns a single buffer stream on the first DMA channel.
func (b *Board) Stream() *dma.Stream {
	return dma.NewStream(b.DMA[0])
}

// DoubleStream returns a stream alternating between both DMA channels.
func (b *Board) DoubleStream(segment int) *dma.Stream {
	return dma.NewDoubleStream(b.DMA[0], b.DMA[1], segment)
}

// advance runs at most n cycles and stops early after a channel completed.
func (b *Board) advance(n int) {
	if ticks := b.Sensor.exposing(); ticks > 0 {
		b.Sensor.skip(ticks)
	}
	for range n {
		streaming := b.Sensor.readout.active
		gpio := b.Sensor.step()
		if b.Recorder != nil && streaming {
			b.Recorder.sample(b.Clock.Now(), gpio)
			if !b.Sensor.readout.active {
				b.Recorder.stop()
			}
		}
		b.SM.step(gpio)
		b.Clock.Delay(b.tick)
		if b.stepDMA() {
			return
		}
	}
}

func (b *Board) stepDMA() bool {
	for _, c := range b.DMA {
		if !c.running {
			continue
		}
		if !c.transfer(b.SM) {
			return false
		}
		for _, o := range b.DMA {
			if o.pending && o.after == c {
				o.pending, o.after = false, nil
				o.running = len(o.dst) > 0
			}
		}
		return true
	}
	return false
}
