//go:build tinygo && rp2350

package dma

import (
	"device/rp"
	"runtime/volatile"
	"unsafe"
)

type channelRegs struct {
	readAddr   volatile.Register32
	writeAddr  volatile.Register32
	transCount volatile.Register32
	ctrlTrig   volatile.Register32
	al1Ctrl    volatile.Register32
	_          [11]volatile.Register32
}

const baseAddr uintptr = 0x5000_0000

// Hardware is one of the chip's DMA channels reading from a peripheral FIFO.
type Hardware struct {
	index uint8
	regs  *channelRegs
	ctrl  uint32
	end   uint32 // write address after the last word
}

// NewHardware configures channel index to read words from the FIFO at src,
// paced by dreq.
func NewHardware(index uint8, src uintptr, dreq uint32) *Hardware {
	h := &Hardware{
		index: index,
		regs:  (*channelRegs)(unsafe.Pointer(baseAddr + uintptr(index)*0x40)),
	}
	h.ctrl = rp.DMA_CH0_CTRL_TRIG_INCR_WRITE |
		rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_SIZE_WORD<<rp.DMA_CH0_CTRL_TRIG_DATA_SIZE_Pos |
		dreq<<rp.DMA_CH0_CTRL_TRIG_TREQ_SEL_Pos |
		rp.DMA_CH0_CTRL_TRIG_HIGH_PRIORITY |
		rp.DMA_CH0_CTRL_TRIG_EN
	h.regs.readAddr.Set(uint32(src))
	h.regs.al1Ctrl.Set(h.chainTo(index))
	return h
}

// chainTo returns the control word chaining to channel next. A channel
// chained to itself does not chain.
func (h *Hardware) chainTo(next uint8) uint32 {
	return h.ctrl | uint32(next)<<rp.DMA_CH0_CTRL_TRIG_CHAIN_TO_Pos
}

func (h *Hardware) Start(dst []uint32, after Channel) {
	start := uint32(uintptr(unsafe.Pointer(unsafe.SliceData(dst))))
	h.end = start + uint32(len(dst))*4
	h.regs.writeAddr.Set(start)
	h.regs.transCount.Set(uint32(len(dst)))
	if after == nil {
		h.regs.ctrlTrig.Set(h.chainTo(h.index))
		return
	}
	h.regs.al1Ctrl.Set(h.chainTo(h.index))
	prev := after.(*Hardware)
	prev.regs.al1Ctrl.Set(prev.chainTo(h.index))
}

// Busy compares the live write address with the end of the destination, as
// the busy flag stays clear while the channel waits for its chain trigger.
func (h *Hardware) Busy() bool {
	return h.regs.writeAddr.Get() != h.end
}

func (h *Hardware) Abort() {
	h.regs.al1Ctrl.ClearBits(rp.DMA_CH0_CTRL_TRIG_EN)
	rp.DMA.CHAN_ABORT.Set(1 << h.index)
	for rp.DMA.CHAN_ABORT.Get() != 0 {
	}
	h.end = h.regs.writeAddr.Get()
}
