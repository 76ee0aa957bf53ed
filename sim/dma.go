package sim

import "github.com/monocap/monocap/rp/dma"

// Channel is a DMA channel paced by the RX FIFO of the board's state machine.
// It implements dma.Channel.
type Channel struct {
	b       *Board
	dst     []uint32
	pos     int
	after   *Channel
	running bool
	pending bool

	// Starts counts the transfers armed on the channel.
	Starts int
}

func (c *Channel) Start(dst []uint32, after dma.Channel) {
	if c.running || c.pending {
		panic("sim: dma channel armed while busy")
	}
	c.dst, c.pos = dst, 0
	c.Starts++
	if after == nil {
		c.running = len(dst) > 0
		return
	}
	c.after = after.(*Channel)
	c.pending = true
}

// Busy advances the board until a channel completes or the polling budget is
// spent and reports whether c is still busy.
func (c *Channel) Busy() bool {
	if c.running || c.pending {
		c.b.advance(pollBudget)
	}
	return c.running || c.pending
}

func (c *Channel) Abort() {
	c.running, c.pending = false, false
	c.after = nil
}

// transfer moves at most one word and reports whether the transfer completed.
func (c *Channel) transfer(sm *StateMachine) bool {
	v, ok := sm.Pop()
	if !ok {
		return false
	}
	c.dst[c.pos] = v
	c.pos++
	if c.pos < len(c.dst) {
		return false
	}
	c.running = false
	return true
}
