// Package dma moves words from a paced source, the RX FIFO of a PIO state
// machine, into memory. It supports one transfer spanning the whole
// destination and double buffering through two small buffers.
package dma

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/monocap/monocap/debug"
)

// Channel is a DMA channel with its source and pacing already configured.
type Channel interface {
	// Start arms the channel to move len(dst) words into dst. The transfer
	// begins immediately if after is nil, otherwise once after completes.
	Start(dst []uint32, after Channel)

	// Busy reports whether the channel has an armed or running transfer.
	Busy() bool

	// Abort cancels the armed or running transfer.
	Abort()
}

var (
	ErrInFlight = errors.New("dma: transfer already in flight")
	ErrTransfer = errors.New("dma: transfer did not complete")
)

// Stream moves words from one receive queue. Only one transfer can be in
// flight on a Stream at a time.
type Stream struct {
	chans    [2]Channel
	bufs     [2][]uint32
	inFlight bool
}

// NewStream returns a stream transferring directly into the destination.
func NewStream(ch Channel) *Stream {
	return &Stream{chans: [2]Channel{ch}}
}

// NewDoubleStream returns a stream alternating between two buffers of segment
// words on channels a and b, copying each completed buffer into the
// destination.
func NewDoubleStream(a, b Channel, segment int) *Stream {
	debug.Assert(segment > 0, "empty segment")
	return &Stream{
		chans: [2]Channel{a, b},
		bufs:  [2][]uint32{make([]uint32, segment), make([]uint32, segment)},
	}
}

// Segment returns the segment length in words, or 0 for a single buffer stream.
func (s *Stream) Segment() int {
	return len(s.bufs[0])
}

// Arm starts a transfer of len(dst) words into dst. The words are only
// guaranteed to be in dst after the returned transfer's Wait returned nil.
func (s *Stream) Arm(dst []uint32) (*Transfer, error) {
	if s.inFlight {
		return nil, ErrInFlight
	}
	s.inFlight = true

	t := &Transfer{s: s}
	switch {
	case len(dst) == 0:
		t.wait = func(context.Context) error { return nil }
	case s.Segment() == 0:
		ch := s.chans[0]
		ch.Start(dst, nil)
		t.wait = func(ctx context.Context) error { return await(ctx, ch) }
	default:
		t.wait = s.double(dst)
	}
	return t, nil
}

// double arms the first two segments and returns the function collecting all
// segments in order.
func (s *Stream) double(dst []uint32) func(context.Context) error {
	size := s.Segment()
	n := (len(dst) + size - 1) / size
	segment := func(i int) []uint32 {
		return s.bufs[i%2][:min(size, len(dst)-i*size)]
	}

	s.chans[0].Start(segment(0), nil)
	if n > 1 {
		s.chans[1].Start(segment(1), s.chans[0])
	}

	return func(ctx context.Context) error {
		for i := range n {
			ch := s.chans[i%2]
			if err := await(ctx, ch); err != nil {
				return err
			}
			copy(dst[i*size:], segment(i))
			if i+2 < n {
				// Runs after the other channel, which is busy with segment i+1.
				ch.Start(segment(i+2), s.chans[(i+1)%2])
			}
		}
		return nil
	}
}

func (s *Stream) abort() {
	for _, ch := range s.chans {
		if ch != nil {
			ch.Abort()
		}
	}
}

// Transfer is the completion of an armed transfer. It is completed by the DMA
// hardware and must be waited for by exactly one caller.
type Transfer struct {
	s    *Stream
	wait func(ctx context.Context) error
	done bool
	err  error
}

// Wait blocks until all words arrived in the destination, yielding to other
// goroutines while waiting. If ctx is done first, the channels are aborted and
// an error wrapping ErrTransfer is returned.
func (t *Transfer) Wait(ctx context.Context) error {
	if t.done {
		return t.err
	}
	if err := t.wait(ctx); err != nil {
		t.s.abort()
		t.err = fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	t.done = true
	t.s.inFlight = false
	return t.err
}

func await(ctx context.Context, ch Channel) error {
	for ch.Busy() {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}
