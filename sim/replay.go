package sim

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/soypat/saleae"
)

// Replay plays a pixel bus recorded with a logic analyzer back into the
// sensor model. Every signal is one Saleae digital export: the pixel valid
// strobe first, followed by D0 and up.
type Replay struct {
	chans []replayChannel
	begin float64
	end   float64
}

type replayChannel struct {
	f     *saleae.DigitalFile
	state bool
	next  int
}

var ErrReplayChannels = errors.New("sim: replay needs the strobe and at least one data signal")

// NewReplay returns a replay of files, which must cover the same time span.
func NewReplay(files ...*saleae.DigitalFile) (*Replay, error) {
	if len(files) < 2 || len(files) > 11 {
		return nil, ErrReplayChannels
	}
	r := &Replay{begin: files[0].Header.Begin, end: files[0].Header.End}
	for i, f := range files {
		if f.Header.Begin != r.begin || f.Header.End != r.end {
			return nil, fmt.Errorf("sim: replay signal %d spans %g..%g, expected %g..%g",
				i, f.Header.Begin, f.Header.End, r.begin, r.end)
		}
		r.chans = append(r.chans, replayChannel{f: f})
	}
	r.Rewind()
	return r, nil
}

// ReadReplay reads one digital export per signal.
func ReadReplay(signals ...io.Reader) (*Replay, error) {
	files := make([]*saleae.DigitalFile, len(signals))
	for i, rd := range signals {
		f, err := saleae.ReadDigitalFile(rd)
		if err != nil {
			return nil, fmt.Errorf("sim: replay signal %d: %w", i, err)
		}
		files[i] = f
	}
	return NewReplay(files...)
}

// Duration returns the length of the recording.
func (r *Replay) Duration() time.Duration {
	return seconds(r.end - r.begin)
}

// Rewind restarts the replay at the beginning of the recording.
func (r *Replay) Rewind() {
	for i := range r.chans {
		c := &r.chans[i]
		c.state = c.f.Header.InitialState != 0
		c.next = 0
	}
}

// Sample returns the bus levels at t after the start of the recording. t must
// not decrease between calls unless the replay is rewound. ok is false once t
// is past the end of the recording.
func (r *Replay) Sample(t time.Duration) (strobe bool, data uint16, ok bool) {
	at := r.begin + t.Seconds()
	if at > r.end {
		return false, 0, false
	}
	for i := range r.chans {
		c := &r.chans[i]
		for c.next < len(c.f.Data) && c.f.Data[c.next] <= at {
			c.state = !c.state
			c.next++
		}
		if i == 0 {
			strobe = c.state
		} else if c.state {
			data |= 1 << (i - 1)
		}
	}
	return strobe, data, true
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Recorder captures the first frame the sensor drives onto the pixel bus in
// the format Replay reads.
type Recorder struct {
	strobe, data uint8
	width        int

	started, stopped bool
	begin, end       time.Duration
	initial, last    uint32
	transitions      [][]float64
}

// NewRecorder records the strobe on GPIO strobe and width data bits starting
// at GPIO dataBase.
func NewRecorder(strobe, dataBase uint8, width int) *Recorder {
	return &Recorder{
		strobe:      strobe,
		data:        dataBase,
		width:       width,
		transitions: make([][]float64, width+1),
	}
}

func (r *Recorder) signals(gpio uint32) uint32 {
	v := (gpio >> r.strobe) & 1
	v |= ((gpio >> r.data) & (1<<r.width - 1)) << 1
	return v
}

func (r *Recorder) sample(now time.Duration, gpio uint32) {
	if r.stopped {
		return
	}
	v := r.signals(gpio)
	if !r.started {
		r.started = true
		r.begin, r.initial, r.last = now, v, v
	}
	changed := v ^ r.last
	for i := range r.transitions {
		if changed&(1<<i) != 0 {
			r.transitions[i] = append(r.transitions[i], (now - r.begin).Seconds())
		}
	}
	r.last = v
	r.end = now
}

func (r *Recorder) stop() {
	if r.started {
		r.stopped = true
	}
}

// Done reports whether a complete frame was recorded.
func (r *Recorder) Done() bool {
	return r.stopped
}

// Files returns one digital export per signal, the strobe first. The format
// needs at least one transition, so signals that never changed get one just
// past the end of the recording, where Replay stops sampling.
func (r *Recorder) Files() []*saleae.DigitalFile {
	end := (r.end - r.begin).Seconds()
	files := make([]*saleae.DigitalFile, len(r.transitions))
	for i, data := range r.transitions {
		if len(data) == 0 {
			data = []float64{math.Nextafter(end, math.Inf(1))}
		}
		f := &saleae.DigitalFile{Data: data}
		f.Header.Info.Type = saleae.FileTypeDigital
		f.Header.InitialState = (r.initial >> i) & 1
		f.Header.End = end
		f.Header.NumTransitions = uint64(len(data))
		files[i] = f
	}
	return files
}
