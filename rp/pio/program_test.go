package pio_test

import (
	"slices"
	"testing"

	"github.com/monocap/monocap/rp/pio"
)

func TestCaptureProgram(t *testing.T) {
	p, cfg, err := pio.Capture(5, 10)
	if err != nil {
		t.Fatal(err)
	}

	// wait 0 gpio 5; wait 1 gpio 5; in pins, 10
	expected := []uint16{0x2005, 0x2085, 0x400a}
	if !slices.Equal(p.Instructions, expected) {
		t.Fatalf("expected %04x, got %04x", expected, p.Instructions)
	}
	if p.WrapTarget != 0 || int(p.Wrap) != len(p.Instructions)-1 {
		t.Errorf("program must wrap over all instructions, got %d..%d", p.WrapTarget, p.Wrap)
	}

	if cfg.PinCount != 11 || cfg.InBase != 6 {
		t.Errorf("expected 11 pins with data at 6, got %d pins at %d", cfg.PinCount, cfg.InBase)
	}
	if !cfg.Autopush || cfg.PushThreshold != 30 || cfg.ShiftRight {
		t.Errorf("expected left shifting autopush at 30 bits, got %+v", cfg)
	}
	if cfg.ClkDivInt != 1 || cfg.ClkDivFrac != 0 {
		t.Errorf("expected clock divider 1.0, got %d.%d", cfg.ClkDivInt, cfg.ClkDivFrac)
	}
}

func TestCaptureBusWidth(t *testing.T) {
	tests := map[string]struct {
		width uint8
		ok    bool
	}{
		"zero":   {0, false},
		"byte":   {8, true},
		"sensor": {10, true},
		"wide":   {11, false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := pio.Capture(0, tc.width)
			if (err == nil) != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	d := pio.Decode(pio.Wait(true, pio.WaitPin, 3))
	if d.Op != pio.OpWait || d.Arg1 != 0b101 || d.Arg2 != 3 {
		t.Fatalf("unexpected decoding %+v", d)
	}
	d = pio.Decode(pio.In(pio.SrcNull, 32))
	if d.Op != pio.OpIn || pio.Src(d.Arg1) != pio.SrcNull || d.Arg2 != 0 {
		t.Fatalf("unexpected decoding %+v", d)
	}
}

type recorder []string

func (r *recorder) Configure(pio.Program, pio.Config) error { *r = append(*r, "configure"); return nil }
func (r *recorder) SetEnabled(en bool) {
	if en {
		*r = append(*r, "enable")
	} else {
		*r = append(*r, "disable")
	}
}
func (r *recorder) ClearFIFOs() { *r = append(*r, "clear") }
func (r *recorder) Restart()    { *r = append(*r, "restart") }

func TestReset(t *testing.T) {
	var r recorder
	pio.Reset(&r)
	expected := []string{"disable", "clear", "restart", "enable"}
	if !slices.Equal([]string(r), expected) {
		t.Fatalf("expected %v, got %v", expected, r)
	}
}
