package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/monocap/monocap/drivers/camera"
	"github.com/monocap/monocap/drivers/fram"
	"github.com/monocap/monocap/drivers/imagefs"
	"github.com/monocap/monocap/drivers/mt9m001"
	"github.com/monocap/monocap/drivers/psram"
	"github.com/monocap/monocap/drivers/status"
	"github.com/monocap/monocap/firmware"
	"github.com/monocap/monocap/machine"
	"github.com/monocap/monocap/sim"
)

const usageString = `Capture Firmware Simulator.

Runs the firmware against simulated hardware and stores the images in a FAT32
disk image, exactly as the device writes them to its SD card.

Usage:

	%s [flags] <image>

The image is created if it doesn't exist. Logic analyzer captures for -replay
and -record are Saleae binary exports named digital_<n>.bin, channel 0 being
the pixel valid strobe and channels 1 to 10 the data bits D0 to D9.

Flags:
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func must[T any](ret T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return ret
}

type options struct {
	image   string
	size    int64
	fram    string
	mode    string
	shots   int
	gain    float64
	dens    string
	timeout time.Duration
	test    bool
	replay  string
	record  string
	debug   bool
	quiet   bool
}

func main() {
	var opts options
	flag.Usage = usage
	flag.Int64Var(&opts.size, "size", 64, "size in MiB of a newly created image")
	flag.StringVar(&opts.fram, "fram", "", "file keeping the FRAM contents between runs")
	flag.StringVar(&opts.mode, "mode", firmware.SingleShot.Name, "firmware configuration, single-shot or sweep")
	flag.IntVar(&opts.shots, "shots", 0, "number of frames, overrides the configuration")
	flag.Float64Var(&opts.gain, "gain", 0, "analog gain, overrides the configuration")
	flag.StringVar(&opts.dens, "den", "", "comma separated exposure denominators, overrides the configuration")
	flag.DurationVar(&opts.timeout, "timeout", -1, "frame timeout, overrides the configuration")
	flag.BoolVar(&opts.test, "test", false, "capture the sensor's test pattern")
	flag.StringVar(&opts.replay, "replay", "", "directory of a logic analyzer capture driving the pixel bus")
	flag.StringVar(&opts.record, "record", "", "directory to store the pixel bus of the first frame in")
	flag.BoolVar(&opts.debug, "v", false, "log every stage")
	flag.BoolVar(&opts.quiet, "q", false, "log errors only")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.image = flag.Arg(0)

	cfg := must(configure(opts))
	logger := newLogger(opts)
	if err := run(cfg, opts, logger); err != nil {
		logger.Error("Simulation failed",
			log.String("stage", firmware.FaultCode(err).String()),
			log.Err(err))
		os.Exit(1)
	}
}

func newLogger(opts options) *log.Logger {
	cfg := log.DefaultConfig()
	if opts.debug {
		cfg.Level = log.DebugLevel
	} else if opts.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// configure returns the firmware configuration selected by opts.
func configure(opts options) (firmware.Config, error) {
	cfg, ok := firmware.Lookup(opts.mode)
	if !ok {
		return cfg, fmt.Errorf("unknown configuration %q", opts.mode)
	}
	if opts.shots > 0 {
		cfg.Shots = opts.shots
	}
	if opts.gain > 0 {
		cfg.Gain = float32(opts.gain)
	}
	if opts.timeout >= 0 {
		cfg.Timeout = opts.timeout
	}
	cfg.TestPattern = opts.test
	if opts.dens != "" {
		cfg.Denominators = nil
		for _, s := range strings.Split(opts.dens, ",") {
			den, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
			if err != nil || den == 0 {
				return cfg, fmt.Errorf("invalid denominator %q", s)
			}
			cfg.Denominators = append(cfg.Denominators, uint32(den))
		}
	}
	return cfg, nil
}

func openImage(opts options) (*imagefs.Volume, error) {
	if _, err := os.Stat(opts.image); errors.Is(err, fs.ErrNotExist) {
		return imagefs.Create(opts.image, opts.size<<20)
	}
	return imagefs.Open(opts.image)
}

func run(cfg firmware.Config, opts options, logger *log.Logger) error {
	board := sim.NewBoard(boardConfig(psram.Size))
	if opts.fram != "" {
		mem, err := os.ReadFile(opts.fram)
		switch {
		case err == nil:
			copy(board.FRAM.Mem, mem)
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}
	if opts.replay != "" {
		replay, err := readReplay(opts.replay)
		if err != nil {
			return err
		}
		board.Sensor.Replay = replay
		logger.Debug("Replaying pixel bus",
			log.String("dir", opts.replay),
			log.String("duration", replay.Duration().String()))
	}
	if opts.record != "" {
		board.Recorder = sim.NewRecorder(machine.PinStrobe, machine.PinD0, 10)
	}

	vol, err := openImage(opts)
	if err != nil {
		return err
	}
	defer vol.Close()

	s := board.Sensor
	hw := &firmware.Hardware{
		QMI:    board.PSRAM,
		Sysclk: machine.Sysclk,
		Delay:  board.Clock,
		Map:    board.PSRAM.Map,
		Sensor: camera.New(mt9m001.New(s),
			camera.Pins{Clock: s.Clock(), Standby: s.Standby(), Trigger: s.Trigger()},
			board.Clock, machine.Camera()),
		Strobe:  machine.PinStrobe,
		SM:      board.SM,
		Stream:  board.Stream(),
		Counter: firmware.NewCounter(fram.New(board.FRAM, board.FRAM.CS())),
		Images:  vol,
		LED:     status.New(board.LED, board.Clock),
	}

	start := time.Now()
	names, err := firmware.Run(context.Background(), cfg, hw, logger)
	if opts.fram != "" {
		if err := os.WriteFile(opts.fram, board.FRAM.Mem, 0o644); err != nil {
			return err
		}
	}
	if err != nil {
		return err
	}
	logger.Info("Simulation done",
		log.Int("images", len(names)),
		log.String("simulated", board.Clock.Now().String()),
		log.String("elapsed", time.Since(start).Round(time.Millisecond).String()))

	if board.Recorder != nil {
		return writeRecording(opts.record, board.Recorder)
	}
	return nil
}

func readReplay(dir string) (*sim.Replay, error) {
	var signals []io.Reader
	for i := range 11 {
		f, err := os.Open(filepath.Join(dir, fmt.Sprintf("digital_%d.bin", i)))
		if errors.Is(err, fs.ErrNotExist) && i >= 2 {
			break
		}
		if err != nil {
			return nil, err
		}
		defer f.Close()
		signals = append(signals, f)
	}
	return sim.ReadReplay(signals...)
}

func writeRecording(dir string, rec *sim.Recorder) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i, file := range rec.Files() {
		f, err := os.Create(filepath.Join(dir, fmt.Sprintf("digital_%d.bin", i)))
		if err != nil {
			return err
		}
		if _, err := file.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// boardConfig returns the configuration of a simulated capture board with
// psramSize bytes of PSRAM.
func boardConfig(psramSize int) sim.BoardConfig {
	return sim.BoardConfig{
		Sysclk:    machine.Sysclk,
		PSRAMSize: psramSize,
		FRAMSize:  fram.Size,
		Strobe:    machine.PinStrobe,
		DataBase:  machine.PinD0,
	}
}
