// Package rawconv converts raw frames as stored by the firmware into 16 bit
// grayscale PNG or TIFF images.
package rawconv

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/monocap/monocap/frame"
	"github.com/monocap/monocap/machine"
)

var (
	flags = flag.NewFlagSet("raw", flag.ExitOnError)

	format = flags.String("format", "png", "output format, png or tiff")
	width  = flags.Int("width", machine.Width, "column size the frame was captured with")
	height = flags.Int("height", machine.Height, "row size the frame was captured with")
)

var ErrFormat = errors.New("unsupported format")

const usageString = `Raw frame to image converter.

Usage: %s [flags] <file.RAW>...

`

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "raw")
	flags.PrintDefaults()
}

// Convert writes the frame in payload to w in the given format.
func Convert(w io.Writer, payload []byte, width, height int, format string) error {
	img, err := frame.Unpack(payload, width, height)
	if err != nil {
		return err
	}
	switch format {
	case "png":
		return png.Encode(w, img.Gray16())
	case "tiff":
		return tiff.Encode(w, img.Gray16(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %s", ErrFormat, format)
}

func convertFile(name string) error {
	payload, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	outfile := strings.TrimSuffix(name, filepath.Ext(name)) + "." + *format
	w, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer w.Close()
	if err := Convert(w, payload, *width, *height, *format); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Close()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}
	for _, name := range flags.Args() {
		if err := convertFile(name); err != nil {
			log.Fatalln(err)
		}
	}
}
