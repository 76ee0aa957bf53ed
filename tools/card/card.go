// Package card inspects FAT32 disk images holding captured frames, as
// written by the simulator or dumped from an SD card.
package card

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/monocap/monocap/drivers/imagefs"
)

func must[T any](ret T, err error) T {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return ret
}

const usageString = `SD Card Image Utility.

Usage:

	%s <command> [arguments]

The commands are:

	new <image> <MiB>	create an empty image
	ls <image>		list the stored frames
	get <image> <name>...	copy frames into the working directory
`

var flags = flag.NewFlagSet("card", flag.ExitOnError)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "card")
	flags.PrintDefaults()
}

// List writes the names of all files in the volume's root directory to w.
func List(w io.Writer, vol *imagefs.Volume) error {
	names, err := vol.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 2 {
		flags.Usage()
		os.Exit(1)
	}
	image := flags.Arg(1)

	switch flags.Arg(0) {
	case "new":
		if flags.NArg() != 3 {
			flags.Usage()
			os.Exit(1)
		}
		size := must(strconv.ParseInt(flags.Arg(2), 10, 64))
		vol := must(imagefs.Create(image, size<<20))
		must(0, vol.Close())
	case "ls":
		vol := must(imagefs.Open(image))
		defer vol.Close()
		must(0, List(os.Stdout, vol))
	case "get":
		vol := must(imagefs.Open(image))
		defer vol.Close()
		for _, name := range flags.Args()[2:] {
			payload := must(vol.ReadImage(name))
			must(0, os.WriteFile(name, payload, 0o644))
		}
	default:
		fmt.Fprintf(flags.Output(), "unknown command: %s\n", flags.Arg(0))
		flags.Usage()
		os.Exit(1)
	}
}
