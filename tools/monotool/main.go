package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/monocap/monocap/tools/card"
	"github.com/monocap/monocap/tools/rawconv"
)

const usageString = `monotool works with the frames taken by the capture firmware.

Usage:

	%s <command> [arguments]

The commands are:

	raw      convert raw frames to PNG or TIFF
	card     create and inspect SD card images
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "raw":
		rawconv.Main(flag.Args())
	case "card":
		card.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
