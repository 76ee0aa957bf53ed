// Package imagefs stores raw frames as files in the root directory of a FAT
// volume.
package imagefs

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var ErrName = errors.New("imagefs: not a valid short file name")

// Writer stores an image. The file is created or truncated, written, flushed
// and closed before WriteImage returns.
type Writer interface {
	WriteImage(name string, payload []byte) error
}

// SweepName returns the file name of image n in a sweep.
func SweepName(n uint64) string {
	return fmt.Sprintf("IM%05d.RAW", n%65536)
}

// ShotName returns the file name of image n taken in single-shot mode.
func ShotName(n uint64) string {
	return fmt.Sprintf("IMG_%03d.RAW", n%1000)
}

// ShortName returns name as stored in a FAT directory entry: base name and
// extension padded with spaces and encoded in the OEM code page.
func ShortName(name string) (entry [11]byte, err error) {
	if strings.ContainsAny(name, "\"*+,/:;<=>?[\\]| ") || strings.ToUpper(name) != name {
		return entry, fmt.Errorf("%w: %q", ErrName, name)
	}
	base, ext, _ := strings.Cut(name, ".")
	enc := charmap.CodePage437.NewEncoder()
	b, err := enc.String(base)
	if err != nil {
		return entry, fmt.Errorf("%w: %q: %w", ErrName, name, err)
	}
	e, err := enc.String(ext)
	if err != nil {
		return entry, fmt.Errorf("%w: %q: %w", ErrName, name, err)
	}
	if len(b) == 0 || len(b) > 8 || len(e) > 3 || strings.Contains(ext, ".") {
		return entry, fmt.Errorf("%w: %q", ErrName, name)
	}
	for i := range entry {
		entry[i] = ' '
	}
	copy(entry[:8], b)
	copy(entry[8:], e)
	return entry, nil
}
