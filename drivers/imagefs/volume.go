//go:build !tinygo

package imagefs

import (
	"fmt"
	"io"
	"os"
	"path"

	diskfs "github.com/diskfs/go-diskfs"
	"github.com/diskfs/go-diskfs/disk"
	"github.com/diskfs/go-diskfs/filesystem"
)

// Volume is a FAT32 file system in a disk image, as written to an SD card.
type Volume struct {
	disk *disk.Disk
	fs   filesystem.FileSystem
}

// Create formats a new disk image of size bytes at path.
func Create(path string, size int64) (*Volume, error) {
	d, err := diskfs.Create(path, size, diskfs.Raw, diskfs.SectorSizeDefault)
	if err != nil {
		return nil, fmt.Errorf("imagefs: create %s: %w", path, err)
	}
	fs, err := d.CreateFilesystem(disk.FilesystemSpec{
		Partition:   0,
		FSType:      filesystem.TypeFat32,
		VolumeLabel: "MONOCAP",
	})
	if err != nil {
		d.File.Close()
		return nil, fmt.Errorf("imagefs: format %s: %w", path, err)
	}
	return &Volume{disk: d, fs: fs}, nil
}

// Open opens an existing disk image.
func Open(path string) (*Volume, error) {
	d, err := diskfs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagefs: open %s: %w", path, err)
	}
	fs, err := d.GetFilesystem(0)
	if err != nil {
		d.File.Close()
		return nil, fmt.Errorf("imagefs: open %s: %w", path, err)
	}
	return &Volume{disk: d, fs: fs}, nil
}

func (v *Volume) WriteImage(name string, payload []byte) error {
	if _, err := ShortName(name); err != nil {
		return err
	}
	f, err := v.fs.OpenFile(path.Join("/", name), os.O_CREATE|os.O_RDWR|os.O_TRUNC)
	if err != nil {
		return fmt.Errorf("imagefs: %s: %w", name, err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		return fmt.Errorf("imagefs: %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("imagefs: %s: %w", name, err)
	}
	return nil
}

// ReadImage returns the contents of the file name in the root directory.
func (v *Volume) ReadImage(name string) ([]byte, error) {
	f, err := v.fs.OpenFile(path.Join("/", name), os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("imagefs: %s: %w", name, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Names returns the names of the files in the root directory.
func (v *Volume) Names() ([]string, error) {
	infos, err := v.fs.ReadDir("/")
	if err != nil {
		return nil, fmt.Errorf("imagefs: %w", err)
	}
	var names []string
	for _, fi := range infos {
		if !fi.IsDir() {
			names = append(names, fi.Name())
		}
	}
	return names, nil
}

func (v *Volume) Close() error {
	return v.disk.File.Close()
}
