//go:build tinygo && rp2350

package imagefs

import (
	"fmt"
	"machine"
	"os"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// Card is the FAT volume on an SD card in SPI mode.
type Card struct {
	dev sdcard.Device
	fs  *fatfs.FATFS
}

// NewCard initializes the card and mounts its first volume. The bus is
// switched to frequency after the card left its identification mode.
func NewCard(bus *machine.SPI, sck, sdo, sdi, cs machine.Pin, frequency uint32) (*Card, error) {
	c := &Card{dev: sdcard.New(bus, sck, sdo, sdi, cs)}
	if err := c.dev.Configure(); err != nil {
		return nil, fmt.Errorf("imagefs: sd card: %w", err)
	}
	err := bus.Configure(machine.SPIConfig{
		SCK:       sck,
		SDO:       sdo,
		SDI:       sdi,
		Frequency: frequency,
		Mode:      0,
	})
	if err != nil {
		return nil, fmt.Errorf("imagefs: sd card: %w", err)
	}
	c.fs = fatfs.New(&c.dev)
	c.fs.Configure(&fatfs.Config{SectorSize: 512})
	if err := c.fs.Mount(); err != nil {
		return nil, fmt.Errorf("imagefs: mount: %w", err)
	}
	return c, nil
}

func (c *Card) WriteImage(name string, payload []byte) error {
	if _, err := ShortName(name); err != nil {
		return err
	}
	f, err := c.fs.OpenFile("/"+name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC)
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
