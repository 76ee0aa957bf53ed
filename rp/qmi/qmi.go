// Package qmi drives the QSPI memory interface of the RP2350 in direct mode and
// programs the timing and command formats of its memory windows.
//
// Only memory window 1 (chip select 1) is used. Window 0 serves the boot flash
// and is never touched, but direct mode suspends both windows. Direct mode
// work is therefore described as a sequence of Ops and handed to Run, which on
// the chip executes the whole sequence from RAM.
package qmi

// DirectBus is the direct mode of the memory interface together with the
// registers of memory window 1.
type DirectBus interface {
	// Configure writes the direct mode control register.
	Configure(cfg Config)

	// Transact shifts cmd out in direct mode and returns the data shifted in
	// while doing so. It blocks until the transfer finished.
	Transact(cmd Command) uint32

	// SetWindow programs the timing and command formats of memory window 1.
	SetWindow(w Window)
}

// Config is the content of the direct mode control register.
type Config struct {
	Enable     bool  // direct mode enable
	ClkDiv     uint8 // direct mode serial clock divider
	Select     bool  // drive chip select 1 low
	AutoSelect bool  // let window 1 accesses drive chip select 1
}

type Width uint8

const (
	Single Width = iota
	Dual
	Quad
)

// Command is a direct mode transmit FIFO entry.
type Command struct {
	Data     uint16
	Width    Width
	Wide     bool // 16 bit instead of 8 bit data
	OutputEn bool // drive the data lines in quad or dual width
	NoPush   bool // discard the receive data
}

// Byte returns a single width transfer of b.
func Byte(b byte) Command {
	return Command{Data: uint16(b)}
}

// QuadByte returns a quad width transfer of b with the outputs enabled.
func QuadByte(b byte) Command {
	return Command{Data: uint16(b), Width: Quad, OutputEn: true}
}

type PageBreak uint8

const (
	PageBreakNone PageBreak = iota
	PageBreak256
	PageBreak1024
	PageBreak4096
)

// Timing of a memory window.
type Timing struct {
	Cooldown    uint8 // 2 bits, in units of 64 clocks
	PageBreak   PageBreak
	SelectHold  uint8 // 2 bits
	MaxSelect   uint8 // 6 bits, in units of 64 clocks
	MinDeselect uint8 // 5 bits, in clocks
	RxDelay     uint8 // 3 bits, in half clocks
	ClkDiv      uint8
}

// Format of a memory window read or write transfer.
type Format struct {
	Prefix, Addr, Suffix, Dummy, Data Width

	PrefixLen uint8 // 0 or 8 bits
	SuffixLen uint8 // 0, 8 or 16 bits
	DummyLen  uint8 // 0 to 28 bits in steps of 4
}

// Window is the configuration of memory window 1.
type Window struct {
	Timing   Timing
	Read     Format
	ReadCmd  uint8
	Write    Format
	WriteCmd uint8
}
