package pio

// Instruction encodings of the PIO machine, limited to what the capture
// program and its model need.

type Op uint16

const (
	OpJmp  Op = 0b000 << 13
	OpWait Op = 0b001 << 13
	OpIn   Op = 0b010 << 13
	OpOut  Op = 0b011 << 13
	OpPush Op = 0b100 << 13
	OpMov  Op = 0b101 << 13
	OpIRQ  Op = 0b110 << 13
	OpSet  Op = 0b111 << 13

	opMask Op = 0b111 << 13
)

type WaitSrc uint8

const (
	WaitGPIO WaitSrc = iota
	WaitPin
	WaitIRQ
	WaitJmpPin
)

type Src uint8

const (
	SrcPins Src = 0b000
	SrcX    Src = 0b001
	SrcY    Src = 0b010
	SrcNull Src = 0b011
	SrcISR  Src = 0b110
	SrcOSR  Src = 0b111
)

// Wait returns a wait instruction stalling until src index has level polarity.
func Wait(polarity bool, src WaitSrc, index uint8) uint16 {
	v := uint16(OpWait) | uint16(src&0x3)<<5 | uint16(index&0x1f)
	if polarity {
		v |= 1 << 7
	}
	return v
}

// In returns an instruction shifting bitCount bits from src into the ISR.
// A bitCount of 32 is encoded as 0.
func In(src Src, bitCount uint8) uint16 {
	return uint16(OpIn) | uint16(src&0x7)<<5 | uint16(bitCount&0x1f)
}

// Jmp returns an unconditional jump to addr.
func Jmp(addr uint8) uint16 {
	return uint16(OpJmp) | uint16(addr&0x1f)
}

// Decoded is an instruction split into its fields.
type Decoded struct {
	Op    Op
	Delay uint8
	Arg1  uint8 // bits 7:5
	Arg2  uint8 // bits 4:0
}

func Decode(instr uint16) Decoded {
	return Decoded{
		Op:    Op(instr) & opMask,
		Delay: uint8(instr>>8) & 0x1f,
		Arg1:  uint8(instr>>5) & 0x7,
		Arg2:  uint8(instr) & 0x1f,
	}
}
