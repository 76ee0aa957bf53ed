//go:build tinygo && rp2350

package qmi

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

type registers struct {
	directCSR volatile.Register32
	directTx  volatile.Register32
	directRx  volatile.Register32
	m0Timing  volatile.Register32
	m0Rfmt    volatile.Register32
	m0Rcmd    volatile.Register32
	m0Wfmt    volatile.Register32
	m0Wcmd    volatile.Register32
	m1Timing  volatile.Register32
	m1Rfmt    volatile.Register32
	m1Rcmd    volatile.Register32
	m1Wfmt    volatile.Register32
	m1Wcmd    volatile.Register32
}

const baseAddr uintptr = 0x400d_0000

var regs *registers = (*registers)(unsafe.Pointer(baseAddr))

type csrFlags uint32

const (
	csrEnable csrFlags = 1 << iota
	csrBusy
	csrAssertCS0
	csrAssertCS1
	_
	_
	csrAutoCS0
	csrAutoCS1
	_
	_
	csrTxFull
	csrTxEmpty
	_
	_
	_
	_
	csrRxEmpty
	csrRxFull
)

const csrClkDivShift = 22

const (
	txWidthShift = 16
	txWide       = 1 << 18
	txOE         = 1 << 19
	txNoPush     = 1 << 20
)

// Bus is the memory interface of the chip.
var Bus DirectBus = bus{}

type bus struct{}

func (bus) Configure(cfg Config) {
	regs.directCSR.Set(encodeConfig(cfg))
}

func (bus) Transact(cmd Command) uint32 {
	for regs.directCSR.Get()&uint32(csrTxEmpty) == 0 {
	}
	regs.directTx.Set(encodeCommand(cmd))
	for regs.directCSR.Get()&uint32(csrBusy) != 0 {
	}
	if cmd.NoPush {
		return 0
	}
	return regs.directRx.Get()
}

func (bus) SetWindow(w Window) {
	v := encodeWindow(w)
	regs.m1Timing.Set(v[0])
	regs.m1Rfmt.Set(v[1])
	regs.m1Rcmd.Set(v[2])
	regs.m1Wfmt.Set(v[3])
	regs.m1Wcmd.Set(v[4])
}

// rawOp is an Op encoded to register values ahead of entering direct mode.
type rawOp struct {
	kind   OpKind
	value  uint32
	window [5]uint32
}

// Sequence encodes ops while the memory windows still serve instruction
// fetches and hands them to runDirect, which executes from RAM.
func (bus) Sequence(ops []Op, rx []uint32) {
	raw := make([]rawOp, len(ops))
	for i, op := range ops {
		raw[i].kind = op.Kind
		switch op.Kind {
		case OpConfigure:
			raw[i].value = encodeConfig(op.Config)
		case OpTransact:
			raw[i].value = encodeCommand(op.Cmd)
		case OpWait:
			raw[i].value = op.Cycles
		case OpSetWindow:
			raw[i].window = encodeWindow(op.Window)
		}
	}
	runDirect(raw, rx)
}

// runDirect must not touch flash while direct mode is enabled: it calls
// nothing but compiler intrinsics, and uses no switch whose jump table would
// be placed in flash.
//
//go:section .ramfuncs
//go:noinline
//go:nobounds
func runDirect(ops []rawOp, rx []uint32) {
	r := (*registers)(unsafe.Pointer(baseAddr))
	n := 0
	for i := range ops {
		op := &ops[i]
		if op.kind == OpConfigure {
			volatile.StoreUint32(&r.directCSR.Reg, op.value)
		} else if op.kind == OpTransact {
			for volatile.LoadUint32(&r.directCSR.Reg)&uint32(csrTxEmpty) == 0 {
			}
			volatile.StoreUint32(&r.directTx.Reg, op.value)
			for volatile.LoadUint32(&r.directCSR.Reg)&uint32(csrBusy) != 0 {
			}
			if op.value&txNoPush == 0 {
				rx[n] = volatile.LoadUint32(&r.directRx.Reg)
			}
			n++
		} else if op.kind == OpWait {
			for c := op.value; c > 0; c-- {
				arm.Asm("nop")
			}
		} else if op.kind == OpSetWindow {
			volatile.StoreUint32(&r.m1Timing.Reg, op.window[0])
			volatile.StoreUint32(&r.m1Rfmt.Reg, op.window[1])
			volatile.StoreUint32(&r.m1Rcmd.Reg, op.window[2])
			volatile.StoreUint32(&r.m1Wfmt.Reg, op.window[3])
			volatile.StoreUint32(&r.m1Wcmd.Reg, op.window[4])
		}
	}
}

func encodeConfig(cfg Config) uint32 {
	var csr uint32
	if cfg.Enable {
		csr |= uint32(csrEnable)
	}
	if cfg.Select {
		csr |= uint32(csrAssertCS1)
	}
	if cfg.AutoSelect {
		csr |= uint32(csrAutoCS1)
	}
	return csr | uint32(cfg.ClkDiv)<<csrClkDivShift
}

func encodeCommand(cmd Command) uint32 {
	tx := uint32(cmd.Data) | uint32(cmd.Width)<<txWidthShift
	if cmd.Wide {
		tx |= txWide
	}
	if cmd.OutputEn {
		tx |= txOE
	}
	if cmd.NoPush {
		tx |= txNoPush
	}
	return tx
}

// encodeWindow returns the timing, read format, read command, write format
// and write command register values.
func encodeWindow(w Window) [5]uint32 {
	t := w.Timing
	return [5]uint32{
		uint32(t.Cooldown&0x3)<<30 |
			uint32(t.PageBreak&0x3)<<28 |
			uint32(t.SelectHold&0x3)<<23 |
			uint32(t.MaxSelect&0x3f)<<17 |
			uint32(t.MinDeselect&0x1f)<<12 |
			uint32(t.RxDelay&0x7)<<8 |
			uint32(t.ClkDiv),
		encodeFormat(w.Read),
		uint32(w.ReadCmd),
		encodeFormat(w.Write),
		uint32(w.WriteCmd),
	}
}

func encodeFormat(f Format) uint32 {
	v := uint32(f.Prefix) | uint32(f.Addr)<<2 | uint32(f.Suffix)<<4 |
		uint32(f.Dummy)<<6 | uint32(f.Data)<<8
	if f.PrefixLen == 8 {
		v |= 1 << 12
	}
	v |= uint32(f.SuffixLen/8) << 14
	v |= uint32(f.DummyLen/4) << 16
	return v
}
