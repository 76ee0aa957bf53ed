package rp_test

import (
	"bytes"
	"testing"

	"github.com/monocap/monocap/rp"
)

func TestReadWriteWords(t *testing.T) {
	testdata := []byte("Hello everybody, I'm Bonzo!")
	initBytes := make([]byte, 64)
	for i := range initBytes {
		initBytes[i] = byte(i+0x30) % 64
	}

	for memAlign := 0; memAlign < 7; memAlign += 1 {
		for sliceLen := 0; sliceLen < len(testdata); sliceLen += 1 {
			mem := make([]uint32, 16)
			rxbuf := make([]byte, 64)

			rp.WriteWords(mem, 0, initBytes)

			tx := testdata[:sliceLen]
			rp.WriteWords(mem, memAlign, tx)

			rx := make([]byte, sliceLen)
			rp.ReadWords(mem, memAlign, rx)

			if !bytes.Equal(tx, rx) {
				t.Logf("tx %q", string(tx))
				t.Logf("rx %q", string(rx))
				t.Error("mismatch at ", memAlign, sliceLen)
			}

			rp.ReadWords(mem, 0, rxbuf)
			start := memAlign
			if !bytes.Equal(rxbuf[:start], initBytes[:start]) {
				t.Logf("got      %q", string(rxbuf[:start]))
				t.Logf("expected %q", string(initBytes[:start]))
				t.Error("modified preceding data", memAlign, sliceLen)
			}
			end := memAlign + sliceLen
			if !bytes.Equal(rxbuf[end:], initBytes[end:]) {
				t.Logf("got      %q", string(rxbuf[end:]))
				t.Logf("expected %q", string(initBytes[end:]))
				t.Error("modified succeeding data", memAlign, sliceLen)
			}
			if t.Failed() {
				t.Fatal()
			}
		}
	}
}

func TestWordsLittleEndian(t *testing.T) {
	mem := []uint32{0x44332211}
	p := make([]byte, 4)
	rp.ReadWords(mem, 0, p)
	if !bytes.Equal(p, []byte{0x11, 0x22, 0x33, 0x44}) {
		t.Fatalf("expected little endian bytes, got % x", p)
	}
}
