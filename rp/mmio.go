package rp

import (
	"encoding/binary"

	"github.com/monocap/monocap/debug"
)

// WriteWords copies p into the word memory mem starting at byte offset off.
// Words only partially covered by p keep their other bytes, which requires
// reading them first.
func WriteWords(mem []uint32, off int, p []byte) {
	debug.AssertInRange(off+len(p), 0, len(mem)*4, "end of write")
	for len(p) > 0 {
		i, shift := off>>2, off&0x3
		n := min(4-shift, len(p))
		if n == 4 {
			mem[i] = binary.LittleEndian.Uint32(p)
		} else {
			data := mem[i]
			for j := range n {
				s := uint(shift+j) << 3
				data = data&^(0xff<<s) | uint32(p[j])<<s
			}
			mem[i] = data
		}
		p = p[n:]
		off += n
	}
}

// ReadWords copies from the word memory mem starting at byte offset off into p.
func ReadWords(mem []uint32, off int, p []byte) {
	debug.AssertInRange(off+len(p), 0, len(mem)*4, "end of read")
	for len(p) > 0 {
		i, shift := off>>2, off&0x3
		n := min(4-shift, len(p))
		data := mem[i]
		if n == 4 {
			binary.LittleEndian.PutUint32(p, data)
		} else {
			for j := range n {
				p[j] = byte(data >> (uint(shift+j) << 3))
			}
		}
		p = p[n:]
		off += n
	}
}
