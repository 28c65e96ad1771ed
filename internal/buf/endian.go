// Package buf contains bounds-checked decoding helpers.
//
// The allocator's hot paths in internal/format slice directly and trust the
// arena's own invariants. Diagnostic code (heap/verify, heap/printer) walks
// images that may be corrupt, so it reads through these helpers instead: a
// short buffer yields a zero word, never a panic.
package buf

import "encoding/binary"

// U64LEAt reads a little-endian uint64 at off. Returns 0 when the word does
// not fit inside b.
func U64LEAt(b []byte, off int) uint64 {
	if off < 0 || off > len(b)-8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b[off:])
}
