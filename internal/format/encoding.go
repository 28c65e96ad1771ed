package format

import "encoding/binary"

// Binary encoding utilities for little-endian words.
//
// The arena image uses little-endian byte order for every tag and link word
// so an image is deterministic across architectures.
//
// Implementation: Uses encoding/binary.LittleEndian
//
// Performance Note: Go's standard library implementation is already highly
// optimized by the compiler. Modern Go compilers inline and optimize
// binary.LittleEndian calls extremely well, so no unsafe variants are kept.
//
// These helpers slice directly and panic on out-of-range offsets; they are
// for hot paths that operate inside the arena's established bounds. Code
// that inspects possibly-corrupt images reads through internal/buf instead.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
