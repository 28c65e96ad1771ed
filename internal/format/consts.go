// Package format houses the low-level block layout for the heap arena. The
// goal is to keep the offset arithmetic focused, allocation-free, and
// independent from the public API so higher-level packages can orchestrate
// blocks in a more ergonomic form.
//
// The arena is a flat little-endian image of 64-bit words. Every block is
// bracketed by a boundary tag pair: a header word before the payload and an
// identical footer word at the block's end. A tag packs the block size with
// the allocated flag, which makes both physical neighbors reachable in O(1)
// from any block without auxiliary tables.
package format

const (
	// WordSize is the size of a single tag or link word in bytes. Headers,
	// footers, and free-list links are each one word.
	WordSize = 8

	// AlignUnit is the required alignment of payload addresses and block
	// sizes. Equal to WordSize so every word field inside a block is
	// naturally aligned.
	AlignUnit = 8

	// AlignMask is the bitmask used for aligning to 8-byte boundaries (AlignUnit - 1).
	AlignMask = AlignUnit - 1

	// BlockOverhead is the bookkeeping cost of one block: header plus footer.
	BlockOverhead = 2 * WordSize

	// MinBlockSize is the smallest representable block. A free block must
	// hold header, footer, and the two list link words, so nothing smaller
	// than 32 bytes can ever enter a free list.
	MinBlockSize = BlockOverhead + 2*WordSize

	// ChunkSize is the default arena extension quantum, one 4 KiB page.
	// Growth requests smaller than this are rounded up to it.
	ChunkSize = 1 << 12
)

// Boundary tag encoding. The size occupies the high 61 bits; sizes are
// 8-aligned so the low three bits are spare and bit 0 carries the flag.
const (
	// AllocBit marks the block as allocated when set in a tag.
	AllocBit = 0x1

	// SizeMask extracts the block size from a tag.
	SizeMask = ^uint64(AlignMask)
)

// Bootstrap image layout. A fresh arena starts with one padding word so the
// first payload lands 8-aligned, then the prologue pair and the epilogue
// header. The prologue and epilogue are permanently allocated sentinels:
// every real block has an allocated physical neighbor on both flanks, which
// keeps coalescing and heap walks from running off the region.
const (
	// PadOffset is the unused alignment word at the very start of the arena.
	PadOffset = 0

	// PrologueHeaderOffset and PrologueFooterOffset bracket the zero-payload
	// prologue sentinel block.
	PrologueHeaderOffset = WordSize
	PrologueFooterOffset = 2 * WordSize

	// PrologueSize is the tag size recorded in the prologue pair.
	PrologueSize = BlockOverhead

	// BootstrapSize is the byte length of the formatted image before the
	// first extension: padding word, prologue pair, epilogue header.
	BootstrapSize = 4 * WordSize

	// FirstBlockRef is the payload offset of the first real block once the
	// initial extension lands. Offset 0 is never a payload, which is what
	// makes the zero Ref usable as the null sentinel.
	FirstBlockRef = BootstrapSize
)

// MaxArenaBytes bounds total arena growth. Offsets stay comfortably inside
// int range on 64-bit platforms and tag size bits can never collide with
// the flag bits.
const MaxArenaBytes = 1 << 40
