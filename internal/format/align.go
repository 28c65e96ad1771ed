package format

// Alignment and sizing rules for blocks. Every payload address and every
// block size is a multiple of AlignUnit; the adjusted size of a request
// additionally covers the boundary tags and the free-list link minimum.

// Align returns n aligned up to the next 8-byte boundary.
//
// Example:
//
//	Align(1)  = 8
//	Align(8)  = 8
//	Align(9)  = 16
func Align(n uint64) uint64 {
	return (n + AlignMask) &^ AlignMask
}

// IsAligned reports whether n sits on an 8-byte boundary.
func IsAligned(n uint64) bool {
	return n&AlignMask == 0
}

// AdjustSize converts a requested payload size into the total block size the
// allocator must carve: the payload plus both boundary tags, aligned up,
// and never below MinBlockSize so the block can later rejoin a free list.
func AdjustSize(request uint64) uint64 {
	adjusted := Align(request + BlockOverhead)
	if adjusted < MinBlockSize {
		return MinBlockSize
	}
	return adjusted
}
