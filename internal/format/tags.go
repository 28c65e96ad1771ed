package format

// Boundary tag codec and neighbor arithmetic. All functions are pure offset
// math on payload references; none of them touch arena memory. A reference
// (Ref in package heap) is the byte offset of a block's payload, so the
// header sits one word below it and the footer one word before the block's
// end.

// PackTag encodes a block size and allocated flag into a single tag word.
// The size must be 8-aligned; the low bits are reserved for flags.
func PackTag(size uint64, allocated bool) uint64 {
	if allocated {
		return size | AllocBit
	}
	return size
}

// TagSize returns the block size recorded in a tag.
func TagSize(tag uint64) uint64 {
	return tag & SizeMask
}

// TagAllocated reports whether the tag marks its block allocated.
func TagAllocated(tag uint64) bool {
	return tag&AllocBit != 0
}

// HeaderOff returns the offset of the header word for the block at ref.
func HeaderOff(ref uint64) uint64 {
	return ref - WordSize
}

// FooterOff returns the offset of the footer word for a block at ref with
// the given total size.
func FooterOff(ref, size uint64) uint64 {
	return ref + size - BlockOverhead
}

// NextRef returns the payload offset of the physically following block.
func NextRef(ref, size uint64) uint64 {
	return ref + size
}

// PrevFooterOff returns the offset of the preceding block's footer, which
// sits directly above the header of the block at ref.
func PrevFooterOff(ref uint64) uint64 {
	return ref - BlockOverhead
}

// PrevRef returns the payload offset of the physically preceding block,
// given that block's size as read from its footer.
func PrevRef(ref, prevSize uint64) uint64 {
	return ref - prevSize
}

// LinkNextOff and LinkPrevOff locate the free-list link words inside a free
// block's payload. The words are only meaningful while the block is free.
func LinkNextOff(ref uint64) uint64 {
	return ref
}

func LinkPrevOff(ref uint64) uint64 {
	return ref + WordSize
}

// PayloadCap returns the caller-usable byte capacity of a block of the
// given total size.
func PayloadCap(size uint64) uint64 {
	return size - BlockOverhead
}
