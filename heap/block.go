package heap

import "github.com/joshuapare/heapkit/internal/format"

// Typed O(1) views over the region. These trust the arena's invariants and
// slice directly; code that inspects possibly-corrupt images goes through
// internal/buf instead (see heap/verify).

// Header returns the boundary tag of the block at ref.
func (a *Arena) Header(ref Ref) uint64 {
	return format.ReadU64(a.data, int(format.HeaderOff(ref)))
}

// Footer returns the footer tag of the block at ref.
func (a *Arena) Footer(ref Ref) uint64 {
	return format.ReadU64(a.data, int(format.FooterOff(ref, a.BlockSize(ref))))
}

// BlockSize returns the total size of the block at ref, tags included.
func (a *Arena) BlockSize(ref Ref) uint64 {
	return format.TagSize(a.Header(ref))
}

// Allocated reports whether the block at ref is marked allocated.
func (a *Arena) Allocated(ref Ref) bool {
	return format.TagAllocated(a.Header(ref))
}

// SetBlockTags writes matching header and footer tags for a block of the
// given total size at ref.
func (a *Arena) SetBlockTags(ref Ref, size uint64, allocated bool) {
	tag := format.PackTag(size, allocated)
	format.PutU64(a.data, int(format.HeaderOff(ref)), tag)
	format.PutU64(a.data, int(format.FooterOff(ref, size)), tag)
}

// NextBlock returns the physically following block. On the last real block
// this lands on the epilogue, whose size reads as zero.
func (a *Arena) NextBlock(ref Ref) Ref {
	return format.NextRef(ref, a.BlockSize(ref))
}

// PrevTag returns the footer tag of the physically preceding block, which
// sits directly above ref's header. On the first real block this reads the
// prologue footer, which is always allocated.
func (a *Arena) PrevTag(ref Ref) uint64 {
	return format.ReadU64(a.data, int(format.PrevFooterOff(ref)))
}

// PrevBlock returns the physically preceding block using its footer size.
func (a *Arena) PrevBlock(ref Ref) Ref {
	return format.PrevRef(ref, format.TagSize(a.PrevTag(ref)))
}

// IsEpilogue reports whether ref addresses the epilogue sentinel.
func (a *Arena) IsEpilogue(ref Ref) bool {
	return ref == a.End()
}

// Payload returns the caller-usable bytes of the block at ref. The slice is
// invalidated by the next Extend.
func (a *Arena) Payload(ref Ref) []byte {
	return a.data[ref : ref+format.PayloadCap(a.BlockSize(ref))]
}

// Free-list link words. Meaningful only while the block is free; the
// allocator clears them when a block changes state.

// NextFree returns the block's next free-list link.
func (a *Arena) NextFree(ref Ref) Ref {
	return format.ReadU64(a.data, int(format.LinkNextOff(ref)))
}

// PrevFree returns the block's previous free-list link.
func (a *Arena) PrevFree(ref Ref) Ref {
	return format.ReadU64(a.data, int(format.LinkPrevOff(ref)))
}

// SetNextFree writes the block's next free-list link.
func (a *Arena) SetNextFree(ref, next Ref) {
	format.PutU64(a.data, int(format.LinkNextOff(ref)), next)
}

// SetPrevFree writes the block's previous free-list link.
func (a *Arena) SetPrevFree(ref, prev Ref) {
	format.PutU64(a.data, int(format.LinkPrevOff(ref)), prev)
}

// ClearLinks zeroes both link words of the block at ref.
func (a *Arena) ClearLinks(ref Ref) {
	a.SetNextFree(ref, NullRef)
	a.SetPrevFree(ref, NullRef)
}
