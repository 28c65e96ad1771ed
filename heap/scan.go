package heap

import "github.com/joshuapare/heapkit/internal/format"

// Blocks walks every block in address order, from the first real block up
// to the epilogue, calling fn with each block's ref, total size, and
// allocated flag. fn returning false stops the walk early.
//
// The walk trusts the region's tags; it stops at the first tag that cannot
// be advanced over (undersized, misaligned, or overrunning the region).
// Auditing of suspect images belongs to heap/verify, which walks with
// bounds-checked reads instead.
func (a *Arena) Blocks(fn func(ref Ref, size uint64, allocated bool) bool) {
	end := a.End()
	for ref := Ref(format.FirstBlockRef); ref < end; {
		hdr := a.Header(ref)
		size := format.TagSize(hdr)
		if size < format.MinBlockSize || !format.IsAligned(size) || ref+size > end {
			return
		}
		if !fn(ref, size, format.TagAllocated(hdr)) {
			return
		}
		ref += size
	}
}

// FreeBytes sums the sizes of all free blocks.
func (a *Arena) FreeBytes() uint64 {
	var total uint64
	a.Blocks(func(_ Ref, size uint64, allocated bool) bool {
		if !allocated {
			total += size
		}
		return true
	})
	return total
}

// LiveBytes sums the sizes of all allocated blocks, sentinels excluded.
func (a *Arena) LiveBytes() uint64 {
	var total uint64
	a.Blocks(func(_ Ref, size uint64, allocated bool) bool {
		if allocated {
			total += size
		}
		return true
	})
	return total
}
