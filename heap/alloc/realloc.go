package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// Realloc resizes the block at ref to hold at least size payload bytes.
// It prefers resizing in place: shrinks split the existing block, and
// grows absorb a free physical successor when that closes the gap. When
// neither works the payload moves to a fresh block and the old one is
// released, so the returned reference may differ from ref.
//
// Realloc(NullRef, size) behaves like Alloc(size), and Realloc(ref, 0)
// behaves like Free(ref). On failure the original block is untouched and
// still owned by the caller.
func (al *Allocator) Realloc(ref heap.Ref, size uint64) (heap.Ref, []byte, error) {
	al.stats.ReallocCalls++

	if ref == heap.NullRef {
		return al.Alloc(size)
	}
	if size == 0 {
		if err := al.Free(ref); err != nil {
			return heap.NullRef, nil, err
		}
		return heap.NullRef, nil, nil
	}

	if err := al.checkRef(ref); err != nil {
		return heap.NullRef, nil, err
	}
	if !al.ar.Allocated(ref) {
		return heap.NullRef, nil, fmt.Errorf("%w: ref %#x is free", ErrBadRef, ref)
	}
	if size > format.MaxArenaBytes {
		return heap.NullRef, nil, fmt.Errorf("alloc: request of %d bytes: %w", size, heap.ErrOutOfMemory)
	}

	csize := al.ar.BlockSize(ref)
	asize := format.AdjustSize(size)

	// Shrink, or a grow the current block already covers.
	if asize <= csize {
		if csize-asize >= format.MinBlockSize {
			al.stats.InPlaceShrinks++
			al.ar.SetBlockTags(ref, asize, true)
			tail := al.ar.NextBlock(ref)
			al.ar.SetBlockTags(tail, csize-asize, false)
			al.freeAndCoalesce(tail)
			debugLogf("shrink block %#x: %d kept, %d back to index", ref, asize, csize-asize)
		}
		return ref, al.ar.Payload(ref), nil
	}

	// Grow in place by absorbing the next block when it is free and the
	// combined size closes the gap. The sentinel after the last block is
	// tagged allocated, so this test is safe at the region end.
	next := al.ar.NextBlock(ref)
	if !al.ar.Allocated(next) {
		combined := csize + al.ar.BlockSize(next)
		if combined >= asize {
			al.stats.InPlaceGrows++
			al.index.remove(next)
			if combined-asize >= format.MinBlockSize {
				al.stats.SplitCount++
				al.ar.SetBlockTags(ref, asize, true)
				tail := al.ar.NextBlock(ref)
				al.ar.SetBlockTags(tail, combined-asize, false)
				al.freeAndCoalesce(tail)
			} else {
				al.ar.SetBlockTags(ref, combined, true)
			}
			debugLogf("grow block %#x in place to %d", ref, al.ar.BlockSize(ref))
			return ref, al.ar.Payload(ref), nil
		}
	}

	// Move. Alloc may grow the arena and relocate the backing array;
	// payload views are re-derived from the offset afterward, so the
	// copy below reads the old block at its new backing position.
	newRef, newBuf, err := al.Alloc(size)
	if err != nil {
		return heap.NullRef, nil, err
	}
	copy(newBuf, al.ar.Payload(ref))
	if err := al.Free(ref); err != nil {
		return heap.NullRef, nil, err
	}
	al.stats.CopiedResizes++
	debugLogf("moved block %#x -> %#x for %d bytes", ref, newRef, size)
	return newRef, newBuf, nil
}
