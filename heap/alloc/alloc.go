package alloc

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// debugAlloc enables verbose allocation logging. Only for development.
const debugAlloc = false

// logAlloc enables allocation event logging via the environment.
// Set HEAPKIT_LOG_ALLOC=1 to trace placements, growth, and releases.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

func debugLogf(msg string, args ...any) {
	if debugAlloc {
		fmt.Fprintf(os.Stderr, "[alloc] "+msg+"\n", args...)
	}
}

// Allocator carves allocated blocks out of an arena and tracks the free
// ones in a policy-defined index. It does not own the arena; Close the
// arena through heap.Arena when done.
type Allocator struct {
	ar     *heap.Arena
	index  freeIndex
	policy Policy
	stats  Stats
}

// New builds an allocator over an existing arena. A nil cfg selects
// DefaultConfig. The arena is scanned once so free blocks present in the
// image, including the bootstrap chunk, are indexed immediately.
func New(ar *heap.Arena, cfg *Config) (*Allocator, error) {
	if ar == nil {
		return nil, errors.New("alloc: nil arena")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	al := &Allocator{ar: ar, policy: cfg.Policy}
	switch cfg.Policy {
	case PolicySegregated:
		al.index = newSegregatedList(ar)
	case PolicyExplicit:
		al.index = newExplicitList(ar)
	default:
		return nil, fmt.Errorf("alloc: unknown policy %d", cfg.Policy)
	}

	al.Reindex()
	return al, nil
}

// Policy returns the free-list policy this allocator was built with.
func (al *Allocator) Policy() Policy {
	return al.policy
}

// Arena returns the underlying arena.
func (al *Allocator) Arena() *heap.Arena {
	return al.ar
}

// Reindex drops the free index and rebuilds it from the boundary tags.
// Useful after loading an arena image produced elsewhere, since link words
// from a different policy are overwritten on insertion.
func (al *Allocator) Reindex() {
	al.index.reset()
	al.ar.Blocks(func(ref heap.Ref, size uint64, allocated bool) bool {
		if !allocated {
			al.ar.ClearLinks(ref)
			al.index.insert(ref)
		}
		return true
	})
}

// Alloc reserves a block with room for at least size payload bytes. It
// returns the block's reference and a byte slice over its payload. The
// slice is only valid until the next operation that grows the arena; the
// reference stays valid until the block is freed.
//
// A size of 0 succeeds and returns NullRef with a nil slice.
func (al *Allocator) Alloc(size uint64) (heap.Ref, []byte, error) {
	al.stats.AllocCalls++

	if size == 0 {
		return heap.NullRef, nil, nil
	}
	if size > format.MaxArenaBytes {
		return heap.NullRef, nil, fmt.Errorf("alloc: request of %d bytes: %w", size, heap.ErrOutOfMemory)
	}
	asize := format.AdjustSize(size)

	ref := al.index.findFit(asize)
	if ref != heap.NullRef {
		al.stats.AllocFastPath++
	} else {
		// Nothing fits. Grow by at least a chunk and consult the index
		// again: extension coalesces with a free tail block, so the fit
		// may be larger than the new space alone.
		al.stats.AllocSlowPath++
		if err := al.extend(asize); err != nil {
			return heap.NullRef, nil, err
		}
		ref = al.index.findFit(asize)
		if ref == heap.NullRef {
			return heap.NullRef, nil, fmt.Errorf("alloc: no block for %d bytes after growth: %w", asize, heap.ErrOutOfMemory)
		}
	}

	al.place(ref, asize)
	al.stats.BytesAllocated += al.ar.BlockSize(ref)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] alloc %d bytes -> ref %#x (block %d)\n",
			size, ref, al.ar.BlockSize(ref))
	}
	return ref, al.ar.Payload(ref), nil
}

// Free releases an allocated block. The freed block is merged with free
// physical neighbors before it is indexed, so no two free blocks are ever
// adjacent. Freeing NullRef is a no-op.
func (al *Allocator) Free(ref heap.Ref) error {
	al.stats.FreeCalls++

	if ref == heap.NullRef {
		return nil
	}
	if err := al.checkRef(ref); err != nil {
		return err
	}
	if !al.ar.Allocated(ref) {
		return fmt.Errorf("%w: ref %#x", ErrDoubleFree, ref)
	}

	size := al.ar.BlockSize(ref)
	al.stats.BytesFreed += size
	al.ar.SetBlockTags(ref, size, false)
	al.freeAndCoalesce(ref)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[ALLOC] free ref %#x (block %d)\n", ref, size)
	}
	return nil
}

// checkRef rejects references that cannot name an allocated block: out of
// range, misaligned, or carrying tags no allocation could have written.
func (al *Allocator) checkRef(ref heap.Ref) error {
	if !al.ar.Contains(ref) {
		return fmt.Errorf("%w: ref %#x outside arena", ErrBadRef, ref)
	}
	size := al.ar.BlockSize(ref)
	if size < format.MinBlockSize || !format.IsAligned(size) || ref+size > al.ar.End() {
		return fmt.Errorf("%w: ref %#x has corrupt size %d", ErrBadRef, ref, size)
	}
	if al.ar.Footer(ref) != al.ar.Header(ref) {
		return fmt.Errorf("%w: ref %#x header/footer mismatch", ErrBadRef, ref)
	}
	return nil
}

// extend grows the arena by at least asize bytes, rounded up to a full
// chunk, and routes the new free block through the coalescing choke point
// so it merges with a free block at the old end of the region.
func (al *Allocator) extend(asize uint64) error {
	n := asize
	if n < format.ChunkSize {
		n = format.ChunkSize
	}
	ref, err := al.ar.Extend(n)
	if err != nil {
		return fmt.Errorf("alloc: %w", err)
	}
	al.stats.ExtendCalls++
	al.stats.ExtendBytes += al.ar.BlockSize(ref)
	debugLogf("extend by %d bytes, new block at %#x", n, ref)
	al.freeAndCoalesce(ref)
	return nil
}

// place converts the free block at ref into an allocated block of asize
// bytes. When the remainder can stand alone as a block it is split off and
// re-indexed; otherwise the whole block is used and the slack stays inside
// it.
func (al *Allocator) place(ref heap.Ref, asize uint64) {
	csize := al.ar.BlockSize(ref)
	al.index.remove(ref)

	if csize-asize >= format.MinBlockSize {
		al.stats.SplitCount++
		al.ar.SetBlockTags(ref, asize, true)
		rem := al.ar.NextBlock(ref)
		al.ar.SetBlockTags(rem, csize-asize, false)
		al.freeAndCoalesce(rem)
		debugLogf("split block %#x: %d used, %d back to index", ref, asize, csize-asize)
	} else {
		al.ar.SetBlockTags(ref, csize, true)
	}
}

// freeAndCoalesce merges the free block at ref with free physical
// neighbors and inserts the result into the index. Every path that
// produces a free block funnels through here, so each free block is
// indexed exactly once and no two free blocks stay adjacent.
//
// The prologue and epilogue sentinels are tagged allocated, which ends
// the merge at both region boundaries without special cases.
func (al *Allocator) freeAndCoalesce(ref heap.Ref) heap.Ref {
	size := al.ar.BlockSize(ref)
	next := al.ar.NextBlock(ref)
	prevFree := !format.TagAllocated(al.ar.PrevTag(ref))
	nextFree := !al.ar.Allocated(next)

	switch {
	case prevFree && nextFree:
		al.stats.CoalesceBoth++
		prev := al.ar.PrevBlock(ref)
		al.index.remove(prev)
		al.index.remove(next)
		size += al.ar.BlockSize(prev) + al.ar.BlockSize(next)
		ref = prev
	case nextFree:
		al.stats.CoalesceForward++
		al.index.remove(next)
		size += al.ar.BlockSize(next)
	case prevFree:
		al.stats.CoalesceBackward++
		prev := al.ar.PrevBlock(ref)
		al.index.remove(prev)
		size += al.ar.BlockSize(prev)
		ref = prev
	}

	al.ar.SetBlockTags(ref, size, false)
	al.ar.ClearLinks(ref)
	al.index.insert(ref)
	return ref
}

// FreeBlocks visits every indexed free block in the policy's scan order.
// class is the size-class bucket under the segregated policy and -1 under
// the explicit policy. Returning false stops the walk.
func (al *Allocator) FreeBlocks(fn func(class int, ref heap.Ref) bool) {
	al.index.walk(fn)
}
