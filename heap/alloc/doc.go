// Package alloc provides block allocation and free-list management over a
// heap arena.
//
// # Overview
//
// This package implements a classic boundary-tag allocator: first-fit
// placement with splitting, immediate coalescing of freed neighbors, and
// monotonic arena growth when no free block fits. Free blocks are indexed
// by intrusive doubly-linked lists threaded through the blocks' own payload
// words, so the index lives entirely inside the arena image and survives a
// backing-slice move on growth.
//
// # Policies
//
// Two interchangeable free-list policies are provided:
//
// PolicySegregated (default): an array of size-class buckets
//
//   - 12 classes with exponentially growing ranges (32B doubling upward)
//   - address-ordered insertion within each bucket
//   - first-fit scan of the matching bucket, escalating to larger classes
//   - escalation terminates at the first non-empty bucket, since any block
//     in a higher class is large enough by construction
//
// PolicyExplicit: a single list of all free blocks
//
//   - last-in-first-out insertion at the head
//   - first-fit scan of the whole list
//   - the reference behavior for tests and fragmentation comparisons
//
// # Usage Example
//
//	ar, err := heap.NewArena(nil)
//	if err != nil {
//	    return err
//	}
//	defer ar.Close()
//
//	al, err := alloc.New(ar, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := al.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write payload bytes through buf...
//	copy(buf, payload)
//
//	// Later, release the block
//	err = al.Free(ref)
//
// # Size Classes
//
// The segregated policy maintains 12 buckets:
//
//	Class  0:   32 -    63 bytes
//	Class  1:   64 -   127 bytes
//	Class  2:  128 -   255 bytes
//	Class  3:  256 -   511 bytes
//	Class  4:  512 -  1023 bytes
//	Class  5:    1 -     2 KB
//	Class  6:    2 -     4 KB
//	Class  7:    4 -     8 KB
//	Class  8:    8 -    16 KB
//	Class  9:   16 -    32 KB
//	Class 10:   32 -    64 KB
//	Class 11:   64+       KB (large allocations)
//
// # Sizing Rules
//
// Requests are quoted in payload bytes. The allocator adds the two boundary
// tags, rounds up to 8-byte alignment, and never carves a block below 32
// bytes so any block can later rejoin a free list. Splitting only happens
// when the remainder itself meets that minimum; otherwise the whole block
// is handed out and the slack stays inside it.
//
// # Resizing
//
// Realloc prefers in-place resizing: shrinks split the existing block and
// grows absorb a free physical successor when one closes the gap. Only when
// neither works does it fall back to allocate-copy-release, and a failed
// fallback leaves the original block untouched.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. The intended ownership model is
// a single goroutine per heap; callers needing sharing must synchronize
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/heap: the arena and block views
//   - github.com/joshuapare/heapkit/heap/verify: integrity auditing
//   - github.com/joshuapare/heapkit/heap/printer: block-map rendering
//   - github.com/joshuapare/heapkit/internal/format: layout constants
package alloc
