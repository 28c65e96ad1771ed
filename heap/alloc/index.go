package alloc

import "github.com/joshuapare/heapkit/heap"

// freeIndex is the interface both free-list policies implement. All state
// lives inside the arena as intrusive link words; the index itself only
// holds list heads, so rebuilding after an external arena mutation is a
// reset plus a block walk.
type freeIndex interface {
	// insert adds a free block to the index. The block's tags must
	// already be written; insert overwrites its link words.
	insert(ref heap.Ref)

	// remove unlinks a free block from the index and clears its link
	// words. The block's tags must still carry the size it was indexed
	// under.
	remove(ref heap.Ref)

	// findFit returns the first indexed block with size >= asize under
	// the policy's scan order, or NullRef when none fits.
	findFit(asize uint64) heap.Ref

	// walk visits every indexed block in scan order. class is the bucket
	// index under the segregated policy and -1 under the explicit
	// policy. Returning false stops the walk.
	walk(fn func(class int, ref heap.Ref) bool)

	// reset empties the index without touching the arena.
	reset()
}
