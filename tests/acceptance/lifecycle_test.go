package acceptance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

// Allocating the exact hole left by a release must reuse it, whatever
// order the policy keeps its free list in.
func TestReleasedBlockIsReusedImmediately(t *testing.T) {
	for _, policy := range bothPolicies {
		t.Run(policy.String(), func(t *testing.T) {
			al, _ := newHeap(t, policy)

			ref1, _, err := al.Alloc(40)
			require.NoError(t, err)
			require.NoError(t, al.Free(ref1))

			ref2, _, err := al.Alloc(40)
			require.NoError(t, err)
			require.Equal(t, ref1, ref2, "freed block should be handed back")
			requireCleanHeap(t, al)
		})
	}
}

// Two neighboring blocks must merge into one free block no matter which
// of them is released first.
func TestAdjacentBlocksCoalesceInEitherOrder(t *testing.T) {
	orders := map[string][2]int{
		"first_then_second": {0, 1},
		"second_then_first": {1, 0},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			al, ar := newHeap(t, alloc.PolicySegregated)

			refs := make([]heap.Ref, 2)
			for i := range refs {
				ref, _, err := al.Alloc(100)
				require.NoError(t, err)
				refs[i] = ref
			}

			require.NoError(t, al.Free(refs[order[0]]))
			require.NoError(t, al.Free(refs[order[1]]))

			count, total, largest := freeBlockStats(ar)
			require.Equal(t, 1, count, "adjacent free blocks must merge")
			require.Equal(t, uint64(format.ChunkSize), total)
			require.Equal(t, total, largest)
			requireCleanHeap(t, al)
		})
	}
}

// A request spanning most of a chunk costs at most one extension. On a
// fresh heap the bootstrap chunk covers it outright.
func TestLargeRequestCostsAtMostOneGrowth(t *testing.T) {
	al, _ := newHeap(t, alloc.PolicySegregated)
	before := al.Stats().ExtendCalls

	_, _, err := al.Alloc(4000)
	require.NoError(t, err)
	require.Equal(t, uint64(0), al.Stats().ExtendCalls-before)

	// The second one no longer fits and costs exactly one more chunk.
	_, _, err = al.Alloc(4000)
	require.NoError(t, err)
	require.Equal(t, uint64(1), al.Stats().ExtendCalls-before)
	requireCleanHeap(t, al)
}
