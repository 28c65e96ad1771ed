package acceptance

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/verify"
)

// Black-box tests driving the allocator through its public surface only:
// allocate, release, resize, then verify the resulting arena image.

var bothPolicies = []alloc.Policy{alloc.PolicySegregated, alloc.PolicyExplicit}

// newHeap builds an allocator on a slice-backed arena so the tests are
// deterministic and independent of the platform mapping path.
func newHeap(t *testing.T, policy alloc.Policy) (*alloc.Allocator, *heap.Arena) {
	t.Helper()
	ar, err := heap.NewArena(&heap.ArenaOptions{Grower: &heap.SliceGrower{}})
	require.NoError(t, err)
	t.Cleanup(func() { ar.Close() })

	al, err := alloc.New(ar, &alloc.Config{Policy: policy})
	require.NoError(t, err)
	return al, ar
}

// requireCleanHeap fails with the full report and a block dump when the
// heap image has any violation.
func requireCleanHeap(t *testing.T, al *alloc.Allocator) {
	t.Helper()
	report := verify.Heap(al)
	if !report.OK() {
		var dump bytes.Buffer
		_ = verify.Dump(al.Arena(), &dump)
		t.Fatalf("heap image not clean:\n%s\n%s", report, dump.String())
	}
}

// freeBlockStats walks the physical chain and summarizes the free blocks.
func freeBlockStats(ar *heap.Arena) (count int, total, largest uint64) {
	ar.Blocks(func(ref heap.Ref, size uint64, allocated bool) bool {
		if !allocated {
			count++
			total += size
			if size > largest {
				largest = size
			}
		}
		return true
	})
	return count, total, largest
}
