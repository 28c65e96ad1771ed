package verify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/format"
)

func newTestHeap(t *testing.T, cfg *alloc.Config) *alloc.Allocator {
	t.Helper()
	ar, err := heap.NewArena(&heap.ArenaOptions{Grower: &heap.SliceGrower{}})
	require.NoError(t, err)
	t.Cleanup(func() { ar.Close() })

	al, err := alloc.New(ar, cfg)
	require.NoError(t, err)
	return al
}

func kinds(r *Report) []Kind {
	out := make([]Kind, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Kind
	}
	return out
}

func TestHeap_CleanOnFreshArena(t *testing.T) {
	al := newTestHeap(t, nil)

	report := Heap(al)
	require.True(t, report.OK(), "fresh arena must verify clean:\n%s", report)
	require.Equal(t, 1, report.Blocks)
	require.Equal(t, 1, report.FreeBlocks)
	require.EqualValues(t, format.ChunkSize, report.FreeBytes)
}

func TestHeap_CleanAfterChurn(t *testing.T) {
	for _, policy := range []alloc.Policy{alloc.PolicySegregated, alloc.PolicyExplicit} {
		t.Run(policy.String(), func(t *testing.T) {
			al := newTestHeap(t, &alloc.Config{Policy: policy})

			var refs []heap.Ref
			for i := 0; i < 24; i++ {
				ref, _, err := al.Alloc(uint64(24 + i*61))
				require.NoError(t, err)
				refs = append(refs, ref)
			}
			for i := 0; i < len(refs); i += 2 {
				require.NoError(t, al.Free(refs[i]))
			}
			for i := 1; i < len(refs); i += 4 {
				ref, _, err := al.Realloc(refs[i], uint64(700+i))
				require.NoError(t, err)
				refs[i] = ref
			}

			report := Heap(al)
			require.True(t, report.OK(), "churned heap must verify clean:\n%s", report)
		})
	}
}

func TestHeap_DetectsFooterMismatch(t *testing.T) {
	al := newTestHeap(t, nil)

	ref, _, err := al.Alloc(100)
	require.NoError(t, err)

	// Flip the allocated bit in the footer only. The header still reads
	// a 120-byte allocated block, so the walk continues past it.
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.FooterOff(ref, 120)), format.PackTag(120, false))

	report := Heap(al)
	require.Equal(t, []Kind{KindTagMismatch}, kinds(report))
	require.Equal(t, uint64(ref), report.Violations[0].Offset)
}

func TestArena_DetectsCorruptSize(t *testing.T) {
	al := newTestHeap(t, nil)

	ref, _, err := al.Alloc(100)
	require.NoError(t, err)

	// A misaligned size means the chain position of every later block is
	// unknown, so the walk must stop at this block.
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.HeaderOff(ref)), format.PackTag(100, true))

	report := Arena(al.Arena())
	require.Equal(t, []Kind{KindBadSize}, kinds(report))
	require.Equal(t, uint64(ref), report.Violations[0].Offset)
	require.Equal(t, 0, report.Blocks, "walk must stop before counting the bad block")
}

func TestArena_DetectsDamagedEpilogue(t *testing.T) {
	al := newTestHeap(t, nil)

	data := al.Arena().Bytes()
	format.PutU64(data, len(data)-format.WordSize, format.PackTag(64, false))

	report := Arena(al.Arena())
	require.Equal(t, []Kind{KindSentinel}, kinds(report))
	require.Equal(t, uint64(len(data)-format.WordSize), report.Violations[0].Offset)
}

func TestArena_DetectsAdjacentFreeBlocks(t *testing.T) {
	al := newTestHeap(t, nil)

	_, _, err := al.Alloc(100)
	require.NoError(t, err)
	b, _, err := al.Alloc(100)
	require.NoError(t, err)

	// Hand-retag b as free without telling the allocator. Its successor
	// is the free chunk tail, so two free blocks now touch.
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.HeaderOff(b)), format.PackTag(120, false))
	format.PutU64(data, int(format.FooterOff(b, 120)), format.PackTag(120, false))

	report := Arena(al.Arena())
	require.Contains(t, kinds(report), KindAdjacentFree)
}

func TestHeap_DetectsUnindexedFreeBlock(t *testing.T) {
	al := newTestHeap(t, nil)

	_, _, err := al.Alloc(100)
	require.NoError(t, err)
	b, _, err := al.Alloc(100)
	require.NoError(t, err)
	_, _, err = al.Alloc(100)
	require.NoError(t, err)

	// b sits between two allocated blocks. Retagging it free by hand
	// leaves a free block the index knows nothing about.
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.HeaderOff(b)), format.PackTag(120, false))
	format.PutU64(data, int(format.FooterOff(b, 120)), format.PackTag(120, false))

	report := Heap(al)
	require.Equal(t, []Kind{KindIndexMissing}, kinds(report))
	require.Equal(t, uint64(b), report.Violations[0].Offset)
}

func TestHeap_DetectsStaleIndexEntry(t *testing.T) {
	al := newTestHeap(t, nil)

	_, _, err := al.Alloc(100)
	require.NoError(t, err)

	// The chunk tail is indexed as free. Retag it allocated by hand: the
	// index now points at a block whose tags disown it.
	tail := al.Arena().NextBlock(format.FirstBlockRef)
	size := al.Arena().BlockSize(tail)
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.HeaderOff(tail)), format.PackTag(size, true))
	format.PutU64(data, int(format.FooterOff(tail, size)), format.PackTag(size, true))

	report := Heap(al)
	require.Equal(t, []Kind{KindIndexStale}, kinds(report))
	require.Equal(t, uint64(tail), report.Violations[0].Offset)
	require.Zero(t, report.FreeBlocks)
}

func TestHeap_DetectsWrongBucket(t *testing.T) {
	al := newTestHeap(t, nil)

	_, _, err := al.Alloc(100)
	require.NoError(t, err)

	// Shrink the tail's size in both tags without moving buckets. The
	// index still files it under the class of its old size, and the
	// chain behind the shrunken block no longer reaches the epilogue.
	tail := al.Arena().NextBlock(format.FirstBlockRef)
	data := al.Arena().Bytes()
	format.PutU64(data, int(format.HeaderOff(tail)), format.PackTag(64, false))
	format.PutU64(data, int(format.FooterOff(tail, 64)), format.PackTag(64, false))

	report := Heap(al)
	require.Contains(t, kinds(report), KindWrongBucket)
	require.Contains(t, kinds(report), KindChainBreak)
}

func TestReport_String(t *testing.T) {
	al := newTestHeap(t, nil)

	clean := Heap(al)
	require.True(t, strings.HasPrefix(clean.String(), "ok:"), "got %q", clean.String())

	data := al.Arena().Bytes()
	format.PutU64(data, len(data)-format.WordSize, format.PackTag(64, false))

	report := Heap(al)
	require.False(t, report.OK())
	text := report.String()
	require.Contains(t, text, "SENTINEL")
	require.Contains(t, text, "violation(s)")
}
