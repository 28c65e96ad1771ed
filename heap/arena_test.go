package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

func newTestArena(t *testing.T, opts *ArenaOptions) *Arena {
	t.Helper()
	if opts == nil {
		opts = &ArenaOptions{Grower: &SliceGrower{}}
	}
	a, err := NewArena(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewArena_BootstrapLayout(t *testing.T) {
	a := newTestArena(t, nil)

	require.Equal(t, format.BootstrapSize+format.ChunkSize, a.Size())

	data := a.Bytes()
	require.Equal(t, uint64(0), format.ReadU64(data, format.PadOffset), "padding word must be zero")

	prologue := format.PackTag(format.PrologueSize, true)
	require.Equal(t, prologue, format.ReadU64(data, format.PrologueHeaderOffset))
	require.Equal(t, prologue, format.ReadU64(data, format.PrologueFooterOffset))

	// One free block spans the whole initial chunk.
	first := Ref(format.FirstBlockRef)
	require.Equal(t, uint64(format.ChunkSize), a.BlockSize(first))
	require.False(t, a.Allocated(first))
	require.Equal(t, a.Header(first), a.Footer(first))
	require.Equal(t, NullRef, a.NextFree(first))
	require.Equal(t, NullRef, a.PrevFree(first))

	// The block's successor is the epilogue: allocated, zero size.
	epi := a.NextBlock(first)
	require.True(t, a.IsEpilogue(epi))
	require.Equal(t, format.PackTag(0, true), format.ReadU64(data, a.Size()-format.WordSize))
}

func TestNewArena_InitialSizeRounded(t *testing.T) {
	a := newTestArena(t, &ArenaOptions{Grower: &SliceGrower{}, InitialSize: 100})
	require.Equal(t, format.BootstrapSize+format.ChunkSize, a.Size(),
		"sub-chunk initial sizes must round up to one chunk")

	b := newTestArena(t, &ArenaOptions{Grower: &SliceGrower{}, InitialSize: 4 * format.ChunkSize})
	require.Equal(t, uint64(4*format.ChunkSize), b.BlockSize(format.FirstBlockRef))
}

func TestExtend_FormatsOneFreeBlock(t *testing.T) {
	a := newTestArena(t, nil)
	oldEnd := a.End()

	ref, err := a.Extend(1)
	require.NoError(t, err)
	require.Equal(t, oldEnd, ref, "extension payload must begin at the old region end")
	require.Equal(t, uint64(format.ChunkSize), a.BlockSize(ref), "tiny requests grow by a whole chunk")
	require.False(t, a.Allocated(ref))
	require.Equal(t, a.Header(ref), a.Footer(ref))
	require.Equal(t, NullRef, a.NextFree(ref))

	// The extension claims the old epilogue as its header and plants a new
	// epilogue at the region end.
	require.True(t, a.IsEpilogue(a.NextBlock(ref)))
	require.Equal(t, format.PackTag(0, true), format.ReadU64(a.Bytes(), a.Size()-format.WordSize))
	require.Equal(t, int(oldEnd)+format.ChunkSize, a.Size())
}

func TestExtend_RefsSurviveBackingMove(t *testing.T) {
	a := newTestArena(t, nil)
	first := Ref(format.FirstBlockRef)
	a.SetBlockTags(first, format.ChunkSize, true)

	// Force many growth steps so append relocates the backing array.
	for i := 0; i < 6; i++ {
		_, err := a.Extend(format.ChunkSize)
		require.NoError(t, err)
	}

	require.Equal(t, uint64(format.ChunkSize), a.BlockSize(first))
	require.True(t, a.Allocated(first))
}

func TestExtend_OutOfMemoryLeavesArenaUntouched(t *testing.T) {
	a := newTestArena(t, &ArenaOptions{Grower: &SliceGrower{Limit: 5000}})
	sizeBefore := a.Size()

	_, err := a.Extend(format.ChunkSize)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, sizeBefore, a.Size())
	require.Equal(t, format.PackTag(0, true), format.ReadU64(a.Bytes(), a.Size()-format.WordSize),
		"epilogue must be intact after a failed extension")
}

func TestExtend_ArenaCeiling(t *testing.T) {
	a := newTestArena(t, nil)
	_, err := a.Extend(format.MaxArenaBytes + 1)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestClose_RejectsFurtherGrowth(t *testing.T) {
	a, err := NewArena(&ArenaOptions{Grower: &SliceGrower{}})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	_, err = a.Extend(format.ChunkSize)
	require.ErrorIs(t, err, ErrClosed)
}
