package alloc

// Stats carries cumulative operation counters. Counters only increase;
// read them through Allocator.Stats, which returns a copy.
type Stats struct {
	// AllocCalls is the total number of Alloc calls, including size-0
	// no-ops and failures.
	AllocCalls uint64

	// AllocFastPath counts allocations served from the index without
	// growing the arena.
	AllocFastPath uint64

	// AllocSlowPath counts allocations that had to grow the arena first.
	AllocSlowPath uint64

	// FreeCalls is the total number of Free calls, including NullRef
	// no-ops and rejected references.
	FreeCalls uint64

	// ReallocCalls is the total number of Realloc calls.
	ReallocCalls uint64

	// ExtendCalls counts arena growth operations driven by allocation.
	ExtendCalls uint64

	// ExtendBytes is the total block bytes added by those growths.
	ExtendBytes uint64

	// BytesAllocated is the total block bytes handed out, including tag
	// overhead and alignment slack.
	BytesAllocated uint64

	// BytesFreed is the total block bytes released.
	BytesFreed uint64

	// SplitCount counts blocks split because the remainder could stand
	// alone.
	SplitCount uint64

	// CoalesceForward counts merges with a free successor only.
	CoalesceForward uint64

	// CoalesceBackward counts merges with a free predecessor only.
	CoalesceBackward uint64

	// CoalesceBoth counts merges with free blocks on both sides.
	CoalesceBoth uint64

	// InPlaceGrows counts Realloc calls satisfied by absorbing the next
	// free block.
	InPlaceGrows uint64

	// InPlaceShrinks counts Realloc calls that split the existing block
	// to give back the tail.
	InPlaceShrinks uint64

	// CopiedResizes counts Realloc calls that fell back to
	// allocate-copy-release.
	CopiedResizes uint64
}

// Stats returns a snapshot of the allocator's counters.
func (al *Allocator) Stats() Stats {
	return al.stats
}

// FreeBytes reports the total block bytes currently free.
func (al *Allocator) FreeBytes() uint64 {
	return al.ar.FreeBytes()
}

// LiveBytes reports the total block bytes currently allocated, excluding
// the bootstrap sentinels.
func (al *Allocator) LiveBytes() uint64 {
	return al.ar.LiveBytes()
}
