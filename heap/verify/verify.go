package verify

import (
	"sort"
	"time"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Arena audits the physical block structure of a region: sentinel tags,
// header/footer agreement, exact tiling of the region by blocks, and the
// no-adjacent-free-blocks rule. It never panics on corrupt images; all
// reads are bounds-checked.
func Arena(ar *heap.Arena) *Report {
	start := time.Now()
	r := &Report{}
	arenaChecks(r, ar)
	r.ScanTime = time.Since(start)
	return r
}

// Heap audits everything Arena audits, then cross-checks the allocator's
// free index against the boundary tags: the indexed set must equal the
// free-tagged set, links must be symmetric and acyclic, and under the
// segregated policy each block must sit in the bucket its size maps to,
// in ascending address order.
func Heap(al *alloc.Allocator) *Report {
	start := time.Now()
	r := &Report{}
	free := arenaChecks(r, al.Arena())
	indexChecks(r, al, free)
	r.ScanTime = time.Since(start)
	return r
}

// arenaChecks walks the region and returns the free blocks it found,
// keyed by payload offset.
func arenaChecks(r *Report, ar *heap.Arena) map[uint64]uint64 {
	data := ar.Bytes()
	end := uint64(len(data))
	r.ArenaBytes = len(data)
	free := make(map[uint64]uint64)

	if end < format.BootstrapSize {
		r.add(KindSentinel, 0, "region of %d bytes is smaller than the bootstrap image", end)
		return free
	}

	sentinel := format.PackTag(format.BlockOverhead, true)
	if got := buf.U64LEAt(data, format.PrologueHeaderOffset); got != sentinel {
		r.add(KindSentinel, format.PrologueHeaderOffset, "prologue header %#x, want %#x", got, sentinel)
	}
	if got := buf.U64LEAt(data, format.PrologueFooterOffset); got != sentinel {
		r.add(KindSentinel, format.PrologueFooterOffset, "prologue footer %#x, want %#x", got, sentinel)
	}
	epilogue := format.PackTag(0, true)
	if got := buf.U64LEAt(data, int(end-format.WordSize)); got != epilogue {
		r.add(KindSentinel, end-format.WordSize, "epilogue %#x, want %#x", got, epilogue)
	}

	// Blocks must tile [FirstBlockRef, end) exactly, ending on the
	// epilogue header. The header is authoritative when tags disagree;
	// a size too corrupt to step over ends the walk.
	prevFree := false
	ref := uint64(format.FirstBlockRef)
	for ref < end {
		hdr := buf.U64LEAt(data, int(ref-format.WordSize))
		size := format.TagSize(hdr)

		if size == 0 {
			r.add(KindChainBreak, ref, "zero-size header before the region end")
			return free
		}
		if size < format.MinBlockSize || !format.IsAligned(size) {
			r.add(KindBadSize, ref, "block size %d is below minimum or misaligned", size)
			return free
		}
		if ref+size > end {
			r.add(KindChainBreak, ref, "%d-byte block overruns the region end", size)
			return free
		}

		ftr := buf.U64LEAt(data, int(ref+size-format.BlockOverhead))
		if ftr != hdr {
			r.add(KindTagMismatch, ref, "header %#x but footer %#x", hdr, ftr)
		}

		allocated := format.TagAllocated(hdr)
		if !allocated {
			if prevFree {
				r.add(KindAdjacentFree, ref, "free block directly follows a free block")
			}
			free[ref] = size
			r.FreeBlocks++
			r.FreeBytes += size
		}
		prevFree = !allocated
		r.Blocks++
		ref += size
	}
	return free
}

// indexChecks walks the free index and reconciles it with the free set
// the physical walk produced. The walk validates each forward link before
// the index follows it, so even arbitrary link corruption cannot take a
// read out of the region.
func indexChecks(r *Report, al *alloc.Allocator, free map[uint64]uint64) {
	ar := al.Arena()
	segregated := al.Policy() == alloc.PolicySegregated
	seen := make(map[uint64]bool, len(free))
	lastInClass := make(map[int]uint64)

	al.FreeBlocks(func(class int, ref heap.Ref) bool {
		size, isFree := free[ref]
		if !isFree {
			// Whatever sits at ref, its link words are payload bytes.
			// Following them could leave the region, so stop here.
			r.add(KindIndexStale, ref, "indexed block is not a free block")
			return false
		}
		if seen[ref] {
			r.add(KindLinkBroken, ref, "block indexed more than once, assuming a cycle")
			return false
		}
		seen[ref] = true

		next := ar.NextFree(ref)
		if next != heap.NullRef {
			if _, ok := free[next]; !ok {
				r.add(KindLinkBroken, ref, "next link %#x does not name a free block", next)
				return false
			}
			if ar.PrevFree(next) != ref {
				r.add(KindLinkBroken, ref, "next link %#x does not point back", next)
			}
		}

		if segregated && class >= 0 {
			if want := alloc.SizeClass(size); want != class {
				r.add(KindWrongBucket, ref, "%d-byte block filed in class %d, want %d", size, class, want)
			}
			if last, ok := lastInClass[class]; ok && ref <= last {
				r.add(KindBucketOrder, ref, "class %d not in ascending address order", class)
			}
			lastInClass[class] = ref
		}
		return true
	})

	missing := make([]uint64, 0)
	for ref := range free {
		if !seen[ref] {
			missing = append(missing, ref)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	for _, ref := range missing {
		r.add(KindIndexMissing, ref, "free block missing from the index")
	}
}
