package alloc

import "github.com/joshuapare/heapkit/heap"

// segregatedList keeps free blocks in NumSizeClasses buckets, one
// doubly-linked list per class, sorted by ascending offset. Address order
// makes placement deterministic and tends to cluster survivors at low
// offsets, which lowers fragmentation relative to LIFO insertion.
type segregatedList struct {
	ar    *heap.Arena
	heads [NumSizeClasses]heap.Ref
}

func newSegregatedList(ar *heap.Arena) *segregatedList {
	return &segregatedList{ar: ar}
}

func (l *segregatedList) insert(ref heap.Ref) {
	c := SizeClass(l.ar.BlockSize(ref))

	var prev heap.Ref
	cur := l.heads[c]
	for cur != heap.NullRef && cur < ref {
		prev = cur
		cur = l.ar.NextFree(cur)
	}

	l.ar.SetNextFree(ref, cur)
	l.ar.SetPrevFree(ref, prev)
	if prev == heap.NullRef {
		l.heads[c] = ref
	} else {
		l.ar.SetNextFree(prev, ref)
	}
	if cur != heap.NullRef {
		l.ar.SetPrevFree(cur, ref)
	}
}

func (l *segregatedList) remove(ref heap.Ref) {
	// The class must come from the block's current size, which is why
	// callers unlink before rewriting tags.
	c := SizeClass(l.ar.BlockSize(ref))
	next := l.ar.NextFree(ref)
	prev := l.ar.PrevFree(ref)
	if prev == heap.NullRef {
		l.heads[c] = next
	} else {
		l.ar.SetNextFree(prev, next)
	}
	if next != heap.NullRef {
		l.ar.SetPrevFree(next, prev)
	}
	l.ar.ClearLinks(ref)
}

func (l *segregatedList) findFit(asize uint64) heap.Ref {
	for c := SizeClass(asize); c < NumSizeClasses; c++ {
		for ref := l.heads[c]; ref != heap.NullRef; ref = l.ar.NextFree(ref) {
			if l.ar.BlockSize(ref) >= asize {
				return ref
			}
		}
	}
	return heap.NullRef
}

func (l *segregatedList) walk(fn func(class int, ref heap.Ref) bool) {
	for c := 0; c < NumSizeClasses; c++ {
		for ref := l.heads[c]; ref != heap.NullRef; ref = l.ar.NextFree(ref) {
			if !fn(c, ref) {
				return
			}
		}
	}
}

func (l *segregatedList) reset() {
	l.heads = [NumSizeClasses]heap.Ref{}
}
