package alloc

import "github.com/joshuapare/heapkit/heap"

// explicitList keeps every free block on one doubly-linked list with LIFO
// insertion. Freshly freed blocks are reused first, which keeps the scan
// short for churn-heavy workloads at the cost of a long walk when the head
// of the list is full of small blocks.
type explicitList struct {
	ar   *heap.Arena
	head heap.Ref
}

func newExplicitList(ar *heap.Arena) *explicitList {
	return &explicitList{ar: ar}
}

func (l *explicitList) insert(ref heap.Ref) {
	l.ar.SetNextFree(ref, l.head)
	l.ar.SetPrevFree(ref, heap.NullRef)
	if l.head != heap.NullRef {
		l.ar.SetPrevFree(l.head, ref)
	}
	l.head = ref
}

func (l *explicitList) remove(ref heap.Ref) {
	next := l.ar.NextFree(ref)
	prev := l.ar.PrevFree(ref)
	if prev == heap.NullRef {
		l.head = next
	} else {
		l.ar.SetNextFree(prev, next)
	}
	if next != heap.NullRef {
		l.ar.SetPrevFree(next, prev)
	}
	l.ar.ClearLinks(ref)
}

func (l *explicitList) findFit(asize uint64) heap.Ref {
	for ref := l.head; ref != heap.NullRef; ref = l.ar.NextFree(ref) {
		if l.ar.BlockSize(ref) >= asize {
			return ref
		}
	}
	return heap.NullRef
}

func (l *explicitList) walk(fn func(class int, ref heap.Ref) bool) {
	for ref := l.head; ref != heap.NullRef; ref = l.ar.NextFree(ref) {
		if !fn(-1, ref) {
			return
		}
	}
}

func (l *explicitList) reset() {
	l.head = heap.NullRef
}
