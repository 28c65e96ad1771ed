package verify

import (
	"io"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/printer"
)

// Dump writes the arena's block map to w with free-list links included.
// Meant to accompany a failing Report in test output, where the raw
// block layout usually explains the violation faster than the offsets
// alone.
func Dump(ar *heap.Arena, w io.Writer) error {
	opts := printer.DefaultOptions()
	opts.ShowFree = true
	return printer.New(ar, w, opts).PrintBlocks()
}
