// Package comparison provides benchmarks comparing the heapkit free-list
// policies against each other and against native Go allocation.
package comparison

import (
	"github.com/joshuapare/heapkit/heap"
)

// BenchmarkSizes defines the payload sizes used across benchmarks,
// spanning the small, middle, and chunk-scale ends of the class table.
var BenchmarkSizes = []struct {
	Name string // Short name for benchmark output
	Size uint64 // Payload bytes per request
}{
	{Name: "tiny", Size: 16},
	{Name: "small", Size: 128},
	{Name: "medium", Size: 1024},
	{Name: "large", Size: 4000},
}

// Prevent compiler optimizations from eliminating benchmark code
// These variables are written to by benchmarks to ensure operations aren't optimized away.
var (
	benchRef   heap.Ref
	benchByte  byte
	benchSlice []byte
)
