package alloc

import (
	"math/bits"

	"github.com/joshuapare/heapkit/internal/format"
)

// NumSizeClasses is the number of buckets maintained by the segregated
// policy. The last class is unbounded above.
const NumSizeClasses = 12

// Class 0 starts at MinBlockSize, which is 1<<minClassShift bytes.
const minClassShift = 5

// SizeClass maps a block size in bytes to its bucket index. Class c covers
// sizes in [MinBlockSize<<c, MinBlockSize<<(c+1)), except the top class
// which has no upper bound. Sizes below MinBlockSize never occur for real
// blocks and map to class 0.
func SizeClass(size uint64) int {
	c := bits.Len64(size) - (minClassShift + 1)
	if c < 0 {
		return 0
	}
	if c >= NumSizeClasses {
		return NumSizeClasses - 1
	}
	return c
}

// ClassFloor returns the smallest block size that falls into class c.
func ClassFloor(c int) uint64 {
	return format.MinBlockSize << uint(c)
}
