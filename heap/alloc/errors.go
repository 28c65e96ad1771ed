package alloc

import "errors"

var (
	// ErrBadRef indicates a reference that does not name an allocated
	// block in this arena: out of range, misaligned, or carrying tags the
	// allocator never wrote.
	ErrBadRef = errors.New("alloc: bad block reference")

	// ErrDoubleFree indicates a free of a block that is already free.
	ErrDoubleFree = errors.New("alloc: block already free")
)
