package heap

import "errors"

var (
	// ErrOutOfMemory indicates the arena could not grow: the grower refused
	// or the arena's size ceiling was reached. The arena is unchanged when
	// this is returned.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrClosed indicates an operation on an arena whose Close has run.
	ErrClosed = errors.New("heap: arena closed")
)
