package heap

// Ref is a block reference: the byte offset of the block's payload within
// the arena. The type alias keeps offset arithmetic conversion-free across
// packages.
//
// A Ref stays valid across arena growth even though the backing slice may
// move; payload slices do not.
type Ref = uint64

// NullRef is the null block reference. Offset zero is the arena's alignment
// padding word and can never address a payload.
const NullRef Ref = 0
