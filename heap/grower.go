package heap

import "fmt"

// Grower supplies the raw bytes backing an arena. Grow returns a slice of
// length need whose leading len(data) bytes preserve data's contents and
// whose remainder reads as zero. The returned slice may use a different
// backing array; data must be the slice returned by the previous Grow.
//
// A Grower that also implements io.Closer has Close invoked by Arena.Close.
type Grower interface {
	Grow(data []byte, need int) ([]byte, error)
}

// SliceGrower is an in-memory Grower. It keeps everything in ordinary Go
// slices, which makes arena behavior fully deterministic for tests and
// short-lived tooling. A non-zero Limit caps the region size and turns
// further growth into a clean out-of-memory condition.
type SliceGrower struct {
	Limit int
}

// Grow implements Grower.
func (g *SliceGrower) Grow(data []byte, need int) ([]byte, error) {
	if need < 0 {
		return nil, fmt.Errorf("slice grower: negative size %d", need)
	}
	if g.Limit > 0 && need > g.Limit {
		return nil, fmt.Errorf("slice grower: %d bytes exceeds limit %d: %w", need, g.Limit, ErrOutOfMemory)
	}
	if need <= len(data) {
		return data[:need], nil
	}
	if need <= cap(data) {
		grown := data[:need]
		clear(grown[len(data):])
		return grown, nil
	}
	return append(data, make([]byte, need-len(data))...), nil
}
