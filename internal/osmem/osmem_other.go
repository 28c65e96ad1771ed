//go:build !unix

package osmem

import "fmt"

// Grow returns a slice of length need whose leading bytes preserve data.
// Without mmap the region is a plain Go slice; append supplies the capacity
// headroom and the garbage collector reclaims old backing arrays.
func (r *Region) Grow(data []byte, need int) ([]byte, error) {
	if need < 0 {
		return nil, fmt.Errorf("osmem: negative size %d", need)
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

// Close is a no-op without a mapping to release.
func (r *Region) Close() error {
	return nil
}
