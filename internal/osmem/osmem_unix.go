//go:build unix

package osmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Grow returns a slice of length need whose leading bytes preserve data.
// When the current mapping is exhausted a larger anonymous mapping is
// created, the contents copied across, and the old mapping released, so the
// returned slice usually has a different base address.
func (r *Region) Grow(data []byte, need int) ([]byte, error) {
	if need < 0 {
		return nil, fmt.Errorf("osmem: negative size %d", need)
	}
	if need <= len(r.mapped) {
		return r.mapped[:need], nil
	}

	newCap := 2 * len(r.mapped)
	if newCap < need {
		newCap = need
	}
	newCap = pageCeil(newCap)

	m, err := unix.Mmap(-1, 0, newCap,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("osmem: map %d bytes: %w", newCap, err)
	}
	copy(m, data)

	if r.mapped != nil {
		if err := unix.Munmap(r.mapped); err != nil {
			_ = unix.Munmap(m)
			return nil, fmt.Errorf("osmem: unmap during grow: %w", err)
		}
	}
	r.mapped = m
	return m[:need], nil
}

// Close releases the mapping. The Region may be grown again afterwards.
func (r *Region) Close() error {
	if r.mapped == nil {
		return nil
	}
	err := unix.Munmap(r.mapped)
	r.mapped = nil
	if err != nil {
		return fmt.Errorf("osmem: unmap: %w", err)
	}
	return nil
}
