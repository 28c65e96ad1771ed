// Package osmem provides the growable anonymous memory region backing a
// heap arena.
//
// On unix platforms the region lives in an anonymous private mapping and
// growth remaps with capacity headroom, so the backing address may change
// on any grow. Other platforms fall back to a plain Go slice. Callers must
// treat every Grow as invalidating previously returned slices and hold only
// offsets across calls.
package osmem

import "os"

// Region is a growable zero-initialized memory range. The zero value is
// ready to use; the first Grow establishes the initial mapping.
type Region struct {
	mapped []byte
}

// New returns an empty Region.
func New() *Region {
	return &Region{}
}

// pageCeil rounds n up to a whole number of OS pages.
func pageCeil(n int) int {
	ps := os.Getpagesize()
	return (n + ps - 1) / ps * ps
}
