package main

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// newAllocator builds an arena on the default anonymous-memory grower and
// an allocator with the named policy.
func newAllocator(policyName string) (*alloc.Allocator, *heap.Arena, error) {
	policy, ok := alloc.ParsePolicy(policyName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown policy %q (use: segregated, explicit)", policyName)
	}

	ar, err := heap.NewArena(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create arena: %w", err)
	}
	al, err := alloc.New(ar, &alloc.Config{Policy: policy})
	if err != nil {
		ar.Close()
		return nil, nil, fmt.Errorf("create allocator: %w", err)
	}
	return al, ar, nil
}

// runWorkload drives a seeded mix of allocate, resize, and release
// operations, touching each payload so the blocks are really written.
// The same seed always produces the same heap image.
func runWorkload(al *alloc.Allocator, ops, maxSize int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	live := make([]heap.Ref, 0, 128)

	for i := 0; i < ops; i++ {
		switch {
		case len(live) == 0 || rng.Intn(100) < 55:
			size := uint64(1 + rng.Intn(maxSize))
			ref, buf, err := al.Alloc(size)
			if err != nil {
				return fmt.Errorf("op %d: alloc %d bytes: %w", i, size, err)
			}
			buf[0] = byte(i)
			live = append(live, ref)

		case rng.Intn(100) < 50:
			j := rng.Intn(len(live))
			size := uint64(1 + rng.Intn(maxSize))
			ref, _, err := al.Realloc(live[j], size)
			if err != nil {
				return fmt.Errorf("op %d: realloc to %d bytes: %w", i, size, err)
			}
			live[j] = ref

		default:
			j := rng.Intn(len(live))
			if err := al.Free(live[j]); err != nil {
				return fmt.Errorf("op %d: free %#x: %w", i, live[j], err)
			}
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	return nil
}
