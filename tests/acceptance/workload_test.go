package acceptance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// A long seeded churn must end with a verifiably clean image on every
// policy, and releasing the survivors must collapse the heap back into
// a single free span.
func TestChurnEndsWithCleanImage(t *testing.T) {
	for _, policy := range bothPolicies {
		t.Run(policy.String(), func(t *testing.T) {
			al, ar := newHeap(t, policy)
			rng := rand.New(rand.NewSource(7))

			var live []heap.Ref
			for i := 0; i < 5000; i++ {
				switch {
				case len(live) == 0 || rng.Intn(100) < 55:
					size := uint64(1 + rng.Intn(900))
					ref, buf, err := al.Alloc(size)
					require.NoError(t, err)
					buf[0], buf[len(buf)-1] = 0xA5, 0x5A
					live = append(live, ref)

				case rng.Intn(100) < 50:
					j := rng.Intn(len(live))
					ref, buf, err := al.Realloc(live[j], uint64(1+rng.Intn(900)))
					require.NoError(t, err)
					buf[0], buf[len(buf)-1] = 0xA5, 0x5A
					live[j] = ref

				default:
					j := rng.Intn(len(live))
					buf := ar.Payload(live[j])
					require.Equal(t, byte(0xA5), buf[0])
					require.Equal(t, byte(0x5A), buf[len(buf)-1])
					require.NoError(t, al.Free(live[j]))
					live[j] = live[len(live)-1]
					live = live[:len(live)-1]
				}
			}
			requireCleanHeap(t, al)

			for _, ref := range live {
				require.NoError(t, al.Free(ref))
			}
			require.Equal(t, uint64(0), al.LiveBytes())

			count, total, largest := freeBlockStats(ar)
			require.Equal(t, 1, count, "empty heap should be one free span")
			require.Equal(t, total, largest)
			requireCleanHeap(t, al)
		})
	}
}

// Exhausting a capped arena must fail cleanly and leave the image valid
// and every earlier payload intact.
func TestExhaustionLeavesValidHeap(t *testing.T) {
	ar, err := heap.NewArena(&heap.ArenaOptions{Grower: &heap.SliceGrower{Limit: 64 * 1024}})
	require.NoError(t, err)
	t.Cleanup(func() { ar.Close() })

	al, err := alloc.New(ar, nil)
	require.NoError(t, err)

	var refs []heap.Ref
	for {
		ref, buf, err := al.Alloc(1024)
		if err != nil {
			require.ErrorIs(t, err, heap.ErrOutOfMemory)
			break
		}
		buf[0] = 0xAB
		refs = append(refs, ref)
	}
	require.NotEmpty(t, refs, "some allocations must land before the cap")
	requireCleanHeap(t, al)

	for _, ref := range refs {
		require.Equal(t, byte(0xAB), ar.Payload(ref)[0])
		require.NoError(t, al.Free(ref))
	}
	requireCleanHeap(t, al)
}
