package comparison

import (
	"testing"

	"github.com/bytedance/gopkg/lang/fastrand"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

// newBenchHeap builds a slice-backed heap so timings exclude mapping noise.
func newBenchHeap(b *testing.B, policy alloc.Policy) *alloc.Allocator {
	b.Helper()
	ar, err := heap.NewArena(&heap.ArenaOptions{Grower: &heap.SliceGrower{}})
	if err != nil {
		b.Fatalf("NewArena failed: %v", err)
	}
	b.Cleanup(func() { ar.Close() })

	al, err := alloc.New(ar, &alloc.Config{Policy: policy})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}
	return al
}

// BenchmarkAllocFree compares one allocate/release pair per iteration.
// Measures: Alloc+Free vs a garbage-collected make.
func BenchmarkAllocFree(b *testing.B) {
	for _, size := range BenchmarkSizes {
		for _, policy := range []alloc.Policy{alloc.PolicySegregated, alloc.PolicyExplicit} {
			b.Run(policy.String()+"/"+size.Name, func(b *testing.B) {
				al := newBenchHeap(b, policy)

				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					ref, buf, err := al.Alloc(size.Size)
					if err != nil {
						b.Fatalf("Alloc failed: %v", err)
					}
					buf[0] = byte(i)
					benchByte = buf[0]
					if err := al.Free(ref); err != nil {
						b.Fatalf("Free failed: %v", err)
					}
					benchRef = ref
				}
			})
		}

		b.Run("native/"+size.Name, func(b *testing.B) {
			n := int(size.Size)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s := make([]byte, n)
				s[0] = byte(i)
				benchSlice = s
			}
		})
	}
}

// BenchmarkChurn keeps a rolling window of live blocks so the free lists
// stay populated, which is where the policies actually differ.
func BenchmarkChurn(b *testing.B) {
	const window = 512

	for _, policy := range []alloc.Policy{alloc.PolicySegregated, alloc.PolicyExplicit} {
		b.Run(policy.String(), func(b *testing.B) {
			al := newBenchHeap(b, policy)
			live := make([]heap.Ref, window)

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				slot := i % window
				if live[slot] != heap.NullRef {
					if err := al.Free(live[slot]); err != nil {
						b.Fatalf("Free failed: %v", err)
					}
				}
				ref, buf, err := al.Alloc(uint64(1 + fastrand.Intn(1024)))
				if err != nil {
					b.Fatalf("Alloc failed: %v", err)
				}
				buf[0] = byte(i)
				live[slot] = ref
			}

			benchRef = live[0]
		})
	}

	b.Run("native", func(b *testing.B) {
		live := make([][]byte, window)

		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			slot := i % window
			s := make([]byte, 1+fastrand.Intn(1024))
			s[0] = byte(i)
			live[slot] = s
		}

		benchSlice = live[0]
	})
}
