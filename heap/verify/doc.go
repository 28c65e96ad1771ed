// Package verify audits heap images for structural damage.
//
// # Overview
//
// The auditor walks the physical block chain and the free index with
// bounds-checked reads, so it can examine images the allocator itself
// would crash on. Problems come back as a Report of typed Violations with
// exact byte offsets instead of an error on the first finding: a verifier
// that stops at one problem hides the other nine.
//
// Two entry points cover the two trust levels:
//
//   - Arena: physical checks only. Sentinels intact, blocks tile the
//     region exactly, headers match footers, no two free blocks touch.
//   - Heap: everything Arena checks, plus free-index agreement. The set
//     of indexed blocks must equal the set of free-tagged blocks, links
//     must be symmetric, and under the segregated policy every block must
//     sit in the bucket its size maps to, in address order.
//
// # Usage Example
//
//	report := verify.Heap(al)
//	if !report.OK() {
//	    fmt.Print(report)
//	}
//
// # Thread Safety
//
// Verification reads the whole region without synchronization. Do not run
// it concurrently with allocator mutations.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/heap: the arena being audited
//   - github.com/joshuapare/heapkit/heap/alloc: the index being audited
package verify
