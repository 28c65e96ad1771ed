// Package heap provides the arena layer of a boundary-tagged heap: a flat,
// growable byte region formatted into blocks.
//
// # Overview
//
// This package owns the memory region and its on-image format. Every block
// carries a header word before its payload and an identical footer word at
// its end; both pack the block size with an allocated flag. The pairing
// makes physical neighbors reachable in O(1) from any block, which is what
// the allocator's coalescing and the verifier's walks are built on.
//
// # Key Types
//
//   - Arena: the formatted region plus its growth policy
//   - Ref: a block reference, the byte offset of the block's payload
//   - Grower: the source of raw zeroed memory backing the region
//   - SliceGrower: a deterministic in-memory Grower for tests and tools
//
// # Region Structure
//
// A fresh arena is formatted as:
//
//	[pad 8B] [prologue header 8B] [prologue footer 8B] [blocks ...] [epilogue header 8B]
//
// The prologue and epilogue are permanently allocated zero-payload
// sentinels. They guarantee every real block an allocated physical neighbor
// on both flanks, so neighbor reads during coalescing never need bounds
// checks. The padding word keeps the first payload 8-aligned and reserves
// offset zero, making the zero Ref a safe null.
//
// # References Are Offsets
//
// The backing slice may move whenever the arena grows (the default Grower
// remaps). Nothing in this module holds a Go pointer into the region:
// blocks refer to each other by Ref offsets, including the free-list links
// the allocator threads through free payloads. Callers must treat payload
// slices obtained before a growth as invalid.
//
// # Growth
//
// Growth is monotonic and page-quantized. Extend appends raw bytes from the
// Grower, turns the old epilogue into the header of one new free block
// spanning the extension, and writes a fresh epilogue at the new end.
// Memory is never returned to the operating system while the arena lives.
//
// # Thread Safety
//
// Arena instances are not thread-safe. The intended ownership model is a
// single goroutine per arena; callers needing sharing must synchronize
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/heap/alloc: block allocation over an Arena
//   - github.com/joshuapare/heapkit/heap/verify: integrity auditing
//   - github.com/joshuapare/heapkit/heap/printer: block-map rendering
//   - github.com/joshuapare/heapkit/internal/format: layout constants and tag codec
package heap
