package heap

import (
	"fmt"
	"io"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/osmem"
)

// Arena is a formatted heap region: sentinels, blocks, and a growth policy.
// The region is always exactly len(data) bytes and its final word is the
// epilogue header.
type Arena struct {
	data   []byte
	grower Grower
}

// ArenaOptions controls arena construction. The zero value (or a nil
// pointer) selects the OS-backed grower and a single-chunk initial region.
type ArenaOptions struct {
	// Grower supplies backing memory. Nil selects the osmem default:
	// anonymous mappings on unix, a plain slice elsewhere.
	Grower Grower

	// InitialSize is the free space formatted at construction, in bytes.
	// Values below one chunk are rounded up to it.
	InitialSize uint64
}

// NewArena formats a fresh region: the padding word, the prologue pair, the
// epilogue header, and one initial extension so the heap starts with a
// single free block.
func NewArena(opts *ArenaOptions) (*Arena, error) {
	var (
		grower  Grower
		initial uint64
	)
	if opts != nil {
		grower = opts.Grower
		initial = opts.InitialSize
	}
	if grower == nil {
		grower = osmem.New()
	}
	if initial < format.ChunkSize {
		initial = format.ChunkSize
	}

	data, err := grower.Grow(nil, format.BootstrapSize)
	if err != nil {
		return nil, fmt.Errorf("heap: bootstrap: %w", err)
	}
	a := &Arena{data: data, grower: grower}

	format.PutU64(a.data, format.PadOffset, 0)
	format.PutU64(a.data, format.PrologueHeaderOffset, format.PackTag(format.PrologueSize, true))
	format.PutU64(a.data, format.PrologueFooterOffset, format.PackTag(format.PrologueSize, true))
	format.PutU64(a.data, format.BootstrapSize-format.WordSize, format.PackTag(0, true))

	if _, err := a.Extend(initial); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Extend grows the region by at least n bytes and formats the extension as
// one free block. n is aligned up and floored at one chunk. The old
// epilogue word becomes the new block's header and a fresh epilogue is
// written at the new end.
//
// The new block's Ref is returned with its link words cleared; the caller
// owns inserting it into a free index (usually after coalescing with a free
// tail block). On failure the arena is unchanged.
func (a *Arena) Extend(n uint64) (Ref, error) {
	if a.data == nil {
		return NullRef, ErrClosed
	}
	if n < format.ChunkSize {
		n = format.ChunkSize
	}
	n = format.Align(n)

	need := int(n)
	if n > format.MaxArenaBytes || uint64(need) != n {
		return NullRef, fmt.Errorf("heap: extend by %d bytes past arena ceiling: %w", n, ErrOutOfMemory)
	}
	newEnd, ok := buf.AddOverflowSafe(len(a.data), need)
	if !ok || uint64(newEnd) > format.MaxArenaBytes {
		return NullRef, fmt.Errorf("heap: extend to %d bytes past arena ceiling: %w", newEnd, ErrOutOfMemory)
	}

	data, err := a.grower.Grow(a.data, newEnd)
	if err != nil {
		return NullRef, fmt.Errorf("heap: extend by %d bytes: %w: %w", n, ErrOutOfMemory, err)
	}

	// The block claims the old epilogue word as its header, so its payload
	// begins exactly at the old region end.
	ref := Ref(len(a.data))
	a.data = data
	a.SetBlockTags(ref, n, false)
	a.ClearLinks(ref)
	format.PutU64(a.data, newEnd-format.WordSize, format.PackTag(0, true))
	return ref, nil
}

// Close releases the region. The arena must not be used afterwards.
func (a *Arena) Close() error {
	a.data = nil
	if c, ok := a.grower.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Bytes returns the raw region. The slice is invalidated by the next
// Extend.
func (a *Arena) Bytes() []byte { return a.data }

// Size returns the current region length in bytes, including sentinels.
func (a *Arena) Size() int { return len(a.data) }

// End returns the offset one past the last payload byte, which is also the
// offset of the epilogue block's notional payload.
func (a *Arena) End() Ref { return Ref(len(a.data)) }

// Contains reports whether ref plausibly addresses a block payload: inside
// the region past the prologue, 8-aligned, with room for a header.
func (a *Arena) Contains(ref Ref) bool {
	return ref >= format.FirstBlockRef &&
		ref < a.End() &&
		format.IsAligned(ref)
}
