package verify

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a structural problem.
type Kind int

const (
	KindSentinel     Kind = iota // prologue or epilogue damaged
	KindBadSize                  // block size below minimum or misaligned
	KindChainBreak               // block chain does not tile the region
	KindTagMismatch              // header and footer disagree
	KindAdjacentFree             // two free blocks touch
	KindIndexMissing             // free block absent from the index
	KindIndexStale               // indexed block is not a free block
	KindLinkBroken               // list links are asymmetric or cyclic
	KindWrongBucket              // block filed under the wrong size class
	KindBucketOrder              // bucket not in ascending address order
)

func (k Kind) String() string {
	switch k {
	case KindSentinel:
		return "SENTINEL"
	case KindBadSize:
		return "BAD_SIZE"
	case KindChainBreak:
		return "CHAIN_BREAK"
	case KindTagMismatch:
		return "TAG_MISMATCH"
	case KindAdjacentFree:
		return "ADJACENT_FREE"
	case KindIndexMissing:
		return "INDEX_MISSING"
	case KindIndexStale:
		return "INDEX_STALE"
	case KindLinkBroken:
		return "LINK_BROKEN"
	case KindWrongBucket:
		return "WRONG_BUCKET"
	case KindBucketOrder:
		return "BUCKET_ORDER"
	default:
		return "UNKNOWN"
	}
}

// MarshalText makes Kind render as its name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Violation is a single problem found in the image.
type Violation struct {
	Kind    Kind   `json:"kind"`
	Offset  uint64 `json:"offset"`
	Message string `json:"message"`
}

// Report collects every violation found in one audit pass.
type Report struct {
	ArenaBytes int           `json:"arena_bytes"`
	Blocks     int           `json:"blocks"`
	FreeBlocks int           `json:"free_blocks"`
	FreeBytes  uint64        `json:"free_bytes"`
	ScanTime   time.Duration `json:"scan_time"`

	Violations []Violation `json:"violations"`
}

// OK reports whether the audit found no violations.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// String renders one line per violation, prefixed by the byte offset.
func (r *Report) String() string {
	if r.OK() {
		return fmt.Sprintf("ok: %d blocks (%d free), no violations\n", r.Blocks, r.FreeBlocks)
	}
	var b strings.Builder
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "0x%08X [%s] %s\n", v.Offset, v.Kind, v.Message)
	}
	fmt.Fprintf(&b, "%d violation(s) in %d blocks\n", len(r.Violations), r.Blocks)
	return b.String()
}

func (r *Report) add(kind Kind, offset uint64, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}
