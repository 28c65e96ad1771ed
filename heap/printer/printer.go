// Package printer renders heap block maps for humans and tools.
package printer

import (
	"io"

	"github.com/joshuapare/heapkit/heap"
)

const DefaultMaxBlocks = 0

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs one human-readable line per block.
	FormatText Format = "text"

	// FormatJSON outputs a single JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowFree includes the free-list link words on free blocks
	// (text format only).
	// Default: false
	ShowFree bool

	// MaxBlocks limits how many blocks are listed (0 = unlimited).
	// Truncated output ends with a count of the omitted blocks.
	// Default: 0 (unlimited)
	MaxBlocks int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:    FormatText,
		ShowFree:  false,
		MaxBlocks: DefaultMaxBlocks,
	}
}

// Printer handles formatted output of heap structures.
type Printer struct {
	opts   Options
	writer io.Writer
	ar     *heap.Arena
}

// New creates a new Printer over an arena.
//
// Example:
//
//	p := printer.New(al.Arena(), os.Stdout, printer.DefaultOptions())
//	p.PrintBlocks()
func New(ar *heap.Arena, w io.Writer, opts Options) *Printer {
	return &Printer{
		ar:     ar,
		writer: w,
		opts:   opts,
	}
}

// PrintBlocks renders every block in address order, sentinels included.
func (p *Printer) PrintBlocks() error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printBlocksJSON()
	default:
		return p.printBlocksText()
	}
}

// PrintSummary renders region totals without the per-block listing.
func (p *Printer) PrintSummary() error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printSummaryJSON()
	default:
		return p.printSummaryText()
	}
}

// summary carries the totals both formats render.
type summary struct {
	ArenaBytes  int    `json:"arena_bytes"`
	Blocks      int    `json:"blocks"`
	FreeBlocks  int    `json:"free_blocks"`
	FreeBytes   uint64 `json:"free_bytes"`
	LiveBytes   uint64 `json:"live_bytes"`
	LargestFree uint64 `json:"largest_free"`
}

func (p *Printer) summarize() summary {
	s := summary{ArenaBytes: p.ar.Size()}
	p.ar.Blocks(func(ref heap.Ref, size uint64, allocated bool) bool {
		s.Blocks++
		if allocated {
			s.LiveBytes += size
		} else {
			s.FreeBlocks++
			s.FreeBytes += size
			if size > s.LargestFree {
				s.LargestFree = size
			}
		}
		return true
	})
	return s
}
