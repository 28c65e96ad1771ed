package printer

import (
	"encoding/json"
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// jsonBlock represents one block in JSON output.
type jsonBlock struct {
	Offset     uint64 `json:"offset"`
	Size       uint64 `json:"size"`
	Allocated  bool   `json:"allocated"`
	PayloadCap uint64 `json:"payload_cap"`
}

// jsonDump is the top-level document for PrintBlocks.
type jsonDump struct {
	Summary summary     `json:"summary"`
	Blocks  []jsonBlock `json:"blocks"`
	Omitted int         `json:"omitted,omitempty"`
}

func (p *Printer) printBlocksJSON() error {
	dump := jsonDump{Summary: p.summarize()}

	p.ar.Blocks(func(ref heap.Ref, size uint64, allocated bool) bool {
		if p.opts.MaxBlocks > 0 && len(dump.Blocks) >= p.opts.MaxBlocks {
			dump.Omitted++
			return true
		}
		dump.Blocks = append(dump.Blocks, jsonBlock{
			Offset:     uint64(ref),
			Size:       size,
			Allocated:  allocated,
			PayloadCap: format.PayloadCap(size),
		})
		return true
	})

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

func (p *Printer) printSummaryJSON() error {
	data, err := json.MarshalIndent(p.summarize(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
