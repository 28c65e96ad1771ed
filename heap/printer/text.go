package printer

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// printBlocksText renders one line per block in the printblock shape:
// offset, then [size:a] for allocated blocks and [size:f] for free ones.
func (p *Printer) printBlocksText() error {
	s := p.summarize()
	fmt.Fprintf(p.writer, "arena: %d bytes, %d blocks (%d free)\n",
		s.ArenaBytes, s.Blocks, s.FreeBlocks)

	fmt.Fprintf(p.writer, "0x%08X [%4d:a] prologue\n",
		uint64(format.PrologueFooterOffset), uint64(format.BlockOverhead))

	shown, omitted := 0, 0
	p.ar.Blocks(func(ref heap.Ref, size uint64, allocated bool) bool {
		if p.opts.MaxBlocks > 0 && shown >= p.opts.MaxBlocks {
			omitted++
			return true
		}
		shown++

		mark := byte('a')
		if !allocated {
			mark = 'f'
		}
		fmt.Fprintf(p.writer, "0x%08X [%4d:%c]", uint64(ref), size, mark)
		if !allocated && p.opts.ShowFree {
			// Dumps of damaged images land here through verify.Dump, so
			// the link words go through bounds-checked reads.
			data := p.ar.Bytes()
			fmt.Fprintf(p.writer, " next=0x%X prev=0x%X",
				buf.U64LEAt(data, int(format.LinkNextOff(ref))),
				buf.U64LEAt(data, int(format.LinkPrevOff(ref))))
		}
		fmt.Fprintln(p.writer)
		return true
	})
	if omitted > 0 {
		fmt.Fprintf(p.writer, "... %d more block(s)\n", omitted)
	}

	_, err := fmt.Fprintf(p.writer, "0x%08X [%4d:a] epilogue\n",
		uint64(p.ar.End()), uint64(0))
	return err
}

func (p *Printer) printSummaryText() error {
	s := p.summarize()
	fmt.Fprintf(p.writer, "Arena size:   %d bytes\n", s.ArenaBytes)
	fmt.Fprintf(p.writer, "Blocks:       %d (%d free)\n", s.Blocks, s.FreeBlocks)
	fmt.Fprintf(p.writer, "Live bytes:   %d\n", s.LiveBytes)
	fmt.Fprintf(p.writer, "Free bytes:   %d\n", s.FreeBytes)
	_, err := fmt.Fprintf(p.writer, "Largest free: %d bytes\n", s.LargestFree)
	return err
}
