package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	statsPolicy  string
	statsOps     int
	statsMaxSize int
	statsSeed    int64
)

// HeapStats aggregates allocator counters and arena occupancy after a
// workload run.
type HeapStats struct {
	Policy      string  `json:"policy"`
	ArenaBytes  uint64  `json:"arena_bytes"`
	LiveBytes   uint64  `json:"live_bytes"`
	FreeBytes   uint64  `json:"free_bytes"`
	Utilization float64 `json:"utilization"`

	AllocCalls    uint64 `json:"alloc_calls"`
	AllocFastPath uint64 `json:"alloc_fast_path"`
	AllocSlowPath uint64 `json:"alloc_slow_path"`
	FreeCalls     uint64 `json:"free_calls"`
	ReallocCalls  uint64 `json:"realloc_calls"`
	ExtendCalls   uint64 `json:"extend_calls"`
	ExtendBytes   uint64 `json:"extend_bytes"`

	SplitCount       uint64 `json:"split_count"`
	CoalesceForward  uint64 `json:"coalesce_forward"`
	CoalesceBackward uint64 `json:"coalesce_backward"`
	CoalesceBoth     uint64 `json:"coalesce_both"`
	InPlaceGrows     uint64 `json:"in_place_grows"`
	InPlaceShrinks   uint64 `json:"in_place_shrinks"`
	CopiedResizes    uint64 `json:"copied_resizes"`
}

func init() {
	cmd := newStatsCmd()
	cmd.Flags().StringVar(&statsPolicy, "policy", "segregated", "Free-list policy (segregated, explicit)")
	cmd.Flags().IntVar(&statsOps, "ops", 2000, "Workload operations before reporting")
	cmd.Flags().IntVar(&statsMaxSize, "max-size", 512, "Largest payload size in the workload")
	cmd.Flags().Int64Var(&statsSeed, "seed", 1, "Workload random seed")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report allocator counters after a workload",
		Long: `The stats command drives a seeded mix of allocate, resize, and
release operations against a fresh heap, then reports the allocator's
operation counters and arena occupancy.

Example:
  heapctl stats
  heapctl stats --policy explicit --ops 100000
  heapctl stats --seed 42 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats()
		},
	}
	return cmd
}

func runStats() error {
	al, ar, err := newAllocator(statsPolicy)
	if err != nil {
		return err
	}
	defer ar.Close()

	printVerbose("running %d workload operations (policy %s, seed %d)\n",
		statsOps, al.Policy(), statsSeed)
	if err := runWorkload(al, statsOps, statsMaxSize, statsSeed); err != nil {
		return fmt.Errorf("workload: %w", err)
	}

	stats := collectStats(al, ar)

	if jsonOut {
		return printJSON(stats)
	}

	printInfo("\nHeap Statistics (policy %s)\n", stats.Policy)
	printInfo("%s\n\n", strings.Repeat("═", 40))

	printInfo("Arena:\n")
	printInfo("  Size: %s (%s bytes)\n", formatBytes(int64(stats.ArenaBytes)), formatNumber(int64(stats.ArenaBytes)))
	printInfo("  Live: %s\n", formatBytes(int64(stats.LiveBytes)))
	printInfo("  Free: %s\n", formatBytes(int64(stats.FreeBytes)))
	printInfo("  Utilization: %.1f%%\n\n", stats.Utilization)

	printInfo("Operations:\n")
	printInfo("  Allocs: %s (%s fast path, %s slow path)\n",
		formatNumber(int64(stats.AllocCalls)),
		formatNumber(int64(stats.AllocFastPath)),
		formatNumber(int64(stats.AllocSlowPath)))
	printInfo("  Frees: %s\n", formatNumber(int64(stats.FreeCalls)))
	printInfo("  Reallocs: %s\n", formatNumber(int64(stats.ReallocCalls)))
	printInfo("  Growths: %s (%s added)\n\n",
		formatNumber(int64(stats.ExtendCalls)), formatBytes(int64(stats.ExtendBytes)))

	printInfo("Block Activity:\n")
	printInfo("  Splits: %s\n", formatNumber(int64(stats.SplitCount)))
	printInfo("  Coalesces: %s forward, %s backward, %s both\n",
		formatNumber(int64(stats.CoalesceForward)),
		formatNumber(int64(stats.CoalesceBackward)),
		formatNumber(int64(stats.CoalesceBoth)))
	printInfo("  Resizes in place: %s grown, %s shrunk\n",
		formatNumber(int64(stats.InPlaceGrows)),
		formatNumber(int64(stats.InPlaceShrinks)))
	printInfo("  Resizes by copy: %s\n", formatNumber(int64(stats.CopiedResizes)))

	return nil
}

func collectStats(al *alloc.Allocator, ar *heap.Arena) HeapStats {
	s := al.Stats()
	hs := HeapStats{
		Policy:     al.Policy().String(),
		ArenaBytes: uint64(ar.Size()),
		LiveBytes:  al.LiveBytes(),
		FreeBytes:  al.FreeBytes(),

		AllocCalls:    s.AllocCalls,
		AllocFastPath: s.AllocFastPath,
		AllocSlowPath: s.AllocSlowPath,
		FreeCalls:     s.FreeCalls,
		ReallocCalls:  s.ReallocCalls,
		ExtendCalls:   s.ExtendCalls,
		ExtendBytes:   s.ExtendBytes,

		SplitCount:       s.SplitCount,
		CoalesceForward:  s.CoalesceForward,
		CoalesceBackward: s.CoalesceBackward,
		CoalesceBoth:     s.CoalesceBoth,
		InPlaceGrows:     s.InPlaceGrows,
		InPlaceShrinks:   s.InPlaceShrinks,
		CopiedResizes:    s.CopiedResizes,
	}
	if hs.ArenaBytes > 0 {
		hs.Utilization = 100 * float64(hs.LiveBytes) / float64(hs.ArenaBytes)
	}
	return hs
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatNumber(n int64) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	// Add commas
	var result strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return result.String()
}
