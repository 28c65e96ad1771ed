package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/printer"
)

var (
	dumpPolicy   string
	dumpOps      int
	dumpMaxSize  int
	dumpSeed     int64
	dumpShowFree bool
	dumpMax      int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpPolicy, "policy", "segregated", "Free-list policy (segregated, explicit)")
	cmd.Flags().IntVar(&dumpOps, "ops", 40, "Workload operations before dumping")
	cmd.Flags().IntVar(&dumpMaxSize, "max-size", 512, "Largest payload size in the workload")
	cmd.Flags().Int64Var(&dumpSeed, "seed", 1, "Workload random seed")
	cmd.Flags().BoolVar(&dumpShowFree, "show-free", false, "Include free-list links on free blocks")
	cmd.Flags().IntVar(&dumpMax, "max", 0, "Maximum blocks to print (0 = all)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the block layout of a heap after a workload",
		Long: `The dump command drives a seeded mix of allocate, resize, and
release operations against a fresh heap, then prints every block in
address order with its offset, size, and allocated/free mark.

Example:
  heapctl dump
  heapctl dump --ops 200 --show-free
  heapctl dump --policy explicit --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump()
		},
	}
	return cmd
}

func runDump() error {
	al, ar, err := newAllocator(dumpPolicy)
	if err != nil {
		return err
	}
	defer ar.Close()

	printVerbose("running %d workload operations (policy %s, seed %d)\n",
		dumpOps, al.Policy(), dumpSeed)
	if err := runWorkload(al, dumpOps, dumpMaxSize, dumpSeed); err != nil {
		return fmt.Errorf("workload: %w", err)
	}

	opts := printer.DefaultOptions()
	opts.ShowFree = dumpShowFree
	opts.MaxBlocks = dumpMax
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	p := printer.New(ar, os.Stdout, opts)
	return p.PrintBlocks()
}
