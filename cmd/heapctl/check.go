package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/verify"
)

var (
	checkPolicy  string
	checkOps     int
	checkMaxSize int
	checkSeed    int64
)

func init() {
	cmd := newCheckCmd()
	cmd.Flags().StringVar(&checkPolicy, "policy", "segregated", "Free-list policy (segregated, explicit)")
	cmd.Flags().IntVar(&checkOps, "ops", 2000, "Workload operations before checking")
	cmd.Flags().IntVar(&checkMaxSize, "max-size", 512, "Largest payload size in the workload")
	cmd.Flags().Int64Var(&checkSeed, "seed", 1, "Workload random seed")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a workload and verify the heap invariants",
		Long: `The check command drives a seeded mix of allocate, resize, and
release operations against a fresh heap, then verifies every block
tag, sentinel, and free-list entry in the resulting arena image.

A clean heap prints a one-line summary. Violations are listed with
their arena offsets and the command exits with status 1.

Example:
  heapctl check
  heapctl check --policy explicit --ops 50000
  heapctl check --seed 42 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck()
		},
	}
	return cmd
}

func runCheck() error {
	al, ar, err := newAllocator(checkPolicy)
	if err != nil {
		return err
	}
	defer ar.Close()

	printVerbose("running %d workload operations (policy %s, seed %d)\n",
		checkOps, al.Policy(), checkSeed)
	if err := runWorkload(al, checkOps, checkMaxSize, checkSeed); err != nil {
		return fmt.Errorf("workload: %w", err)
	}

	report := verify.Heap(al)

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		fmt.Print(report.String())
		printVerbose("scan took %s\n", report.ScanTime)
	}

	// Exit code based on severity
	if !report.OK() {
		printInfo("\n⚠️  Heap verification failed\n")
		os.Exit(1)
	}
	return nil
}
