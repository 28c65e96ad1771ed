package main

import (
	"fmt"
	"time"

	"github.com/bytedance/gopkg/lang/fastrand"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	benchOps     int
	benchRandom  bool
	benchMaxSize int
)

// Benchmark payloads escape into these so the compiler cannot drop the
// allocation work being measured.
var (
	sinkByte  byte
	sinkSlice []byte
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVarP(&benchOps, "ops", "n", 100000, "Operations per benchmark")
	cmd.Flags().BoolVar(&benchRandom, "random", false, "Randomize payload sizes")
	cmd.Flags().IntVar(&benchMaxSize, "max-size", 256, "Largest payload size with --random")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the allocator policies against native Go allocation",
		Long: `The bench command times two workloads against each free-list policy
and against native Go allocation as the baseline:

  alloc/free  N allocate/release pairs of a small payload
  resize      N allocate, grow 16 -> 128 bytes, release cycles

Example:
  heapctl bench
  heapctl bench -n 1000000
  heapctl bench --random --max-size 4096
  heapctl bench --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench()
		},
	}
	return cmd
}

type benchResult struct {
	Name      string  `json:"name"`
	Ops       int     `json:"ops"`
	Seconds   float64 `json:"seconds"`
	OpsPerSec int64   `json:"ops_per_sec"`
}

func newBenchResult(name string, elapsed time.Duration) benchResult {
	r := benchResult{Name: name, Ops: benchOps, Seconds: elapsed.Seconds()}
	if r.Seconds > 0 {
		r.OpsPerSec = int64(float64(benchOps) / r.Seconds)
	}
	return r
}

func runBench() error {
	if benchMaxSize < 1 {
		return fmt.Errorf("--max-size must be at least 1, got %d", benchMaxSize)
	}
	sizes := benchSizes()

	var results []benchResult
	for _, policy := range []alloc.Policy{alloc.PolicySegregated, alloc.PolicyExplicit} {
		printVerbose("benchmarking policy %s\n", policy)

		elapsed, err := benchAllocFree(policy, sizes)
		if err != nil {
			return fmt.Errorf("alloc/free %s: %w", policy, err)
		}
		results = append(results, newBenchResult("alloc/free "+policy.String(), elapsed))

		elapsed, err = benchResize(policy)
		if err != nil {
			return fmt.Errorf("resize %s: %w", policy, err)
		}
		results = append(results, newBenchResult("resize "+policy.String(), elapsed))
	}
	results = append(results, newBenchResult("alloc/free native-go", benchNativeAllocFree(sizes)))
	results = append(results, newBenchResult("resize native-go", benchNativeResize()))

	if jsonOut {
		return printJSON(results)
	}

	p := message.NewPrinter(language.English)
	p.Printf("%d operations per benchmark\n\n", benchOps)
	for _, r := range results {
		p.Printf("%-24s %14d ops/sec\n", r.Name, r.OpsPerSec)
	}

	native := rateOf(results, "alloc/free native-go")
	seg := rateOf(results, "alloc/free segregated")
	if native > 0 && seg > 0 {
		p.Printf("\nsegregated alloc/free runs at %.0f%% of native Go allocation\n",
			100*float64(seg)/float64(native))
	}
	return nil
}

// benchSizes precomputes the payload size per operation so the random
// draws stay out of the timed loops. A nil slice means the fixed
// 16-byte payload.
func benchSizes() []int {
	if !benchRandom {
		return nil
	}
	sizes := make([]int, benchOps)
	for i := range sizes {
		sizes[i] = 1 + fastrand.Intn(benchMaxSize)
	}
	return sizes
}

func rateOf(results []benchResult, name string) int64 {
	for _, r := range results {
		if r.Name == name {
			return r.OpsPerSec
		}
	}
	return 0
}

func benchAllocFree(policy alloc.Policy, sizes []int) (time.Duration, error) {
	al, ar, err := newAllocator(policy.String())
	if err != nil {
		return 0, err
	}
	defer ar.Close()

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		size := uint64(16)
		if sizes != nil {
			size = uint64(sizes[i])
		}
		ref, buf, err := al.Alloc(size)
		if err != nil {
			return 0, err
		}
		buf[0] = byte(i)
		sinkByte = buf[0]
		if err := al.Free(ref); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func benchResize(policy alloc.Policy) (time.Duration, error) {
	al, ar, err := newAllocator(policy.String())
	if err != nil {
		return 0, err
	}
	defer ar.Close()

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		ref, buf, err := al.Alloc(16)
		if err != nil {
			return 0, err
		}
		buf[0] = byte(i)
		ref, buf, err = al.Realloc(ref, 128)
		if err != nil {
			return 0, err
		}
		sinkByte = buf[0]
		if err := al.Free(ref); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func benchNativeAllocFree(sizes []int) time.Duration {
	start := time.Now()
	for i := 0; i < benchOps; i++ {
		size := 16
		if sizes != nil {
			size = sizes[i]
		}
		b := make([]byte, size)
		b[0] = byte(i)
		sinkSlice = b
	}
	return time.Since(start)
}

func benchNativeResize() time.Duration {
	start := time.Now()
	for i := 0; i < benchOps; i++ {
		b := make([]byte, 16)
		b[0] = byte(i)
		g := make([]byte, 128)
		copy(g, b)
		sinkSlice = g
	}
	return time.Since(start)
}
