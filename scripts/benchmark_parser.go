package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Workload    string
	Impl        string // "segregated", "explicit", or "native"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult lines up the policies and the native baseline for one
// operation/workload pair.
type ComparisonResult struct {
	Operation  string
	Workload   string
	Segregated *BenchmarkResult
	Explicit   *BenchmarkResult
	Native     *BenchmarkResult

	// PolicySpeedup is explicit ns/op over segregated ns/op: above 1.0
	// the segregated policy is faster.
	PolicySpeedup float64

	// NativeRelative is native ns/op over segregated ns/op: the fraction
	// of native Go allocation speed the segregated policy reaches.
	NativeRelative float64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Generate comparisons
	comparisons := generateComparisons(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	// Generate markdown report
	report := generateMarkdownReport(comparisons)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkAllocFree/segregated/tiny-8    10000    124.5 ns/op    0 B/op    0 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		// Parse name to extract operation, impl, and workload
		// Format: Benchmark<Operation>/<impl>-<procs>
		// Or: Benchmark<Operation>/<impl>/<workload>-<procs>
		parts := strings.Split(name, "/")
		if len(parts) < 2 {
			continue
		}

		operation := strings.TrimPrefix(parts[0], "Benchmark")

		// The -N proc suffix sits on the last part, whichever that is
		lastPart := parts[len(parts)-1]
		if dashIdx := strings.LastIndex(lastPart, "-"); dashIdx > 0 {
			parts[len(parts)-1] = lastPart[:dashIdx]
		}

		impl := parts[1]
		workload := ""
		if len(parts) >= 3 {
			workload = parts[2]
		}

		switch impl {
		case "segregated", "explicit", "native":
		default:
			continue
		}

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Workload:    workload,
			Impl:        impl,
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	// Group results by operation and workload
	type key struct {
		operation string
		workload  string
	}

	grouped := make(map[key]map[string]*BenchmarkResult)

	for i := range results {
		result := &results[i]
		k := key{result.Operation, result.Workload}
		if grouped[k] == nil {
			grouped[k] = make(map[string]*BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	var comparisons []ComparisonResult

	for k, impls := range grouped {
		comp := ComparisonResult{
			Operation:  k.operation,
			Workload:   k.workload,
			Segregated: impls["segregated"],
			Explicit:   impls["explicit"],
			Native:     impls["native"],
		}
		if comp.Segregated != nil && comp.Explicit != nil && comp.Segregated.NsPerOp > 0 {
			comp.PolicySpeedup = comp.Explicit.NsPerOp / comp.Segregated.NsPerOp
		}
		if comp.Segregated != nil && comp.Native != nil && comp.Segregated.NsPerOp > 0 {
			comp.NativeRelative = comp.Native.NsPerOp / comp.Segregated.NsPerOp
		}
		comparisons = append(comparisons, comp)
	}

	// Sort by operation, then workload in size order
	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return workloadRank(comparisons[i].Workload) < workloadRank(comparisons[j].Workload)
	})

	return comparisons
}

// workloadRank orders the known size names smallest first; unknown names
// sort after them alphabetically.
func workloadRank(w string) string {
	switch w {
	case "tiny":
		return "0"
	case "small":
		return "1"
	case "medium":
		return "2"
	case "large":
		return "3"
	}
	return "9" + w
}

func generateMarkdownReport(comparisons []ComparisonResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	segFaster := 0
	expFaster := 0
	policyPairs := 0
	totalPolicySpeedup := 0.0
	nativePairs := 0
	totalNativeRelative := 0.0

	for _, comp := range comparisons {
		if comp.PolicySpeedup > 0 {
			policyPairs++
			totalPolicySpeedup += comp.PolicySpeedup
			if comp.PolicySpeedup > 1.0 {
				segFaster++
			} else if comp.PolicySpeedup < 1.0 {
				expFaster++
			}
		}
		if comp.NativeRelative > 0 {
			nativePairs++
			totalNativeRelative += comp.NativeRelative
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	if policyPairs > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"- **Policy comparison**: segregated faster in %d of %d (average **%.2fx**)\n",
				segFaster,
				policyPairs,
				totalPolicySpeedup/float64(policyPairs),
			),
		)
		sb.WriteString(fmt.Sprintf("  - explicit faster: %d\n", expFaster))
	}
	if nativePairs > 0 {
		sb.WriteString(
			fmt.Sprintf(
				"- **Against native Go**: segregated runs at %.1f%% of native allocation speed on average\n",
				totalNativeRelative/float64(nativePairs)*100,
			),
		)
	}
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString(
		"| Operation | Workload | segregated (ns/op) | explicit (ns/op) | native (ns/op) | seg vs exp | Memory (B/op) | Allocs |\n",
	)
	sb.WriteString(
		"|-----------|----------|--------------------|------------------|----------------|------------|---------------|--------|\n",
	)

	for _, comp := range comparisons {
		speedupCell := "*N/A*"
		if comp.PolicySpeedup > 0 {
			indicator := "✓"
			speedupStyle := "**"
			if comp.PolicySpeedup < 1.0 {
				indicator = "✗"
				speedupStyle = ""
			}
			speedupCell = fmt.Sprintf("%s%.2fx%s %s",
				speedupStyle, comp.PolicySpeedup, speedupStyle, indicator)
		}

		memCell := "*N/A*"
		allocCell := "*N/A*"
		if comp.Segregated != nil && comp.Native != nil {
			memIndicator := ""
			if comp.Segregated.BytesPerOp < comp.Native.BytesPerOp {
				memIndicator = " ✓"
			} else if comp.Segregated.BytesPerOp > comp.Native.BytesPerOp {
				memIndicator = " ✗"
			}
			memCell = fmt.Sprintf("%s vs %s%s",
				formatBytes(comp.Segregated.BytesPerOp),
				formatBytes(comp.Native.BytesPerOp),
				memIndicator)

			allocIndicator := ""
			if comp.Segregated.AllocsPerOp < comp.Native.AllocsPerOp {
				allocIndicator = " ✓"
			} else if comp.Segregated.AllocsPerOp > comp.Native.AllocsPerOp {
				allocIndicator = " ✗"
			}
			allocCell = fmt.Sprintf("%d vs %d%s",
				comp.Segregated.AllocsPerOp,
				comp.Native.AllocsPerOp,
				allocIndicator)
		}

		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			comp.Operation,
			comp.Workload,
			formatNs(comp.Segregated),
			formatNs(comp.Explicit),
			formatNs(comp.Native),
			speedupCell,
			memCell,
			allocCell,
		))
	}

	sb.WriteString("\n")

	// Category summaries
	sb.WriteString("## Performance by Category\n\n")

	categories := categorizeOperations(comparisons)
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		comps := categories[category]
		if len(comps) == 0 {
			continue
		}

		avgSpeed := 0.0
		count := 0
		for _, comp := range comps {
			if comp.PolicySpeedup > 0 {
				avgSpeed += comp.PolicySpeedup
				count++
			}
		}

		if count > 0 {
			avgSpeed /= float64(count)
			status := "✓"
			if avgSpeed < 1.0 {
				status = "✗"
			}
			sb.WriteString(fmt.Sprintf("- %s **%s**: segregated %.2fx vs explicit\n",
				status, category, avgSpeed))
		} else {
			sb.WriteString(fmt.Sprintf("- **%s**: no policy pair measured\n", category))
		}
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **seg vs exp > 1.0**: the segregated policy is faster ✓\n")
	sb.WriteString("- **native**: a garbage-collected make of the same payload size\n")
	sb.WriteString("- **Memory comparison**: Go heap bytes per operation, lower is better\n")
	sb.WriteString("- **Allocations**: Go heap allocations per operation, fewer is better\n")

	return sb.String()
}

func categorizeOperations(comparisons []ComparisonResult) map[string][]ComparisonResult {
	categories := map[string][]ComparisonResult{
		"Alloc/Free": {},
		"Churn":      {},
		"Resize":     {},
		"Other":      {},
	}

	for _, comp := range comparisons {
		op := strings.ToLower(comp.Operation)

		switch {
		case strings.Contains(op, "allocfree"):
			categories["Alloc/Free"] = append(categories["Alloc/Free"], comp)
		case strings.Contains(op, "churn"):
			categories["Churn"] = append(categories["Churn"], comp)
		case strings.Contains(op, "grow") || strings.Contains(op, "realloc") ||
			strings.Contains(op, "resize"):
			categories["Resize"] = append(categories["Resize"], comp)
		default:
			categories["Other"] = append(categories["Other"], comp)
		}
	}

	return categories
}

func formatNs(r *BenchmarkResult) string {
	if r == nil {
		return "*N/A*"
	}
	return formatNumber(r.NsPerOp)
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
