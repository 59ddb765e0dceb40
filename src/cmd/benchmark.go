package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/operations"
	"vdfquest/src/utils"
	"vdfquest/src/vdf"
)

// BenchmarkCommand handles the benchmark subcommand.
func BenchmarkCommand(args []string) error {
	fs := flag.NewFlagSet("benchmark", flag.ExitOnError)

	var (
		iterations = fs.Uint64("iterations", 50000, "Iterations to run per sample")
		samples    = fs.Int("samples", 3, "Number of benchmark samples to take")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s benchmark [--iterations N] [--samples COUNT]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nBenchmark this machine's modular squaring rate.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("Benchmarking modular squaring performance...\n")
	fmt.Printf("Iterations per sample: %d\n", *iterations)
	fmt.Printf("Number of samples: %d\n\n", *samples)

	engine := vdf.New()
	result, err := operations.RunBenchmark(operations.BenchmarkOptions{
		Engine:     engine,
		Iterations: *iterations,
		Samples:    *samples,
	})
	if err != nil {
		return err
	}

	for i, s := range result.Samples {
		fmt.Printf("Sample %d: %d iterations in %v (%.0f ops/sec)\n", i+1, s.Iterations, s.Elapsed, s.OpsPerSecond)
	}

	fmt.Printf("\n=== Benchmark Results ===\n")
	fmt.Printf("Average rate: %.0f squarings/second\n\n", result.AvgOpsPerSecond)

	fmt.Printf("=== Time Estimates (this machine's calibration) ===\n")
	for _, e := range result.TimeEstimates {
		actual := utils.EstimateTime(e.Iterations, result.AvgOpsPerSecond)
		fmt.Printf("Cooldown %s -> %d iterations, measured at ~%s on this machine\n",
			utils.FormatDuration(secondsToDuration(e.Seconds)), e.Iterations, utils.FormatDuration(actual))
	}

	return nil
}
