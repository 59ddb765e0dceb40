package operations

import (
	"time"

	"vdfquest/src/vdf"
)

// BenchmarkOptions contains all the parameters needed for benchmarking.
type BenchmarkOptions struct {
	Engine     *vdf.Engine
	Iterations uint64
	Samples    int
}

// BenchmarkSample represents a single benchmark sample.
type BenchmarkSample struct {
	Iterations   uint64
	Elapsed      time.Duration
	OpsPerSecond float64
}

// BenchmarkResult contains the results of the benchmark operation.
type BenchmarkResult struct {
	Samples         []BenchmarkSample
	AvgOpsPerSecond float64
	TimeEstimates   []TimeEstimate
}

// TimeEstimate pairs a recipe-like cooldown (in seconds) with the
// iteration count it requires at the engine's fixed calibration.
type TimeEstimate struct {
	Seconds    uint64
	Iterations uint64
}

// RunBenchmark runs opts.Samples independent calls to Engine.Benchmark and
// averages them, rather than trusting a single measurement.
func RunBenchmark(opts BenchmarkOptions) (*BenchmarkResult, error) {
	var samples []BenchmarkSample
	var total float64

	for i := 0; i < opts.Samples; i++ {
		start := time.Now()
		rate, err := opts.Engine.Benchmark(opts.Iterations)
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		samples = append(samples, BenchmarkSample{
			Iterations:   opts.Iterations,
			Elapsed:      elapsed,
			OpsPerSecond: rate,
		})
		total += rate
	}

	avg := total / float64(len(samples))

	commonCooldowns := []uint64{10, 60, 3600}
	var estimates []TimeEstimate
	for _, seconds := range commonCooldowns {
		estimates = append(estimates, TimeEstimate{
			Seconds:    seconds,
			Iterations: opts.Engine.TimeToIterations(seconds),
		})
	}

	return &BenchmarkResult{
		Samples:         samples,
		AvgOpsPerSecond: avg,
		TimeEstimates:   estimates,
	}, nil
}
