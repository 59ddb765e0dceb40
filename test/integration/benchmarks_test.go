package integration

import (
	"testing"

	"vdfquest/src/operations"
	"vdfquest/src/vdf"
)

// TestBenchmarkFeedsTimeEstimates checks that RunBenchmark takes the
// requested number of samples, reports a positive average rate, and
// derives every cooldown's iteration estimate from the engine's fixed
// calibration (TimeToIterations), not from the measured rate.
func TestBenchmarkFeedsTimeEstimates(t *testing.T) {
	engine := newTestEngine()

	result, err := operations.RunBenchmark(operations.BenchmarkOptions{
		Engine:     engine,
		Iterations: testIterations,
		Samples:    2,
	})
	if err != nil {
		t.Fatalf("RunBenchmark failed: %v", err)
	}

	if len(result.Samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(result.Samples))
	}
	if result.AvgOpsPerSecond <= 0 {
		t.Fatal("expected a positive average ops/sec")
	}

	for _, estimate := range result.TimeEstimates {
		if estimate.Iterations != engine.TimeToIterations(estimate.Seconds) {
			t.Fatalf("estimate for %ds used %d iterations, want %d",
				estimate.Seconds, estimate.Iterations, engine.TimeToIterations(estimate.Seconds))
		}
	}
}

// TestIterationsRoundTripThroughCatalog checks that the craft recipe
// catalog's iteration counts agree with the engine's own calibrator for
// every recipe in the catalog, each at its own required cooldown.
func TestIterationsRoundTripThroughCatalog(t *testing.T) {
	engine := newTestEngine()
	catalog := loadTestCatalog(t)

	for _, name := range catalog.Names() {
		recipe, err := catalog.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", name, err)
		}

		iterations, err := catalog.IterationsFor(name, engine)
		if err != nil {
			t.Fatalf("IterationsFor(%q) failed: %v", name, err)
		}
		if want := engine.TimeToIterations(recipe.RequiredSeconds); iterations != want {
			t.Fatalf("IterationsFor(%q) = %d, want %d", name, iterations, want)
		}
	}
}

// TestComputeIsDeterministicAcrossEngineInstances checks that two
// independently constructed engines (each loading the same fixed
// modulus) compute byte-identical outputs for the same descriptor,
// since New() must not introduce any hidden per-instance randomness.
func TestComputeIsDeterministicAcrossEngineInstances(t *testing.T) {
	d := vdf.Descriptor{PlayerID: 7, ActionType: "gather", ActionID: 1, Timestamp: 42, Nonce: 1, RandomSalt: 9}

	e1 := vdf.New()
	e2 := vdf.New()

	r1, err := e1.Compute(d, testCraftIterations)
	if err != nil {
		t.Fatalf("e1.Compute failed: %v", err)
	}
	r2, err := e2.Compute(d, testCraftIterations)
	if err != nil {
		t.Fatalf("e2.Compute failed: %v", err)
	}

	if r1.Output != r2.Output || r1.Proof != r2.Proof {
		t.Fatal("two engine instances produced different results for the same descriptor")
	}
}
