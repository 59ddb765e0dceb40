package vdf

import (
	"math/big"
	"testing"
)

func testDescriptor() Descriptor {
	return Descriptor{
		PlayerID:   1,
		ActionType: "test",
		ActionID:   1,
		Timestamp:  1234567890,
		Nonce:      1,
		RandomSalt: 12345,
	}
}

// TestBasicCompute mirrors spec.md §8 scenario 1.
func TestBasicCompute(t *testing.T) {
	e := New()
	rec, err := e.Compute(testDescriptor(), 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if rec.Iterations != 1000 {
		t.Fatalf("iterations = %d, want 1000", rec.Iterations)
	}
	if rec.Output == "" {
		t.Fatal("output is empty")
	}
	if rec.Proof == "" {
		t.Fatal("proof is empty")
	}
}

// TestCompleteness mirrors spec.md §8 scenario 2: verify(derive_seed(D), y,
// T, pi) must return true where (y, pi) = compute(D, T).
func TestCompleteness(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec, err := e.Compute(d, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	x := e.DeriveSeed(d)
	y, ok := new(big.Int).SetString(rec.Output, 10)
	if !ok {
		t.Fatal("failed to parse output")
	}
	pi, ok := new(big.Int).SetString(rec.Proof, 10)
	if !ok {
		t.Fatal("failed to parse proof")
	}

	valid, err := e.Verify(x, y, rec.Iterations, pi)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("expected proof to verify")
	}
}

// TestDeterminism mirrors spec.md §8 scenario 3 and the determinism
// invariant in §5: identical inputs and T must yield bit-identical y, pi.
func TestDeterminism(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec1, err := e.Compute(d, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	rec2, err := e.Compute(d, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if rec1.Output != rec2.Output {
		t.Fatalf("output mismatch: %s vs %s", rec1.Output, rec2.Output)
	}
	if rec1.Proof != rec2.Proof {
		t.Fatalf("proof mismatch: %s vs %s", rec1.Proof, rec2.Proof)
	}
}

// TestSeedInjectivity mirrors spec.md §8 scenario 4.
func TestSeedInjectivity(t *testing.T) {
	e := New()
	a := Descriptor{PlayerID: 1, ActionType: "craft", ActionID: 1, Timestamp: 1234567890, Nonce: 1, RandomSalt: 12345}
	b := a
	b.ActionID = 2

	xa := e.DeriveSeed(a)
	xb := e.DeriveSeed(b)
	if xa.Cmp(xb) == 0 {
		t.Fatal("expected distinct seeds for distinct descriptors")
	}
}

// TestSeedInjectivityAcrossAllFields extends scenario 4 to every field.
func TestSeedInjectivityAcrossAllFields(t *testing.T) {
	e := New()
	base := testDescriptor()
	baseSeed := e.DeriveSeed(base)

	variants := []Descriptor{
		{PlayerID: base.PlayerID + 1, ActionType: base.ActionType, ActionID: base.ActionID, Timestamp: base.Timestamp, Nonce: base.Nonce, RandomSalt: base.RandomSalt},
		{PlayerID: base.PlayerID, ActionType: "other", ActionID: base.ActionID, Timestamp: base.Timestamp, Nonce: base.Nonce, RandomSalt: base.RandomSalt},
		{PlayerID: base.PlayerID, ActionType: base.ActionType, ActionID: base.ActionID + 1, Timestamp: base.Timestamp, Nonce: base.Nonce, RandomSalt: base.RandomSalt},
		{PlayerID: base.PlayerID, ActionType: base.ActionType, ActionID: base.ActionID, Timestamp: base.Timestamp + 1, Nonce: base.Nonce, RandomSalt: base.RandomSalt},
		{PlayerID: base.PlayerID, ActionType: base.ActionType, ActionID: base.ActionID, Timestamp: base.Timestamp, Nonce: base.Nonce + 1, RandomSalt: base.RandomSalt},
		{PlayerID: base.PlayerID, ActionType: base.ActionType, ActionID: base.ActionID, Timestamp: base.Timestamp, Nonce: base.Nonce, RandomSalt: base.RandomSalt + 1},
	}

	for i, v := range variants {
		if e.DeriveSeed(v).Cmp(baseSeed) == 0 {
			t.Fatalf("variant %d collided with base descriptor's seed", i)
		}
	}
}

// TestInvalidProofRejection mirrors spec.md §8 scenario 5.
func TestInvalidProofRejection(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec, err := e.Compute(d, 1000)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	x := e.DeriveSeed(d)
	y, _ := new(big.Int).SetString(rec.Output, 10)
	bogus := big.NewInt(12345)

	valid, err := e.Verify(x, y, 1000, bogus)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if valid {
		t.Fatal("expected bogus proof to be rejected")
	}
}

// TestSoundnessAnyWrongProofRejected is the general form of scenario 5:
// any proof other than the true one must be rejected. It checks the
// nearest such proof, pi+1 mod N.
func TestSoundnessAnyWrongProofRejected(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec, err := e.Compute(d, 500)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	x := e.DeriveSeed(d)
	y, _ := new(big.Int).SetString(rec.Output, 10)
	truePi, _ := new(big.Int).SetString(rec.Proof, 10)

	wrongPi := new(big.Int).Add(truePi, big.NewInt(1))
	wrongPi.Mod(wrongPi, e.modulus)

	valid, err := e.Verify(x, y, 500, wrongPi)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if valid {
		t.Fatal("expected pi+1 to be rejected")
	}
}

// TestTimeCalibration mirrors spec.md §8 scenario 6.
func TestTimeCalibration(t *testing.T) {
	e := New()

	iterations := e.TimeToIterations(3600)
	if iterations != 1_000_800 {
		t.Fatalf("time_to_iterations(3600) = %d, want 1000800", iterations)
	}

	seconds := e.IterationsToTime(iterations)
	if seconds != 3600 {
		t.Fatalf("iterations_to_time(1000800) = %d, want 3600", seconds)
	}
}

// TestCalibrationBijectionGeneral checks the bijection invariant from
// spec.md §8 across a handful of values.
func TestCalibrationBijectionGeneral(t *testing.T) {
	e := New()
	for _, s := range []uint64{0, 1, 7, 60, 3600, 86400} {
		got := e.IterationsToTime(e.TimeToIterations(s))
		if got != s {
			t.Fatalf("bijection broken for s=%d: got %d", s, got)
		}
	}
}

// TestBenchmarkPositivity mirrors spec.md §8 scenario 7.
func TestBenchmarkPositivity(t *testing.T) {
	e := New()
	rate, err := e.Benchmark(1000)
	if err != nil {
		t.Fatalf("Benchmark failed: %v", err)
	}
	if rate <= 0 {
		t.Fatalf("expected strictly positive rate, got %f", rate)
	}
}

// TestRange checks 0 <= y < N and 0 <= pi < N after Compute.
func TestRange(t *testing.T) {
	e := New()
	rec, err := e.Compute(testDescriptor(), 200)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	y, _ := new(big.Int).SetString(rec.Output, 10)
	pi, _ := new(big.Int).SetString(rec.Proof, 10)

	if y.Sign() < 0 || y.Cmp(e.modulus) >= 0 {
		t.Fatalf("y out of range: %s", y)
	}
	if pi.Sign() < 0 || pi.Cmp(e.modulus) >= 0 {
		t.Fatalf("pi out of range: %s", pi)
	}
}

// TestZeroIterations checks the edge case T=0: no squaring happens, so
// y = x, r = 2^0 mod l = 1, and the proof reduces through
// q = floor(1/l) = 0 to pi = x^0 = 1.
func TestZeroIterations(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec, err := e.Compute(d, 0)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	x := e.DeriveSeed(d)
	if rec.Output != x.String() {
		t.Fatalf("expected y == x for T=0, got y=%s x=%s", rec.Output, x.String())
	}

	y, _ := new(big.Int).SetString(rec.Output, 10)
	pi, _ := new(big.Int).SetString(rec.Proof, 10)
	valid, err := e.Verify(x, y, 0, pi)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("expected T=0 proof to verify")
	}
}

// TestDivisibleIterations is named for the l | T edge case from spec.md
// §4.4. Verify computes r = 2^T mod l, which is never 0 for the odd prime
// l, so Verify has no separate r = 0 branch; T cannot be chosen so that
// l | T since l depends on (x, y). The test checks that Verify accepts
// the honestly produced proof for T=1 with a different descriptor.
func TestDivisibleIterations(t *testing.T) {
	e := New()
	d := testDescriptor()
	d.ActionID = 999

	rec, err := e.Compute(d, 1)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	x := e.DeriveSeed(d)
	y, _ := new(big.Int).SetString(rec.Output, 10)
	pi, _ := new(big.Int).SetString(rec.Proof, 10)

	valid, err := e.Verify(x, y, 1, pi)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !valid {
		t.Fatal("expected proof to verify")
	}
}

// TestModulusIsDefensiveCopy ensures Modulus() cannot be used to corrupt
// the engine's shared modulus.
func TestModulusIsDefensiveCopy(t *testing.T) {
	e := New()
	n := e.Modulus()
	n.SetInt64(7)

	if e.modulus.Cmp(n) == 0 {
		t.Fatal("mutating the returned modulus affected the engine")
	}
	if e.modulus.String() != RSA2048Modulus {
		t.Fatal("engine modulus was mutated")
	}
}

// TestInputOutOfRange exercises the precondition check directly, since it
// is not reachable through the public 256-bit seed space.
func TestInputOutOfRange(t *testing.T) {
	e := &Engine{modulus: big.NewInt(100)}
	_, err := e.Compute(testDescriptor(), 10)
	if err == nil {
		t.Fatal("expected an error for a seed exceeding the modulus")
	}
}

// TestProgressCallback confirms the callback fires at least once (always
// true here since 5 is not a multiple of progressStep, so
// ComputeWithProgress makes a final call on completion) and that the
// final call reports all iterations done.
func TestProgressCallback(t *testing.T) {
	e := New()
	var calls int
	var lastDone uint64

	rec, err := e.ComputeWithProgress(testDescriptor(), 5, func(done uint64) {
		calls++
		lastDone = done
	})
	if err != nil {
		t.Fatalf("ComputeWithProgress failed: %v", err)
	}
	if calls == 0 {
		t.Fatal("progress callback never invoked")
	}
	if lastDone != rec.Iterations {
		t.Fatalf("final progress report = %d, want %d", lastDone, rec.Iterations)
	}
}

// TestComputeWithNilProgressMatchesCompute checks that ComputeWithProgress
// with a nil callback is behaviorally identical to Compute.
func TestComputeWithNilProgressMatchesCompute(t *testing.T) {
	e := New()
	d := testDescriptor()

	rec1, err := e.Compute(d, 50)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	rec2, err := e.ComputeWithProgress(d, 50, nil)
	if err != nil {
		t.Fatalf("ComputeWithProgress failed: %v", err)
	}
	if rec1.Output != rec2.Output || rec1.Proof != rec2.Proof {
		t.Fatal("nil-progress ComputeWithProgress diverged from Compute")
	}
}
