// Package vdf implements a Verifiable Delay Function based on Wesolowski's
// scheme: repeated squaring in the RSA-2048 group of unknown order, with a
// succinct proof that the squaring was actually carried out T times.
//
// The engine is pure and stateless beyond the fixed modulus it is loaded
// with. It never retries internally, never writes to stderr, and never
// exits the process — every failure is returned to the caller (see the
// sentinel errors in errors.go).
package vdf

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"time"
)

// RSA2048Modulus is the exact RSA-2048 challenge modulus: a 2048-bit
// composite of unknown factorization standing in for a group of unknown
// order. It must never be factored or reduced by this package.
const RSA2048Modulus = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784406918290641249515082189298559149176184502808489120072844992687392807287776735971418347270261896375014971824691165077613379859095700097330459748808428401797429100642458691817195118746121515172654632282216869987549182422433637259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133844143603833904414952634432190114657544454178424020924616515723350778707749817125772467962926386356373289912154831438167899885040445364023527381951378636564391212010397122822120720357"

// IterationsPerSecond is the process-wide calibration constant relating
// wall-clock seconds to sequential-squaring iterations. It reflects a
// reference squaring rate for RSA-2048 on commodity hardware and never
// affects proof validity — only the time<->iteration bijection.
const IterationsPerSecond = 278

// MillerRabinRounds is the number of Miller-Rabin rounds used by the
// hash-to-prime search, giving a false-positive probability of at most
// 4^-10 for any returned challenge prime.
const MillerRabinRounds = 10

// Descriptor uniquely identifies the action a VDF computation attests to.
// Two descriptors differing in any field must derive different seeds with
// overwhelming probability.
type Descriptor struct {
	PlayerID   uint64
	ActionType string
	ActionID   uint64
	Timestamp  uint64
	Nonce      uint64
	RandomSalt uint64
}

// OutputRecord is the immutable result of a single Compute call. Big
// integers are carried as decimal strings so the record is trivially
// human-readable and portable across big-integer libraries.
type OutputRecord struct {
	Input           Descriptor `json:"input"`
	Output          string     `json:"output"`
	Iterations      uint64     `json:"iterations"`
	Proof           string     `json:"proof"`
	ComputationTime float64    `json:"computation_time"`
}

// Engine holds the fixed modulus and exposes the seed deriver, prover,
// verifier, and time calibrator. An Engine is immutable after New and is
// safe for concurrent use by independent goroutines — it has no mutable
// state of its own.
type Engine struct {
	modulus *big.Int
}

// New constructs an engine preloaded with the RSA-2048 modulus.
func New() *Engine {
	n, ok := new(big.Int).SetString(RSA2048Modulus, 10)
	if !ok {
		// The modulus literal is a compile-time constant of this package;
		// a parse failure here means the source was corrupted, not a
		// runtime condition a caller can act on.
		panic("vdf: failed to parse RSA-2048 modulus")
	}
	return &Engine{modulus: n}
}

// Modulus returns a defensive copy of N so callers cannot mutate the
// engine's shared modulus through the returned value.
func (e *Engine) Modulus() *big.Int {
	return new(big.Int).Set(e.modulus)
}

// DeriveSeed deterministically maps a Descriptor to an integer x in
// [0, 2^256), per spec.md §4.1: the six fields are concatenated in fixed
// order (little-endian for numeric fields, raw bytes for action_type, no
// length prefix or terminator) and hashed with SHA-256. The digest is
// interpreted as an integer in least-significant-first byte order.
func (e *Engine) DeriveSeed(d Descriptor) *big.Int {
	h := sha256.New()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], d.PlayerID)
	h.Write(buf[:])

	h.Write([]byte(d.ActionType))

	binary.LittleEndian.PutUint64(buf[:], d.ActionID)
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], d.Timestamp)
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], d.Nonce)
	h.Write(buf[:])

	binary.LittleEndian.PutUint64(buf[:], d.RandomSalt)
	h.Write(buf[:])

	return lsfToInt(h.Sum(nil))
}

// ProgressCallback reports how many squaring iterations have completed
// so far. It may be called from within ComputeWithProgress at arbitrary
// intervals and must return quickly — it runs on the same goroutine as the
// squaring loop.
type ProgressCallback func(done uint64)

// progressStep is how many squarings elapse between progress callback
// invocations, chosen so a caller driving a terminal progress bar sees
// regular updates without the callback itself becoming the bottleneck.
const progressStep = 1 << 14

// Compute runs the prover: it derives x from d, squares it modulo N
// exactly iterations times to produce y, measures the elapsed wall-clock
// time, and attaches a Wesolowski proof of the computation.
func (e *Engine) Compute(d Descriptor, iterations uint64) (OutputRecord, error) {
	return e.ComputeWithProgress(d, iterations, nil)
}

// ComputeWithProgress is Compute with an optional callback invoked every
// progressStep iterations of the squaring loop, plus a final call
// reporting iterations when the loop's last step did not already report
// it (iterations is 0 or not a multiple of progressStep). A nil callback
// behaves exactly like Compute.
func (e *Engine) ComputeWithProgress(d Descriptor, iterations uint64, progress ProgressCallback) (rec OutputRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrArithmeticFailure, r)
		}
	}()

	x := e.DeriveSeed(d)
	if x.Cmp(e.modulus) >= 0 {
		return OutputRecord{}, fmt.Errorf("%w: derived seed is not less than the modulus", ErrInputOutOfRange)
	}

	start := time.Now()

	y := new(big.Int).Set(x)
	for i := uint64(0); i < iterations; i++ {
		y.Mul(y, y)
		y.Mod(y, e.modulus)

		if progress != nil && (i+1)%progressStep == 0 {
			progress(i + 1)
		}
	}
	if progress != nil && (iterations == 0 || iterations%progressStep != 0) {
		progress(iterations)
	}

	elapsed := time.Since(start)

	proof, err := e.prove(x, y, iterations)
	if err != nil {
		return OutputRecord{}, err
	}

	return OutputRecord{
		Input:           d,
		Output:          y.String(),
		Iterations:      iterations,
		Proof:           proof.String(),
		ComputationTime: elapsed.Seconds(),
	}, nil
}

// prove implements spec.md §4.3: derive the challenge prime l from (x, y)
// and return pi = x^floor(2^iterations / l) mod N.
//
// The quotient q = floor(2^T / l) is never materialized as a big integer
// of its own (it can be far larger than T itself); instead pi and the
// running remainder r of 2^i mod l are both updated one bit of the
// exponent at a time. Since 0 <= r < l is an invariant, doubling r before
// reducing it mod l produces a quotient bit in {0, 1}: r.Mul(r, two)
// leaves r < 2l, so b = r/l is 0 or 1, and that bit folds into pi as a
// squaring plus (when b=1) one extra multiply by x. After iterations
// steps this yields x^q mod N exactly, using only iterations modular
// squarings.
func (e *Engine) prove(x, y *big.Int, iterations uint64) (*big.Int, error) {
	l, err := e.hashToPrime(x, y)
	if err != nil {
		return nil, err
	}

	pi := new(big.Int).Set(one)
	r := new(big.Int).Set(one)
	b := new(big.Int)

	for i := uint64(0); i < iterations; i++ {
		r.Mul(r, two)
		b.Div(r, l)
		r.Mod(r, l)

		pi.Mul(pi, pi)
		if b.Sign() != 0 {
			pi.Mul(pi, x)
		}
		pi.Mod(pi, e.modulus)
	}
	return pi, nil
}

// Verify checks whether pi is a valid Wesolowski proof that
// y = x^(2^iterations) mod N, per spec.md §4.4. It returns (false, nil)
// for any invalid proof — rejection is a valid outcome, not an error.
func (e *Engine) Verify(x, y *big.Int, iterations uint64, pi *big.Int) (valid bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			valid, err = false, fmt.Errorf("%w: %v", ErrArithmeticFailure, r)
		}
	}()

	l, err := e.hashToPrime(x, y)
	if err != nil {
		return false, err
	}

	r := new(big.Int).Exp(big.NewInt(2), new(big.Int).SetUint64(iterations), l)

	left := new(big.Int).Exp(x, r, e.modulus)
	right := new(big.Int).Exp(pi, l, e.modulus)
	left.Mul(left, right)
	left.Mod(left, e.modulus)

	return left.Cmp(new(big.Int).Mod(y, e.modulus)) == 0, nil
}

// hashToPrime implements spec.md §4.5: hash the decimal encodings of x and
// y, interpret the digest least-significant-first, force it odd, and walk
// forward by two until it passes Miller-Rabin with MillerRabinRounds
// rounds.
func (e *Engine) hashToPrime(x, y *big.Int) (*big.Int, error) {
	h := sha256.New()
	h.Write([]byte(x.String()))
	h.Write([]byte(y.String()))

	c := lsfToInt(h.Sum(nil))
	if c.Bit(0) == 0 {
		c.Add(c, one)
	}
	for !c.ProbablyPrime(MillerRabinRounds) {
		c.Add(c, two)
	}
	return c, nil
}

// TimeToIterations converts a wall-clock duration in seconds to the
// iteration count that takes roughly that long to compute.
func (e *Engine) TimeToIterations(seconds uint64) uint64 {
	return seconds * IterationsPerSecond
}

// IterationsToTime converts an iteration count to an estimated wall-clock
// duration in seconds. Integer division loses sub-second precision by
// design (spec.md §4.6).
func (e *Engine) IterationsToTime(iterations uint64) uint64 {
	return iterations / IterationsPerSecond
}

// Benchmark measures this machine's effective squaring rate by running
// Compute on a synthetic input of testIterations iterations and returns
// iterations-per-second. It exists purely for calibration and diagnostics
// and never influences proof semantics.
func (e *Engine) Benchmark(testIterations uint64) (float64, error) {
	d := Descriptor{
		PlayerID:   1,
		ActionType: "benchmark",
		ActionID:   1,
		Timestamp:  uint64(time.Now().Unix()),
		Nonce:      1,
		RandomSalt: 12345,
	}

	start := time.Now()
	if _, err := e.Compute(d, testIterations); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	if elapsed <= 0 {
		return 0, ErrClockFailure
	}
	return float64(testIterations) / elapsed.Seconds(), nil
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// lsfToInt interprets b as an unsigned integer in least-significant-first
// byte order (b[0] holds bits 0..7), as required by spec.md §4.1 and §4.5.
// big.Int.SetBytes expects big-endian input, so we reverse a copy first.
func lsfToInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(rev)
}
