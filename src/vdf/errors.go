package vdf

import "errors"

// Sentinel errors returned by Engine methods. Callers should use
// errors.Is against these rather than comparing strings.
var (
	// ErrInputOutOfRange is returned when a derived seed is not strictly
	// less than the modulus. Unreachable with the fixed 256-bit seed and
	// the RSA-2048 modulus, but enforced because Compute accepts any
	// Descriptor and must stay correct for future, larger seed spaces.
	ErrInputOutOfRange = errors.New("vdf: seed out of range")

	// ErrArithmeticFailure wraps an unexpected failure inside modular
	// exponentiation or the prime search. math/big does not normally
	// surface these as errors (it panics on truly invalid input, e.g. a
	// nil modulus), so Compute and Verify recover from such a panic and
	// report it through this sentinel instead of crashing the caller.
	ErrArithmeticFailure = errors.New("vdf: arithmetic failure")

	// ErrClockFailure is returned by Benchmark (and would be returned by
	// computation-time measurement) when the measured elapsed duration is
	// not strictly positive, which can only happen if the system clock
	// moved backward mid-measurement.
	ErrClockFailure = errors.New("vdf: clock failure")
)
