// Package chain builds the payload for an on-chain proof submission. It
// performs no network I/O and never will: actually talking to a
// blockchain is out of scope for this engine. It exists only so the CLI
// has a concrete, deterministic value to print.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"vdfquest/src/vdf"
)

// Submission is the payload a caller would hand to a real submission
// pipeline, were one ever wired up.
type Submission struct {
	Contract   string `json:"contract"`
	Address    string `json:"address"`
	Digest     string `json:"digest"`
	Iterations uint64 `json:"iterations"`
}

// BuildSubmission builds a Submission for rec against the named contract,
// looking up its address in addresses. It returns an error if contract is
// not present in addresses — there is no implicit default address.
func BuildSubmission(rec vdf.OutputRecord, contract string, addresses map[string]string) (Submission, error) {
	address, ok := addresses[contract]
	if !ok {
		return Submission{}, fmt.Errorf("chain: unknown contract %q", contract)
	}

	sum := sha256.Sum256([]byte(rec.Proof))
	return Submission{
		Contract:   contract,
		Address:    address,
		Digest:     hex.EncodeToString(sum[:]),
		Iterations: rec.Iterations,
	}, nil
}
