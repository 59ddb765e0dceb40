package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"vdfquest/src/chain"
	"vdfquest/src/config"
	"vdfquest/src/proofs"
)

// SubmitCommand handles the submit subcommand.
func SubmitCommand(args []string) error {
	fs := flag.NewFlagSet("submit", flag.ExitOnError)

	var (
		proofFile = fs.String("proof", "", "Proof file to submit (required)")
		contract  = fs.String("contract", "", "Contract name, as registered in contract_addresses (required)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s submit --proof FILE --contract NAME\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nBuild and print a chain submission payload for a proof file.\n")
		fmt.Fprintf(os.Stderr, "This never sends anything over the network.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *proofFile == "" {
		return usageError(fs, "--proof is required")
	}
	if *contract == "" {
		return usageError(fs, "--contract is required")
	}

	doc, err := proofs.ReadRecord(*proofFile)
	if err != nil {
		return fmt.Errorf("failed to read proof: %v", err)
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	sub, err := chain.BuildSubmission(doc.Record, *contract, cfg.ContractAddresses)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submission: %v", err)
	}
	fmt.Println(string(out))
	return nil
}
