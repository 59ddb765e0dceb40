package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/config"
	"vdfquest/src/operations"
	"vdfquest/src/proofs"
	"vdfquest/src/types"
	"vdfquest/src/utils"
	"vdfquest/src/vdf"
)

// VerifyCommand handles the verify subcommand.
func VerifyCommand(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)

	var (
		proofFile = fs.String("proof", "", "Proof file to verify (required)")
		sealed    = fs.Bool("sealed", false, "The proof file is password-protected")
		keyInput  = fs.String("key", "", "Passphrase or @file:path (required with --sealed)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s verify --proof FILE [--sealed --key KEY]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRe-derive the seed from a proof file's descriptor and verify its proof.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *proofFile == "" {
		return usageError(fs, "--proof is required")
	}
	if *sealed && *keyInput == "" {
		return usageError(fs, "--key is required with --sealed")
	}

	var doc proofs.Document
	var err error
	if *sealed {
		passphrase, perr := utils.ParseKeyInput(*keyInput)
		if perr != nil {
			return fmt.Errorf("failed to parse key input: %v", perr)
		}
		doc, err = proofs.ReadSealedRecord(*proofFile, passphrase)
	} else {
		doc, err = proofs.ReadRecord(*proofFile)
	}
	if err != nil {
		return fmt.Errorf("failed to read proof: %v", err)
	}

	engine := vdf.New()

	// A proof file can be verified even when its action is no longer in
	// the local config (e.g. it was handed to another player); only
	// update persisted state when it still is.
	cfg, cfgErr := config.Load(config.DefaultPath())
	persist := true
	if cfgErr == os.ErrNotExist {
		cfg = &types.GameConfig{}
		persist = false
	} else if cfgErr != nil {
		return fmt.Errorf("failed to load config: %v", cfgErr)
	}

	valid, err := operations.VerifyAction(cfg, engine, doc.ActionID, doc.Record)
	if err != nil {
		return err
	}

	if valid {
		fmt.Printf("VALID: action %s is verified.\n", doc.ActionID)
	} else {
		fmt.Printf("INVALID: action %s failed verification.\n", doc.ActionID)
	}

	if persist {
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save config: %v", err)
		}
	}

	if !valid {
		os.Exit(1)
	}
	return nil
}
