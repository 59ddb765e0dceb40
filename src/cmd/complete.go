package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/config"
	"vdfquest/src/operations"
	"vdfquest/src/proofs"
	"vdfquest/src/utils"
	"vdfquest/src/vdf"
)

// CompleteCommand handles the complete subcommand.
func CompleteCommand(args []string) error {
	fs := flag.NewFlagSet("complete", flag.ExitOnError)

	var (
		actionID   = fs.String("action", "", "Action id to complete (required)")
		outputFile = fs.String("output", "", "Proof file to write (default: ACTION_ID.proof.json)")
		seal       = fs.Bool("seal", false, "Password-protect the proof file")
		keyInput   = fs.String("key", "", "Passphrase or @file:path (required with --seal)")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s complete --action ID [--output FILE] [--seal --key KEY]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRun the prover for a started action and write its proof file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *actionID == "" {
		return usageError(fs, "--action is required")
	}
	if *seal && *keyInput == "" {
		return usageError(fs, "--key is required with --seal")
	}

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	action := cfg.FindAction(*actionID)
	if action == nil {
		return fmt.Errorf("no such action: %s", *actionID)
	}

	if *outputFile == "" {
		*outputFile = *actionID + ".proof.json"
		if *seal {
			*outputFile = *actionID + ".proof.sealed"
		}
	}

	fmt.Printf("Computing %d iterations for action %s...\n", action.Iterations, *actionID)
	engine := vdf.New()

	progressBar := utils.NewProgressBar(action.Iterations)
	rec, err := operations.CompleteAction(cfg, engine, *actionID, func(done uint64) {
		progressBar.Update(done)
	})
	if err != nil {
		return err
	}
	progressBar.Finish()

	doc := proofs.NewDocument(*cfg.FindAction(*actionID), rec)

	if *seal {
		passphrase, err := utils.ParseKeyInput(*keyInput)
		if err != nil {
			return fmt.Errorf("failed to parse key input: %v", err)
		}
		if err := proofs.WriteSealedRecord(*outputFile, doc, passphrase); err != nil {
			return fmt.Errorf("failed to write sealed proof: %v", err)
		}
	} else {
		if err := proofs.WriteRecord(*outputFile, doc); err != nil {
			return fmt.Errorf("failed to write proof: %v", err)
		}
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %v", err)
	}

	fmt.Printf("Computation complete in %.2fs\n", rec.ComputationTime)
	fmt.Printf("Proof written to %s\n", *outputFile)
	return nil
}
