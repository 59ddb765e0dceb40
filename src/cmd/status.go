package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/config"
	"vdfquest/src/operations"
	"vdfquest/src/vdf"
)

// StatusCommand handles the status subcommand.
func StatusCommand(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s status\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPrint the persisted player state and every active action.\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.DefaultPath())
	if err == os.ErrNotExist {
		fmt.Println("No player found. Run gather or craft to create one.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	engine := vdf.New()
	result, err := operations.ReportStatus(operations.StatusOptions{Config: cfg, Engine: engine})
	if err != nil {
		return err
	}

	p := result.Player
	if p == nil {
		fmt.Println("No player found. Run gather or craft to create one.")
		return nil
	}
	fmt.Printf("Player #%d (%s)\n", p.PlayerID, p.Name)
	fmt.Printf("Currency: %d\n", p.Currency)
	fmt.Printf("Reputation: %.2f\n", p.Reputation)
	fmt.Printf("Experience: %d\n", p.Experience)
	if len(p.Inventory) > 0 {
		fmt.Println("Inventory:")
		for item, qty := range p.Inventory {
			fmt.Printf("  %s: %d\n", item, qty)
		}
	}

	if len(result.Actions) == 0 {
		fmt.Println("\nNo active actions.")
		return nil
	}

	fmt.Println("\nActive actions:")
	for _, a := range result.Actions {
		fmt.Printf("  %s [%s] status=%s remaining=%ds\n", a.ActionID, a.Kind, a.Status, a.RemainingSeconds)
	}
	return nil
}
