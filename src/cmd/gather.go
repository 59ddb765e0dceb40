package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/operations"
	"vdfquest/src/vdf"
)

// GatherCommand handles the gather subcommand.
func GatherCommand(args []string) error {
	fs := flag.NewFlagSet("gather", flag.ExitOnError)

	var (
		seconds  = fs.Uint64("duration", 60, "Cooldown in seconds before the gather action can be completed")
		playerID = fs.Uint64("player-id", 1, "Player id, used only the first time a config is created")
		name     = fs.String("name", "player", "Player name, used only the first time a config is created")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s gather [--duration SECONDS]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nStart a gather action with a fixed cooldown.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadOrInitConfig(*playerID, *name)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	engine := vdf.New()
	action, err := operations.StartGather(operations.StartGatherOptions{
		Config:          cfg,
		Engine:          engine,
		CooldownSeconds: *seconds,
	})
	if err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %v", err)
	}

	fmt.Printf("Started gather action %s\n", action.ActionID)
	fmt.Printf("Iterations required: %d\n", action.Iterations)
	fmt.Printf("Run `%s complete --action %s` once the cooldown has elapsed.\n", os.Args[0], action.ActionID)
	return nil
}
