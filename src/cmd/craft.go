package cmd

import (
	"flag"
	"fmt"
	"os"

	"vdfquest/src/operations"
	"vdfquest/src/recipes"
	"vdfquest/src/vdf"
)

// CraftCommand handles the craft subcommand.
func CraftCommand(args []string) error {
	fs := flag.NewFlagSet("craft", flag.ExitOnError)

	var (
		recipeName = fs.String("recipe", "", "Recipe to craft (required)")
		playerID   = fs.Uint64("player-id", 1, "Player id, used only the first time a config is created")
		name       = fs.String("name", "player", "Player name, used only the first time a config is created")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s craft --recipe NAME\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nStart a craft action using the built-in recipe catalog.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *recipeName == "" {
		return usageError(fs, "--recipe is required")
	}

	cfg, err := loadOrInitConfig(*playerID, *name)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	catalog, err := recipes.LoadDefault()
	if err != nil {
		return fmt.Errorf("failed to load recipe catalog: %v", err)
	}

	engine := vdf.New()
	action, err := operations.StartCraft(operations.StartCraftOptions{
		Config:  cfg,
		Engine:  engine,
		Catalog: catalog,
		Recipe:  *recipeName,
	})
	if err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %v", err)
	}

	fmt.Printf("Started craft action %s (%s)\n", action.ActionID, *recipeName)
	fmt.Printf("Iterations required: %d\n", action.Iterations)
	fmt.Printf("Run `%s complete --action %s` once the cooldown has elapsed.\n", os.Args[0], action.ActionID)
	return nil
}
