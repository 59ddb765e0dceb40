package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"vdfquest/src/config"
	"vdfquest/src/types"
)

// loadOrInitConfig loads the player's config from the default path,
// creating a fresh one (with the given player id and name) the first
// time the CLI is run. Every subcommand that touches player state goes
// through this so there is exactly one place that decides what "no
// config yet" means.
func loadOrInitConfig(playerID uint64, name string) (*types.GameConfig, error) {
	path := config.DefaultPath()
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if err != os.ErrNotExist {
		return nil, err
	}
	return types.NewGameConfig(playerID, name), nil
}

func saveConfig(cfg *types.GameConfig) error {
	return config.Save(config.DefaultPath(), cfg)
}

// usageError prints fs's usage and returns an error wrapping msg, the
// pattern every subcommand in this package uses for a missing required
// flag.
func usageError(fs *flag.FlagSet, msg string) error {
	fs.Usage()
	return fmt.Errorf("%s", msg)
}

func secondsToDuration(seconds uint64) time.Duration {
	return time.Duration(seconds) * time.Second
}
