// Package config loads and saves the game's GameConfig as TOML at a
// fixed per-user path.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"vdfquest/src/types"
)

// DefaultPath returns the default config file location: config.toml
// inside the .vdfquest directory under the user's home directory.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".vdfquest", "config.toml")
}

// Load reads a GameConfig from path. If the file does not exist, Load
// returns (nil, os.ErrNotExist) so callers can distinguish "no player
// yet" from a genuine I/O or parse failure.
func Load(path string) (*types.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &types.GameConfig{}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	if cfg.ContractAddresses == nil {
		cfg.ContractAddresses = make(map[string]string)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg *types.GameConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("config: creating directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encoding %s: %w", path, err)
	}
	return nil
}
