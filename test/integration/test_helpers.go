package integration

import (
	"os"
	"testing"

	"vdfquest/src/recipes"
	"vdfquest/src/types"
	"vdfquest/src/vdf"
)

// Test configuration constants. Iteration counts are kept tiny so the
// suite runs in well under a second even though the underlying engine is
// the same one used against production-scale cooldowns.
const (
	testIterations      = 37
	testCraftIterations = 20
)

func newTestEngine() *vdf.Engine {
	return vdf.New()
}

func newTestPlayer(id uint64) *types.GameConfig {
	cfg := types.NewGameConfig(id, "integration-player")
	cfg.Player.Inventory["wood"] = 10
	cfg.Player.Inventory["iron_ore"] = 10
	cfg.Player.Inventory["herb"] = 10
	cfg.Player.Inventory["water"] = 10
	return cfg
}

func loadTestCatalog(t *testing.T) *recipes.Catalog {
	t.Helper()
	catalog, err := recipes.LoadDefault()
	if err != nil {
		t.Fatalf("failed to load default recipe catalog: %v", err)
	}
	return catalog
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
