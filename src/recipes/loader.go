// Package recipes loads the craft recipe catalog and binds each recipe's
// cooldown to a VDF iteration count via the engine's time calibrator.
package recipes

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"vdfquest/src/types"
	"vdfquest/src/vdf"
)

//go:embed recipes.toml
var defaultCatalog []byte

// Catalog is a loaded, lookup-indexed recipe catalog.
type Catalog struct {
	byName map[string]types.Recipe
}

// LoadDefault loads the recipe catalog built into the binary.
func LoadDefault() (*Catalog, error) {
	return decode(defaultCatalog)
}

// Load reads a recipe catalog from a TOML file on disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("recipes: reading %s: %w", path, err)
	}
	return decode(data)
}

func decode(data []byte) (*Catalog, error) {
	var rc types.RecipeCatalog
	if _, err := toml.Decode(string(data), &rc); err != nil {
		return nil, fmt.Errorf("recipes: decoding catalog: %w", err)
	}

	c := &Catalog{byName: make(map[string]types.Recipe, len(rc.Recipes))}
	for _, r := range rc.Recipes {
		if r.Name == "" {
			return nil, fmt.Errorf("recipes: recipe with empty name")
		}
		if _, dup := c.byName[r.Name]; dup {
			return nil, fmt.Errorf("recipes: duplicate recipe name %q", r.Name)
		}
		c.byName[r.Name] = r
	}
	return c, nil
}

// Get returns the named recipe.
func (c *Catalog) Get(name string) (types.Recipe, error) {
	r, ok := c.byName[name]
	if !ok {
		return types.Recipe{}, fmt.Errorf("recipes: unknown recipe %q", name)
	}
	return r, nil
}

// IterationsFor returns the VDF iteration count required to craft the
// named recipe, per SPEC_FULL.md §4.8.
func (c *Catalog) IterationsFor(name string, e *vdf.Engine) (uint64, error) {
	r, err := c.Get(name)
	if err != nil {
		return 0, err
	}
	return e.TimeToIterations(r.RequiredSeconds), nil
}

// Names returns the recipe names in the catalog, for display purposes.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	return names
}
