// Package operations orchestrates the game layer around the vdf engine:
// starting a gather/craft action, completing it (running the prover),
// verifying a stored proof, benchmarking the host machine, and reporting
// player status. Each action drives through a one-way three-state
// lifecycle: started, computed, verified.
package operations

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	"time"

	"vdfquest/src/recipes"
	"vdfquest/src/types"
	"vdfquest/src/vdf"
)

// StartGatherOptions configures a gather action.
type StartGatherOptions struct {
	Config          *types.GameConfig
	Engine          *vdf.Engine
	CooldownSeconds uint64
}

// StartGather begins a gather action with a fixed cooldown, converted to
// VDF iterations, and appends it to Config.ActiveActions.
func StartGather(opts StartGatherOptions) (types.ActionInProgress, error) {
	if opts.Config.Player == nil {
		return types.ActionInProgress{}, fmt.Errorf("operations: no player loaded")
	}
	iterations := opts.Engine.TimeToIterations(opts.CooldownSeconds)
	return startAction(opts.Config, opts.Engine, types.ActionGather, "", iterations)
}

// StartCraftOptions configures a craft action.
type StartCraftOptions struct {
	Config  *types.GameConfig
	Engine  *vdf.Engine
	Catalog *recipes.Catalog
	Recipe  string
}

// StartCraft begins crafting the named recipe, consuming its ingredients
// from the player's inventory up front, before the expensive VDF
// computation starts.
func StartCraft(opts StartCraftOptions) (types.ActionInProgress, error) {
	if opts.Config.Player == nil {
		return types.ActionInProgress{}, fmt.Errorf("operations: no player loaded")
	}

	recipe, err := opts.Catalog.Get(opts.Recipe)
	if err != nil {
		return types.ActionInProgress{}, err
	}
	for item, qty := range recipe.Ingredients {
		if opts.Config.Player.Inventory[item] < qty {
			return types.ActionInProgress{}, fmt.Errorf("operations: insufficient %s for recipe %q", item, opts.Recipe)
		}
	}

	iterations, err := opts.Catalog.IterationsFor(opts.Recipe, opts.Engine)
	if err != nil {
		return types.ActionInProgress{}, err
	}

	action, err := startAction(opts.Config, opts.Engine, types.ActionCraft, opts.Recipe, iterations)
	if err != nil {
		return types.ActionInProgress{}, err
	}

	for item, qty := range recipe.Ingredients {
		opts.Config.Player.Inventory[item] -= qty
	}
	return action, nil
}

// startAction derives a fresh nonce and random salt, builds the
// vdf.Descriptor, appends the new ActionInProgress to cfg, and returns it.
func startAction(cfg *types.GameConfig, e *vdf.Engine, kind, recipeName string, iterations uint64) (types.ActionInProgress, error) {
	salt, err := randomSalt()
	if err != nil {
		return types.ActionInProgress{}, fmt.Errorf("operations: generating salt: %w", err)
	}

	now := uint64(time.Now().Unix())
	descriptor := vdf.Descriptor{
		PlayerID:   cfg.Player.PlayerID,
		ActionType: kind,
		ActionID:   uint64(len(cfg.ActiveActions) + 1),
		Timestamp:  now,
		Nonce:      cfg.Player.NextNonce(),
		RandomSalt: salt,
	}

	action := types.ActionInProgress{
		ActionID:   actionID(descriptor),
		Kind:       kind,
		RecipeName: recipeName,
		StartTime:  now,
		Iterations: iterations,
		Descriptor: descriptor,
		Status:     types.StatusStarted,
	}
	cfg.ActiveActions = append(cfg.ActiveActions, action)
	return action, nil
}

// CompleteAction runs the prover for the named action and advances it to
// types.StatusComputed, returning its output record. It blocks for the
// full iteration count — a caller wanting a responsive UI during a long
// cooldown should call it from its own goroutine (spec.md §5) and pass a
// non-nil progress callback, invoked periodically as iterations complete.
func CompleteAction(cfg *types.GameConfig, e *vdf.Engine, actionID string, progress vdf.ProgressCallback) (vdf.OutputRecord, error) {
	action := cfg.FindAction(actionID)
	if action == nil {
		return vdf.OutputRecord{}, fmt.Errorf("operations: unknown action %q", actionID)
	}
	if action.Status != types.StatusStarted {
		return vdf.OutputRecord{}, fmt.Errorf("operations: action %q is not in started state (status=%s)", actionID, action.Status)
	}

	rec, err := e.ComputeWithProgress(action.Descriptor, action.Iterations, progress)
	if err != nil {
		return vdf.OutputRecord{}, fmt.Errorf("operations: computing action %q: %w", actionID, err)
	}

	action.Status = types.StatusComputed
	return rec, nil
}

// VerifyAction re-derives the seed from descriptor and checks that the
// given output/proof attest to it, advancing action (if found in cfg) to
// types.StatusVerified on success. A false result is not an error and
// leaves the action at its current status.
func VerifyAction(cfg *types.GameConfig, e *vdf.Engine, actionID string, rec vdf.OutputRecord) (bool, error) {
	x := e.DeriveSeed(rec.Input)
	y, ok := new(big.Int).SetString(rec.Output, 10)
	if !ok {
		return false, fmt.Errorf("operations: malformed output %q", rec.Output)
	}
	pi, ok := new(big.Int).SetString(rec.Proof, 10)
	if !ok {
		return false, fmt.Errorf("operations: malformed proof %q", rec.Proof)
	}

	valid, err := e.Verify(x, y, rec.Iterations, pi)
	if err != nil {
		return false, fmt.Errorf("operations: verifying action %q: %w", actionID, err)
	}
	if valid {
		if action := cfg.FindAction(actionID); action != nil {
			action.Status = types.StatusVerified
		}
	}
	return valid, nil
}

func actionID(d vdf.Descriptor) string {
	return fmt.Sprintf("%s-%d-%d", d.ActionType, d.PlayerID, d.ActionID)
}

func randomSalt() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}
