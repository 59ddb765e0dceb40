// Package types holds the serializable data model for the time-locked
// simulation that sits on top of the vdf engine: player state, in-flight
// actions, the recipe catalog, and the on-disk sealed-proof container.
package types

import "vdfquest/src/vdf"

// Position locates a player within the simulated world.
type Position struct {
	Country string `toml:"country" json:"country"`
	City    string `toml:"city" json:"city"`
	Street  string `toml:"street" json:"street"`
	X       int32  `toml:"x" json:"x"`
	Y       int32  `toml:"y" json:"y"`
}

// Action kind tags used as the action_type field fed into vdf.Descriptor
// and as the Kind field of ActionInProgress.
const (
	ActionGather = "gather"
	ActionCraft  = "craft"
	ActionClaim  = "claim"
)

// Status values for ActionInProgress, mirroring the engine's external
// three-state lifecycle from spec.md §4.7. There is no terminal invalid
// state: a failed verification simply leaves an action at StatusComputed.
const (
	StatusStarted  = "started"
	StatusComputed = "computed"
	StatusVerified = "verified"
)

// ActionInProgress is one in-flight gather/craft/claim action bound to a
// VDF computation. RecipeName is empty for gather and claim actions.
type ActionInProgress struct {
	ActionID   string         `toml:"action_id" json:"action_id"`
	Kind       string         `toml:"kind" json:"kind"`
	RecipeName string         `toml:"recipe_name,omitempty" json:"recipe_name,omitempty"`
	StartTime  uint64         `toml:"start_time" json:"start_time"`
	Iterations uint64         `toml:"iterations" json:"iterations"`
	Descriptor vdf.Descriptor `toml:"descriptor" json:"descriptor"`
	Status     string         `toml:"status" json:"status"`
}

// PlayerState is the persisted state of a single player.
type PlayerState struct {
	PlayerID      uint64            `toml:"player_id"`
	Name          string            `toml:"name"`
	Position      Position          `toml:"position"`
	Inventory     map[string]uint32 `toml:"inventory"`
	Currency      uint64            `toml:"currency"`
	LastClaimTime uint64            `toml:"last_claim_time"`
	OwnedStores   []uint64          `toml:"owned_stores"`
	Reputation    float64           `toml:"reputation"`
	Experience    uint64            `toml:"experience"`
	Nonce         uint64            `toml:"nonce"`
}

// NextNonce increments and returns the player's action nonce. Every
// started action must consume a fresh nonce so that two otherwise
// identical actions derive distinct VDF seeds.
func (p *PlayerState) NextNonce() uint64 {
	p.Nonce++
	return p.Nonce
}

// GameConfig is the root document persisted to disk as TOML: player
// state, the set of in-flight actions, and the address book used by the
// chain submission stub.
type GameConfig struct {
	Player            *PlayerState       `toml:"player"`
	ActiveActions     []ActionInProgress `toml:"active_actions"`
	ContractAddresses map[string]string  `toml:"contract_addresses"`
}

// NewGameConfig returns a fresh config for a newly initialized player.
func NewGameConfig(playerID uint64, name string) *GameConfig {
	return &GameConfig{
		Player: &PlayerState{
			PlayerID:  playerID,
			Name:      name,
			Inventory: make(map[string]uint32),
		},
		ActiveActions:     nil,
		ContractAddresses: make(map[string]string),
	}
}

// FindAction returns a pointer to the active action with the given id, or
// nil if none matches.
func (c *GameConfig) FindAction(actionID string) *ActionInProgress {
	for i := range c.ActiveActions {
		if c.ActiveActions[i].ActionID == actionID {
			return &c.ActiveActions[i]
		}
	}
	return nil
}

// Recipe describes one craftable item: the cooldown it imposes (expressed
// in seconds and converted to VDF iterations by the caller), the
// ingredients it consumes, and the item it produces.
type Recipe struct {
	Name            string            `toml:"name"`
	RequiredSeconds uint64            `toml:"required_seconds"`
	Ingredients     map[string]uint32 `toml:"ingredients"`
	Result          string            `toml:"result"`
	ResultQuantity  uint32            `toml:"result_quantity"`
}

// RecipeCatalog is the root document of a recipes.toml file.
type RecipeCatalog struct {
	Recipes []Recipe `toml:"recipe"`
}
