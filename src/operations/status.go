package operations

import (
	"time"

	"vdfquest/src/types"
	"vdfquest/src/vdf"
)

// StatusOptions contains all the parameters needed for reporting player
// status.
type StatusOptions struct {
	Config *types.GameConfig
	Engine *vdf.Engine
}

// ActionStatus summarizes one active action for display, including an
// estimate of the wall-clock time remaining before it can be completed.
type ActionStatus struct {
	types.ActionInProgress
	RemainingSeconds int64
}

// StatusResult contains the player's current state and the status of
// every action they have in flight.
type StatusResult struct {
	Player  *types.PlayerState
	Actions []ActionStatus
}

// ReportStatus inspects the player's config and reports where every
// active action stands relative to the engine's iteration calibration.
func ReportStatus(opts StatusOptions) (*StatusResult, error) {
	result := &StatusResult{Player: opts.Config.Player}

	for _, action := range opts.Config.ActiveActions {
		totalSeconds := int64(opts.Engine.IterationsToTime(action.Iterations))
		elapsed := time.Now().Unix() - int64(action.StartTime)
		remaining := totalSeconds - elapsed
		if remaining < 0 {
			remaining = 0
		}

		result.Actions = append(result.Actions, ActionStatus{
			ActionInProgress: action,
			RemainingSeconds: remaining,
		})
	}

	return result, nil
}
