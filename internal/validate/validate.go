// Package validate implements the rules validator (spec C10 / §4.11 /
// §6): validate(state, action, params) -> [error strings], and
// available_actions(state). Validation never fails — it always returns a
// (possibly empty) list of human-readable problems; resolve only throws
// InvalidArgument when called without validation first, on truly broken
// references.
package validate

import (
	"fmt"

	"gridbowl/internal/actions"
	"gridbowl/internal/pathfinder"
	"gridbowl/internal/state"
)

// Descriptor is one entry in available_actions' result (spec §6).
type Descriptor struct {
	Type     actions.Type `json:"type"`
	PlayerID *int         `json:"playerId,omitempty"`
	TargetID *int         `json:"targetId,omitempty"`
	X        *int         `json:"x,omitempty"`
	Y        *int         `json:"y,omitempty"`
	Cost     *int         `json:"cost,omitempty"`
}

var phaseActions = map[state.Phase][]actions.Type{
	state.PhaseSetup: {actions.SetupPlayer, actions.EndSetup},
	state.PhasePlay: {
		actions.Move, actions.BlockAction, actions.Blitz, actions.PassAction, actions.HandOff,
		actions.Foul, actions.BombThrow, actions.HypnoticGaze, actions.MultipleBlock,
		actions.ThrowTeamMate, actions.EndTurn,
	},
}

// Validate returns every problem found with attempting action/params
// against g. An empty slice means the action is legal to resolve.
func Validate(g *state.GameState, action actions.Type, p actions.Params) []string {
	var errs []string

	allowed := phaseActions[g.Phase]
	found := false
	for _, a := range allowed {
		if a == action {
			found = true
			break
		}
	}
	if !found {
		errs = append(errs, fmt.Sprintf("action %s is not allowed in phase %s", action, g.Phase))
		return errs
	}

	if action == actions.EndSetup {
		return errs
	}

	player, ok := g.PlayerByID(p.PlayerID)
	if !ok {
		errs = append(errs, fmt.Sprintf("unknown playerId %d", p.PlayerID))
		return errs
	}
	if player.Side != g.ActiveTeam {
		errs = append(errs, "player does not belong to the active team")
	}
	if !player.OnPitch {
		errs = append(errs, "player is not on the pitch")
	}

	switch action {
	case actions.Move:
		if player.HasMoved {
			errs = append(errs, "player has already moved this turn")
		}
		targets := pathfinder.Reachable(g, player)
		if _, ok := targets[fmt.Sprintf("%d,%d", p.X, p.Y)]; !ok {
			errs = append(errs, "destination is not reachable")
		}
	case actions.BlockAction, actions.Blitz:
		if action == actions.Blitz && g.Team(g.ActiveTeam).BlitzUsedThisTurn {
			errs = append(errs, "blitz already used this turn")
		}
		target, ok := g.PlayerByID(p.TargetID)
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown targetId %d", p.TargetID))
			break
		}
		if target.Side == player.Side {
			errs = append(errs, "cannot block a teammate")
		}
		if player.State != state.Standing {
			errs = append(errs, "blocking player must be standing")
		}
	case actions.PassAction:
		if g.Team(g.ActiveTeam).PassUsedThisTurn {
			errs = append(errs, "pass already used this turn")
		}
		if g.Ball.Status != state.BallCarried || g.Ball.CarrierID != p.PlayerID {
			errs = append(errs, "player is not carrying the ball")
		}
	case actions.Foul:
		if g.Team(g.ActiveTeam).FoulUsedThisTurn {
			errs = append(errs, "foul already used this turn")
		}
		target, ok := g.PlayerByID(p.TargetID)
		if !ok {
			errs = append(errs, fmt.Sprintf("unknown targetId %d", p.TargetID))
			break
		}
		if target.State != state.Prone && target.State != state.Stunned {
			errs = append(errs, "foul target must be prone or stunned")
		}
	case actions.EndTurn:
		// Always legal for the active team.
	}

	return errs
}

// AvailableActions enumerates legal action descriptors for the current
// state (spec §6), a coarse listing suitable for a UI action menu rather
// than an exhaustive per-target expansion.
func AvailableActions(g *state.GameState) []Descriptor {
	var out []Descriptor
	allowed := phaseActions[g.Phase]

	for _, a := range allowed {
		if a == actions.EndSetup || a == actions.EndTurn {
			out = append(out, Descriptor{Type: a})
			continue
		}
		for _, player := range g.Players {
			if player.Side != g.ActiveTeam || !player.OnPitch {
				continue
			}
			errs := Validate(g, a, actions.Params{PlayerID: player.ID})
			if len(errs) == 0 || (len(errs) == 1 && a == actions.Move) {
				id := player.ID
				out = append(out, Descriptor{Type: a, PlayerID: &id})
			}
		}
	}
	return out
}

// ValidMoveTargets implements valid_move_targets(state, playerId) ->
// [{x, y, dodges, gfis}] (spec §6).
type MoveTarget struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Dodges int `json:"dodges"`
	GFIs   int `json:"gfis"`
}

func ValidMoveTargets(g *state.GameState, playerID int) []MoveTarget {
	player, ok := g.PlayerByID(playerID)
	if !ok {
		return nil
	}
	reachable := pathfinder.Reachable(g, player)
	out := make([]MoveTarget, 0, len(reachable))
	for _, t := range reachable {
		out = append(out, MoveTarget{X: t.X, Y: t.Y, Dodges: t.DodgeCount, GFIs: t.GFICount})
	}
	return out
}
