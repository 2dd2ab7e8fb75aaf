// Package engine is the top-level orchestrator (spec C11): Resolve(state,
// action, params) dispatches to internal/actions, then runs the
// post-action hooks of spec §4.12 in order — touchdown detection,
// turnover-to-end-turn, turn/half/game advancement, and Stunned-to-prone
// recovery with per-turn flag clearing.
package engine

import (
	"gridbowl/internal/actions"
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/state"
)

const turnsPerHalf = 8

// Resolve runs one action through its handler and every post-action hook,
// returning the new root state and the full event log for the call.
func Resolve(g *state.GameState, src dice.Source, action actions.Type, p actions.Params) (*state.GameState, events.Log) {
	var log events.Log

	next, hlog := dispatch(g, src, action, p)
	log = append(log, hlog...)

	next, tdLog := checkTouchdown(next)
	log = append(log, tdLog...)

	if next.TurnoverPending {
		var etLog events.Log
		next, etLog = applyEndTurn(next)
		log = append(log, etLog...)
	}

	return next, log
}

func dispatch(g *state.GameState, src dice.Source, action actions.Type, p actions.Params) (*state.GameState, events.Log) {
	switch action {
	case actions.Move:
		res := actions.HandleMove(g, src, p)
		return withTurnover(res)
	case actions.BlockAction:
		res := actions.HandleBlock(g, src, p, false)
		return withTurnover(res)
	case actions.Blitz:
		res := actions.HandleBlock(g, src, p, true)
		return withTurnover(res)
	case actions.PassAction:
		res := actions.HandlePass(g, src, p)
		return withTurnover(res)
	case actions.Foul:
		res := actions.HandleFoul(g, src, p)
		return withTurnover(res)
	case actions.HandOff:
		res := actions.HandleHandOff(g, src, p)
		return withTurnover(res)
	case actions.MultipleBlock:
		res := actions.HandleMultipleBlock(g, src, p)
		return withTurnover(res)
	case actions.BombThrow:
		res := actions.HandleBombThrow(g, src, p)
		return withTurnover(res)
	case actions.HypnoticGaze:
		res := actions.HandleHypnoticGaze(g, src, p)
		return withTurnover(res)
	case actions.ThrowTeamMate:
		res := actions.HandleThrowTeamMate(g, src, p)
		return withTurnover(res)
	case actions.SetupPlayer:
		res := actions.HandleSetupPlayer(g, p)
		return withTurnover(res)
	case actions.EndSetup:
		res := actions.HandleEndSetup(g)
		return withTurnover(res)
	case actions.EndTurn:
		res := actions.HandleEndTurn(g)
		next := res.State
		next.TurnoverPending = false
		next, etLog := applyEndTurn(next)
		return next, append(res.Events, etLog...)
	default:
		return g.Clone(), nil
	}
}

func withTurnover(res actions.Result) (*state.GameState, events.Log) {
	res.State.TurnoverPending = res.TurnoverPending
	return res.State, res.Events
}

// checkTouchdown implements post-hook (1): a ball carrier standing in the
// opposing endzone scores, increments the carrying team's score, emits
// `touchdown`, and sets the phase to TOUCHDOWN ahead of the post-TD kickoff
// sequence (the actual re-kickoff is driven by the caller, which must run
// a fresh internal/kickoff.Resolve before the next PLAY turn).
func checkTouchdown(g *state.GameState) (*state.GameState, events.Log) {
	if g.Ball.Status != state.BallCarried {
		return g, nil
	}
	carrier, ok := g.PlayerByID(g.Ball.CarrierID)
	if !ok {
		return g, nil
	}
	gp := geometry.Position{X: carrier.Pos.X, Y: carrier.Pos.Y}
	gs := geometry.SideHome
	if carrier.Side == state.Away {
		gs = geometry.SideAway
	}
	if !geometry.IsInEndzone(gp, gs) {
		return g, nil
	}

	next := g.Clone()
	next.Team(carrier.Side).Score++
	next.Phase = state.PhaseTouchdown
	log := events.Log{events.New(events.Touchdown, "touchdown", map[string]interface{}{
		"playerId": carrier.ID, "side": carrier.Side.String(),
	})}
	return next, log
}

// applyEndTurn implements post-hooks (2)-(4): increments the active
// team's turnNumber, detects half-time/game-over, recovers Stunned
// players for the team about to act, and clears per-turn flags (already
// done by actions.HandleEndTurn for the team that just finished, so this
// only handles the team coming on).
func applyEndTurn(g *state.GameState) (*state.GameState, events.Log) {
	var log events.Log
	next := g.Clone()

	endingSide := next.ActiveTeam
	next.Team(endingSide).TurnNumber++

	if next.Phase != state.PhaseHalfTime && next.Phase != state.PhaseGameOver {
		next.ActiveTeam = endingSide.Opponent()
	}

	if next.Home.TurnNumber >= turnsPerHalf && next.Away.TurnNumber >= turnsPerHalf {
		if next.Half == 1 {
			next.Phase = state.PhaseHalfTime
			next.Half = 2
			next.KickingTeam = next.KickingTeam.Opponent()
			next.Home.TurnNumber = 0
			next.Away.TurnNumber = 0
			log = log.Append(events.New(events.HalfTime, "half time", nil))
		} else {
			next.Phase = state.PhaseGameOver
			log = log.Append(events.New(events.GameOver, "game over", map[string]interface{}{
				"home": next.Home.Score, "away": next.Away.Score,
			}))
		}
	}

	for _, pl := range next.Players {
		if pl.Side == next.ActiveTeam {
			if pl.State == state.Stunned {
				pl.State = state.Prone
			}
			pl.ClearTurnFlags()
		}
	}
	next.Team(next.ActiveTeam).ClearTurnFlags()

	return next, log
}
