package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/actions"
	"gridbowl/internal/dice"
	"gridbowl/internal/state"
)

func newGame(home, away *state.TeamState, players ...*state.Player) *state.GameState {
	m := make(map[int]*state.Player, len(players))
	for _, p := range players {
		m[p.ID] = p
	}
	return &state.GameState{Phase: state.PhasePlay, Players: m, Home: home, Away: away, ActiveTeam: state.Home, Half: 1}
}

func TestResolveMoveIntoEndzoneScoresTouchdown(t *testing.T) {
	carrier := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 24, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	g := newGame(&state.TeamState{}, &state.TeamState{}, carrier)
	g.Ball = state.Carried(carrier.Pos, carrier.ID)

	src := dice.NewFixed(nil)
	next, log := Resolve(g, src, actions.Move, actions.Params{PlayerID: 1, X: 25, Y: 5})

	assert.Equal(t, state.PhaseTouchdown, next.Phase)
	assert.Equal(t, 1, next.Home.Score)
	found := false
	for _, e := range log {
		if e.Type == "touchdown" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolveFailedDodgeTurnoverEndsTurn(t *testing.T) {
	player := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	enemy := &state.Player{ID: 2, Side: state.Away, OnPitch: true, Pos: state.Position{X: 5, Y: 4},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	g := newGame(&state.TeamState{Rerolls: 0}, &state.TeamState{}, player, enemy)

	src := dice.NewFixed([]int{1})
	next, _ := Resolve(g, src, actions.Move, actions.Params{PlayerID: 1, X: 5, Y: 6})

	require.NotNil(t, next)
	assert.Equal(t, state.Away, next.ActiveTeam)
	assert.Equal(t, 1, next.Home.TurnNumber)
}

func TestApplyEndTurnSwitchesActiveTeam(t *testing.T) {
	g := newGame(&state.TeamState{TurnNumber: 0}, &state.TeamState{TurnNumber: 0})
	next, _ := applyEndTurn(g)
	assert.Equal(t, state.Away, next.ActiveTeam)
	assert.Equal(t, 1, next.Home.TurnNumber)
}

func TestApplyEndTurnTriggersHalfTime(t *testing.T) {
	g := newGame(&state.TeamState{TurnNumber: turnsPerHalf}, &state.TeamState{TurnNumber: turnsPerHalf})
	g.ActiveTeam = state.Away
	g.KickingTeam = state.Home
	next, log := applyEndTurn(g)
	assert.Equal(t, state.PhaseHalfTime, next.Phase)
	assert.Equal(t, 2, next.Half)
	assert.Equal(t, state.Away, next.KickingTeam)
	assert.NotEmpty(t, log)
}

func TestApplyEndTurnRecoversStunnedOnOwnTurn(t *testing.T) {
	stunned := &state.Player{ID: 1, Side: state.Away, State: state.Stunned}
	g := newGame(&state.TeamState{}, &state.TeamState{}, stunned)
	next, _ := applyEndTurn(g)
	assert.Equal(t, state.Prone, next.Players[1].State)
}
