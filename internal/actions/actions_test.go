package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/state"
)

func newGame(home, away *state.TeamState, players ...*state.Player) *state.GameState {
	m := make(map[int]*state.Player, len(players))
	for _, p := range players {
		m[p.ID] = p
	}
	return &state.GameState{Players: m, Home: home, Away: away, ActiveTeam: state.Home}
}

func TestHandleMoveAdjacentNoEnemies(t *testing.T) {
	// Spec scenario 1: HOME id=1 at (5,5), MA=6, no enemies; MOVE to (6,5);
	// dice=[]; expect success, no turnover, position=(6,5), hasMoved=true.
	player := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	g := newGame(&state.TeamState{}, &state.TeamState{}, player)

	src := dice.NewFixed(nil)
	res := HandleMove(g, src, Params{PlayerID: 1, X: 6, Y: 5})

	require.False(t, res.TurnoverPending)
	assert.Equal(t, state.Position{X: 6, Y: 5}, res.State.Players[1].Pos)
	assert.True(t, res.State.Players[1].HasMoved)
	found := false
	for _, e := range res.Events {
		if e.Type == "player_move" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHandleMoveFailedDodgeTurnover(t *testing.T) {
	// Spec scenario 2: HOME id=1 AG=3 at (5,5) with enemy at (5,4); MOVE to
	// (5,6); dice=[1,1] (fail + team reroll fail); expect turnover, PRONE.
	player := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	enemy := &state.Player{ID: 2, Side: state.Away, OnPitch: true, Pos: state.Position{X: 5, Y: 4},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	home := &state.TeamState{Rerolls: 1}
	g := newGame(home, &state.TeamState{}, player, enemy)

	src := dice.NewFixed([]int{1, 1})
	res := HandleMove(g, src, Params{PlayerID: 1, X: 5, Y: 6})

	require.True(t, res.TurnoverPending)
	assert.Equal(t, state.Prone, res.State.Players[1].State)
}

func TestHandleEndTurnClearsFlags(t *testing.T) {
	player := &state.Player{ID: 1, Side: state.Home, HasMoved: true}
	home := &state.TeamState{RerollUsedThisTurn: true}
	g := newGame(home, &state.TeamState{}, player)

	res := HandleEndTurn(g)
	assert.False(t, res.State.Players[1].HasMoved)
	assert.False(t, res.State.Home.RerollUsedThisTurn)
}

func TestHandleHandOffTransfersBallOnSuccess(t *testing.T) {
	thrower := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 4}}
	receiver := &state.Player{ID: 2, Side: state.Home, OnPitch: true, Pos: state.Position{X: 6, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 4}}
	g := newGame(&state.TeamState{}, &state.TeamState{}, thrower, receiver)
	g.Ball = state.Carried(thrower.Pos, thrower.ID)

	src := dice.NewFixed([]int{6})
	res := HandleHandOff(g, src, Params{PlayerID: 1, TargetID: 2})

	require.False(t, res.TurnoverPending)
	assert.Equal(t, state.BallCarried, res.State.Ball.Status)
	assert.Equal(t, 2, res.State.Ball.CarrierID)
}

func TestHandleMultipleBlockResolvesBothDefenders(t *testing.T) {
	attacker := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{ST: 3, AV: 8}}
	d1 := &state.Player{ID: 2, Side: state.Away, OnPitch: true, Pos: state.Position{X: 6, Y: 5},
		State: state.Standing, Stats: state.Stats{ST: 3, AV: 8}}
	d2 := &state.Player{ID: 3, Side: state.Away, OnPitch: true, Pos: state.Position{X: 5, Y: 6},
		State: state.Standing, Stats: state.Stats{ST: 3, AV: 8}}
	g := newGame(&state.TeamState{}, &state.TeamState{}, attacker, d1, d2)

	src := dice.NewFixed([]int{4, 4, 4})
	res := HandleMultipleBlock(g, src, Params{PlayerID: 1, TargetID: 2, TargetID2: 3})

	assert.True(t, res.State.Home.BlitzUsedThisTurn)
	found := false
	for _, e := range res.Events {
		if e.Type == "multiple_block" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestHandleSetupPlayerRejectsOccupiedSquare(t *testing.T) {
	mover := &state.Player{ID: 1, Side: state.Home, OnPitch: false, Pos: state.Position{X: 0, Y: 0}}
	blocker := &state.Player{ID: 2, Side: state.Away, OnPitch: true, Pos: state.Position{X: 5, Y: 5}}
	g := newGame(&state.TeamState{}, &state.TeamState{}, mover, blocker)

	res := HandleSetupPlayer(g, Params{PlayerID: 1, X: 5, Y: 5})
	assert.False(t, res.State.Players[1].OnPitch)
}
