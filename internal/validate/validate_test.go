package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gridbowl/internal/actions"
	"gridbowl/internal/state"
)

func sampleGame() *state.GameState {
	mover := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	enemy := &state.Player{ID: 2, Side: state.Away, OnPitch: true, Pos: state.Position{X: 6, Y: 5},
		State: state.Standing, Stats: state.Stats{MA: 6, AG: 3}}
	return &state.GameState{
		Phase:      state.PhasePlay,
		ActiveTeam: state.Home,
		Players:    map[int]*state.Player{1: mover, 2: enemy},
		Home:       &state.TeamState{},
		Away:       &state.TeamState{},
	}
}

func TestValidateRejectsWrongPhase(t *testing.T) {
	g := sampleGame()
	g.Phase = state.PhaseSetup
	errs := Validate(g, actions.Move, actions.Params{PlayerID: 1, X: 6, Y: 6})
	assert.NotEmpty(t, errs)
}

func TestValidateMoveUnreachable(t *testing.T) {
	g := sampleGame()
	errs := Validate(g, actions.Move, actions.Params{PlayerID: 1, X: 20, Y: 20})
	assert.NotEmpty(t, errs)
}

func TestValidateMoveReachableIsClean(t *testing.T) {
	g := sampleGame()
	errs := Validate(g, actions.Move, actions.Params{PlayerID: 1, X: 5, Y: 6})
	assert.Empty(t, errs)
}

func TestValidateBlockRejectsTeammate(t *testing.T) {
	g := sampleGame()
	ally := &state.Player{ID: 3, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 6}, State: state.Standing}
	g.Players[3] = ally
	errs := Validate(g, actions.BlockAction, actions.Params{PlayerID: 1, TargetID: 3})
	assert.NotEmpty(t, errs)
}

func TestValidateFoulRequiresDownedTarget(t *testing.T) {
	g := sampleGame()
	g.Players[2].State = state.Standing
	errs := Validate(g, actions.Foul, actions.Params{PlayerID: 1, TargetID: 2})
	assert.NotEmpty(t, errs)
}

func TestValidMoveTargetsWrapsPathfinder(t *testing.T) {
	g := sampleGame()
	targets := ValidMoveTargets(g, 1)
	assert.NotEmpty(t, targets)
}

func TestAvailableActionsListsEndTurn(t *testing.T) {
	g := sampleGame()
	descs := AvailableActions(g)
	found := false
	for _, d := range descs {
		if d.Type == actions.EndTurn {
			found = true
		}
	}
	assert.True(t, found)
}
