package passing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/state"
)

func TestRangeModifierBands(t *testing.T) {
	m, ok := RangeModifier(3)
	require.True(t, ok)
	assert.Equal(t, -1, m)

	m, ok = RangeModifier(6)
	require.True(t, ok)
	assert.Equal(t, 0, m)

	m, ok = RangeModifier(10)
	require.True(t, ok)
	assert.Equal(t, 1, m)

	m, ok = RangeModifier(13)
	require.True(t, ok)
	assert.Equal(t, 2, m)

	_, ok = RangeModifier(14)
	assert.False(t, ok)
}

func TestBresenhamPathExcludesEndpoints(t *testing.T) {
	path := BresenhamPath(state.Position{X: 0, Y: 0}, state.Position{X: 4, Y: 0})
	for _, p := range path {
		assert.NotEqual(t, state.Position{X: 0, Y: 0}, p)
		assert.NotEqual(t, state.Position{X: 4, Y: 0}, p)
	}
	assert.Len(t, path, 3)
}

func TestQuickPassScenario(t *testing.T) {
	// Spec scenario 5: HOME id=1 AG=3 at (5,5), HOME id=2 AG=3 at (7,5). Only
	// the accuracy roll (4, accurate) is scripted here; the catch is not run.
	thrower := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 3}}
	receiver := &state.Player{ID: 2, Side: state.Home, OnPitch: true, Pos: state.Position{X: 7, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 3}}
	g := &state.GameState{Players: map[int]*state.Player{1: thrower, 2: receiver}, Weather: state.Nice}

	target := AccuracyTarget(g, thrower, -1, false) // range<=3 quick pass, target eased by 1
	src := dice.NewFixed([]int{4})
	_, res, log := Throw(g, src, thrower.Pos, receiver.Pos, target)

	require.True(t, res.Accurate)
	assert.False(t, res.Fumble)
	assert.NotEmpty(t, log)
}

func TestThrowNaturalOneFumbles(t *testing.T) {
	thrower := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}
	g := &state.GameState{Players: map[int]*state.Player{1: thrower}}
	src := dice.NewFixed([]int{1})

	_, res, _ := Throw(g, src, state.Position{}, state.Position{X: 3, Y: 3}, 2)
	assert.True(t, res.Fumble)
}

func TestThrowNaturalSixAlwaysAccurate(t *testing.T) {
	thrower := &state.Player{ID: 1, Stats: state.Stats{AG: 1}}
	g := &state.GameState{Players: map[int]*state.Player{1: thrower}}
	src := dice.NewFixed([]int{6})

	_, res, _ := Throw(g, src, state.Position{}, state.Position{X: 3, Y: 3}, 99)
	assert.True(t, res.Accurate)
}

func TestCheckAnimosityOnlyTriggersAcrossRaces(t *testing.T) {
	passer := &state.Player{ID: 1, Race: "orc"}
	receiver := &state.Player{ID: 2, Race: "orc"}
	src := dice.NewFixed(nil)

	refused, log := CheckAnimosity(src, passer, receiver)
	assert.False(t, refused)
	assert.Empty(t, log)
}
