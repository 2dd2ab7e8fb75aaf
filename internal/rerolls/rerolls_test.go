package rerolls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

// rollAtTarget builds a roll func that succeeds iff the next D6 meets target.
func rollAtTarget(target int) func(dice.Source) (int, bool, string) {
	return func(src dice.Source) (int, bool, string) {
		v := src.RollD6()
		return v, v >= target, "check roll"
	}
}

func TestAttemptSucceedsOnFirstRoll(t *testing.T) {
	src := dice.NewFixed([]int{4})
	team := &state.TeamState{Rerolls: 1}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}

	ok, log := Attempt(src, team, player, CheckDodge, false, rollAtTarget(3))
	require.True(t, ok)
	assert.Len(t, log, 1)
	assert.Equal(t, 1, team.Rerolls) // untouched
}

func TestAttemptUsesSkillRerollBeforeTeamReroll(t *testing.T) {
	src := dice.NewFixed([]int{1, 5}) // fail then succeed
	team := &state.TeamState{Rerolls: 1}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}
	player.Skills = skills.NewSet(skills.Dodge)

	ok, _ := Attempt(src, team, player, CheckDodge, false, rollAtTarget(3))
	require.True(t, ok)
	assert.Equal(t, 1, team.Rerolls) // team reroll not consumed
	assert.True(t, player.DodgeSkillUsedTurn)
}

func TestAttemptSkillRerollNegatedByTackle(t *testing.T) {
	src := dice.NewFixed([]int{1, 5, 6}) // skill reroll would succeed but is negated; team reroll used instead
	team := &state.TeamState{Rerolls: 1}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}
	player.Skills = skills.NewSet(skills.Dodge)

	ok, _ := Attempt(src, team, player, CheckDodge, true, rollAtTarget(3))
	require.True(t, ok)
	assert.Equal(t, 0, team.Rerolls)
	assert.False(t, player.DodgeSkillUsedTurn)
}

func TestAttemptFallsThroughToTeamReroll(t *testing.T) {
	src := dice.NewFixed([]int{1, 5})
	team := &state.TeamState{Rerolls: 1}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}

	ok, _ := Attempt(src, team, player, CheckDodge, false, rollAtTarget(3))
	require.True(t, ok)
	assert.Equal(t, 0, team.Rerolls)
	assert.True(t, team.RerollUsedThisTurn)
}

func TestAttemptLonerFailureConsumesRerollWithoutRetry(t *testing.T) {
	src := dice.NewFixed([]int{1, 3}) // fail check, then Loner roll of 3 (< 4, fails)
	team := &state.TeamState{Rerolls: 1}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}
	player.Skills = skills.NewSet(skills.Loner)

	ok, _ := Attempt(src, team, player, CheckDodge, false, rollAtTarget(3))
	require.False(t, ok)
	assert.Equal(t, 0, team.Rerolls)
	assert.Equal(t, 0, src.Remaining())
}

func TestAttemptExhaustsAllOptionsAndFails(t *testing.T) {
	src := dice.NewFixed([]int{1})
	team := &state.TeamState{Rerolls: 0}
	player := &state.Player{ID: 1, Stats: state.Stats{AG: 3}}

	ok, log := Attempt(src, team, player, CheckDodge, false, rollAtTarget(3))
	require.False(t, ok)
	assert.NotEmpty(t, log)
}
