package injury

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

func TestResolveArmourHoldsNoInjury(t *testing.T) {
	attacker := &state.Player{ID: 1, Stats: state.Stats{ST: 3}}
	defender := &state.Player{ID: 2, Stats: state.Stats{AV: 10}, State: state.Standing}
	team := &state.TeamState{}
	g := &state.GameState{Players: map[int]*state.Player{1: attacker, 2: defender}}

	src := dice.NewFixed([]int{3, 4})
	_, outcome, log := Resolve(g, src, attacker, defender, team, false, true)

	assert.False(t, outcome.ArmourBroken)
	assert.Equal(t, state.Standing, defender.State)
	assert.NotEmpty(t, log)
}

func TestResolveApothecarySavesCasualty(t *testing.T) {
	// Matches spec's worked example: dice 5,4 armour (9>7), 5,5 injury (10=casualty), 3,3 apothecary reroll (6=stunned, kept).
	attacker := &state.Player{ID: 1, Stats: state.Stats{ST: 4}}
	defender := &state.Player{ID: 2, Stats: state.Stats{AV: 7}, State: state.Standing}
	team := &state.TeamState{HasApothecary: true}
	g := &state.GameState{Players: map[int]*state.Player{1: attacker, 2: defender}}

	src := dice.NewFixed([]int{5, 4, 5, 5, 3, 3})
	_, outcome, _ := Resolve(g, src, attacker, defender, team, false, true)

	require.True(t, outcome.ArmourBroken)
	assert.Equal(t, SeverityStunned, outcome.Severity)
	assert.Equal(t, state.Stunned, defender.State)
	assert.True(t, team.ApothecaryUsed)
}

func TestResolveRegenerationBlockedByStakes(t *testing.T) {
	attacker := &state.Player{ID: 1, Stats: state.Stats{ST: 4}}
	attacker.Skills = skills.NewSet(skills.Stakes)
	defender := &state.Player{ID: 2, Stats: state.Stats{AV: 5}, State: state.Standing}
	defender.Skills = skills.NewSet(skills.Regeneration)
	team := &state.TeamState{}
	g := &state.GameState{Players: map[int]*state.Player{1: attacker, 2: defender}}

	src := dice.NewFixed([]int{6, 6, 6, 6}) // armour break, then injury total >=10 = injured
	_, outcome, log := Resolve(g, src, attacker, defender, team, false, true)

	require.Equal(t, SeverityInjured, outcome.Severity)
	assert.False(t, outcome.MovedOffPitch)
	found := false
	for _, e := range log {
		if e.Type == "stakes_block_regen" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestResolveCrowdSurfSkipsArmourAndAddsInjuryBonus(t *testing.T) {
	defender := &state.Player{ID: 2, Stats: state.Stats{AV: 99}, State: state.Standing}
	team := &state.TeamState{}
	g := &state.GameState{Players: map[int]*state.Player{2: defender}}

	src := dice.NewFixed([]int{5, 5}) // 10 + 1 crowd-surf bonus = 11 -> injured
	_, outcome, _ := Resolve(g, src, nil, defender, team, true, true)

	require.Equal(t, SeverityInjured, outcome.Severity)
}
