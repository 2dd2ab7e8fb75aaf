package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gridbowl/internal/skills"
)

func sampleState() *GameState {
	home := &TeamState{ID: "home", Name: "Reikland Reavers", Race: "human", Rerolls: 2, HasApothecary: true}
	away := &TeamState{ID: "away", Name: "Orc Warband", Race: "orc", Rerolls: 1}

	p1 := &Player{ID: 1, Side: Home, OnPitch: true, Pos: Position{X: 5, Y: 5}, State: Standing,
		Stats: Stats{MA: 6, ST: 3, AG: 3, AV: 8}}
	p1.Skills = skills.NewSet(skills.Block, skills.Dodge)
	p1.SyncSkillNames()

	p2 := &Player{ID: 2, Side: Away, OnPitch: true, Pos: Position{X: 6, Y: 5}, State: Standing,
		Stats: Stats{MA: 5, ST: 4, AG: 2, AV: 9}}
	p2.SyncSkillNames()

	return &GameState{
		Phase:       PhasePlay,
		ActiveTeam:  Home,
		Half:        1,
		KickingTeam: Away,
		Weather:     Nice,
		Players:     map[int]*Player{1: p1, 2: p2},
		Home:        home,
		Away:        away,
		Ball:        Carried(Position{X: 5, Y: 5}, 1),
	}
}

func TestGameStateRoundTrip(t *testing.T) {
	g := sampleState()
	data, err := json.Marshal(g)
	require.NoError(t, err)

	var got GameState
	require.NoError(t, json.Unmarshal(data, &got))
	for _, p := range got.Players {
		p.ResetSkillsFromNames()
	}

	require.Equal(t, g.Phase, got.Phase)
	require.Equal(t, g.ActiveTeam, got.ActiveTeam)
	require.Equal(t, g.Ball, got.Ball)
	require.Equal(t, g.Players[1].Skills, got.Players[1].Skills)
	require.Equal(t, g.Home.Rerolls, got.Home.Rerolls)
}

func TestGameStateCloneIsolatesPlayerMap(t *testing.T) {
	g := sampleState()
	cp := g.Clone()

	moved := g.Players[1].Clone()
	moved.Pos = Position{X: 6, Y: 6}
	cp.WithPlayer(moved)

	require.Equal(t, Position{X: 5, Y: 5}, g.Players[1].Pos)
	require.Equal(t, Position{X: 6, Y: 6}, cp.Players[1].Pos)
}

func TestGameStateOccupants(t *testing.T) {
	g := sampleState()
	occ := g.Occupants()
	require.Equal(t, 1, occ[Position{X: 5, Y: 5}])
	require.Equal(t, 2, occ[Position{X: 6, Y: 5}])
}

func TestPhaseAndWeatherStrings(t *testing.T) {
	require.Equal(t, "play", PhasePlay.String())
	require.Equal(t, "blizzard", Blizzard.String())
}
