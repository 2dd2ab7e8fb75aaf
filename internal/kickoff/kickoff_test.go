package kickoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/state"
)

func TestWeatherRollTable(t *testing.T) {
	assert.Equal(t, state.SwelteringHeat, WeatherRoll(2))
	assert.Equal(t, state.VerySunny, WeatherRoll(3))
	assert.Equal(t, state.Nice, WeatherRoll(7))
	assert.Equal(t, state.PouringRain, WeatherRoll(11))
	assert.Equal(t, state.Blizzard, WeatherRoll(12))
}

func TestIsTouchbackOffPitch(t *testing.T) {
	assert.True(t, IsTouchback(state.Position{X: -1, Y: 5}, state.Home))
}

func TestIsTouchbackWrongHalf(t *testing.T) {
	// Home receives into x<=12; landing at x=20 is outside home's receiving half.
	assert.True(t, IsTouchback(state.Position{X: 20, Y: 5}, state.Home))
	assert.False(t, IsTouchback(state.Position{X: 5, Y: 5}, state.Home))
}

func TestResolveProducesBallAndEvent(t *testing.T) {
	receiver := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5}}
	g := &state.GameState{Players: map[int]*state.Player{1: receiver}, Weather: state.Nice}

	src := dice.NewFixed([]int{1, 2, 3, 4}) // D8=1(N), D6=2 scatter, then kickoff roll 3+4=7 brilliant coaching
	next, eventRoll, log := Resolve(g, src, state.Home, state.Position{X: 5, Y: 5})

	require.NotNil(t, next)
	assert.Equal(t, 7, eventRoll)
	assert.NotEmpty(t, log)
}
