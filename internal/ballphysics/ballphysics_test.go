package ballphysics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gridbowl/internal/dice"
	"gridbowl/internal/state"
)

func newGame(players ...*state.Player) *state.GameState {
	m := make(map[int]*state.Player, len(players))
	for _, p := range players {
		m[p.ID] = p
	}
	return &state.GameState{
		Players: m,
		Home:    &state.TeamState{},
		Away:    &state.TeamState{},
		Ball:    state.OnGround(state.Position{X: 5, Y: 5}),
	}
}

func TestPickupSuccessCarriesBall(t *testing.T) {
	p := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 4}}
	g := newGame(p)

	src := dice.NewFixed([]int{6})
	next, log := Pickup(g, src, p, 0)

	require.Equal(t, state.BallCarried, next.Ball.Status)
	assert.Equal(t, 1, next.Ball.CarrierID)
	assert.NotEmpty(t, log)
	// original untouched
	assert.Equal(t, state.BallOnGround, g.Ball.Status)
}

func TestPickupFailureBounces(t *testing.T) {
	p := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 5, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 1}}
	g := newGame(p)

	src := dice.NewFixed([]int{1, 3}) // fail pickup, then D8=3 (east) for bounce
	next, _ := Pickup(g, src, p, 0)

	require.Equal(t, state.BallOnGround, next.Ball.Status)
	assert.Equal(t, state.Position{X: 6, Y: 5}, next.Ball.Pos)
}

func TestBounceOffPitchTriggersThrowIn(t *testing.T) {
	g := newGame()
	g.Ball = state.OnGround(state.Position{X: 0, Y: 5})

	// D8=7 (west, off-pitch) -> throw-in: D8=1 (north), D6=2 distance -> (0,3) still on pitch
	src := dice.NewFixed([]int{7, 1, 2})
	next, log := Bounce(g, src, state.Position{X: 0, Y: 5}, 0, nil)

	require.Equal(t, state.BallOnGround, next.Ball.Status)
	assert.True(t, (state.Position{X: 0, Y: 3}) == next.Ball.Pos)
	assert.NotEmpty(t, log)
}

func TestBounceDepthCapped(t *testing.T) {
	g := newGame()
	src := dice.NewFixed([]int{1, 1, 1, 1})
	next, log := Bounce(g, src, state.Position{X: 5, Y: 5}, maxBounceDepth, nil)
	require.Equal(t, state.BallOnGround, next.Ball.Status)
	assert.Equal(t, state.Position{X: 5, Y: 5}, next.Ball.Pos)
	assert.Contains(t, log[len(log)-1].Description, "capped")
}

func TestBounceOntoOccupantAdvancesDepthOnFailedCatch(t *testing.T) {
	// D8=3 bounces east onto the occupant's square every hop.
	occupant := &state.Player{ID: 1, Side: state.Home, OnPitch: true, Pos: state.Position{X: 6, Y: 5},
		State: state.Standing, Stats: state.Stats{AG: 1}}
	g := newGame(occupant)

	// depth starts one below the cap: this Bounce call is bounce #maxBounceDepth,
	// the occupant's failed catch must advance depth to maxBounceDepth so the
	// resulting recursive Bounce call hits the cap immediately instead of
	// consuming the extra D8 roll queued up below.
	src := dice.NewFixed([]int{3, 1, 8})
	next, log := Bounce(g, src, state.Position{X: 5, Y: 5}, maxBounceDepth-1, nil)

	require.Equal(t, state.BallOnGround, next.Ball.Status)
	assert.Equal(t, occupant.Pos, next.Ball.Pos)
	assert.Contains(t, log[len(log)-1].Description, "capped")
	// Only the bounce direction and the failed catch roll were consumed;
	// the queued D8=8 for a further bounce is untouched because the cap
	// triggered instead of recursing again.
	assert.Equal(t, 1, src.Remaining())
}
