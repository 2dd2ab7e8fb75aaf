package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOnPitch(t *testing.T) {
	assert.True(t, Position{X: 0, Y: 0}.IsOnPitch())
	assert.True(t, Position{X: 25, Y: 14}.IsOnPitch())
	assert.False(t, Position{X: 26, Y: 0}.IsOnPitch())
	assert.False(t, Position{X: -1, Y: 0}.IsOnPitch())
}

func TestIsInEndzone(t *testing.T) {
	assert.True(t, IsInEndzone(Position{X: AwayEndzoneX, Y: 7}, SideHome))
	assert.True(t, IsInEndzone(Position{X: HomeEndzoneX, Y: 7}, SideAway))
	assert.False(t, IsInEndzone(Position{X: 12, Y: 7}, SideHome))
}

func TestAdjacentExcludesSelf(t *testing.T) {
	p := Position{X: 5, Y: 5}
	assert.False(t, Adjacent(p, p))
	assert.True(t, Adjacent(p, Position{X: 6, Y: 6}))
	assert.False(t, Adjacent(p, Position{X: 7, Y: 5}))
}

func TestDirectionOffsetTableOrder(t *testing.T) {
	// N=1, NE=2, E=3, SE=4, S=5, SW=6, W=7, NW=8 (spec §4.5).
	assert.Equal(t, Position{X: 0, Y: -1}, DirectionOffset(1))
	assert.Equal(t, Position{X: 1, Y: -1}, DirectionOffset(2))
	assert.Equal(t, Position{X: 1, Y: 0}, DirectionOffset(3))
	assert.Equal(t, Position{X: 1, Y: 1}, DirectionOffset(4))
	assert.Equal(t, Position{X: 0, Y: 1}, DirectionOffset(5))
	assert.Equal(t, Position{X: -1, Y: 1}, DirectionOffset(6))
	assert.Equal(t, Position{X: -1, Y: 0}, DirectionOffset(7))
	assert.Equal(t, Position{X: -1, Y: -1}, DirectionOffset(8))
}

func TestClampPinsToBounds(t *testing.T) {
	assert.Equal(t, Position{X: 0, Y: 0}, Clamp(Position{X: -5, Y: -5}))
	assert.Equal(t, Position{X: PitchWidth - 1, Y: PitchHeight - 1}, Clamp(Position{X: 99, Y: 99}))
}

func TestCountEnemyTacklezonesIgnoresLostTZAndSameSide(t *testing.T) {
	occupants := []Occupant{
		{ID: 1, Side: SideHome, Pos: Position{X: 5, Y: 5}, ExertsTacklezone: true},
		{ID: 2, Side: SideAway, Pos: Position{X: 5, Y: 6}, ExertsTacklezone: true},
		{ID: 3, Side: SideAway, Pos: Position{X: 6, Y: 5}, ExertsTacklezone: false}, // prone
		{ID: 4, Side: SideAway, Pos: Position{X: 4, Y: 5}, ExertsTacklezone: true},
	}
	assert.Equal(t, 2, CountEnemyTacklezones(Position{X: 5, Y: 5}, SideHome, occupants))
}

func TestBoardIndexOccupancy(t *testing.T) {
	idx := NewBoardIndex(map[Position]string{
		{X: 3, Y: 3}: "p1",
	})
	assert.Equal(t, "p1", idx.Occupant(Position{X: 3, Y: 3}))
	assert.True(t, idx.IsEmpty(Position{X: 4, Y: 4}))
	assert.False(t, idx.IsEmpty(Position{X: 3, Y: 3}))
}
