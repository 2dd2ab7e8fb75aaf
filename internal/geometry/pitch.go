// Package geometry implements pitch coordinates, adjacency and tacklezone
// counting — the leaf component everything else (pathfinder, block, ball,
// pass) builds on.
package geometry

// Side identifies which half of the pitch a team defends.
type Side int

const (
	SideHome Side = iota
	SideAway
)

const (
	// PitchWidth and PitchHeight define the 26x15 board; x in [0,25], y in [0,14].
	PitchWidth  = 26
	PitchHeight = 15

	// HomeEndzoneX and AwayEndzoneX are the scoring columns for the
	// opposing team — a HOME player scores by reaching x=25, AWAY by
	// reaching x=0.
	HomeEndzoneX = 0
	AwayEndzoneX = PitchWidth - 1

	// MidfieldLowX/MidfieldHighX mark the 12/13 split used by kickoff and
	// setup legality checks.
	MidfieldLowX  = 12
	MidfieldHighX = 13
)

// Position is a square on the pitch. Off-pitch positions remain
// representable (e.g. a crowd-surfed or thrown-in-from square) but fail
// IsOnPitch.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsOnPitch reports whether p lies within the 26x15 grid.
func (p Position) IsOnPitch() bool {
	return p.X >= 0 && p.X < PitchWidth && p.Y >= 0 && p.Y < PitchHeight
}

// IsInEndzone reports whether p sits in the scoring endzone for side.
// A HOME player scores in the AWAY endzone (x=25) and vice versa.
func IsInEndzone(p Position, side Side) bool {
	if !p.IsOnPitch() {
		return false
	}
	if side == SideHome {
		return p.X == AwayEndzoneX
	}
	return p.X == HomeEndzoneX
}

// IsInHalf reports whether p is in the half of the pitch side is kicking
// toward receiving from (x <= 12 for HOME's receiving half, x >= 13 for AWAY's).
func IsInHalf(p Position, side Side) bool {
	if side == SideHome {
		return p.X <= MidfieldLowX
	}
	return p.X >= MidfieldHighX
}

// Adjacent reports whether a and b are 8-neighbours (Chebyshev distance 1),
// excluding the trivial a==b case.
func Adjacent(a, b Position) bool {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx <= 1 && dy <= 1
}

// ChebyshevDistance is the 8-neighbour step distance between a and b, used
// for pass range bands.
func ChebyshevDistance(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Neighbours8 returns the eight neighbouring squares of p in N, NE, E, SE,
// S, SW, W, NW order — the same order the D8 bounce/scatter direction table
// uses (§4.5), whether or not each one is on-pitch. Callers filter with
// IsOnPitch.
func Neighbours8(p Position) [8]Position {
	return [8]Position{
		{p.X, p.Y - 1},     // N
		{p.X + 1, p.Y - 1}, // NE
		{p.X + 1, p.Y},     // E
		{p.X + 1, p.Y + 1}, // SE
		{p.X, p.Y + 1},     // S
		{p.X - 1, p.Y + 1}, // SW
		{p.X - 1, p.Y},     // W
		{p.X - 1, p.Y - 1}, // NW
	}
}

// DirectionOffset maps a D8 roll (1..8) to the neighbour offset it
// represents, per the table in spec §4.5 (N=1, NE=2, E=3, SE=4, S=5, SW=6,
// W=7, NW=8).
func DirectionOffset(d8 int) Position {
	offsets := Neighbours8(Position{})
	idx := d8 - 1
	if idx < 0 || idx > 7 {
		idx = ((idx % 8) + 8) % 8
	}
	return offsets[idx]
}

// Translate applies a direction offset (as produced by DirectionOffset) to
// a base position.
func Translate(base, offset Position) Position {
	return Position{X: base.X + offset.X, Y: base.Y + offset.Y}
}

// Clamp pins p to the pitch bounds, used by throw-in resolution which keeps
// re-rolling from the clipped position until it lands on-pitch.
func Clamp(p Position) Position {
	c := p
	if c.X < 0 {
		c.X = 0
	}
	if c.X >= PitchWidth {
		c.X = PitchWidth - 1
	}
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y >= PitchHeight {
		c.Y = PitchHeight - 1
	}
	return c
}
