package geometry

// BoardIndex is a dense occupancy index over the pitch, adapted from the
// teacher's spatial.SpatialGrid: instead of hashing into variable-size
// buckets for an open 1280x720 world, the pitch is small and fixed (26x15 =
// 390 squares) so a flat array indexed by row-major position gives O(1)
// lookups with no allocation beyond the single backing slice.
type BoardIndex struct {
	cells [PitchWidth * PitchHeight]string // playerID occupying each square, "" if empty
}

// NewBoardIndex builds an index from a position->playerID map snapshot of
// on-pitch players. Off-pitch players are simply absent from occupants.
func NewBoardIndex(occupants map[Position]string) *BoardIndex {
	idx := &BoardIndex{}
	for pos, id := range occupants {
		if pos.IsOnPitch() {
			idx.cells[cellOf(pos)] = id
		}
	}
	return idx
}

func cellOf(p Position) int {
	return p.Y*PitchWidth + p.X
}

// Occupant returns the player id standing on p, or "" if empty or off-pitch.
func (b *BoardIndex) Occupant(p Position) string {
	if !p.IsOnPitch() {
		return ""
	}
	return b.cells[cellOf(p)]
}

// IsEmpty reports whether p is unoccupied (and on-pitch).
func (b *BoardIndex) IsEmpty(p Position) bool {
	return p.IsOnPitch() && b.cells[cellOf(p)] == ""
}
