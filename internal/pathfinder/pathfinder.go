// Package pathfinder enumerates reachable squares for a move action: a
// breadth-first search over the 8-neighbour graph that tracks, per
// destination, how many leave-tacklezone dodges and how many
// Going-For-It squares the cheapest path there costs (spec §4.3 / C3).
package pathfinder

import (
	"container/list"
	"fmt"

	"gridbowl/internal/geometry"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
	"gridbowl/internal/tacklezone"
)

// Target is one reachable destination, keyed by "x,y" for external APIs
// (valid_move_targets in spec §6).
type Target struct {
	X, Y      int
	DodgeCount int
	GFICount   int
	Path       []state.Position
}

// Key renders the "x,y" string index spec §4.3 requires.
func (t Target) Key() string {
	return fmt.Sprintf("%d,%d", t.X, t.Y)
}

type node struct {
	pos        state.Position
	cost       int // move-points spent reaching this node, including any stand-up cost
	dodgeCount int
	gfiCount   int
	path       []state.Position
}

// Reachable runs the BFS described in spec §4.3 for player on board g,
// returning every square reachable within MA + GFI squares, each annotated
// with the cheapest path's dodge/GFI counts. Occupied squares (by anyone)
// are impassable intermediate steps, matching the source's movement rule
// that you cannot pass through another player's square.
func Reachable(g *state.GameState, player *state.Player) map[string]Target {
	results := make(map[string]Target)

	maxGFI := 2
	if player.HasSkill(skills.Sprint) {
		maxGFI = 3
	}
	maxSteps := player.MovementAllowance() + maxGFI

	standUpCost := 0
	if player.State == state.Prone {
		standUpCost = 3
		if player.HasSkill(skills.JumpUp) {
			standUpCost = 0
		}
	}

	occ := occupancyIndex(g)

	start := node{pos: player.Pos, cost: standUpCost, path: []state.Position{player.Pos}}

	// A prone player with too little movement to even stand up only has the
	// stand-in-place target (spec §4.3).
	if player.State == state.Prone && standUpCost > player.MovementAllowance() {
		results[keyOf(player.Pos)] = Target{X: player.Pos.X, Y: player.Pos.Y, Path: []state.Position{player.Pos}}
		return results
	}

	best := map[string]node{keyOf(start.pos): start}
	queue := list.New()
	queue.PushBack(start)

	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(node)

		for _, nb := range neighbours(front.pos) {
			if !(geometry.Position{X: nb.X, Y: nb.Y}).IsOnPitch() {
				continue
			}
			if occ[keyOf(nb)] != 0 && occ[keyOf(nb)] != player.ID {
				continue
			}
			newCost := front.cost + 1
			if newCost > maxSteps {
				continue
			}

			dodges := front.dodgeCount
			if tacklezone.CountTZ(g, front.pos, player.Side) > 0 {
				dodges++
			}
			stepsMoved := newCost - standUpCost
			movementSquares := player.MovementAllowance()
			gfis := 0
			if stepsMoved > movementSquares {
				gfis = stepsMoved - movementSquares
			}

			cand := node{
				pos:        nb,
				cost:       newCost,
				dodgeCount: dodges,
				gfiCount:   gfis,
				path:       appendPos(front.path, nb),
			}

			k := keyOf(nb)
			existing, seen := best[k]
			if !seen || better(cand, existing) {
				best[k] = cand
				queue.PushBack(cand)
			}
		}
	}

	for k, n := range best {
		results[k] = Target{
			X: n.pos.X, Y: n.pos.Y,
			DodgeCount: n.dodgeCount,
			GFICount:   n.gfiCount,
			Path:       n.path,
		}
	}
	return results
}

// better prefers fewer dodges, then fewer GFIs, then fewer total steps —
// the path a careful coach would actually choose.
func better(a, b node) bool {
	if a.dodgeCount != b.dodgeCount {
		return a.dodgeCount < b.dodgeCount
	}
	if a.gfiCount != b.gfiCount {
		return a.gfiCount < b.gfiCount
	}
	return a.cost < b.cost
}

func neighbours(p state.Position) []state.Position {
	off := geometry.Neighbours8(geometry.Position{X: p.X, Y: p.Y})
	out := make([]state.Position, len(off))
	for i, o := range off {
		out[i] = state.Position{X: o.X, Y: o.Y}
	}
	return out
}

func keyOf(p state.Position) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func appendPos(path []state.Position, p state.Position) []state.Position {
	out := make([]state.Position, len(path), len(path)+1)
	copy(out, path)
	return append(out, p)
}

func occupancyIndex(g *state.GameState) map[string]int {
	m := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		if p.OnPitch {
			m[keyOf(p.Pos)] = p.ID
		}
	}
	return m
}
