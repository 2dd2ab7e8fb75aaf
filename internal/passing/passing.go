// Package passing implements pass, hand-off and interception resolution
// (spec §4.8): range bands, accuracy, scatter on inaccuracy, fumble,
// interception along the Bresenham path, and Animosity.
package passing

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

// RangeModifier buckets a Chebyshev distance into the pass range bands.
// ok is false when the pass exceeds long-bomb range. Quick passes lower
// the accuracy target (easier); long bombs raise it (harder) — spec §4.8
// lists the bands as quick +1/short 0/long -1/long-bomb -2 relative to the
// roll needed, which this target-side formula expresses as the negation.
func RangeModifier(dist int) (modifier int, ok bool) {
	switch {
	case dist <= 3:
		return -1, true
	case dist <= 6:
		return 0, true
	case dist <= 10:
		return 1, true
	case dist <= 13:
		return 2, true
	default:
		return 0, false
	}
}

func clamp2to6(v int) int {
	if v < 2 {
		return 2
	}
	if v > 6 {
		return 6
	}
	return v
}

func weatherPenalty(w state.Weather) int {
	if w == state.PouringRain || w == state.Blizzard {
		return 1
	}
	return 0
}

// AccuracyTarget computes the pass accuracy target (spec §4.8).
func AccuracyTarget(g *state.GameState, thrower *state.Player, rangeMod int, strongArmShorterStep bool) int {
	tzAtThrower := countTZSimple(g, thrower.Pos, thrower.Side)
	target := (7 - thrower.Stats.AG) + tzAtThrower + rangeMod + weatherPenalty(g.Weather)
	if thrower.HasSkill(skills.Accurate) {
		target--
	}
	if strongArmShorterStep {
		target--
	}
	return clamp2to6(target)
}

func countTZSimple(g *state.GameState, pos state.Position, side state.Side) int {
	count := 0
	for _, p := range g.Players {
		if p.Side == side || !p.OnPitch || p.State != state.Standing || p.LostTacklezones {
			continue
		}
		if geometry.Adjacent(geometry.Position{X: pos.X, Y: pos.Y}, geometry.Position{X: p.Pos.X, Y: p.Pos.Y}) {
			count++
		}
	}
	return count
}

// BresenhamPath returns the squares strictly between from and to (endpoints
// excluded), used to find eligible interceptors, per the open question in
// spec §9 (the source's endpoints-excluded behaviour is adopted as-is).
func BresenhamPath(from, to state.Position) []state.Position {
	var path []state.Position
	x0, y0, x1, y1 := from.X, from.Y, to.X, to.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	x, y := x0, y0
	for {
		if !(x == x0 && y == y0) && !(x == x1 && y == y1) {
			path = append(path, state.Position{X: x, Y: y})
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Eligible interceptor candidates: enemy standing players on a path square.
func Interceptors(g *state.GameState, throwerSide state.Side, path []state.Position) []*state.Player {
	var out []*state.Player
	for _, pos := range path {
		for _, p := range g.Players {
			if p.Side == throwerSide || !p.OnPitch || p.State != state.Standing {
				continue
			}
			if p.Pos == pos {
				out = append(out, p)
			}
		}
	}
	return out
}

// InterceptionTarget computes target = (7-AG) + 2 + TZ_at_interceptor.
func InterceptionTarget(g *state.GameState, interceptor *state.Player) int {
	tz := countTZSimple(g, interceptor.Pos, interceptor.Side)
	return clamp2to6((7 - interceptor.Stats.AG) + 2 + tz)
}

// AttemptInterceptions rolls each eligible interceptor in turn; the first
// success intercepts the pass. safeThrow forces a reroll of any successful
// interception attempt (spec §4.8).
func AttemptInterceptions(g *state.GameState, src dice.Source, interceptors []*state.Player, safeThrow bool) (intercepted bool, by *state.Player, log events.Log) {
	for _, interceptor := range interceptors {
		target := InterceptionTarget(g, interceptor)
		roll := src.RollD6()
		success := roll >= target
		log = log.Append(events.New(events.Interception, "interception attempt", map[string]interface{}{
			"playerId": interceptor.ID, "target": target, "roll": roll, "success": success,
		}))
		if success && safeThrow {
			roll = src.RollD6()
			success = roll >= target
			log = log.Append(events.New(events.SafeThrow, "Safe Throw forces reroll", map[string]interface{}{
				"roll": roll, "success": success,
			}))
		}
		if success {
			return true, interceptor, log
		}
	}
	return false, nil, log
}

// Result describes the final resolved location/outcome of a thrown ball.
type Result struct {
	Fumble    bool
	Accurate  bool
	Landing   state.Position
}

// Throw resolves the accuracy roll and, for an inaccurate result, the
// triple-D8 scatter (spec §4.8). Interception handling happens before this
// is called, in the action handler.
func Throw(g *state.GameState, src dice.Source, from, to state.Position, target int) (*state.GameState, Result, events.Log) {
	var log events.Log
	roll := src.RollD6()
	res := Result{Landing: to}

	switch {
	case roll == 1:
		res.Fumble = true
		log = log.Append(events.New(events.Pass, "fumble", map[string]interface{}{"roll": roll}))
	case roll == 6 || roll >= target:
		res.Accurate = true
		log = log.Append(events.New(events.Pass, "accurate pass", map[string]interface{}{"roll": roll, "target": target}))
	case roll >= 2:
		log = log.Append(events.New(events.Pass, "inaccurate pass, scattering", map[string]interface{}{"roll": roll, "target": target}))
		landing := to
		for i := 0; i < 3; i++ {
			d8 := src.RollD8()
			off := geometry.DirectionOffset(d8)
			landing = state.Position{X: landing.X + off.X, Y: landing.Y + off.Y}
		}
		res.Landing = landing
	}

	return g, res, log
}

// HandOffTarget is a catch target with the +1 adjacency modifier (spec
// §4.8): equivalent to ballphysics.CatchTarget with accurateBonus=1.
func HandOffTarget(g *state.GameState, receiver *state.Player) int {
	tz := countTZSimple(g, receiver.Pos, receiver.Side)
	target := (7 - receiver.Stats.AG) + tz - 1 + weatherPenalty(g.Weather)
	if receiver.HasSkill(skills.ExtraArms) {
		target--
	}
	return clamp2to6(target)
}

// CheckAnimosity rolls the passer's Animosity check when passer and
// receiver have different races: success (2+) allows the pass, failure
// refuses the throw without a turnover (spec §4.8).
func CheckAnimosity(src dice.Source, passer, receiver *state.Player) (refused bool, log events.Log) {
	if !passer.HasSkill(skills.Animosity) || passer.Race == receiver.Race {
		return false, nil
	}
	roll := src.RollD6()
	success := roll >= 2
	log = log.Append(events.New(events.Animosity, "Animosity check", map[string]interface{}{
		"roll": roll, "success": success,
	}))
	return !success, log
}
