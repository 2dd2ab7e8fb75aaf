// Package ballphysics implements the ball resolver (spec C5 / §4.5):
// pickup, catch, bounce and throw-in. Every function here is pure — it
// takes a *state.GameState and returns a new one plus the events produced,
// leaving the input untouched so callers can compose these with the rest
// of the handler pipeline without aliasing surprises.
package ballphysics

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
	"gridbowl/internal/tacklezone"
)

const maxBounceDepth = 4

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

// PickupTarget computes the target roll for player to pick up the ball at
// its current square, per spec §4.5.
func PickupTarget(g *state.GameState, player *state.Player) int {
	target := (7 - player.Stats.AG) - 1
	if !player.HasSkill(skills.BigHand) {
		target += tacklezone.CountTZ(g, player.Pos, player.Side)
	}
	target += weatherPenalty(g.Weather)
	if player.HasSkill(skills.ExtraArms) {
		target--
	}
	return clamp2to6(target)
}

// CatchTarget computes the target roll for player to catch a ball arriving
// at their square. accurateBonus should be 1 when the throw was accurate.
func CatchTarget(g *state.GameState, player *state.Player, accurateBonus int, inEnemyTZDivingCatch bool) int {
	target := (7 - player.Stats.AG)
	target += tacklezone.CountTZ(g, player.Pos, player.Side)
	target -= accurateBonus
	target += weatherPenalty(g.Weather)
	if player.HasSkill(skills.ExtraArms) {
		target--
	}
	if inEnemyTZDivingCatch && player.HasSkill(skills.DivingCatch) {
		target--
	}
	return clamp2to6(target)
}

// Pickup attempts to pick up a loose ball at player's square. On success
// the ball becomes Carried(pos, player); on failure it bounces. g is not
// mutated; a new state is returned. depth is the number of bounces already
// taken in the chain this pickup is part of — 0 for a fresh loose ball,
// forwarded unchanged from whichever Bounce call led here.
func Pickup(g *state.GameState, src dice.Source, player *state.Player, depth int) (*state.GameState, events.Log) {
	var log events.Log
	next := g.Clone()

	if player.HasSkill(skills.NoHands) {
		log = log.Append(events.New(events.Pickup, "no hands, pickup auto-fails", nil))
		return Bounce(next, src, player.Pos, depth, log)
	}

	target := PickupTarget(g, player)
	roll := src.RollD6()
	success := roll >= target
	log = log.Append(events.New(events.Pickup, "pickup attempt", map[string]interface{}{
		"target": target, "roll": roll, "success": success,
	}))
	if !success {
		return Bounce(next, src, player.Pos, depth, log)
	}

	next.Ball = state.Carried(player.Pos, player.ID)
	return next, log
}

// Catch attempts to catch a ball arriving at player's square (from a pass
// or bounce). On failure it bounces from that same square. depth is the
// number of bounces already taken in the chain this catch is part of — 0
// for a fresh throw, or depth+1 when Bounce calls in after a hop (see
// Bounce below), so a failed catch actually advances the bounce-depth
// counter instead of always restarting the chain at 0.
func Catch(g *state.GameState, src dice.Source, player *state.Player, accurateBonus int, inEnemyTZDivingCatch bool, depth int) (*state.GameState, events.Log) {
	var log events.Log
	next := g.Clone()

	if player.HasSkill(skills.NoHands) {
		log = log.Append(events.New(events.Catch, "no hands, catch auto-fails", nil))
		return Bounce(next, src, player.Pos, depth, log)
	}

	target := CatchTarget(g, player, accurateBonus, inEnemyTZDivingCatch)
	roll := src.RollD6()
	success := roll >= target
	log = log.Append(events.New(events.Catch, "catch attempt", map[string]interface{}{
		"target": target, "roll": roll, "success": success,
	}))
	if !success {
		return Bounce(next, src, player.Pos, depth, log)
	}

	next.Ball = state.Carried(player.Pos, player.ID)
	return next, log
}

// Bounce resolves a loose ball leaving from, possibly recursing into
// further bounces (bounded to maxBounceDepth per spec §4.5). depth is the
// number of bounces already taken in this chain.
func Bounce(g *state.GameState, src dice.Source, from state.Position, depth int, log events.Log) (*state.GameState, events.Log) {
	next := g
	if depth >= maxBounceDepth {
		next = next.Clone()
		next.Ball = state.OnGround(from)
		log = log.Append(events.New(events.BallBounce, "bounce chain capped", map[string]interface{}{"depth": depth}))
		return next, log
	}

	d8 := src.RollD8()
	offset := geometry.DirectionOffset(d8)
	to := state.Position{X: from.X + offset.X, Y: from.Y + offset.Y}
	log = log.Append(events.New(events.BallBounce, "ball bounces", map[string]interface{}{
		"from": from, "to": to, "roll": d8,
	}))

	gp := geometry.Position{X: to.X, Y: to.Y}
	if !gp.IsOnPitch() {
		return ThrowIn(g, src, from, depth, log)
	}

	occupant := occupantAt(g, to)
	if occupant != nil && occupant.State == state.Standing {
		// This Bounce call is itself bounce number depth+1; a catch
		// failure here starts the next bounce at depth+1.
		caught, cl := Catch(g, src, occupant, 0, false, depth+1)
		return caught, append(log, cl...)
	}

	next = g.Clone()
	next.Ball = state.OnGround(to)
	return next, log
}

// ThrowIn resolves a ball leaving the pitch: a plain D8 direction (not
// weighted toward the field), distance 1-6, repeating from the clipped
// position until it lands
// on-pitch (spec §4.5). depth is forwarded from the Bounce call that sent
// the ball out of bounds, so a catch failure on landing still advances the
// bounce-depth counter.
func ThrowIn(g *state.GameState, src dice.Source, lastOnPitch state.Position, depth int, log events.Log) (*state.GameState, events.Log) {
	pos := lastOnPitch
	for {
		d8 := biasedDirection(src, pos)
		dist := src.RollD6()
		offset := geometry.DirectionOffset(d8)
		candidate := state.Position{
			X: pos.X + offset.X*dist,
			Y: pos.Y + offset.Y*dist,
		}
		log = log.Append(events.New(events.ThrowIn, "throw-in", map[string]interface{}{
			"from": pos, "direction": d8, "distance": dist, "to": candidate,
		}))

		gp := geometry.Position{X: candidate.X, Y: candidate.Y}
		if gp.IsOnPitch() {
			next := g.Clone()
			occupant := occupantAt(g, candidate)
			if occupant != nil && occupant.State == state.Standing {
				caught, cl := Catch(next, src, occupant, 0, false, depth+1)
				return caught, append(log, cl...)
			}
			next.Ball = state.OnGround(candidate)
			return next, log
		}
		pos = clampPos(candidate)
	}
}

// biasedDirection rolls the throw-in direction as a plain D8 straight from
// the dice source, matching the source's own uniform-roll behaviour; the
// position argument is unused, so the direction is not weighted toward the
// field (see DESIGN.md).
func biasedDirection(src dice.Source, _ state.Position) int {
	return src.RollD8()
}

func clampPos(p state.Position) state.Position {
	gp := geometry.Clamp(geometry.Position{X: p.X, Y: p.Y})
	return state.Position{X: gp.X, Y: gp.Y}
}

func occupantAt(g *state.GameState, pos state.Position) *state.Player {
	for _, p := range g.Players {
		if p.OnPitch && p.Pos == pos {
			return p
		}
	}
	return nil
}
