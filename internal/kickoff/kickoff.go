// Package kickoff implements the kickoff resolver (spec C9 / §4.10): kick
// scatter, touchback, the 2D6 kickoff event table, the weather table, and
// Kick Off Return.
package kickoff

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

// WeatherRoll applies the weather table (spec §4.10): 2 Sweltering Heat, 3
// Very Sunny, 4-10 Nice, 11 Pouring Rain, 12 Blizzard.
func WeatherRoll(total int) state.Weather {
	switch {
	case total == 2:
		return state.SwelteringHeat
	case total == 3:
		return state.VerySunny
	case total >= 4 && total <= 10:
		return state.Nice
	case total == 11:
		return state.PouringRain
	default:
		return state.Blizzard
	}
}

// ScatterKick resolves the kick scatter: one D8 direction repeated D6 times
// (spec §4.10 "scatter = one D8 by D6 squares" — one direction roll, then
// that many squares in that direction).
func ScatterKick(src dice.Source, target state.Position) state.Position {
	d8 := src.RollD8()
	dist := src.RollD6()
	off := geometry.DirectionOffset(d8)
	return state.Position{X: target.X + off.X*dist, Y: target.Y + off.Y*dist}
}

// IsTouchback reports whether pos is off-pitch or outside the receiving
// team's half (receivingSide's own half — they kicked it TO the opponent,
// so "outside receiving half" means it landed in the kicking team's half).
func IsTouchback(pos state.Position, receivingSide state.Side) bool {
	gp := geometry.Position{X: pos.X, Y: pos.Y}
	if !gp.IsOnPitch() {
		return true
	}
	gs := geometry.SideHome
	if receivingSide == state.Away {
		gs = geometry.SideAway
	}
	return !geometry.IsInHalf(gp, gs)
}

// ClosestReceiver returns the receiving-team player closest (Chebyshev) to
// pos, used for touchback and High Kick. Ties go to the lowest player id.
func ClosestReceiver(g *state.GameState, receivingSide state.Side, pos state.Position) *state.Player {
	var best *state.Player
	bestDist := -1
	for _, p := range g.Players {
		if p.Side != receivingSide || !p.OnPitch {
			continue
		}
		d := geometry.ChebyshevDistance(geometry.Position{X: p.Pos.X, Y: p.Pos.Y}, geometry.Position{X: pos.X, Y: pos.Y})
		if best == nil || d < bestDist || (d == bestDist && p.ID < best.ID) {
			best, bestDist = p, d
		}
	}
	return best
}

// Resolve runs the full kickoff sequence: scatter, touchback check, ball
// placement, then the 2D6 kickoff event table. Of the table's results only
// Changing Weather (8) is applied here: a new weather roll, plus one more
// scatter when it comes up Nice. Every other result (Riot, Cheering Fans,
// Brilliant Coaching, High Kick, Blitz and the rest) is only reported via
// the returned int; Resolve does not apply it.
func Resolve(g *state.GameState, src dice.Source, receivingSide state.Side, target state.Position) (*state.GameState, int, events.Log) {
	var log events.Log
	next := g.Clone()

	landing := ScatterKick(src, target)
	log = log.Append(events.New(events.Kickoff, "kick scatters", map[string]interface{}{"to": landing}))

	if IsTouchback(landing, receivingSide) {
		receiver := ClosestReceiver(next, receivingSide, landing)
		log = log.Append(events.New(events.Touchback, "touchback", nil))
		if receiver != nil {
			next.Ball = state.Carried(receiver.Pos, receiver.ID)
		} else {
			next.Ball = state.OnGround(landing)
		}
	} else {
		next.Ball = state.OnGround(landing)
	}

	eventRoll := src.Roll2D6()
	log = log.Append(events.New(events.KickoffTable, "kickoff event", map[string]interface{}{"roll": eventRoll}))

	if eventRoll == 8 {
		weatherRoll := src.Roll2D6()
		w := WeatherRoll(weatherRoll)
		next.Weather = w
		log = log.Append(events.New(events.WeatherChange, "changing weather", map[string]interface{}{"roll": weatherRoll, "weather": w.String()}))
		if w == state.Nice {
			landing = ScatterKick(src, landing)
			next.Ball = state.OnGround(landing)
			log = log.Append(events.New(events.BallBounce, "ball scatters again", map[string]interface{}{"to": landing}))
		}
	}

	return next, eventRoll, log
}

// ApplySwelteringHeat KOs one random player per team (chosen by caller via
// index) when the match's opening weather roll (or a Changing Weather
// reroll) lands on Sweltering Heat.
func ApplySwelteringHeat(player *state.Player) events.Event {
	player.State = state.KO
	player.OnPitch = false
	return events.New(events.SwelteringHeat, "sweltering heat knocks out a player", map[string]interface{}{"playerId": player.ID})
}

// ApplyKickOffReturn moves the nearest receiving player with Kick Off
// Return up to 3 squares toward the ball's landing square, in a straight
// line, stopping at the first occupied square.
func ApplyKickOffReturn(g *state.GameState, receivingSide state.Side, landing state.Position) (*state.GameState, events.Log) {
	var candidate *state.Player
	bestDist := -1
	for _, p := range g.Players {
		if p.Side != receivingSide || !p.OnPitch || !p.HasSkill(skills.KickOffReturn) {
			continue
		}
		d := geometry.ChebyshevDistance(geometry.Position{X: p.Pos.X, Y: p.Pos.Y}, geometry.Position{X: landing.X, Y: landing.Y})
		if candidate == nil || d < bestDist {
			candidate, bestDist = p, d
		}
	}
	if candidate == nil {
		return g, nil
	}

	next := g.Clone()
	mover := next.Players[candidate.ID]
	pos := mover.Pos
	for i := 0; i < 3 && pos != landing; i++ {
		dx, dy := stepToward(pos, landing)
		candidatePos := state.Position{X: pos.X + dx, Y: pos.Y + dy}
		if occupantAt(g, candidatePos) != nil {
			break
		}
		pos = candidatePos
	}
	mover.Pos = pos
	return next, events.Log{events.New(events.KickOffReturn, "Kick Off Return", map[string]interface{}{"playerId": mover.ID, "to": pos})}
}

func stepToward(from, to state.Position) (int, int) {
	dx, dy := 0, 0
	if to.X > from.X {
		dx = 1
	} else if to.X < from.X {
		dx = -1
	}
	if to.Y > from.Y {
		dy = 1
	} else if to.Y < from.Y {
		dy = -1
	}
	return dx, dy
}

func occupantAt(g *state.GameState, pos state.Position) *state.Player {
	for _, p := range g.Players {
		if p.OnPitch && p.Pos == pos {
			return p
		}
	}
	return nil
}
