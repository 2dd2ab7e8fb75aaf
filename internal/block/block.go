// Package block implements the block resolver (spec C7 / §4.7): strength
// and assists, dice count and chooser, face selection with skill
// reinterpretation, pushback (including chain push and crowd-surf), and
// follow-up. Chainsaw and Stab bypass variants live alongside the normal
// path since they share the armour/injury tail.
package block

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/injury"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
	"gridbowl/internal/tacklezone"
)

// Face is one of the six block-die results.
type Face int

const (
	FaceAttackerDown Face = iota
	FaceBothDown
	FacePushed1
	FacePushed2
	FaceDefenderStumbles
	FaceDefenderDown
)

// faceForRoll maps a D6 roll to its face (1=ATTACKER_DOWN ... 6=DEFENDER_DOWN),
// the standard Blood Bowl block-die layout the source's dice table encodes.
func faceForRoll(roll int) Face {
	switch roll {
	case 1:
		return FaceAttackerDown
	case 2:
		return FaceBothDown
	case 3, 4:
		return FacePushed1
	case 5:
		return FaceDefenderStumbles
	default:
		return FaceDefenderDown
	}
}

func isPushed(f Face) bool { return f == FacePushed1 || f == FacePushed2 }

// EffectiveStrength computes ST plus assists plus skill modifiers for the
// player at pos, against an opponent at oppPos, per spec §4.7. assists
// counts friendly standing players adjacent to the opponent that are not
// themselves adjacent to (and thus assisted-against by) an opposing
// standing player other than the defender.
func EffectiveStrength(g *state.GameState, player *state.Player, opponent *state.Player, isBlitzing bool) int {
	st := player.Stats.ST
	st += countAssists(g, player, opponent)
	if isBlitzing && player.HasSkill(skills.Horns) {
		st++
	}
	return st
}

func countAssists(g *state.GameState, player, opponent *state.Player) int {
	assists := 0
	for _, ally := range g.Players {
		if ally.ID == player.ID || ally.Side != player.Side || !ally.OnPitch || ally.State != state.Standing {
			continue
		}
		if !geometry.Adjacent(geometry.Position{X: ally.Pos.X, Y: ally.Pos.Y}, geometry.Position{X: opponent.Pos.X, Y: opponent.Pos.Y}) {
			continue
		}
		if assistedAgainst(g, ally, opponent) {
			continue
		}
		assists++
	}
	return assists
}

// assistedAgainst reports whether ally is adjacent to an opposing standing
// player other than the defender being blocked, which would negate its
// ability to assist (a simplification of the "assisted against" clause
// documented in DESIGN.md).
func assistedAgainst(g *state.GameState, ally, excludeOpponent *state.Player) bool {
	for _, enemy := range g.Players {
		if enemy.Side == ally.Side || !enemy.OnPitch || enemy.State != state.Standing || enemy.ID == excludeOpponent.ID {
			continue
		}
		if geometry.Adjacent(geometry.Position{X: ally.Pos.X, Y: ally.Pos.Y}, geometry.Position{X: enemy.Pos.X, Y: enemy.Pos.Y}) {
			return true
		}
	}
	return false
}

// DiceCount returns how many dice are rolled and who chooses among them,
// per spec §4.7's strength ratio table. chooserIsAttacker is false when the
// defender chooses.
func DiceCount(attackerST, defenderST int) (count int, chooserIsAttacker bool) {
	switch {
	case attackerST >= 2*defenderST:
		return 3, true
	case attackerST > defenderST:
		return 2, true
	case attackerST == defenderST:
		return 1, true
	case defenderST >= 2*attackerST:
		return 3, false
	default:
		return 2, false
	}
}

// score ranks a face from the attacker's point of view (higher = better
// for the attacker), per spec §4.7's chooser scoring table.
func score(f Face, defenderHasDodge, attackerHasTackle, attackerHasBlock bool) int {
	switch f {
	case FaceDefenderDown:
		return 100
	case FaceDefenderStumbles:
		if defenderHasDodge && !attackerHasTackle {
			return 0
		}
		return 80
	case FacePushed1, FacePushed2:
		return 20
	case FaceBothDown:
		bias := 0
		if attackerHasBlock {
			bias = 200 // Block negates attacker's own knockdown, making BOTH_DOWN attractive
		}
		return -50 + bias
	default: // ATTACKER_DOWN
		return -100
	}
}

// ChooseFace rolls diceCount D6 and picks the best face for whichever side
// chooses, per spec's scoring table.
func ChooseFace(src dice.Source, diceCount int, chooserIsAttacker bool, defenderHasDodge, attackerHasTackle, attackerHasBlock bool) (Face, []int) {
	rolls := make([]int, diceCount)
	faces := make([]Face, diceCount)
	for i := range rolls {
		rolls[i] = src.RollD6()
		faces[i] = faceForRoll(rolls[i])
	}

	best := faces[0]
	bestScore := score(best, defenderHasDodge, attackerHasTackle, attackerHasBlock)
	for _, f := range faces[1:] {
		s := score(f, defenderHasDodge, attackerHasTackle, attackerHasBlock)
		better := (chooserIsAttacker && s > bestScore) || (!chooserIsAttacker && s < bestScore)
		if better {
			best = f
			bestScore = s
		}
	}
	return best, rolls
}

// Outcome summarizes what a resolved block did to the two participants.
type Outcome struct {
	AttackerDown bool
	DefenderDown bool
	Pushed       bool
	BothProneNoArmour bool // Wrestle conversion
	Turnover     bool
}

// Resolve runs one block (or one step of a Multiple Block) between
// attacker and defender and returns the new state plus events. juggernaut
// applies only when isBlitzing.
func Resolve(g *state.GameState, src dice.Source, attackerID, defenderID int, isBlitzing bool) (*state.GameState, Outcome, events.Log) {
	var log events.Log
	next := g.Clone()
	attacker := next.Players[attackerID]
	defender := next.Players[defenderID]

	attackerST := EffectiveStrength(g, attacker, defender, isBlitzing)
	defenderST := EffectiveStrength(g, defender, attacker, false)
	diceCount, chooserIsAttacker := DiceCount(attackerST, defenderST)

	defenderHasDodge := defender.HasSkill(skills.Dodge)
	attackerHasTackle := attacker.HasSkill(skills.Tackle)
	attackerHasBlock := attacker.HasSkill(skills.Block)

	face, rolls := ChooseFace(src, diceCount, chooserIsAttacker, defenderHasDodge, attackerHasTackle, attackerHasBlock)
	log = log.Append(events.New(events.Block, "block dice rolled", map[string]interface{}{
		"rolls": rolls, "diceCount": diceCount, "attackerChose": chooserIsAttacker, "face": int(face),
	}))

	// Skill reinterpretation (spec §4.7 Skill interactions).
	if face == FaceDefenderStumbles && defenderHasDodge && !attackerHasTackle {
		face = FacePushed1
		log = log.Append(events.New(events.Dodge, "Dodge converts stumble to push", nil))
	}
	if face == FaceBothDown && isBlitzing && attacker.HasSkill(skills.Juggernaut) {
		face = FacePushed1
		log = log.Append(events.New(events.Juggernaut, "Juggernaut converts both-down to push", nil))
	}

	outcome := Outcome{}

	switch face {
	case FaceAttackerDown:
		attacker.State = state.Prone
		outcome.AttackerDown = true
		outcome.Turnover = true
		log = log.Append(events.New(events.PlayerFell, "attacker falls", map[string]interface{}{"playerId": attacker.ID}))
		var armLog events.Log
		next, armLog = dropBallIfCarrier(next, src, attacker)
		log = append(log, armLog...)

	case FaceBothDown:
		if attacker.HasSkill(skills.Wrestle) || defender.HasSkill(skills.Wrestle) {
			attacker.State = state.Prone
			defender.State = state.Prone
			outcome.BothProneNoArmour = true
			log = log.Append(events.New(events.Wrestle, "Wrestle: both go prone, no armour rolls", nil))
			var dl events.Log
			next, dl = dropBallIfCarrier(next, src, attacker)
			log = append(log, dl...)
			next, dl = dropBallIfCarrier(next, src, defender)
			log = append(log, dl...)
		} else {
			if !attackerHasBlock {
				attacker.State = state.Prone
				outcome.AttackerDown = true
				outcome.Turnover = true
				var dl events.Log
				next, dl = dropBallIfCarrier(next, src, attacker)
				log = append(log, dl...)
			}
			defender.State = state.Prone
			outcome.DefenderDown = true
			var dl events.Log
			next, dl = dropBallIfCarrier(next, src, defender)
			log = append(log, dl...)
			next, dl = runArmourInjury(next, src, attacker, defender, false)
			log = append(log, dl...)
		}

	case FacePushed1, FacePushed2:
		outcome.Pushed = true
		var pl events.Log
		next, pl = Pushback(next, src, attacker, defender)
		log = append(log, pl...)

	case FaceDefenderStumbles:
		defender.State = state.Prone
		outcome.DefenderDown = true
		var pl events.Log
		next, pl = Pushback(next, src, attacker, defender)
		log = append(log, pl...)
		var dl events.Log
		next, dl = dropBallIfCarrier(next, src, defender)
		log = append(log, dl...)
		next, dl = runArmourInjury(next, src, attacker, defender, false)
		log = append(log, dl...)

	case FaceDefenderDown:
		defender.State = state.Prone
		outcome.DefenderDown = true
		var pl events.Log
		next, pl = Pushback(next, src, attacker, defender)
		log = append(log, pl...)
		var dl events.Log
		next, dl = dropBallIfCarrier(next, src, defender)
		log = append(log, dl...)
		next, dl = runArmourInjury(next, src, attacker, defender, false)
		log = append(log, dl...)
	}

	if outcome.AttackerDown {
		log = log.Append(events.New(events.Turnover, "attacker down: turnover", nil))
	}

	return next, outcome, log
}

func runArmourInjury(g *state.GameState, src dice.Source, attacker, defender *state.Player, crowdSurf bool) (*state.GameState, events.Log) {
	team := g.Team(defender.Side)
	next, _, log := injury.Resolve(g, src, attacker, defender, team, crowdSurf, true)
	return next, log
}

func dropBallIfCarrier(g *state.GameState, src dice.Source, player *state.Player) (*state.GameState, events.Log) {
	if g.Ball.Status != state.BallCarried || g.Ball.CarrierID != player.ID {
		return g, nil
	}
	next := g.Clone()
	next.Ball = state.OnGround(player.Pos)
	return next, events.Log{events.New(events.StripBall, "ball dropped", map[string]interface{}{"playerId": player.ID})}
}

// Pushback resolves the push-cone selection for a single pushed defender,
// including crowd-surf when a candidate square is off-pitch and chain push
// when every candidate is occupied (spec §4.7 Pushback).
func Pushback(g *state.GameState, src dice.Source, attacker, defender *state.Player) (*state.GameState, events.Log) {
	var log events.Log
	next := g.Clone()
	d := next.Players[defender.ID]

	if d.HasSkill(skills.StandFirm) {
		log = log.Append(events.New(events.Push, "Stand Firm cancels push", nil))
		return next, log
	}

	candidates := pushCone(geometry.Position{X: attacker.Pos.X, Y: attacker.Pos.Y}, geometry.Position{X: d.Pos.X, Y: d.Pos.Y})
	chosen, crowdSurf, ok := choosePushSquare(next, d, candidates)
	if !ok {
		// All three chain-occupied by Stand Firm players: defender crowd-surfs in place.
		log = log.Append(events.New(events.CrowdSurf, "all push squares blocked by Stand Firm: crowd-surf", nil))
		return crowdSurfPlayer(next, src, attacker, d, log)
	}

	if crowdSurf {
		log = log.Append(events.New(events.CrowdSurf, "pushed off the pitch", map[string]interface{}{"playerId": d.ID}))
		return crowdSurfPlayer(next, src, attacker, d, log)
	}

	occupant := occupantAt(next, state.Position{X: chosen.X, Y: chosen.Y})
	if occupant != nil {
		log = log.Append(events.New(events.ChainPush, "chain push", map[string]interface{}{
			"pusherId": d.ID, "pushedId": occupant.ID,
		}))
		var cl events.Log
		next, cl = Pushback(next, src, d, occupant)
		log = append(log, cl...)
		d = next.Players[defender.ID]
	}

	d.Pos = state.Position{X: chosen.X, Y: chosen.Y}
	if next.Ball.Status == state.BallCarried && next.Ball.CarrierID == d.ID {
		next.Ball.Pos = d.Pos
	}
	log = log.Append(events.New(events.Push, "player pushed", map[string]interface{}{
		"playerId": d.ID, "to": d.Pos,
	}))
	return next, log
}

func crowdSurfPlayer(g *state.GameState, src dice.Source, attacker, defender *state.Player, log events.Log) (*state.GameState, events.Log) {
	next := g.Clone()
	d := next.Players[defender.ID]
	wasCarrier := next.Ball.Status == state.BallCarried && next.Ball.CarrierID == d.ID
	preSurfPos := d.Pos
	d.OnPitch = false
	d.State = state.OffPitch
	var il events.Log
	next, il = runArmourInjury(next, src, attacker, d, true)
	log = append(log, il...)
	if wasCarrier {
		next.Ball = state.OnGround(preSurfPos)
	}
	return next, log
}

// pushCone returns the three squares on the far side of defender from
// attacker (the push cone), used as pushback candidates.
func pushCone(attackerPos, defenderPos geometry.Position) [3]geometry.Position {
	dx := defenderPos.X - attackerPos.X
	dy := defenderPos.Y - attackerPos.Y
	clampStep := func(v int) int {
		if v > 0 {
			return 1
		}
		if v < 0 {
			return -1
		}
		return 0
	}
	sx, sy := clampStep(dx), clampStep(dy)
	center := geometry.Position{X: defenderPos.X + sx, Y: defenderPos.Y + sy}

	var perp1, perp2 geometry.Position
	if sx == 0 {
		perp1 = geometry.Position{X: defenderPos.X + 1, Y: defenderPos.Y + sy}
		perp2 = geometry.Position{X: defenderPos.X - 1, Y: defenderPos.Y + sy}
	} else if sy == 0 {
		perp1 = geometry.Position{X: defenderPos.X + sx, Y: defenderPos.Y + 1}
		perp2 = geometry.Position{X: defenderPos.X + sx, Y: defenderPos.Y - 1}
	} else {
		perp1 = geometry.Position{X: defenderPos.X + sx, Y: defenderPos.Y}
		perp2 = geometry.Position{X: defenderPos.X, Y: defenderPos.Y + sy}
	}
	return [3]geometry.Position{center, perp1, perp2}
}

// choosePushSquare implements the "smart default" attacker policy (spec
// §4.7): crowd-surf if available, else open squares before occupied ones
// (an occupied square means a chain push), then max enemy TZ on defender,
// else closer to sideline, tie by stable candidate order. Returns ok=false only
// when every candidate is occupied by a Stand Firm player (forced
// crowd-surf-in-place case, handled by the caller).
func choosePushSquare(g *state.GameState, defender *state.Player, candidates [3]geometry.Position) (chosen geometry.Position, crowdSurf bool, ok bool) {
	type scored struct {
		pos      geometry.Position
		offPitch bool
		tz       int
		sideline int
		occupied bool
		standFirmBlocked bool
	}
	scoredCandidates := make([]scored, 0, 3)
	for _, c := range candidates {
		s := scored{pos: c}
		s.offPitch = !c.IsOnPitch()
		if !s.offPitch {
			s.tz = tacklezone.CountTZ(g, state.Position{X: c.X, Y: c.Y}, defender.Side)
			s.sideline = sidelineDistance(c)
			occ := occupantAt(g, state.Position{X: c.X, Y: c.Y})
			if occ != nil {
				s.occupied = true
				s.standFirmBlocked = occ.HasSkill(skills.StandFirm)
			}
		}
		scoredCandidates = append(scoredCandidates, s)
	}

	for _, s := range scoredCandidates {
		if s.offPitch {
			return s.pos, true, true
		}
	}

	usable := make([]scored, 0, len(scoredCandidates))
	for _, s := range scoredCandidates {
		if s.occupied && s.standFirmBlocked {
			continue
		}
		usable = append(usable, s)
	}
	if len(usable) == 0 {
		// Every candidate is occupied by a Stand Firm player: the defender
		// crowd-surfs in place rather than landing on a square its
		// stationary occupant never vacates (spec §4.7).
		return geometry.Position{}, false, false
	}

	open := make([]scored, 0, len(usable))
	for _, s := range usable {
		if !s.occupied {
			open = append(open, s)
		}
	}
	if len(open) > 0 {
		usable = open
	}

	best := usable[0]
	for _, s := range usable[1:] {
		if s.tz > best.tz || (s.tz == best.tz && s.sideline < best.sideline) {
			best = s
		}
	}
	return best.pos, false, true
}

func sidelineDistance(p geometry.Position) int {
	d := p.Y
	if geometry.PitchHeight-1-p.Y < d {
		d = geometry.PitchHeight - 1 - p.Y
	}
	return d
}

func occupantAt(g *state.GameState, pos state.Position) *state.Player {
	for _, p := range g.Players {
		if p.OnPitch && p.Pos == pos {
			return p
		}
	}
	return nil
}
