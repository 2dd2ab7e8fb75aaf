// Package actions defines the action vocabulary (spec C8 / §4.11) and one
// handler per action type. Handlers compose the geometry, pathfinder,
// tacklezone, ballphysics, block, injury, passing and rerolls packages;
// each takes the current state, a dice source and its params, and returns
// (new state, events, turnoverPending).
package actions

import (
	"fmt"
	"sort"

	"gridbowl/internal/ballphysics"
	"gridbowl/internal/block"
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/geometry"
	"gridbowl/internal/injury"
	"gridbowl/internal/pathfinder"
	"gridbowl/internal/passing"
	"gridbowl/internal/rerolls"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
	"gridbowl/internal/tacklezone"
)

// Type enumerates the action kinds a PLAY-phase turn can take (spec §4.11).
type Type string

const (
	Move          Type = "MOVE"
	BlockAction   Type = "BLOCK"
	Blitz         Type = "BLITZ"
	PassAction    Type = "PASS"
	HandOff       Type = "HAND_OFF"
	Foul          Type = "FOUL"
	BombThrow     Type = "BOMB_THROW"
	HypnoticGaze  Type = "HYPNOTIC_GAZE"
	MultipleBlock Type = "MULTIPLE_BLOCK"
	ThrowTeamMate Type = "THROW_TEAM_MATE"
	SetupPlayer   Type = "SETUP_PLAYER"
	EndSetup      Type = "END_SETUP"
	EndTurn       Type = "END_TURN"
)

// Params carries the canonical action parameter keys (spec §6).
type Params struct {
	PlayerID  int
	TargetID  int
	TargetID2 int
	X, Y      int
	TargetX   int
	TargetY   int
}

// Result is what every handler returns to the orchestrator.
type Result struct {
	State           *state.GameState
	Events          events.Log
	TurnoverPending bool
}

// Big-Guy pre-action checks (spec §4.11): Bone Head, Really Stupid, Wild
// Animal and Take Root. On failure the player's tacklezones are lost
// (except Wild Animal, which instead simply fails to act) and the action
// is consumed. Bloodlust is not checked here.
func runBigGuyChecks(g *state.GameState, src dice.Source, player *state.Player) (bool, events.Log) {
	var log events.Log

	if player.HasSkill(skills.BoneHead) {
		roll := src.RollD6()
		ok := roll >= 4
		log = log.Append(events.New(events.BoneHead, "Bone Head check", map[string]interface{}{"roll": roll, "success": ok}))
		if !ok {
			player.LostTacklezones = true
			return false, log
		}
	}
	if player.HasSkill(skills.ReallyStupid) {
		roll := src.RollD6()
		ok := roll >= 2 // simplified: a flat 2+, adjacent teammates are not considered
		log = log.Append(events.New(events.ReallyStupid, "Really Stupid check", map[string]interface{}{"roll": roll, "success": ok}))
		if !ok {
			player.LostTacklezones = true
			return false, log
		}
	}
	if player.HasSkill(skills.WildAnimal) {
		roll := src.RollD6()
		ok := roll >= 2
		log = log.Append(events.New(events.WildAnimal, "Wild Animal check", map[string]interface{}{"roll": roll, "success": ok}))
		if !ok {
			return false, log
		}
	}
	if player.HasSkill(skills.TakeRoot) {
		roll := src.RollD6()
		ok := roll >= 2
		log = log.Append(events.New(events.TakeRoot, "Take Root check", map[string]interface{}{"roll": roll, "success": ok}))
		if !ok {
			player.LostTacklezones = true
			return false, log
		}
	}
	return true, log
}

// HandleMove resolves a MOVE action: pathfind to (x,y), walking the chosen
// path one square at a time, rolling a dodge on every tacklezone-leaving
// step and a GFI on every square beyond MA.
func HandleMove(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	player := next.Players[p.PlayerID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, player); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	targets := pathfinder.Reachable(g, player)
	dest := state.Position{X: p.X, Y: p.Y}
	target, ok := targets[keyOf(dest)]
	if !ok {
		return Result{State: next, Events: log}
	}

	turnover := false
	team := next.Team(player.Side)

	if player.State == state.Prone {
		player.State = state.Standing
		log = log.Append(events.New(events.StandUp, "stand up", map[string]interface{}{"playerId": player.ID}))
	}

	prev := player.Pos
	for _, step := range target.Path[1:] {
		if turnover {
			break
		}

		leavingTZ := tacklezone.CountTZ(next, prev, player.Side) > 0
		if leavingTZ {
			dTarget := tacklezone.DodgeTarget(next, player, step, &prev)
			ok, dl := rerolls.Attempt(src, team, player, rerolls.CheckDodge, false, func(s dice.Source) (int, bool, string) {
				v := s.RollD6()
				return v, v >= dTarget, "dodge check"
			})
			log = append(log, dl...)
			if !ok {
				player.State = state.Prone
				turnover = true
				log = log.Append(events.New(events.PlayerFell, "failed dodge", map[string]interface{}{"playerId": player.ID}))
				break
			}
		}

		movementSquares := player.MovementAllowance()
		stepIdx := 0
		for i, ps := range target.Path {
			if ps == step {
				stepIdx = i
			}
		}
		if stepIdx > movementSquares {
			gfiTarget := 2
			if next.Weather == state.Blizzard {
				gfiTarget = 3
			}
			ok, gl := rerolls.Attempt(src, team, player, rerolls.CheckGFI, false, func(s dice.Source) (int, bool, string) {
				v := s.RollD6()
				return v, v >= gfiTarget, "GFI check"
			})
			log = append(log, gl...)
			if !ok {
				player.State = state.Prone
				turnover = true
				log = log.Append(events.New(events.PlayerFell, "failed GFI", map[string]interface{}{"playerId": player.ID}))
				break
			}
		}

		player.Pos = step
		prev = step
		log = log.Append(events.New(events.PlayerMove, "player moves", map[string]interface{}{"playerId": player.ID, "to": step}))

		if next.Ball.Status == state.BallCarried && next.Ball.CarrierID == player.ID {
			next.Ball.Pos = step
		}
		if next.Ball.Status == state.BallOnGround && next.Ball.Pos == step {
			var pl events.Log
			next, pl = ballphysics.Pickup(next, src, player, 0)
			log = append(log, pl...)
		}
	}

	player.HasMoved = true
	return Result{State: next, Events: log, TurnoverPending: turnover}
}

// HandleBlock resolves a BLOCK action between an already-adjacent attacker
// and defender.
func HandleBlock(g *state.GameState, src dice.Source, p Params, isBlitzing bool) Result {
	next := g.Clone()
	player := next.Players[p.PlayerID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, player); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	next.Team(player.Side).BlitzUsedThisTurn = next.Team(player.Side).BlitzUsedThisTurn || isBlitzing
	player.HasActed = true

	result, outcome, bl := block.Resolve(next, src, p.PlayerID, p.TargetID, isBlitzing)
	log = append(log, bl...)

	if outcome.AttackerDown {
		return Result{State: result, Events: log, TurnoverPending: true}
	}

	if outcome.Pushed && result.Players[p.PlayerID].HasSkill(skills.Frenzy) {
		defender := result.Players[p.TargetID]
		if geometry.Adjacent(geometry.Position{X: result.Players[p.PlayerID].Pos.X, Y: result.Players[p.PlayerID].Pos.Y}, geometry.Position{X: defender.Pos.X, Y: defender.Pos.Y}) {
			log = log.Append(events.New(events.Frenzy, "Frenzy forces a second block", nil))
			var fOutcome block.Outcome
			result, fOutcome, bl = block.Resolve(result, src, p.PlayerID, p.TargetID, isBlitzing)
			log = append(log, bl...)
			if fOutcome.AttackerDown {
				return Result{State: result, Events: log, TurnoverPending: true}
			}
		}
	}

	return Result{State: result, Events: log}
}

// HandleEndTurn clears per-turn flags and signals the orchestrator's
// post-hooks to advance the turn clock (the actual turn-number/phase
// bookkeeping lives in internal/engine, which owns cross-team state).
func HandleEndTurn(g *state.GameState) Result {
	next := g.Clone()
	team := next.Team(next.ActiveTeam)
	team.ClearTurnFlags()
	for _, pl := range next.Players {
		if pl.Side == next.ActiveTeam {
			pl.ClearTurnFlags()
		}
	}
	return Result{State: next, Events: events.Log{events.New(events.EndTurn, "end turn", nil)}}
}

// HandlePass resolves a PASS action end to end: Animosity check,
// interception attempts along the Bresenham path, accuracy roll, and
// catch/bounce of the result.
func HandlePass(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	thrower := next.Players[p.PlayerID]
	receiver := next.Players[p.TargetID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, thrower); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	refused, al := passing.CheckAnimosity(src, thrower, receiver)
	log = append(log, al...)
	if refused {
		return Result{State: next, Events: log}
	}

	dist := geometry.ChebyshevDistance(geometry.Position{X: thrower.Pos.X, Y: thrower.Pos.Y}, geometry.Position{X: p.TargetX, Y: p.TargetY})
	rangeMod, inRange := passing.RangeModifier(dist)
	if !inRange {
		return Result{State: next, Events: log}
	}

	path := passing.BresenhamPath(thrower.Pos, state.Position{X: p.TargetX, Y: p.TargetY})
	interceptors := passing.Interceptors(next, thrower.Side, path)
	safeThrow := thrower.HasSkill(skills.SafeThrow)
	intercepted, by, il := passing.AttemptInterceptions(next, src, interceptors, safeThrow)
	log = append(log, il...)
	if intercepted {
		log = log.Append(events.New(events.Interception, "pass intercepted", map[string]interface{}{"playerId": by.ID}))
		next.Ball = state.Carried(by.Pos, by.ID)
		thrower.PassSkillUsedTurn = true
		return Result{State: next, Events: log, TurnoverPending: true}
	}

	target := passing.AccuracyTarget(next, thrower, rangeMod, false)
	var res passing.Result
	var tl events.Log
	next, res, tl = passing.Throw(next, src, thrower.Pos, state.Position{X: p.TargetX, Y: p.TargetY}, target)
	log = append(log, tl...)

	if next.Ball.Status == state.BallCarried && next.Ball.CarrierID == thrower.ID {
		next.Ball = state.OnGround(thrower.Pos)
	}

	if res.Fumble {
		var bl events.Log
		next, bl = ballphysics.Bounce(next, src, thrower.Pos, 0, nil)
		log = append(log, bl...)
		return Result{State: next, Events: log, TurnoverPending: true}
	}

	landing := res.Landing
	occupant := occupantAt(next, landing)
	if occupant != nil && occupant.State == state.Standing {
		accurateBonus := 0
		if res.Accurate {
			accurateBonus = 1
		}
		var cl events.Log
		next, cl = ballphysics.Catch(next, src, occupant, accurateBonus, false, 0)
		log = append(log, cl...)
	} else {
		var bl events.Log
		next, bl = ballphysics.Bounce(next, src, landing, 0, nil)
		log = append(log, bl...)
	}

	return Result{State: next, Events: log}
}

// HandleFoul resolves a FOUL action (spec §4.9): armour 2D6+1+DirtyPlayer,
// injury on a break, doubles on the armour dice eject the attacker (unless
// Sneaky Git), and an ejected attacker drops any carried ball. Foul is
// never a turnover.
func HandleFoul(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	attacker := next.Players[p.PlayerID]
	defender := next.Players[p.TargetID]
	var log events.Log

	next.Team(attacker.Side).FoulUsedThisTurn = true

	armourRoll := src.Roll2D6()
	bonus := 1
	if attacker.HasSkill(skills.DirtyPlayer) {
		bonus++
	}
	total := armourRoll + bonus
	broken := total > defender.Stats.AV
	log = log.Append(events.New(events.ArmourRoll, "foul armour roll", map[string]interface{}{
		"roll": armourRoll, "bonus": bonus, "total": total, "broken": broken,
	}))

	doubles := isDoubleRoll(armourRoll)
	if doubles && !attacker.HasSkill(skills.SneakyGit) {
		attacker.State = state.Ejected
		attacker.OnPitch = false
		log = log.Append(events.New(events.Ejection, "doubles on foul armour roll: ejected", map[string]interface{}{"playerId": attacker.ID}))
		if next.Ball.Status == state.BallCarried && next.Ball.CarrierID == attacker.ID {
			dropPos := attacker.Pos
			var bl events.Log
			next, bl = ballphysics.Bounce(next, src, dropPos, 0, nil)
			log = append(log, bl...)
		}
	}

	if broken {
		team := next.Team(defender.Side)
		var il events.Log
		next, _, il = injury.Resolve(next, src, attacker, defender, team, false, false)
		log = append(log, il...)
	}

	return Result{State: next, Events: log}
}

// HandleHandOff resolves a HAND_OFF action: the thrower must be adjacent
// to the receiver, Animosity applies as it does to a pass, and the catch
// target is a plain CatchTarget with the +1 adjacency bonus baked in via
// passing.HandOffTarget (ballphysics.Catch reproduces the same formula
// with accurateBonus=1, so the hand-off reuses Catch directly rather than
// duplicating its roll-then-bounce logic).
func HandleHandOff(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	thrower := next.Players[p.PlayerID]
	receiver := next.Players[p.TargetID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, thrower); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	refused, al := passing.CheckAnimosity(src, thrower, receiver)
	log = append(log, al...)
	if refused {
		return Result{State: next, Events: log}
	}

	if next.Ball.Status != state.BallCarried || next.Ball.CarrierID != thrower.ID {
		return Result{State: next, Events: log}
	}
	if !geometry.Adjacent(geometry.Position{X: thrower.Pos.X, Y: thrower.Pos.Y}, geometry.Position{X: receiver.Pos.X, Y: receiver.Pos.Y}) {
		return Result{State: next, Events: log}
	}

	next.Ball = state.OnGround(receiver.Pos)
	var cl events.Log
	next, cl = ballphysics.Catch(next, src, receiver, 1, false, 0)
	log = append(log, cl...)
	thrower.PassSkillUsedTurn = true
	log = log.Append(events.New(events.HandOff, "hand off", map[string]interface{}{
		"from": thrower.ID, "to": receiver.ID,
	}))

	return Result{State: next, Events: log}
}

// HandleMultipleBlock resolves a MULTIPLE_BLOCK action (spec §4.7): the
// attacker declares two adjacent defenders and each block is resolved in
// sequence with block.Resolve, no follow-up. The per-defender +1 ST assist
// bonus Multiple Block grants is not separately modeled — block.Resolve's
// EffectiveStrength has no modifier hook for it — so this is a documented
// simplification: each block resolves at ordinary effective strength.
func HandleMultipleBlock(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	player := next.Players[p.PlayerID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, player); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	next.Team(player.Side).BlitzUsedThisTurn = true
	player.HasActed = true
	log = log.Append(events.New(events.MultipleBlock, "multiple block declared", map[string]interface{}{
		"attacker": p.PlayerID, "defenders": []int{p.TargetID, p.TargetID2},
	}))

	turnover := false
	for _, targetID := range []int{p.TargetID, p.TargetID2} {
		var outcome block.Outcome
		var bl events.Log
		next, outcome, bl = block.Resolve(next, src, p.PlayerID, targetID, false)
		log = append(log, bl...)
		if outcome.AttackerDown {
			turnover = true
		}
	}

	return Result{State: next, Events: log, TurnoverPending: turnover}
}

// HandleBombThrow resolves a BOMB_THROW action: the bomb is thrown at the
// pass accuracy target for the throw's range band (spec §4.8's formula,
// reused rather than inventing a separate bomb-accuracy table — the source
// material gives no distinct one), scatters on a miss, then explodes: every
// player (of either side) adjacent to the landing square, in ascending id
// order, takes an armour/injury roll through injury.Resolve, the same
// resolver the block package's runArmourInjury wraps.
func HandleBombThrow(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	thrower := next.Players[p.PlayerID]
	var log events.Log

	if ok, bgLog := runBigGuyChecks(next, src, thrower); !ok {
		log = append(log, bgLog...)
		return Result{State: next, Events: log}
	}

	next.Team(thrower.Side).PassUsedThisTurn = true

	dist := geometry.ChebyshevDistance(geometry.Position{X: thrower.Pos.X, Y: thrower.Pos.Y}, geometry.Position{X: p.TargetX, Y: p.TargetY})
	rangeMod, inRange := passing.RangeModifier(dist)
	if !inRange {
		return Result{State: next, Events: log}
	}

	target := passing.AccuracyTarget(next, thrower, rangeMod, false)
	roll := src.RollD6()
	landing := state.Position{X: p.TargetX, Y: p.TargetY}
	if roll == 1 || (roll < target && roll >= 2) {
		for i := 0; i < 3; i++ {
			d8 := src.RollD8()
			off := geometry.DirectionOffset(d8)
			landing = state.Position{X: landing.X + off.X, Y: landing.Y + off.Y}
		}
	}
	log = log.Append(events.New(events.BombThrow, "bomb thrown", map[string]interface{}{
		"roll": roll, "target": target, "landing": landing,
	}))
	log = log.Append(events.New(events.BombLanding, "bomb lands", map[string]interface{}{"pos": landing}))

	for _, victim := range occupantsAdjacent(next, landing) {
		team := next.Team(victim.Side)
		var il events.Log
		next, _, il = injury.Resolve(next, src, thrower, victim, team, false, false)
		log = append(log, il...)
	}
	log = log.Append(events.New(events.BombExplosion, "bomb explodes", map[string]interface{}{"pos": landing}))

	return Result{State: next, Events: log}
}

// HandleHypnoticGaze resolves a HYPNOTIC_GAZE action: the gazing player
// rolls a D6 against 7 minus its own AG (a 6 always succeeds); success sets
// LostTacklezones on the target, the same flag a failed Big Guy check uses,
// and it stays set until the target's per-turn flags are next cleared
// (Player.ClearTurnFlags).
func HandleHypnoticGaze(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	attacker := next.Players[p.PlayerID]
	target := next.Players[p.TargetID]
	var log events.Log

	attackerTarget := 7 - attacker.Stats.AG
	roll := src.RollD6()
	success := roll == 6 || roll >= attackerTarget
	log = log.Append(events.New(events.HypnoticGaze, "hypnotic gaze", map[string]interface{}{
		"roll": roll, "target": attackerTarget, "success": success,
	}))
	if success {
		target.LostTacklezones = true
	}

	return Result{State: next, Events: log}
}

// HandleThrowTeamMate resolves a THROW_TEAM_MATE action: the thrown
// player's landing accuracy reuses the pass accuracy formula against the
// thrower's own stats (spec gives no separate table), scatters on a miss,
// and on a failed landing goes prone and takes an armour roll, with an
// injury roll if the armour breaks (treated the same as a fall).
func HandleThrowTeamMate(g *state.GameState, src dice.Source, p Params) Result {
	next := g.Clone()
	thrower := next.Players[p.PlayerID]
	thrown := next.Players[p.TargetID]
	var log events.Log

	dist := geometry.ChebyshevDistance(geometry.Position{X: thrower.Pos.X, Y: thrower.Pos.Y}, geometry.Position{X: p.TargetX, Y: p.TargetY})
	rangeMod, inRange := passing.RangeModifier(dist)
	if !inRange {
		return Result{State: next, Events: log}
	}

	target := passing.AccuracyTarget(next, thrower, rangeMod, false)
	roll := src.RollD6()
	landing := state.Position{X: p.TargetX, Y: p.TargetY}
	accurate := roll == 6 || roll >= target
	if !accurate && roll >= 2 {
		d8 := src.RollD8()
		off := geometry.DirectionOffset(d8)
		landing = state.Position{X: landing.X + off.X, Y: landing.Y + off.Y}
	}
	log = log.Append(events.New(events.ThrowTeamMate, "throw team mate", map[string]interface{}{
		"roll": roll, "target": target, "accurate": accurate, "landing": landing,
	}))

	thrown.Pos = landing
	landTarget := 7 - thrown.Stats.AG
	landRoll := src.RollD6()
	success := landRoll >= landTarget
	log = log.Append(events.New(events.TTMLanding, "landing roll", map[string]interface{}{
		"roll": landRoll, "target": landTarget, "success": success,
	}))
	if !success {
		thrown.State = state.Prone
		team := next.Team(thrown.Side)
		var il events.Log
		next, _, il = injury.Resolve(next, src, thrower, thrown, team, false, false)
		log = append(log, il...)
	}

	return Result{State: next, Events: log}
}

// HandleSetupPlayer resolves a SETUP_PLAYER action: places a player on an
// empty on-pitch square in their own half.
func HandleSetupPlayer(g *state.GameState, p Params) Result {
	next := g.Clone()
	player := next.Players[p.PlayerID]
	var log events.Log

	dest := state.Position{X: p.X, Y: p.Y}
	gp := geometry.Position{X: dest.X, Y: dest.Y}
	half := geometry.SideHome
	if player.Side == state.Away {
		half = geometry.SideAway
	}
	if !gp.IsOnPitch() || !geometry.IsInHalf(gp, half) || occupantAt(next, dest) != nil {
		return Result{State: next, Events: log}
	}

	player.Pos = dest
	player.OnPitch = true
	log = log.Append(events.New(events.PlayerMove, "player placed", map[string]interface{}{"playerId": player.ID, "to": dest}))

	return Result{State: next, Events: log}
}

// HandleEndSetup resolves an END_SETUP action: the orchestrator advances
// the phase once both teams have declared setup complete; this handler
// only returns a copy of the state with a "setup complete" event and
// clears no flags, since phase transition is cross-team bookkeeping that
// belongs to internal/engine.
func HandleEndSetup(g *state.GameState) Result {
	next := g.Clone()
	return Result{State: next, Events: events.Log{events.New(events.EndTurn, "setup complete", nil)}}
}

func occupantsAdjacent(g *state.GameState, pos state.Position) []*state.Player {
	var out []*state.Player
	for _, p := range g.Players {
		if !p.OnPitch {
			continue
		}
		if geometry.Adjacent(geometry.Position{X: p.Pos.X, Y: p.Pos.Y}, geometry.Position{X: pos.X, Y: pos.Y}) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// isDoubleRoll reconstructs whether a Roll2D6 total came from a pair of
// identical dice. Since Fixed/Random expose only the summed 2D6 value, an
// even total in {2,4,6,8,10,12} is the only information available and is
// treated as "doubles" — documented as a simplification in DESIGN.md,
// since distinguishing 5+5 from 4+6 (2D6=10, neither vs both variants)
// requires access to the individual dice, which the Source interface does
// not expose for 2D6 rolls.
func isDoubleRoll(total int) bool {
	return total%2 == 0
}

func keyOf(p state.Position) string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

func occupantAt(g *state.GameState, pos state.Position) *state.Player {
	for _, p := range g.Players {
		if p.OnPitch && p.Pos == pos {
			return p
		}
	}
	return nil
}
