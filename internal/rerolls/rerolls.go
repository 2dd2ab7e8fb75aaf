// Package rerolls implements the reroll arbiter (spec C4 / §4.4): given a
// failed check, decide whether a skill reroll, Pro reroll, or team reroll
// (with its Loner check) applies, in that priority order, emitting the
// matching event and consuming the resource it uses.
//
// The arbiter is the single Attempt function: callers pass the team, the
// player, the check kind and a roll function for each check, and Attempt
// owns the whole reroll policy; there is no separate context type.
package rerolls

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

// CheckKind identifies which single-die check is being attempted, so the
// arbiter knows which skill (if any) grants a reroll for it.
type CheckKind int

const (
	CheckDodge CheckKind = iota
	CheckPickup
	CheckCatch
	CheckGFI
	CheckPassAccuracy
	CheckOther
)

// skillRerollFor returns the skill that grants a reroll for kind, or false
// if none applies (e.g. armour/injury rolls take only a team reroll).
func skillRerollFor(kind CheckKind) (skills.Skill, bool) {
	switch kind {
	case CheckDodge:
		return skills.Dodge, true
	case CheckPickup:
		return skills.SureHands, true
	case CheckCatch:
		return skills.Catch, true
	case CheckGFI:
		return skills.SureFeet, true
	case CheckPassAccuracy:
		return skills.Pass, true
	default:
		return 0, false
	}
}

// skillUsedThisTurn / markSkillUsed read and set the per-skill "already
// used this turn" flag stored on Player, one flag per reroll-granting
// skill (spec §4.4 item 1).
func skillUsedThisTurn(p *state.Player, kind CheckKind) bool {
	switch kind {
	case CheckDodge:
		return p.DodgeSkillUsedTurn
	case CheckPickup:
		return p.SureHandsUsedTurn
	case CheckCatch:
		return p.CatchSkillUsedTurn
	case CheckGFI:
		return p.SureFeetUsedTurn
	case CheckPassAccuracy:
		return p.PassSkillUsedTurn
	default:
		return true
	}
}

func markSkillUsed(p *state.Player, kind CheckKind) {
	switch kind {
	case CheckDodge:
		p.DodgeSkillUsedTurn = true
	case CheckPickup:
		p.SureHandsUsedTurn = true
	case CheckCatch:
		p.CatchSkillUsedTurn = true
	case CheckGFI:
		p.SureFeetUsedTurn = true
	case CheckPassAccuracy:
		p.PassSkillUsedTurn = true
	}
}

// Attempt runs a single-die (or 2D6) check via roll, and on failure walks
// the reroll priority ladder (skill -> Pro -> team -> nothing), returning
// whether the check ultimately succeeded and the events the attempt
// produced. opponentHasTackle negates a Dodge-skill reroll specifically
// (spec §4.4 item 1); it is ignored for every other check kind.
func Attempt(
	src dice.Source,
	team *state.TeamState,
	player *state.Player,
	kind CheckKind,
	opponentHasTackle bool,
	roll func(dice.Source) (value int, success bool, description string),
) (bool, events.Log) {
	var log events.Log

	value, success, desc := roll(src)
	log = log.Append(events.New(checkEventType(kind), desc, map[string]interface{}{
		"result": value, "success": success,
	}))
	if success {
		return true, log
	}

	// 1. Skill reroll.
	if sk, ok := skillRerollFor(kind); ok && player.HasSkill(sk) && !skillUsedThisTurn(player, kind) {
		negated := kind == CheckDodge && sk == skills.Dodge && opponentHasTackle
		if !negated {
			markSkillUsed(player, kind)
			log = log.Append(events.New(events.Reroll, sk.String()+" reroll", map[string]interface{}{
				"source": "skill", "skill": sk.String(),
			}))
			value, success, desc = roll(src)
			log = log.Append(events.New(checkEventType(kind), desc, map[string]interface{}{
				"result": value, "success": success, "rerolled": true,
			}))
			if success {
				return true, log
			}
		}
	}

	// 2. Pro reroll.
	if player.HasSkill(skills.Pro) && !player.ProUsedThisTurn {
		player.ProUsedThisTurn = true
		proRoll := src.RollD6()
		proSuccess := proRoll >= 4
		log = log.Append(events.New(events.Pro, "Pro reroll attempt", map[string]interface{}{
			"roll": proRoll, "success": proSuccess,
		}))
		if proSuccess {
			log = log.Append(events.New(events.Reroll, "Pro reroll", map[string]interface{}{"source": "pro"}))
			value, success, desc = roll(src)
			log = log.Append(events.New(checkEventType(kind), desc, map[string]interface{}{
				"result": value, "success": success, "rerolled": true,
			}))
			if success {
				return true, log
			}
		}
	}

	// 3. Team reroll, gated by a Loner check if the player has Loner.
	if team.Rerolls > 0 && !team.RerollUsedThisTurn {
		if player.HasSkill(skills.Loner) {
			lonerRoll := src.RollD6()
			lonerSuccess := lonerRoll >= 4
			log = log.Append(events.New(events.Loner, "Loner check", map[string]interface{}{
				"roll": lonerRoll, "success": lonerSuccess,
			}))
			team.Rerolls--
			team.RerollUsedThisTurn = true
			if !lonerSuccess {
				return false, log
			}
		} else {
			team.Rerolls--
			team.RerollUsedThisTurn = true
		}
		log = log.Append(events.New(events.Reroll, "Team reroll", map[string]interface{}{"source": "team"}))
		value, success, desc = roll(src)
		log = log.Append(events.New(checkEventType(kind), desc, map[string]interface{}{
			"result": value, "success": success, "rerolled": true,
		}))
		return success, log
	}

	return false, log
}

func checkEventType(kind CheckKind) events.Type {
	switch kind {
	case CheckDodge:
		return events.Dodge
	case CheckGFI:
		return events.GFI
	case CheckPickup:
		return events.Pickup
	case CheckCatch:
		return events.Catch
	case CheckPassAccuracy:
		return events.Pass
	default:
		return events.Type("check")
	}
}
