// Package injury implements the armour/injury resolver (spec C6 / §4.6):
// armour roll, injury roll, apothecary best-of-two, Regeneration/Stakes,
// Nurgle's Rot, and the crowd-surf variant that skips the armour roll.
package injury

import (
	"gridbowl/internal/dice"
	"gridbowl/internal/events"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

// Severity is the total ordering Stunned < KO < Injured the spec's open
// question (b) pins down for apothecary best-of-two comparison.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityStunned
	SeverityKO
	SeverityInjured
)

// Outcome is the result of a full armour+injury resolution.
type Outcome struct {
	ArmourBroken bool
	Severity     Severity
	MovedOffPitch bool // Regeneration/Stakes sent the player OFF_PITCH instead
}

// Resolve runs the armour roll then, if broken, the injury roll, applying
// apothecary/Regeneration/Nurgle's Rot as spec §4.6 describes. attacker may
// be nil for crowd-surf (no attacker-driven modifiers beyond the ones
// passed explicitly). crowdSurf skips the armour roll and adds +1 to the
// injury roll. The results are written to defender and team in place, and
// g itself (not a clone) is returned, so a defender and team taken from g
// show up in the returned state.
func Resolve(g *state.GameState, src dice.Source, attacker, defender *state.Player, team *state.TeamState, crowdSurf bool, mightyBlowAvailable bool) (*state.GameState, Outcome, events.Log) {
	var log events.Log
	next := g

	armourBroken := crowdSurf
	if !crowdSurf {
		roll := src.Roll2D6()
		bonus := 0
		usedMightyBlow := false
		if attacker != nil && attacker.HasSkill(skills.MightyBlow) && mightyBlowAvailable {
			bonus++
			usedMightyBlow = true
		}
		if attacker != nil && attacker.HasSkill(skills.DirtyPlayer) {
			bonus++
		}
		total := roll + bonus
		armourBroken = total > defender.Stats.AV
		log = log.Append(events.New(events.ArmourRoll, "armour roll", map[string]interface{}{
			"roll": roll, "bonus": bonus, "total": total, "av": defender.Stats.AV, "broken": armourBroken,
		}))
		mightyBlowAvailable = mightyBlowAvailable && !usedMightyBlow
	}

	if !armourBroken {
		return next, Outcome{ArmourBroken: false}, log
	}

	injuryRoll := src.Roll2D6()
	injuryBonus := 0
	if defender.HasSkill(skills.Stunty) {
		injuryBonus++
	}
	if attacker != nil && attacker.HasSkill(skills.MightyBlow) && mightyBlowAvailable {
		injuryBonus++
	}
	if crowdSurf {
		injuryBonus++
	}
	total := injuryRoll + injuryBonus

	severity := severityFromRoll(total)
	log = log.Append(events.New(events.InjuryRoll, "injury roll", map[string]interface{}{
		"roll": injuryRoll, "bonus": injuryBonus, "total": total, "severity": int(severity),
	}))

	if severity == SeverityInjured && team.HasApothecary && !team.ApothecaryUsed {
		team.ApothecaryUsed = true
		rerollTotal := src.Roll2D6()
		rerollSeverity := severityFromRoll(rerollTotal)
		log = log.Append(events.New(events.ApothecaryEvent, "apothecary reroll", map[string]interface{}{
			"reroll": rerollTotal, "rerollSeverity": int(rerollSeverity),
		}))
		// Keep the better (less severe) of the two outcomes for the player,
		// per spec's fixed Stunned<KO<Injured ordering (open question b).
		if rerollSeverity < severity {
			severity = rerollSeverity
		}
	}

	applyLifecycle(defender, severity)

	outcome := Outcome{ArmourBroken: true, Severity: severity}

	if severity == SeverityInjured {
		if attacker != nil && attacker.HasSkill(skills.NurglesRot) {
			log = log.Append(events.New(events.NurglesRot, "Nurgle's Rot", map[string]interface{}{"playerId": defender.ID}))
		}
		if defender.HasSkill(skills.Regeneration) {
			attackerHasStakes := attacker != nil && attacker.HasSkill(skills.Stakes)
			if !attackerHasStakes {
				regenRoll := src.RollD6()
				if regenRoll >= 4 {
					defender.State = state.OffPitch
					defender.OnPitch = false
					outcome.MovedOffPitch = true
					log = log.Append(events.New(events.Regeneration, "regeneration", map[string]interface{}{"roll": regenRoll}))
				} else {
					log = log.Append(events.New(events.Regeneration, "regeneration failed", map[string]interface{}{"roll": regenRoll}))
				}
			} else {
				log = log.Append(events.New(events.StakesBlockRegen, "Stakes blocks regeneration", nil))
			}
		}
	}

	return next, outcome, log
}

func severityFromRoll(total int) Severity {
	switch {
	case total <= 7:
		return SeverityStunned
	case total <= 9:
		return SeverityKO
	default:
		return SeverityInjured
	}
}

func applyLifecycle(p *state.Player, sev Severity) {
	switch sev {
	case SeverityStunned:
		p.State = state.Stunned
	case SeverityKO:
		p.State = state.KO
	case SeverityInjured:
		p.State = state.Injured
		p.OnPitch = false
	}
}
