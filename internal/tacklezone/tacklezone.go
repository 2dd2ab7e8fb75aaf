// Package tacklezone bridges the engine's Player/TeamState model to
// internal/geometry's side-agnostic adjacency primitives, and implements
// the dodge-target formula (spec §4.2) that every leave-a-tacklezone check
// in the engine calls through.
package tacklezone

import (
	"gridbowl/internal/geometry"
	"gridbowl/internal/skills"
	"gridbowl/internal/state"
)

func toGeomSide(s state.Side) geometry.Side {
	if s == state.Home {
		return geometry.SideHome
	}
	return geometry.SideAway
}

func toGeomPos(p state.Position) geometry.Position {
	return geometry.Position{X: p.X, Y: p.Y}
}

// Occupants projects every on-pitch player in g into geometry.Occupant.
func Occupants(g *state.GameState) []geometry.Occupant {
	out := make([]geometry.Occupant, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.OnPitch {
			continue
		}
		out = append(out, geometry.Occupant{
			ID:               p.ID,
			Side:             toGeomSide(p.Side),
			Pos:              toGeomPos(p.Pos),
			ExertsTacklezone: p.ExertsTacklezone(),
		})
	}
	return out
}

// CountTZ returns the number of side's opponents exerting a tacklezone on
// pos — countTZ(state, pos, side) in spec terms.
func CountTZ(g *state.GameState, pos state.Position, side state.Side) int {
	return geometry.CountEnemyTacklezones(toGeomPos(pos), toGeomSide(side), Occupants(g))
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

// DodgeTarget implements calculateDodgeTarget(state, player, dest, source)
// from spec §4.2:
//
//	clamp_{2..6}( (7 - effectiveAgility) + extraTZ + prehensileTailBonusAtSource
//	              - dodgeSkillBonus - stuntyBonus - titchyBonus )
//
// extraTZ = max(0, TZ_at_dest - 1) — the first tacklezone at the
// destination is "free" (already paid for by entering the square at all);
// only the second and further tacklezones raise the target. source is nil
// when the player is not leaving an existing square (e.g. a stand-up
// check has no dodge component, but callers that do need the
// prehensile-tail bonus pass the square being vacated).
func DodgeTarget(g *state.GameState, player *state.Player, dest state.Position, source *state.Position) int {
	effectiveAgility := player.Stats.AG
	if player.HasSkill(skills.BreakTackle) && !player.BrokenTackleUsed {
		effectiveAgility = player.Stats.ST
	}

	extraTZ := CountTZ(g, dest, player.Side) - 1
	if extraTZ < 0 {
		extraTZ = 0
	}

	prehensileTailBonus := 0
	if source != nil {
		for _, occ := range Occupants(g) {
			if occ.Side == toGeomSide(player.Side) || !occ.ExertsTacklezone {
				continue
			}
			if p, ok := g.PlayerByID(occ.ID); ok && p.HasSkill(skills.PrehensileTail) && geometry.Adjacent(toGeomPos(*source), occ.Pos) {
				prehensileTailBonus++
			}
		}
	}

	dodgeSkillBonus := 0
	if player.HasSkill(skills.Dodge) && !player.DodgeSkillUsedTurn {
		dodgeSkillBonus = 1
	}
	stuntyBonus := 0
	if player.HasSkill(skills.Stunty) {
		stuntyBonus = 1
	}
	titchyBonus := 0
	if player.HasSkill(skills.Titchy) {
		titchyBonus = 1
	}

	target := (7 - effectiveAgility) + extraTZ + prehensileTailBonus - dodgeSkillBonus - stuntyBonus - titchyBonus
	return clamp2to6(target)
}
