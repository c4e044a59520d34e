package domain

import (
	"fmt"
	"strings"
)

// TileCatalog - награды сетки эволюции одного архетипа.
type TileCatalog map[Position]TileEffect

var tileCatalogs = map[string]TileCatalog{
	"militia": {
		{Row: 2, Col: 1}: StatEffect("+2 ATK", StatAttack, 2, "Train in brutal offense."),
		{Row: 1, Col: 2}: StatEffect("+3 HP", StatHP, 3, "Hardened constitution."),
		{Row: 2, Col: 3}: TraitEffect("Shield Bearer", "block_chance", "Gain a chance to block incoming damage."),
		{Row: 3, Col: 2}: AbilityEffect("Taunt", "taunt_aoe", "Draw enemy aggression in an area."),
		{Row: 0, Col: 2}: AbilityEffect("War Cry", "war_cry", "Boost allies' morale."),
		{Row: 4, Col: 2}: TraitEffect("Iron Stance", "resist_knockback", "Immune to knockback."),
		{Row: 2, Col: 0}: StatEffect("+1 MOV", StatMovement, 1, "Improve combat footwork."),
		{Row: 2, Col: 4}: StatEffect("+1 RNG", StatRange, 1, "Learn to strike just a bit further."),
		{Row: 0, Col: 0}: TraitEffect("Warlord Capstone", "leadership_aura", "Boost nearby allies."),
		{Row: 4, Col: 4}: TraitEffect("Juggernaut Capstone", "unstoppable", "Ignore terrain and break through lines."),
	},
	"archer": {
		{Row: 2, Col: 1}: StatEffect("+1 RNG", StatRange, 1, "Learn to fire from farther away."),
		{Row: 1, Col: 2}: StatEffect("+2 ATK", StatAttack, 2, "Sharpened accuracy."),
		{Row: 2, Col: 3}: AbilityEffect("Multi-Shot", "multi_shot", "Attack multiple enemies in a line."),
		{Row: 3, Col: 2}: TraitEffect("Focus Fire", "focus_fire", "Deal more damage to marked targets."),
		{Row: 0, Col: 2}: StatEffect("+3 HP", StatHP, 3, "Gain stamina to survive longer."),
		{Row: 2, Col: 0}: AbilityEffect("Smoke Arrow", "smoke_arrow", "Create a smoke field for cover."),
		{Row: 2, Col: 4}: AbilityEffect("Piercing Shot", "pierce_arrow", "Ignore enemy defense."),
		{Row: 4, Col: 2}: TraitEffect("Hunter's Instinct", "detect_stealth", "Reveal hidden enemies."),
		{Row: 0, Col: 0}: TraitEffect("Sniper Capstone", "longshot", "Ignore distance penalties."),
		{Row: 4, Col: 4}: AbilityEffect("Volley Master Capstone", "volley", "Rain arrows over a wide area."),
	},
	"acolyte": {
		{Row: 2, Col: 1}: AbilityEffect("Heal Nearby", "group_heal", "Restore health to nearby allies."),
		{Row: 1, Col: 2}: StatEffect("+2 DEF", StatDefense, 2, "Magical shielding."),
		{Row: 2, Col: 3}: AbilityEffect("Drain Touch", "drain_touch", "Deal damage and heal yourself."),
		{Row: 3, Col: 2}: AbilityEffect("Cleanse", "cleanse", "Remove debuffs from allies."),
		{Row: 0, Col: 2}: AbilityEffect("Soul Mend", "soul_mend", "Revive a fallen unit at low health."),
		{Row: 2, Col: 0}: StatEffect("+2 HP", StatHP, 2, "Greater resilience."),
		{Row: 2, Col: 4}: StatEffect("+1 MOV", StatMovement, 1, "Move faster in battle."),
		{Row: 4, Col: 2}: TraitEffect("Aura of Warding", "resist_burn_poison", "Grants resistance to damage over time."),
		{Row: 0, Col: 0}: TraitEffect("Divine Capstone", "divine_shield", "Negate the first damage taken each turn."),
		{Row: 4, Col: 4}: AbilityEffect("Plague Capstone", "disease_burst", "Unleash a curse in a wide area."),
	},
	"scout": {
		{Row: 2, Col: 1}: StatEffect("+1 MOV", StatMovement, 1, "Quickstep training."),
		{Row: 1, Col: 2}: AbilityEffect("Backstab", "backstab", "Deal bonus damage from behind."),
		{Row: 2, Col: 3}: AbilityEffect("Mark Target", "mark_target", "Reveal and debuff an enemy."),
		{Row: 3, Col: 2}: AbilityEffect("Trap Set", "trap_set", "Lay a hidden snare."),
		{Row: 0, Col: 2}: AbilityEffect("Dash", "dash", "Move again after attacking."),
		{Row: 2, Col: 0}: StatEffect("+2 ATK", StatAttack, 2, "Precision bladework."),
		{Row: 2, Col: 4}: AbilityEffect("Disengage", "disengage", "Escape combat without penalty."),
		{Row: 4, Col: 2}: TraitEffect("Shadowstep", "stealth_movement", "Move through enemies undetected."),
		{Row: 0, Col: 0}: TraitEffect("Assassin Capstone", "crit_kill", "Critical hits instantly KO low-HP enemies."),
		{Row: 4, Col: 4}: TraitEffect("Recon Master Capstone", "map_reveal", "Reveal enemy positions at battle start."),
	},
}

// EvolutionGridSize - сторона личной сетки эволюции.
const EvolutionGridSize = 5

func init() {
	// Битая таблица наград - ошибка сборки, а не игры.
	if err := validateCatalogs(tileCatalogs); err != nil {
		panic(err)
	}
}

func validateCatalogs(catalogs map[string]TileCatalog) error {
	for name, catalog := range catalogs {
		for pos, effect := range catalog {
			if !pos.InBounds(EvolutionGridSize) {
				return fmt.Errorf("catalog %s: tile %s outside evolution grid", name, pos)
			}
			if pos == Center {
				return fmt.Errorf("catalog %s: center tile cannot carry a reward", name)
			}
			if err := effect.Validate(); err != nil {
				return fmt.Errorf("catalog %s: %w", name, err)
			}
		}
	}
	return nil
}

// CatalogFor возвращает копию каталога архетипа. Неизвестный архетип -> пустой каталог.
func CatalogFor(a Archetype) TileCatalog {
	src := tileCatalogs[strings.ToLower(strings.TrimSpace(string(a)))]
	out := make(TileCatalog, len(src))
	for pos, effect := range src {
		out[pos] = effect
	}
	return out
}

// EffectAt ищет награду клетки для архетипа.
func EffectAt(a Archetype, pos Position) (TileEffect, bool) {
	effect, ok := tileCatalogs[strings.ToLower(strings.TrimSpace(string(a)))][pos]
	return effect, ok
}
