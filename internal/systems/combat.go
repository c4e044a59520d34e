package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/pkg/logger"
)

// AttackOutcome - результат одной атаки. Пульс зачисляется обеим сторонам
// независимо от урона и от того, пережила ли цель удар.
type AttackOutcome struct {
	AttackRoll    Roll
	DefenseRoll   Roll
	Damage        int
	AttackerPulse int
	DefenderPulse int
	TargetDied    bool
}

// HealOutcome - результат лечения.
type HealOutcome struct {
	Roll   Roll
	Healed int
	Pulse  int
}

// ResolveAttack: атакующий бросает Attack кубиков, цель - Defense кубиков.
// Урон = max(0, мечи - щиты), HP цели может уйти ниже нуля.
func ResolveAttack(roller Roller, attacker, target *domain.Unit) AttackOutcome {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"attacker_id": attacker.ID,
		"attacker":    attacker.Name,
		"target_id":   target.ID,
		"target":      target.Name,
	})

	atk := roller.Roll(attacker.DieFaces, attacker.Attack)
	def := roller.Roll(target.DieFaces, target.Defense)

	damage := atk.Swords() - def.Shields()
	if damage < 0 {
		damage = 0
	}

	hpBefore := target.CurrentHP
	target.CurrentHP -= damage

	out := AttackOutcome{
		AttackRoll:    atk,
		DefenseRoll:   def,
		Damage:        damage,
		AttackerPulse: atk.Pulses(),
		DefenderPulse: def.Pulses(),
		TargetDied:    !target.IsAlive(),
	}

	combatLogger.WithFields(logrus.Fields{
		"swords":         atk.Swords(),
		"shields":        def.Shields(),
		"attacker_pulse": out.AttackerPulse,
		"defender_pulse": out.DefenderPulse,
		"damage":         damage,
		"hp_before":      hpBefore,
		"hp_after":       target.CurrentHP,
		"target_died":    out.TargetDied,
	}).Info("Attack resolved.")

	return out
}

// ResolveHeal: лекарь бросает Attack кубиков, щиты лечат (не выше MaxHP).
// Лекарь никогда не наносит урон.
func ResolveHeal(roller Roller, healer, target *domain.Unit) HealOutcome {
	roll := roller.Roll(healer.DieFaces, healer.Attack)

	before := target.CurrentHP
	target.CurrentHP += roll.Shields()
	if target.CurrentHP > target.MaxHP {
		target.CurrentHP = target.MaxHP
	}

	out := HealOutcome{Roll: roll, Healed: target.CurrentHP - before, Pulse: roll.Pulses()}

	logger.Log.WithFields(logrus.Fields{
		"component": "combat_system",
		"healer_id": healer.ID,
		"healer":    healer.Name,
		"target_id": target.ID,
		"target":    target.Name,
		"shields":   roll.Shields(),
		"pulse":     out.Pulse,
		"healed":    out.Healed,
	}).Info("Heal resolved.")

	return out
}

// AttackLog - строки боевого лога для атаки, в порядке появления.
func AttackLog(attacker, target *domain.Unit, out AttackOutcome, attackerSide domain.Side) []string {
	lines := []string{
		fmt.Sprintf("%s rolled: %s", attacker.Name, out.AttackRoll),
		fmt.Sprintf("%s rolled: %s", target.Name, out.DefenseRoll),
		fmt.Sprintf("Swords: %d, Shields: %d, %s Pulse: +%d, %s Pulse: +%d",
			out.AttackRoll.Swords(), out.DefenseRoll.Shields(),
			sideLabel(attackerSide), out.AttackerPulse,
			sideLabel(attackerSide.Opponent()), out.DefenderPulse),
	}
	if out.Damage > 0 {
		lines = append(lines, fmt.Sprintf("%s dealt %d damage to %s.", attacker.Name, out.Damage, target.Name))
	} else {
		lines = append(lines, fmt.Sprintf("%s blocked all damage!", target.Name))
	}
	if out.TargetDied {
		if attackerSide == domain.SidePlayer {
			lines = append(lines, fmt.Sprintf("%s was defeated!", target.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s has fallen!", target.Name))
		}
	}
	return lines
}

// HealLog - строки боевого лога для лечения.
func HealLog(healer, target *domain.Unit, out HealOutcome) []string {
	lines := []string{fmt.Sprintf("%s rolled: %s", healer.Name, out.Roll)}
	if out.Roll.Shields() > 0 {
		lines = append(lines, fmt.Sprintf("%s healed %s for %d HP!", healer.Name, target.Name, out.Healed))
	} else {
		lines = append(lines, fmt.Sprintf("%s failed to heal %s.", healer.Name, target.Name))
	}
	return lines
}

func sideLabel(s domain.Side) string {
	if s == domain.SidePlayer {
		return "Player"
	}
	return "Enemy"
}
