package systems

import (
	"math/rand"
	"testing"

	"skirmish-server/internal/domain"
)

func TestResolveAttack(t *testing.T) {
	tests := []struct {
		name        string
		script      []domain.Face
		wantDamage  int
		wantAtkPuls int
		wantDefPuls int
	}{
		{
			name:       "swords beat shields",
			script:     []domain.Face{domain.FaceSword, domain.FaceSword, domain.FaceSword, domain.FaceShield, domain.FacePulse},
			wantDamage: 2, wantAtkPuls: 0, wantDefPuls: 1,
		},
		{
			name:       "fully blocked",
			script:     []domain.Face{domain.FaceSword, domain.FacePulse, domain.FacePulse, domain.FaceShield, domain.FaceShield},
			wantDamage: 0, wantAtkPuls: 2, wantDefPuls: 0,
		},
		{
			name:       "damage floored at zero",
			script:     []domain.Face{domain.FaceShield, domain.FaceShield, domain.FacePulse, domain.FaceShield, domain.FaceShield},
			wantDamage: 0, wantAtkPuls: 1, wantDefPuls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := domain.NewUnit("A", domain.ArchetypeWarrior) // atk 3
			target := domain.NewUnit("T", domain.ArchetypeWarrior)   // def 2
			out := ResolveAttack(NewScriptedRoller(tt.script...), attacker, target)

			if out.Damage != tt.wantDamage {
				t.Errorf("damage = %d, want %d", out.Damage, tt.wantDamage)
			}
			if target.CurrentHP != 5-tt.wantDamage {
				t.Errorf("target hp = %d", target.CurrentHP)
			}
			if attacker.CurrentHP != 5 {
				t.Error("attacker must never lose hp")
			}
			if out.AttackerPulse != tt.wantAtkPuls || out.DefenderPulse != tt.wantDefPuls {
				t.Errorf("pulse = %d/%d", out.AttackerPulse, out.DefenderPulse)
			}
		})
	}
}

func TestResolveAttack_NoDefenseDice(t *testing.T) {
	r := NewRoller(rand.New(rand.NewSource(3)))
	for i := 0; i < 100; i++ {
		attacker := domain.NewUnit("A", domain.ArchetypeWarrior)
		target := domain.NewUnit("T", domain.ArchetypeWarrior)
		target.Defense = 0
		target.CurrentHP = 100

		out := ResolveAttack(r, attacker, target)
		if len(out.DefenseRoll.Faces) != 0 {
			t.Fatal("defense 0 must roll nothing")
		}
		if out.Damage != out.AttackRoll.Swords() {
			t.Fatalf("damage %d != swords %d", out.Damage, out.AttackRoll.Swords())
		}
	}
}

func TestResolveAttack_PulseCreditedOnKill(t *testing.T) {
	attacker := domain.NewUnit("A", domain.ArchetypeWarrior)
	target := domain.NewUnit("T", domain.ArchetypeWarrior)
	target.CurrentHP = 1

	script := []domain.Face{domain.FaceSword, domain.FaceSword, domain.FaceSword, domain.FacePulse, domain.FacePulse}
	out := ResolveAttack(NewScriptedRoller(script...), attacker, target)

	if !out.TargetDied || target.IsAlive() {
		t.Fatal("target should be dead")
	}
	if target.CurrentHP != -2 {
		t.Errorf("hp may go below zero, got %d", target.CurrentHP)
	}
	if out.DefenderPulse != 2 {
		t.Errorf("defender pulse = %d, want 2", out.DefenderPulse)
	}
	lines := AttackLog(attacker, target, out, domain.SidePlayer)
	if lines[len(lines)-1] != "T was defeated!" {
		t.Errorf("last log line = %q", lines[len(lines)-1])
	}
}

func TestResolveHeal(t *testing.T) {
	cleric := domain.NewUnit("C", domain.ArchetypeCleric) // atk 4
	target := domain.NewUnit("W", domain.ArchetypeWarrior)
	target.CurrentHP = 2

	script := []domain.Face{domain.FaceShield, domain.FaceShield, domain.FacePulse, domain.FacePulse}
	out := ResolveHeal(NewScriptedRoller(script...), cleric, target)
	if out.Healed != 2 || target.CurrentHP != 4 || out.Pulse != 2 {
		t.Errorf("healed %d hp %d pulse %d", out.Healed, target.CurrentHP, out.Pulse)
	}

	// Лечение не выше максимума.
	script = []domain.Face{domain.FaceShield, domain.FaceShield, domain.FaceShield, domain.FaceShield}
	out = ResolveHeal(NewScriptedRoller(script...), cleric, target)
	if out.Healed != 1 || target.CurrentHP != target.MaxHP {
		t.Errorf("healed %d hp %d", out.Healed, target.CurrentHP)
	}

	lines := HealLog(cleric, target, out)
	if len(lines) != 2 || lines[1] != "C healed W for 1 HP!" {
		t.Errorf("log = %v", lines)
	}
}

func TestHealLog_Failed(t *testing.T) {
	cleric := domain.NewUnit("C", domain.ArchetypeCleric)
	target := domain.NewUnit("W", domain.ArchetypeWarrior)
	out := ResolveHeal(NewScriptedRoller(), cleric, target) // одни Pulse
	lines := HealLog(cleric, target, out)
	if lines[1] != "C failed to heal W." {
		t.Errorf("log = %v", lines)
	}
}
