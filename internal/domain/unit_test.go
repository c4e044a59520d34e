package domain

import "testing"

func TestNewUnit_ArchetypeStats(t *testing.T) {
	tests := []struct {
		archetype Archetype
		hp, atk   int
		def, mov  int
		rng       int
		swords    int
		shields   int
		pulses    int
	}{
		{ArchetypeWarrior, 5, 3, 2, 3, 1, 2, 2, 2},
		{ArchetypeRuneguard, 5, 3, 3, 2, 1, 1, 3, 2},
		{ArchetypeArcaneArcher, 3, 3, 2, 3, 2, 3, 1, 2},
		{ArchetypeCleric, 5, 4, 2, 3, 1, 0, 2, 4},
		{ArchetypeMilitia, 5, 3, 2, 3, 1, 2, 2, 2},
		{Archetype("Golem"), 5, 3, 2, 3, 1, 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.archetype.String(), func(t *testing.T) {
			u := NewUnit("u", tt.archetype)
			if u.MaxHP != tt.hp || u.Attack != tt.atk || u.Defense != tt.def || u.Movement != tt.mov || u.Range != tt.rng {
				t.Fatalf("stats = %d/%d/%d/%d/%d", u.MaxHP, u.Attack, u.Defense, u.Movement, u.Range)
			}
			if u.CurrentHP != u.MaxHP {
				t.Errorf("CurrentHP = %d, want %d", u.CurrentHP, u.MaxHP)
			}
			if len(u.DieFaces) != DieFaceCount {
				t.Fatalf("die has %d faces", len(u.DieFaces))
			}
			counts := map[Face]int{}
			for _, f := range u.DieFaces {
				counts[f]++
			}
			if counts[FaceSword] != tt.swords || counts[FaceShield] != tt.shields || counts[FacePulse] != tt.pulses {
				t.Errorf("faces = %v", counts)
			}
			if u.Level != 1 || u.XP != 0 {
				t.Errorf("level/xp = %d/%d", u.Level, u.XP)
			}
			if !u.IsUnlocked(Center) || len(u.UnlockedTiles) != 1 {
				t.Errorf("unlocked = %v", u.UnlockedTiles)
			}
		})
	}
}

func TestStatsFor_ReturnsCopy(t *testing.T) {
	a := StatsFor(ArchetypeWarrior)
	a.Faces[0] = FacePulse
	b := StatsFor(ArchetypeWarrior)
	if b.Faces[0] != FaceSword {
		t.Error("StatsFor leaked the shared face slice")
	}
}

func TestAddExperience(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []int
		wantLevel int
		wantXP    int
	}{
		{"below threshold", []int{99}, 1, 99},
		{"exact threshold", []int{100}, 2, 0},
		{"multi level in one call", []int{250}, 3, 50},
		{"accumulates", []int{60, 60}, 2, 20},
		{"large gain", []int{1030}, 11, 30},
		{"non positive ignored", []int{0, -50}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnit("u", ArchetypeWarrior)
			prevLevel := u.Level
			for _, a := range tt.amounts {
				u.AddExperience(a)
				if u.Level < prevLevel {
					t.Fatalf("level decreased: %d -> %d", prevLevel, u.Level)
				}
				if u.XP < 0 || u.XP >= XPPerLevel {
					t.Fatalf("xp out of range: %d", u.XP)
				}
				prevLevel = u.Level
			}
			if u.Level != tt.wantLevel || u.XP != tt.wantXP {
				t.Errorf("got level %d xp %d, want %d/%d", u.Level, u.XP, tt.wantLevel, tt.wantXP)
			}
		})
	}
}

func TestUnlockTile(t *testing.T) {
	u := NewUnit("u", ArchetypeMilitia)

	// Диагональ и дальние клетки не открываются.
	u.UnlockTile(Position{Row: 1, Col: 1})
	u.UnlockTile(Position{Row: 0, Col: 2})
	if len(u.UnlockedTiles) != 1 || u.EvolutionPosition != Center {
		t.Fatalf("non adjacent unlock changed state: %v cursor %v", u.UnlockedTiles, u.EvolutionPosition)
	}

	u.UnlockTile(Position{Row: 1, Col: 2})
	if !u.IsUnlocked(Position{Row: 1, Col: 2}) {
		t.Fatal("adjacent tile not unlocked")
	}
	if u.EvolutionPosition != (Position{Row: 1, Col: 2}) {
		t.Errorf("cursor = %v", u.EvolutionPosition)
	}

	// Теперь (0,2) соседствует с открытой (1,2).
	u.UnlockTile(Position{Row: 0, Col: 2})
	if !u.IsUnlocked(Position{Row: 0, Col: 2}) {
		t.Error("chained unlock failed")
	}

	// Повтор - идемпотентный no-op.
	before := len(u.UnlockedTiles)
	u.UnlockTile(Position{Row: 1, Col: 2})
	u.UnlockTile(Center)
	if len(u.UnlockedTiles) != before {
		t.Errorf("repeat unlock changed set size: %d -> %d", before, len(u.UnlockedTiles))
	}
	if u.EvolutionPosition != (Position{Row: 0, Col: 2}) {
		t.Errorf("repeat unlock moved cursor to %v", u.EvolutionPosition)
	}
}

func TestApplyTileEffect(t *testing.T) {
	u := NewUnit("u", ArchetypeMilitia)

	u.ApplyTileEffect(StatEffect("+2 ATK", StatAttack, 2, ""))
	u.ApplyTileEffect(StatEffect("+3 HP", StatHP, 3, ""))
	u.ApplyTileEffect(StatEffect("-1 MOV", StatMovement, -1, ""))
	u.ApplyTileEffect(AbilityEffect("War Cry", "war_cry", ""))
	u.ApplyTileEffect(TraitEffect("Iron Stance", "resist_knockback", ""))

	if u.Attack != 5 {
		t.Errorf("Attack = %d, want 5", u.Attack)
	}
	if u.MaxHP != 8 {
		t.Errorf("MaxHP = %d, want 8", u.MaxHP)
	}
	if u.CurrentHP != 5 {
		t.Errorf("CurrentHP changed to %d; stat effects touch max hp only", u.CurrentHP)
	}
	if u.Movement != 2 {
		t.Errorf("Movement = %d, want 2", u.Movement)
	}
	if len(u.Abilities) != 1 || u.Abilities[0] != "war_cry" {
		t.Errorf("Abilities = %v", u.Abilities)
	}
	if len(u.Traits) != 1 || u.Traits[0] != "resist_knockback" {
		t.Errorf("Traits = %v", u.Traits)
	}
}

func TestResetForBattleAndAlive(t *testing.T) {
	u := NewUnit("u", ArchetypeWarrior)
	u.CurrentHP = 0
	if u.IsAlive() {
		t.Error("0 hp must be dead")
	}
	u.CurrentHP = -3
	if u.IsAlive() {
		t.Error("negative hp must be dead")
	}
	u.ResetForBattle()
	if !u.IsAlive() || u.CurrentHP != u.MaxHP {
		t.Errorf("reset hp = %d", u.CurrentHP)
	}
}

func TestHasUnspentLevel(t *testing.T) {
	u := NewUnit("u", ArchetypeWarrior)
	if u.HasUnspentLevel() {
		t.Error("level 1 with center unlocked has nothing to spend")
	}
	u.AddExperience(100)
	if !u.HasUnspentLevel() {
		t.Error("level 2 with one tile should have an unspent level")
	}
}
