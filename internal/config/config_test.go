package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skirmish-server/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Store != StoreJSON || cfg.GridSize != 5 || cfg.MaxParty != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.RoundDelay != time.Second || cfg.EnemyDelay != 500*time.Millisecond {
		t.Errorf("delays: %v %v", cfg.RoundDelay, cfg.EnemyDelay)
	}
	if cfg.Admin {
		t.Error("admin must be off by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SKIRMISH_PORT", "9090")
	t.Setenv("SKIRMISH_STORE", " SQLite ")
	t.Setenv("SKIRMISH_SEED", "77")
	t.Setenv("SKIRMISH_GRID_SIZE", "7")
	t.Setenv("SKIRMISH_REACTIVATE_COST", "15")
	t.Setenv("SKIRMISH_ENEMY_DELAY", "250ms")
	t.Setenv("SKIRMISH_ADMIN", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Store != StoreSQLite || !cfg.Admin {
		t.Errorf("unexpected config: %+v", cfg)
	}

	ec := cfg.Engine()
	if ec.Seed != 77 {
		t.Errorf("seed = %d, want 77", ec.Seed)
	}
	if ec.Battle.GridSize != 7 || ec.Battle.ReactivateCost != 15 || ec.Battle.EnemyDelay != 250*time.Millisecond {
		t.Errorf("battle config: %+v", ec.Battle)
	}
	if ec.Battle.ExtraActivationCost != 10 {
		t.Errorf("extra activation cost = %d, want default 10", ec.Battle.ExtraActivationCost)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, wantErr string
	}{
		{"unknown store", "SKIRMISH_STORE", "redis", "unknown store"},
		{"tiny grid", "SKIRMISH_GRID_SIZE", "2", "too small"},
		{"bad number", "SKIRMISH_MAX_PARTY", "many", "parse env"},
		{"zero party", "SKIRMISH_MAX_PARTY", "0", "max party"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_RandomSeedWhenZero(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine().Seed == 0 {
		t.Error("zero seed must be replaced with a random one")
	}
}

const scenarioYAML = `
name: test
seed: 5
grid_size: 6
upgrades:
  wizards_tower: true
party:
  - name: Bran
    archetype: Militia
    xp: 200
    unlock:
      - [2, 1]
  - archetype: Cleric
enemies:
  - archetype: Runeguard
  - name: Boss
    archetype: Warrior
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeFile(t, "s.yaml", scenarioYAML))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Seed != 5 || sc.GridSize != 6 || !sc.Upgrades[domain.UpgradeWizardsTower] {
		t.Errorf("unexpected scenario header: %+v", sc)
	}

	party := sc.PartyUnits()
	if len(party) != 2 {
		t.Fatalf("party size = %d, want 2", len(party))
	}
	bran := party[0]
	if bran.Name != "Bran" || bran.Level != 3 {
		t.Errorf("Bran: name=%q level=%d, want level 3", bran.Name, bran.Level)
	}
	if !bran.IsUnlocked(domain.Position{Row: 2, Col: 1}) {
		t.Error("Bran should have (2,1) unlocked")
	}
	if party[1].Name != "Cleric 2" || !party[1].IsHealer() {
		t.Errorf("fallback name = %q", party[1].Name)
	}

	enemies := sc.EnemyLineup()
	if len(enemies) != 2 || enemies[1].Name != "Boss" || enemies[0].Name != "Enemy Runeguard 1" {
		t.Errorf("enemies: %+v", enemies)
	}
}

func TestLoadScenario_Errors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
	bad := writeFile(t, "bad.yaml", "party:\n  - name: Nobody\n")
	if _, err := LoadScenario(bad); err == nil || !strings.Contains(err.Error(), "no archetype") {
		t.Errorf("err = %v, want missing archetype", err)
	}
	broken := writeFile(t, "broken.yaml", "party: [\n")
	if _, err := LoadScenario(broken); err == nil {
		t.Error("expected yaml error")
	}
}
