package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"skirmish-server/internal/domain"
)

// Scenario - заранее заданный бой для симулятора и флага -scenario.
type Scenario struct {
	Name     string          `yaml:"name"`
	Seed     int64           `yaml:"seed"`
	GridSize int             `yaml:"grid_size"`
	Party    []ScenarioUnit  `yaml:"party"`
	Enemies  []ScenarioUnit  `yaml:"enemies"`
	Upgrades map[string]bool `yaml:"upgrades"`
}

// ScenarioUnit - боец сценария: архетип плюс опыт и открытые клетки эволюции.
type ScenarioUnit struct {
	Name      string   `yaml:"name"`
	Archetype string   `yaml:"archetype"`
	XP        int      `yaml:"xp"`
	Unlock    [][2]int `yaml:"unlock"`
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// LoadScenario читает YAML-сценарий.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	if err := loadYAML(path, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	for i, u := range append(append([]ScenarioUnit(nil), sc.Party...), sc.Enemies...) {
		if strings.TrimSpace(u.Archetype) == "" {
			return nil, fmt.Errorf("load scenario %s: unit %d has no archetype", path, i)
		}
		if u.XP < 0 {
			return nil, fmt.Errorf("load scenario %s: unit %d has negative xp", path, i)
		}
	}
	return &sc, nil
}

// Build создает бойца. Клетки эволюции открываются по порядку, пока хватает уровней.
func (u ScenarioUnit) Build(fallbackName string) *domain.Unit {
	name := u.Name
	if name == "" {
		name = fallbackName
	}
	unit := domain.NewUnit(name, domain.Archetype(u.Archetype))
	if u.XP > 0 {
		unit.AddExperience(u.XP)
	}
	for _, tile := range u.Unlock {
		domain.ConfirmUnlock(unit, domain.Position{Row: tile[0], Col: tile[1]})
	}
	return unit
}

// PartyUnits - отряд игрока.
func (s *Scenario) PartyUnits() []*domain.Unit {
	units := make([]*domain.Unit, 0, len(s.Party))
	for i, u := range s.Party {
		units = append(units, u.Build(fmt.Sprintf("%s %d", u.Archetype, i+1)))
	}
	return units
}

// EnemyLineup - состав противника в виде слепков. Пусто - генерация по отряду.
func (s *Scenario) EnemyLineup() []domain.UnitSnapshot {
	snaps := make([]domain.UnitSnapshot, 0, len(s.Enemies))
	for i, u := range s.Enemies {
		snaps = append(snaps, u.Build(fmt.Sprintf("Enemy %s %d", u.Archetype, i+1)).Snapshot())
	}
	return snaps
}
