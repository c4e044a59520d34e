package domain

import "strings"

// Archetype - боевой класс бойца. Набор открыт: неизвестные архетипы
// получают базовые статы и сбалансированный кубик.
type Archetype string

const (
	ArchetypeWarrior      Archetype = "Warrior"
	ArchetypeRuneguard    Archetype = "Runeguard"
	ArchetypeArcaneArcher Archetype = "Arcane Archer"
	ArchetypeCleric       Archetype = "Cleric"
	ArchetypeMilitia      Archetype = "Militia"
	ArchetypeArcher       Archetype = "Archer"
	ArchetypeAcolyte      Archetype = "Acolyte"
	ArchetypeScout        Archetype = "Scout"
)

// BaseStats - стартовый блок характеристик архетипа.
type BaseStats struct {
	MaxHP    int
	Attack   int
	Defense  int
	Movement int
	Range    int
	Faces    []Face
}

var archetypeStats = map[Archetype]BaseStats{
	ArchetypeWarrior:      {MaxHP: 5, Attack: 3, Defense: 2, Movement: 3, Range: 1, Faces: DieFaces(2, 2, 2)},
	ArchetypeRuneguard:    {MaxHP: 5, Attack: 3, Defense: 3, Movement: 2, Range: 1, Faces: DieFaces(1, 3, 2)},
	ArchetypeArcaneArcher: {MaxHP: 3, Attack: 3, Defense: 2, Movement: 3, Range: 2, Faces: DieFaces(3, 1, 2)},
	ArchetypeCleric:       {MaxHP: 5, Attack: 4, Defense: 2, Movement: 3, Range: 1, Faces: DieFaces(0, 2, 4)},
}

var defaultStats = BaseStats{MaxHP: 5, Attack: 3, Defense: 2, Movement: 3, Range: 1}

// StatsFor возвращает копию базовых статов архетипа.
func StatsFor(a Archetype) BaseStats {
	stats, ok := archetypeStats[a]
	if !ok {
		stats = defaultStats
		stats.Faces = BalancedDie()
		return stats
	}
	stats.Faces = append([]Face(nil), stats.Faces...)
	return stats
}

// IsHealer - лекарь лечит союзников вместо атаки.
func (a Archetype) IsHealer() bool {
	return a == ArchetypeCleric
}

// Equal сравнивает архетипы без учета регистра.
func (a Archetype) Equal(other Archetype) bool {
	return strings.EqualFold(string(a), string(other))
}

func (a Archetype) String() string {
	return string(a)
}
