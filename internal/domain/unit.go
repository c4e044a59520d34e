package domain

// XPPerLevel - фиксированный порог опыта на каждый уровень.
const XPPerLevel = 100

// Unit - боец ростера. Один и тот же экземпляр используется и в армии, и в бою:
// CurrentHP сбрасывается при каждом старте боя.
type Unit struct {
	ID        UnitID
	Name      string
	Archetype Archetype

	MaxHP    int
	Attack   int
	Defense  int
	Movement int
	Range    int
	DieFaces []Face

	Level     int
	XP        int
	CurrentHP int

	// Сетка эволюции
	EvolutionPosition Position
	UnlockedTiles     []Position
	AvailableTiles    []Position
	Abilities         []string
	Traits            []string
}

// NewUnit создает бойца с базовыми статами архетипа.
func NewUnit(name string, archetype Archetype) *Unit {
	stats := StatsFor(archetype)
	return &Unit{
		ID:                NewUnitID(),
		Name:              name,
		Archetype:         archetype,
		MaxHP:             stats.MaxHP,
		Attack:            stats.Attack,
		Defense:           stats.Defense,
		Movement:          stats.Movement,
		Range:             stats.Range,
		DieFaces:          stats.Faces,
		Level:             1,
		CurrentHP:         stats.MaxHP,
		EvolutionPosition: Center,
		UnlockedTiles:     []Position{Center},
		AvailableTiles:    []Position{},
		Abilities:         []string{},
		Traits:            []string{},
	}
}

func (u *Unit) IsAlive() bool {
	return u.CurrentHP > 0
}

// IsHealer - лечит союзников вместо атаки.
func (u *Unit) IsHealer() bool {
	return u.Archetype.IsHealer()
}

// ResetForBattle восстанавливает здоровье перед боем.
func (u *Unit) ResetForBattle() {
	u.CurrentHP = u.MaxHP
}

// AddExperience начисляет опыт. Несколько уровней за раз возможны, потолка нет.
func (u *Unit) AddExperience(amount int) {
	if amount <= 0 {
		return
	}
	u.XP += amount
	for u.XP >= XPPerLevel {
		u.XP -= XPPerLevel
		u.Level++
	}
}

// XPToNextLevel - сколько опыта осталось до следующего уровня.
func (u *Unit) XPToNextLevel() int {
	return XPPerLevel - u.XP
}

// IsUnlocked проверяет, открыта ли клетка эволюции.
func (u *Unit) IsUnlocked(pos Position) bool {
	for _, p := range u.UnlockedTiles {
		if p == pos {
			return true
		}
	}
	return false
}

// CanUnlock - клетка закрыта и соседствует с одной из открытых.
func (u *Unit) CanUnlock(pos Position) bool {
	if u.IsUnlocked(pos) {
		return false
	}
	for _, p := range u.UnlockedTiles {
		if p.IsAdjacent(pos) {
			return true
		}
	}
	return false
}

// UnlockTile открывает клетку, если она соседствует с открытой.
// Иначе ничего не делает.
func (u *Unit) UnlockTile(pos Position) {
	if !u.CanUnlock(pos) {
		return
	}
	u.UnlockedTiles = append(u.UnlockedTiles, pos)
	u.EvolutionPosition = pos
}

// HasUnspentLevel - уровней больше, чем открытых клеток.
func (u *Unit) HasUnspentLevel() bool {
	return u.Level > len(u.UnlockedTiles)
}

// ApplyTileEffect применяет награду клетки.
func (u *Unit) ApplyTileEffect(e TileEffect) {
	switch e.Kind {
	case EffectStat:
		u.addStat(e.Stat, e.Delta)
	case EffectAbility:
		u.Abilities = append(u.Abilities, e.ID)
	case EffectTrait:
		u.Traits = append(u.Traits, e.ID)
	}
}

func (u *Unit) addStat(field StatField, delta int) {
	switch field {
	case StatHP:
		u.MaxHP += delta
	case StatAttack:
		u.Attack += delta
	case StatDefense:
		u.Defense += delta
	case StatMovement:
		u.Movement += delta
	case StatRange:
		u.Range += delta
	}
}

// Stat читает характеристику по полю.
func (u *Unit) Stat(field StatField) int {
	switch field {
	case StatHP:
		return u.MaxHP
	case StatAttack:
		return u.Attack
	case StatDefense:
		return u.Defense
	case StatMovement:
		return u.Movement
	case StatRange:
		return u.Range
	default:
		return 0
	}
}

// Stats - сводка для экрана информации о бойце.
func (u *Unit) Stats() map[string]int {
	return map[string]int{
		"HP":  u.MaxHP,
		"ATK": u.Attack,
		"DEF": u.Defense,
		"MOV": u.Movement,
		"RNG": u.Range,
		"LVL": u.Level,
		"XP":  u.XP,
	}
}
