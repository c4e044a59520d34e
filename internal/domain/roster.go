package domain

// DefaultMaxParty - сколько бойцов можно взять в бой.
const DefaultMaxParty = 4

// UpgradeWizardsTower открывает способности за Пульс в бою.
const UpgradeWizardsTower = "wizards_tower"

// Army - ростер игрока плюс флаги построек деревни.
type Army struct {
	Units    []*Unit
	Upgrades map[string]bool
}

// NewArmy создает армию с непустой картой улучшений.
func NewArmy(units []*Unit, upgrades map[string]bool) *Army {
	if upgrades == nil {
		upgrades = make(map[string]bool)
	}
	return &Army{Units: units, Upgrades: upgrades}
}

// Upgrade - флаг постройки. Неизвестный ключ - false.
func (a *Army) Upgrade(key string) bool {
	return a.Upgrades[key]
}

func (a *Army) SetUpgrade(key string, enabled bool) {
	if a.Upgrades == nil {
		a.Upgrades = make(map[string]bool)
	}
	a.Upgrades[key] = enabled
}

// FindUnit ищет бойца ростера по ID.
func (a *Army) FindUnit(id UnitID) *Unit {
	for _, u := range a.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// DefaultRoster - стартовый ростер, когда сохранения нет.
func DefaultRoster() []*Unit {
	warrior := NewUnit("Warrior 1", ArchetypeWarrior)
	runeguard := NewUnit("Runeguard 1", ArchetypeRuneguard)
	archer := NewUnit("Arcane Archer 1", ArchetypeArcaneArcher)
	cleric := NewUnit("Cleric 1", ArchetypeCleric)

	runeguard.AddExperience(180) // 2 уровень, 80 xp
	warrior.AddExperience(250)   // 3 уровень, 50 xp

	return []*Unit{warrior, runeguard, archer, cleric}
}

// Party - отряд, выбранный для боя. Упорядочен, без дублей, ограничен по размеру.
type Party struct {
	MaxSize int
	units   []*Unit
}

func NewParty(maxSize int) *Party {
	if maxSize <= 0 {
		maxSize = DefaultMaxParty
	}
	return &Party{MaxSize: maxSize}
}

// Add добавляет бойца, если есть место и его еще нет в отряде.
func (p *Party) Add(u *Unit) bool {
	if u == nil || !p.CanAdd() || p.Contains(u) {
		return false
	}
	p.units = append(p.units, u)
	return true
}

func (p *Party) Remove(u *Unit) bool {
	for i, member := range p.units {
		if member == u {
			p.units = append(p.units[:i], p.units[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Party) Clear() {
	p.units = nil
}

func (p *Party) Size() int {
	return len(p.units)
}

func (p *Party) Contains(u *Unit) bool {
	for _, member := range p.units {
		if member == u {
			return true
		}
	}
	return false
}

// CanAdd - в отряде есть свободное место.
func (p *Party) CanAdd() bool {
	return len(p.units) < p.MaxSize
}

// Units возвращает копию списка бойцов в порядке добавления.
func (p *Party) Units() []*Unit {
	return append([]*Unit(nil), p.units...)
}
