package domain

// Значения по умолчанию при восстановлении старых сохранений.
const (
	snapshotDefaultLevel    = 1
	snapshotDefaultHP       = 10
	snapshotDefaultAttack   = 3
	snapshotDefaultDefense  = 2
	snapshotDefaultMovement = 3
	snapshotDefaultRange    = 1
)

// TilePair - клетка в формате файла сохранения: [row, col].
type TilePair [2]int

func (t TilePair) Position() Position {
	return Position{Row: t[0], Col: t[1]}
}

func pairOf(p Position) TilePair {
	return TilePair{p.Row, p.Col}
}

// UnitSnapshot - сериализуемый слепок бойца. Указатели и nil-слайсы
// отличают отсутствующее поле от нулевого значения.
type UnitSnapshot struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name"`
	UnitType          string     `json:"unit_type"`
	Level             *int       `json:"level,omitempty"`
	XP                *int       `json:"xp,omitempty"`
	HP                *int       `json:"hp,omitempty"`
	Attack            *int       `json:"atk,omitempty"`
	Defense           *int       `json:"def_,omitempty"`
	Movement          *int       `json:"mov,omitempty"`
	Range             *int       `json:"rng,omitempty"`
	CurrentHP         *int       `json:"current_hp,omitempty"`
	DieFaces          []Face     `json:"die_faces"`
	EvolutionPosition *TilePair  `json:"evolution_position,omitempty"`
	UnlockedTiles     []TilePair `json:"unlocked_tiles"`
	AvailableTiles    []TilePair `json:"available_tiles"`
	Abilities         []string   `json:"abilities"`
	Traits            []string   `json:"traits"`
}

// Snapshot снимает полный слепок бойца, включая текущее HP боя.
func (u *Unit) Snapshot() UnitSnapshot {
	pos := pairOf(u.EvolutionPosition)
	return UnitSnapshot{
		ID:                u.ID.String(),
		Name:              u.Name,
		UnitType:          u.Archetype.String(),
		Level:             intPtr(u.Level),
		XP:                intPtr(u.XP),
		HP:                intPtr(u.MaxHP),
		Attack:            intPtr(u.Attack),
		Defense:           intPtr(u.Defense),
		Movement:          intPtr(u.Movement),
		Range:             intPtr(u.Range),
		CurrentHP:         intPtr(u.CurrentHP),
		DieFaces:          append([]Face{}, u.DieFaces...),
		EvolutionPosition: &pos,
		UnlockedTiles:     pairsOf(u.UnlockedTiles),
		AvailableTiles:    pairsOf(u.AvailableTiles),
		Abilities:         append([]string{}, u.Abilities...),
		Traits:            append([]string{}, u.Traits...),
	}
}

// FromSnapshot восстанавливает бойца. Отсутствующие поля получают значения по умолчанию:
// hp 10, atk 3, def 2, mov 3, rng 1, current_hp = hp, сбалансированный кубик,
// курсор и единственная открытая клетка - центр.
func FromSnapshot(s UnitSnapshot) *Unit {
	u := &Unit{
		ID:        UnitID(s.ID),
		Name:      s.Name,
		Archetype: Archetype(s.UnitType),
		Level:     intOr(s.Level, snapshotDefaultLevel),
		XP:        intOr(s.XP, 0),
		MaxHP:     intOr(s.HP, snapshotDefaultHP),
		Attack:    intOr(s.Attack, snapshotDefaultAttack),
		Defense:   intOr(s.Defense, snapshotDefaultDefense),
		Movement:  intOr(s.Movement, snapshotDefaultMovement),
		Range:     intOr(s.Range, snapshotDefaultRange),
	}
	if u.ID == "" {
		u.ID = NewUnitID()
	}
	u.CurrentHP = intOr(s.CurrentHP, u.MaxHP)

	u.DieFaces = BalancedDie()
	if s.DieFaces != nil {
		u.DieFaces = append([]Face{}, s.DieFaces...)
	}

	u.EvolutionPosition = Center
	if s.EvolutionPosition != nil {
		u.EvolutionPosition = s.EvolutionPosition.Position()
	}

	u.UnlockedTiles = []Position{Center}
	if s.UnlockedTiles != nil {
		u.UnlockedTiles = uniquePositions(s.UnlockedTiles)
	}
	u.AvailableTiles = uniquePositions(s.AvailableTiles)

	u.Abilities = append([]string{}, s.Abilities...)
	u.Traits = append([]string{}, s.Traits...)
	return u
}

func pairsOf(ps []Position) []TilePair {
	out := make([]TilePair, 0, len(ps))
	for _, p := range ps {
		out = append(out, pairOf(p))
	}
	return out
}

// uniquePositions - в сохранении это множество, порядок первого появления сохраняется.
func uniquePositions(pairs []TilePair) []Position {
	out := make([]Position, 0, len(pairs))
	seen := make(map[Position]bool, len(pairs))
	for _, pair := range pairs {
		p := pair.Position()
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func intPtr(v int) *int {
	return &v
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
