package domain

// TileState - состояние клетки на экране прокачки.
type TileState uint8

const (
	TileLocked TileState = iota
	TileUnlocked
	TileSelectable
)

func (s TileState) String() string {
	switch s {
	case TileUnlocked:
		return "UNLOCKED"
	case TileSelectable:
		return "SELECTABLE"
	default:
		return "LOCKED"
	}
}

// EvolutionTile - одна клетка сетки эволюции бойца.
type EvolutionTile struct {
	Pos    Position
	State  TileState
	Effect *TileEffect
}

// EvolutionGrid строит сетку 5x5 по строкам.
// Selectable - закрытая клетка с наградой рядом с открытой.
func EvolutionGrid(u *Unit) []EvolutionTile {
	catalog := CatalogFor(u.Archetype)
	out := make([]EvolutionTile, 0, EvolutionGridSize*EvolutionGridSize)
	for row := 0; row < EvolutionGridSize; row++ {
		for col := 0; col < EvolutionGridSize; col++ {
			pos := Position{Row: row, Col: col}
			tile := EvolutionTile{Pos: pos, State: TileLocked}
			if effect, ok := catalog[pos]; ok {
				e := effect
				tile.Effect = &e
			}
			switch {
			case u.IsUnlocked(pos):
				tile.State = TileUnlocked
			case tile.Effect != nil && u.CanUnlock(pos):
				tile.State = TileSelectable
			}
			out = append(out, tile)
		}
	}
	return out
}

// PreviewUnlock возвращает награду клетки, если её можно открыть.
func PreviewUnlock(u *Unit, pos Position) (TileEffect, bool) {
	effect, ok := EffectAt(u.Archetype, pos)
	if !ok || !u.CanUnlock(pos) {
		return TileEffect{}, false
	}
	return effect, true
}

// ConfirmUnlock открывает клетку и применяет награду.
// Требует свободный уровень: уровней должно быть больше, чем открытых клеток.
func ConfirmUnlock(u *Unit, pos Position) (TileEffect, bool) {
	if !u.HasUnspentLevel() {
		return TileEffect{}, false
	}
	effect, ok := PreviewUnlock(u, pos)
	if !ok {
		return TileEffect{}, false
	}
	u.UnlockTile(pos)
	u.ApplyTileEffect(effect)
	return effect, true
}
