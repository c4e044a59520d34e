package domain

import "fmt"

// EffectKind - вид награды клетки эволюции.
type EffectKind uint8

const (
	EffectStat EffectKind = iota + 1
	EffectAbility
	EffectTrait
)

func (k EffectKind) String() string {
	switch k {
	case EffectStat:
		return "stat"
	case EffectAbility:
		return "ability"
	case EffectTrait:
		return "trait"
	default:
		return "unknown"
	}
}

// TileEffect - награда за открытие клетки. Для EffectStat заполнены Stat и Delta,
// для способностей и черт - ID.
type TileEffect struct {
	Label  string     `json:"label"`
	Kind   EffectKind `json:"kind"`
	Stat   StatField  `json:"stat,omitempty"`
	Delta  int        `json:"delta,omitempty"`
	ID     string     `json:"id,omitempty"`
	Flavor string     `json:"flavor"`
}

func StatEffect(label string, stat StatField, delta int, flavor string) TileEffect {
	return TileEffect{Label: label, Kind: EffectStat, Stat: stat, Delta: delta, Flavor: flavor}
}

func AbilityEffect(label, id, flavor string) TileEffect {
	return TileEffect{Label: label, Kind: EffectAbility, ID: id, Flavor: flavor}
}

func TraitEffect(label, id, flavor string) TileEffect {
	return TileEffect{Label: label, Kind: EffectTrait, ID: id, Flavor: flavor}
}

// Validate проверяет согласованность вида и полезной нагрузки.
func (e TileEffect) Validate() error {
	switch e.Kind {
	case EffectStat:
		if !e.Stat.Valid() {
			return fmt.Errorf("effect %q: invalid stat field %d", e.Label, e.Stat)
		}
		if e.Delta == 0 {
			return fmt.Errorf("effect %q: zero stat delta", e.Label)
		}
	case EffectAbility, EffectTrait:
		if e.ID == "" {
			return fmt.Errorf("effect %q: empty %s id", e.Label, e.Kind)
		}
	default:
		return fmt.Errorf("effect %q: unknown kind %d", e.Label, e.Kind)
	}
	return nil
}

// Value - текстовое значение награды для экрана прокачки ("atk+2", "war_cry").
func (e TileEffect) Value() string {
	if e.Kind == EffectStat {
		return fmt.Sprintf("%s%+d", e.Stat, e.Delta)
	}
	return e.ID
}
