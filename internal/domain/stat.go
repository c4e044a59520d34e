package domain

import (
	"fmt"
	"strings"
)

// StatField - закрытый набор числовых характеристик, которые может менять клетка эволюции.
type StatField uint8

const (
	StatUnknown StatField = iota
	StatHP
	StatAttack
	StatDefense
	StatMovement
	StatRange
)

var statToString = map[StatField]string{
	StatHP:       "hp",
	StatAttack:   "atk",
	StatDefense:  "def",
	StatMovement: "mov",
	StatRange:    "rng",
}

var stringToStat = map[string]StatField{
	"hp":   StatHP,
	"atk":  StatAttack,
	"def":  StatDefense,
	"def_": StatDefense,
	"mov":  StatMovement,
	"rng":  StatRange,
}

// ParseStatField конвертирует имя характеристики ("atk", "def_") в StatField.
func ParseStatField(s string) (StatField, error) {
	if f, ok := stringToStat[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return StatUnknown, fmt.Errorf("unknown stat %q", s)
}

func (f StatField) String() string {
	if s, ok := statToString[f]; ok {
		return s
	}
	return "unknown"
}

// Valid сообщает, входит ли поле в закрытый набор.
func (f StatField) Valid() bool {
	_, ok := statToString[f]
	return ok
}
