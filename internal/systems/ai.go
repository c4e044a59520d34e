package systems

import (
	"math"

	"skirmish-server/internal/domain"
)

// Candidate - живой боец противника вместе с позицией.
type Candidate struct {
	Unit *domain.Unit
	Pos  domain.Position
}

// NearestTarget ищет ближайшую цель по манхэттенскому расстоянию.
// При равенстве побеждает первая в списке.
func NearestTarget(from domain.Position, candidates []Candidate) (Candidate, int, bool) {
	best := Candidate{}
	bestDist := math.MaxInt
	found := false
	for _, c := range candidates {
		if c.Unit == nil || !c.Unit.IsAlive() {
			continue
		}
		d := from.Manhattan(c.Pos)
		if d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, bestDist, found
}

// GreedyStep - один ортогональный шаг к цели. Сначала сокращается большая из осей;
// при равенстве - столбцы.
func GreedyStep(from, to domain.Position) domain.Position {
	dRow := to.Row - from.Row
	dCol := to.Col - from.Col

	if abs(dRow) > abs(dCol) {
		return from.Shift(sign(dRow), 0)
	}
	if dCol == 0 {
		return from
	}
	return from.Shift(0, sign(dCol))
}

// Внутренние утилиты (приватные для пакета systems)

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
