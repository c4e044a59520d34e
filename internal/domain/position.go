package domain

import "fmt"

// Position - клетка поля боя. Row растет сверху вниз, Col - слева направо.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Center - центральная клетка сетки эволюции 5x5. Всегда открыта.
var Center = Position{Row: 2, Col: 2}

// orthogonalSteps - порядок обхода соседей. Важен для детерминизма BFS.
var orthogonalSteps = [4]Position{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

// Manhattan возвращает манхэттенское расстояние до другой клетки.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// IsAdjacent - только ортогональные соседи, без диагоналей.
func (p Position) IsAdjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Shift возвращает новую позицию со смещением.
func (p Position) Shift(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// InBounds проверяет, что клетка лежит внутри квадратной сетки size x size.
func (p Position) InBounds(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Neighbors возвращает ортогональных соседей внутри сетки.
func (p Position) Neighbors(size int) []Position {
	out := make([]Position, 0, len(orthogonalSteps))
	for _, step := range orthogonalSteps {
		n := p.Shift(step.Row, step.Col)
		if n.InBounds(size) {
			out = append(out, n)
		}
	}
	return out
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
