package systems

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"skirmish-server/internal/domain"
)

// DefaultSearchRadius - радиус поиска свободной клетки при проходе сквозь союзника.
const DefaultSearchRadius = 3

// Occupancy отвечает, кто стоит на клетке. Возвращает только живых бойцов.
type Occupancy interface {
	UnitAt(pos domain.Position) (*domain.Unit, domain.Side, bool)
}

// TileSet - множество клеток поля.
type TileSet = mapset.Set[domain.Position]

// NewTileSet создает пустое множество клеток.
func NewTileSet() TileSet {
	return mapset.New[domain.Position]()
}

// MoveTiles - BFS на range шагов от origin.
// Клетка с живым противником не раскрывается и в результат не попадает.
// Союзники проходимы и могут быть в результате. Сам origin исключен.
func MoveTiles(size int, occ Occupancy, origin domain.Position, side domain.Side, moveRange int) TileSet {
	reachable := NewTileSet()
	visited := NewTileSet()
	visited.Put(origin)

	type node struct {
		pos  domain.Position
		dist int
	}
	queue := []node{{pos: origin, dist: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.dist >= moveRange {
			continue
		}

		for _, n := range current.pos.Neighbors(size) {
			if visited.Has(n) {
				continue
			}
			visited.Put(n)

			if _, s, ok := occ.UnitAt(n); ok && s != side {
				continue // Противник блокирует
			}
			reachable.Put(n)
			queue = append(queue, node{pos: n, dist: current.dist + 1})
		}
	}

	return reachable
}

// AttackTiles - ромб клеток на расстоянии 1..r внутри поля.
func AttackTiles(size int, origin domain.Position, r int) TileSet {
	tiles := NewTileSet()
	for dr := -r; dr <= r; dr++ {
		for dc := -r; dc <= r; dc++ {
			d := abs(dr) + abs(dc)
			if d == 0 || d > r {
				continue
			}
			p := origin.Shift(dr, dc)
			if p.InBounds(size) {
				tiles.Put(p)
			}
		}
	}
	return tiles
}

// HealTiles - AttackTiles, на которых стоит живой союзник.
func HealTiles(size int, occ Occupancy, origin domain.Position, side domain.Side, r int) TileSet {
	tiles := NewTileSet()
	AttackTiles(size, origin, r).Each(func(p domain.Position) {
		if _, s, ok := occ.UnitAt(p); ok && s == side {
			tiles.Put(p)
		}
	})
	return tiles
}

// FindEmptyTileNear возвращает target, если клетка пуста. Иначе обходит кольца
// расстояния 1..maxRadius (dr по возрастанию, затем dc) и берет первую пустую клетку.
func FindEmptyTileNear(size int, occ Occupancy, target domain.Position, maxRadius int) (domain.Position, bool) {
	if _, _, ok := occ.UnitAt(target); !ok {
		return target, true
	}
	for d := 1; d <= maxRadius; d++ {
		for dr := -d; dr <= d; dr++ {
			for dc := -d; dc <= d; dc++ {
				if abs(dr)+abs(dc) != d {
					continue
				}
				p := target.Shift(dr, dc)
				if !p.InBounds(size) {
					continue
				}
				if _, _, ok := occ.UnitAt(p); !ok {
					return p, true
				}
			}
		}
	}
	return domain.Position{}, false
}

// SortedTiles - детерминированный порядок (по строкам) для логов и DTO.
func SortedTiles(set TileSet) []domain.Position {
	out := make([]domain.Position, 0, set.Size())
	set.Each(func(p domain.Position) {
		out = append(out, p)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
