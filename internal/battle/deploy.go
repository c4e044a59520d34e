package battle

import (
	"fmt"
	"math/rand"

	"skirmish-server/internal/domain"
)

// maxEnemies - потолок размера вражеского отряда.
const maxEnemies = 3

var enemyArchetypes = []domain.Archetype{
	domain.ArchetypeWarrior,
	domain.ArchetypeRuneguard,
	domain.ArchetypeArcaneArcher,
}

// Deploy расставляет отряд игрока и генерирует противника.
// Игрок стоит в двух нижних рядах, враги - в верхнем ряду начиная со второй клетки.
// Пустой отряд заменяется двумя ополченцами.
func Deploy(cfg Config, party []*domain.Unit, rng *rand.Rand, opts ...Option) *Session {
	return DeployVersus(cfg, party, nil, rng, opts...)
}

// DeployVersus - то же, но с заданным составом противника (сценарии, реплеи).
// Пустой lineup - обычная генерация.
func DeployVersus(cfg Config, party, lineup []*domain.Unit, rng *rand.Rand, opts ...Option) *Session {
	cfg = cfg.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	players := deployPlayers(cfg.GridSize, party, rng)
	var enemies []Placement
	if len(lineup) > 0 {
		enemies = placeLineup(cfg.GridSize, lineup)
	} else {
		enemies = deployEnemies(cfg.GridSize, len(players))
	}

	return New(cfg, players, enemies, opts...)
}

func playerSlots(size int) []domain.Position {
	back, front := size-1, size-2
	return []domain.Position{
		{Row: back, Col: 1},
		{Row: back, Col: 2},
		{Row: back, Col: 3},
		{Row: front, Col: 2},
	}
}

func deployPlayers(size int, party []*domain.Unit, rng *rand.Rand) []Placement {
	if len(party) == 0 {
		back, front := size-1, size-2
		return []Placement{
			{Unit: domain.NewUnit("Militia 1", domain.ArchetypeMilitia), Pos: domain.Position{Row: back, Col: 2}},
			{Unit: domain.NewUnit("Militia 2", domain.ArchetypeMilitia), Pos: domain.Position{Row: front, Col: 2}},
		}
	}

	taken := make(map[domain.Position]bool)
	var placements []Placement

	slots := playerSlots(size)
	var overflow []*domain.Unit
	for i, u := range party {
		if i < len(slots) && slots[i].InBounds(size) {
			placements = append(placements, Placement{Unit: u, Pos: slots[i]})
			taken[slots[i]] = true
			continue
		}
		overflow = append(overflow, u)
	}

	// Лишние бойцы - на случайные свободные клетки двух нижних рядов
	for _, u := range overflow {
		var free []domain.Position
		for row := size - 2; row < size; row++ {
			for col := 0; col < size; col++ {
				p := domain.Position{Row: row, Col: col}
				if p.InBounds(size) && !taken[p] {
					free = append(free, p)
				}
			}
		}
		if len(free) == 0 {
			break
		}
		p := free[rng.Intn(len(free))]
		taken[p] = true
		placements = append(placements, Placement{Unit: u, Pos: p})
	}

	return placements
}

func deployEnemies(size, playerCount int) []Placement {
	count := playerCount + 1
	if count > maxEnemies {
		count = maxEnemies
	}

	placements := make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		archetype := enemyArchetypes[i%len(enemyArchetypes)]
		pos := domain.Position{Row: 0, Col: i + 1}
		if !pos.InBounds(size) {
			break
		}
		unit := domain.NewUnit(fmt.Sprintf("Enemy %s %d", archetype, i+1), archetype)
		placements = append(placements, Placement{Unit: unit, Pos: pos})
	}
	return placements
}

// placeLineup ставит заданных врагов в верхний ряд слева направо, начиная со второй клетки.
func placeLineup(size int, lineup []*domain.Unit) []Placement {
	placements := make([]Placement, 0, len(lineup))
	for i, u := range lineup {
		pos := domain.Position{Row: 0, Col: (i + 1) % size}
		if i+1 >= size {
			// верхний ряд кончился, переходим на второй
			pos = domain.Position{Row: 1, Col: (i + 1) % size}
		}
		if !pos.InBounds(size) {
			break
		}
		placements = append(placements, Placement{Unit: u, Pos: pos})
	}
	return placements
}
