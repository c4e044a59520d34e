package battle

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
)

// Placement - боец и его стартовая клетка.
type Placement struct {
	Unit *domain.Unit
	Pos  domain.Position
}

// Session владеет всем изменяемым состоянием одного боя.
// Создается при старте/рестарте боя и выбрасывается после него.
// Не потокобезопасна: команды применяет один владелец.
type Session struct {
	cfg      Config
	roller   systems.Roller
	upgrades map[string]bool

	units     map[domain.Side][]*domain.Unit
	positions map[domain.Side]map[*domain.Unit]domain.Position
	activated map[domain.Side]mapset.Set[domain.UnitID]

	activeSide domain.Side
	round      int
	pulse      map[domain.Side]int

	phase       domain.Phase
	activating  *domain.Unit
	origin      domain.Position // клетка, с которой начата активация
	inspected   *domain.Position
	moveTiles   systems.TileSet
	targetTiles systems.TileSet

	extraActivation bool
	reactivateMode  bool

	outcome      domain.Outcome
	roundPending bool

	log    []LogEntry
	logSeq int

	// эффекты текущего перехода
	pending []Effect
}

// Option настраивает сессию.
type Option func(*Session)

// WithRoller подменяет кубики (тесты, проверка реплеев).
func WithRoller(r systems.Roller) Option {
	return func(s *Session) { s.roller = r }
}

// WithUpgrades передает флаги построек армии.
func WithUpgrades(upgrades map[string]bool) Option {
	return func(s *Session) {
		for k, v := range upgrades {
			s.upgrades[k] = v
		}
	}
}

// New создает бой из готовой расстановки. HP всех бойцов восстанавливается.
func New(cfg Config, players, enemies []Placement, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg.withDefaults(),
		upgrades: make(map[string]bool),
		units: map[domain.Side][]*domain.Unit{
			domain.SidePlayer: nil,
			domain.SideEnemy:  nil,
		},
		positions: map[domain.Side]map[*domain.Unit]domain.Position{
			domain.SidePlayer: make(map[*domain.Unit]domain.Position),
			domain.SideEnemy:  make(map[*domain.Unit]domain.Position),
		},
		activated: map[domain.Side]mapset.Set[domain.UnitID]{
			domain.SidePlayer: mapset.New[domain.UnitID](),
			domain.SideEnemy:  mapset.New[domain.UnitID](),
		},
		activeSide:  domain.SidePlayer,
		round:       1,
		pulse:       map[domain.Side]int{domain.SidePlayer: 0, domain.SideEnemy: 0},
		phase:       domain.PhaseIdle,
		moveTiles:   systems.NewTileSet(),
		targetTiles: systems.NewTileSet(),
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.roller == nil {
		s.roller = systems.NewRoller(rand.New(rand.NewSource(1)))
	}

	s.place(domain.SidePlayer, players)
	s.place(domain.SideEnemy, enemies)
	return s
}

func (s *Session) place(side domain.Side, placements []Placement) {
	for _, p := range placements {
		if p.Unit == nil || !p.Pos.InBounds(s.cfg.GridSize) {
			continue
		}
		if _, _, taken := s.UnitAt(p.Pos); taken {
			continue
		}
		p.Unit.ResetForBattle()
		s.units[side] = append(s.units[side], p.Unit)
		s.positions[side][p.Unit] = p.Pos
	}
}

// UnitAt - живой боец на клетке и его сторона.
func (s *Session) UnitAt(pos domain.Position) (*domain.Unit, domain.Side, bool) {
	for _, side := range []domain.Side{domain.SidePlayer, domain.SideEnemy} {
		for _, u := range s.units[side] {
			if p, ok := s.positions[side][u]; ok && p == pos && u.IsAlive() {
				return u, side, true
			}
		}
	}
	return nil, domain.SideNone, false
}

// --- Чтение состояния (для слоя представления) ---

func (s *Session) Config() Config { return s.cfg }
func (s *Session) GridSize() int { return s.cfg.GridSize }
func (s *Session) Round() int { return s.round }
func (s *Session) ActiveSide() domain.Side { return s.activeSide }
func (s *Session) Phase() domain.Phase { return s.phase }
func (s *Session) Outcome() domain.Outcome { return s.outcome }
func (s *Session) Pulse(side domain.Side) int { return s.pulse[side] }
func (s *Session) ExtraActivationPending() bool { return s.extraActivation }
func (s *Session) ReactivateMode() bool { return s.reactivateMode }
func (s *Session) RoundPending() bool { return s.roundPending }
func (s *Session) Activating() *domain.Unit { return s.activating }

// Units - бойцы стороны в порядке расстановки (включая павших).
func (s *Session) Units(side domain.Side) []*domain.Unit {
	return append([]*domain.Unit(nil), s.units[side]...)
}

// PositionOf - клетка бойца. Павшие бойцы с поля убираются.
func (s *Session) PositionOf(u *domain.Unit) (domain.Position, bool) {
	for _, side := range []domain.Side{domain.SidePlayer, domain.SideEnemy} {
		if p, ok := s.positions[side][u]; ok {
			return p, true
		}
	}
	return domain.Position{}, false
}

// SideOf - сторона бойца.
func (s *Session) SideOf(u *domain.Unit) domain.Side {
	for _, side := range []domain.Side{domain.SidePlayer, domain.SideEnemy} {
		for _, member := range s.units[side] {
			if member == u {
				return side
			}
		}
	}
	return domain.SideNone
}

func (s *Session) IsActivated(u *domain.Unit) bool {
	side := s.SideOf(u)
	if side == domain.SideNone {
		return false
	}
	return s.activated[side].Has(u.ID)
}

// Inspected - клетка, выбранная для просмотра (свой боец в активации или враг).
func (s *Session) Inspected() (domain.Position, bool) {
	if s.inspected == nil {
		return domain.Position{}, false
	}
	return *s.inspected, true
}

// MoveTiles - подсветка фазы движения, по строкам.
func (s *Session) MoveTiles() []domain.Position {
	return systems.SortedTiles(s.moveTiles)
}

// TargetTiles - подсветка фазы действия, по строкам.
func (s *Session) TargetTiles() []domain.Position {
	return systems.SortedTiles(s.targetTiles)
}

func (s *Session) IsMoveTile(p domain.Position) bool { return s.moveTiles.Has(p) }
func (s *Session) IsTargetTile(p domain.Position) bool { return s.targetTiles.Has(p) }

// Log - весь боевой лог в хронологическом порядке.
func (s *Session) Log() []LogEntry {
	return append([]LogEntry(nil), s.log...)
}

// AbilitiesEnabled - способности за Пульс доступны.
func (s *Session) AbilitiesEnabled() bool {
	return s.cfg.AbilitiesUnlocked || s.upgrades[domain.UpgradeWizardsTower]
}

// CanBuyExtraActivation - кнопка "Activate Another Unit" активна.
func (s *Session) CanBuyExtraActivation() bool {
	return s.AbilitiesEnabled() && !s.extraActivation && s.pulse[domain.SidePlayer] >= s.cfg.ExtraActivationCost
}

// CanBuyReactivate - кнопка "Reactivate Unit" активна.
func (s *Session) CanBuyReactivate() bool {
	return s.AbilitiesEnabled() && !s.reactivateMode && s.pulse[domain.SidePlayer] >= s.cfg.ReactivateCost
}

// SetPulse выставляет пул стороны. Нужен сценариям и читам отладки.
func (s *Session) SetPulse(side domain.Side, amount int) {
	if amount < 0 {
		amount = 0
	}
	s.pulse[side] = amount
}

// Remaining - живые бойцы стороны, еще не активированные в этом раунде.
func (s *Session) Remaining(side domain.Side) []*domain.Unit {
	var out []*domain.Unit
	for _, u := range s.units[side] {
		if u.IsAlive() && !s.activated[side].Has(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

func (s *Session) alive(side domain.Side) bool {
	for _, u := range s.units[side] {
		if u.IsAlive() {
			return true
		}
	}
	return false
}

func (s *Session) emit(e Effect) {
	s.pending = append(s.pending, e)
}

func (s *Session) clearActivation() {
	s.phase = domain.PhaseIdle
	s.activating = nil
	s.inspected = nil
	s.moveTiles = systems.NewTileSet()
	s.targetTiles = systems.NewTileSet()
}
