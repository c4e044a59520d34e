package battle

import (
	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
	"skirmish-server/pkg/logger"
)

// Apply - единственная точка изменения состояния боя.
// Команда применяется целиком, эффекты (лог, планирование, конец боя)
// возвращаются вызывающему. Неподходящая команда ничего не меняет.
func (s *Session) Apply(cmd Command) Result {
	s.pending = nil

	accepted, err := s.dispatch(cmd)
	res := Result{Accepted: accepted, Err: err, Effects: s.pending}
	s.pending = nil

	entry := logger.Log.WithFields(logrus.Fields{
		"component": "battle_session",
		"action":    cmd.Type.String(),
		"round":     s.round,
		"side":      s.activeSide.String(),
		"phase":     s.phase.String(),
		"accepted":  accepted,
	})
	if cmd.Type == domain.ActionSelectTile {
		entry = entry.WithField("pos", cmd.Pos.String())
	}
	if err != nil {
		entry.WithError(err).Debug("Command rejected")
	} else {
		entry.Debug("Command applied")
	}

	return res
}

func (s *Session) dispatch(cmd Command) (bool, error) {
	switch cmd.Type {
	case domain.ActionSelectTile:
		return s.selectTile(cmd.Pos), nil
	case domain.ActionStay:
		return s.stay(), nil
	case domain.ActionPass:
		return s.pass(), nil
	case domain.ActionCancel:
		return s.cancel(), nil
	case domain.ActionEndTurn:
		return s.endTurn(), nil
	case domain.ActionBuyExtraActivation:
		return s.buyExtraActivation()
	case domain.ActionBuyReactivate:
		return s.buyReactivate()
	case domain.ActionEnemyStep:
		return s.enemyStep(), nil
	case domain.ActionStartRound:
		return s.startRound(), nil
	default:
		return false, nil
	}
}

func (s *Session) selectTile(pos domain.Position) bool {
	if !pos.InBounds(s.cfg.GridSize) {
		return false
	}

	if s.reactivateMode {
		return s.reactivate(pos)
	}

	if s.activeSide != domain.SidePlayer {
		return false
	}

	switch s.phase {
	case domain.PhaseIdle:
		return s.beginActivation(pos)
	case domain.PhaseMoveSelected:
		if !s.moveTiles.Has(pos) {
			return false
		}
		final := s.moveUnit(domain.SidePlayer, s.activating, pos)
		s.enterAction(final)
		return true
	case domain.PhaseActionSelected:
		return s.resolveAction(pos)
	}
	return false
}

func (s *Session) beginActivation(pos domain.Position) bool {
	unit, side, ok := s.UnitAt(pos)
	if !ok {
		return false
	}

	switch side {
	case domain.SidePlayer:
		if s.activated[domain.SidePlayer].Has(unit.ID) {
			return false
		}
		s.activating = unit
		s.origin = pos
		s.phase = domain.PhaseMoveSelected
		s.inspected = &pos
		s.moveTiles = systems.MoveTiles(s.cfg.GridSize, s, pos, domain.SidePlayer, unit.Movement)
		s.targetTiles = systems.NewTileSet()
		return true
	case domain.SideEnemy:
		// Только просмотр статов врага
		if s.inspected != nil && *s.inspected == pos {
			return false
		}
		s.inspected = &pos
		return true
	}
	return false
}

// moveUnit переставляет бойца на dest и возвращает итоговую клетку.
// Клетка союзника: ищем свободную рядом, иначе остаемся на месте.
// Клетка противника непроходима.
func (s *Session) moveUnit(side domain.Side, u *domain.Unit, dest domain.Position) domain.Position {
	current := s.positions[side][u]

	occupant, occSide, occupied := s.UnitAt(dest)
	switch {
	case !occupied:
		s.positions[side][u] = dest
		s.logf(LogInfo, "%s moved to %s.", u.Name, dest)
		return dest
	case occSide == side && occupant != u:
		final, found := systems.FindEmptyTileNear(s.cfg.GridSize, s, dest, s.cfg.SearchRadius)
		if !found {
			s.logf(LogInfo, "%s cannot find space to end movement. Staying in place.", u.Name)
			return current
		}
		s.positions[side][u] = final
		s.logf(LogInfo, "%s moved through friendly unit to %s.", u.Name, final)
		return final
	default:
		return current
	}
}

func (s *Session) enterAction(pos domain.Position) {
	u := s.activating
	s.phase = domain.PhaseActionSelected
	s.inspected = &pos
	s.moveTiles = systems.NewTileSet()
	if u.IsHealer() {
		s.targetTiles = systems.HealTiles(s.cfg.GridSize, s, pos, domain.SidePlayer, u.Range)
	} else {
		s.targetTiles = systems.AttackTiles(s.cfg.GridSize, pos, u.Range)
	}
}

func (s *Session) stay() bool {
	if s.phase != domain.PhaseMoveSelected || s.activating == nil {
		return false
	}
	pos := s.positions[domain.SidePlayer][s.activating]
	s.logf(LogInfo, "%s stayed in place.", s.activating.Name)
	s.enterAction(pos)
	return true
}

func (s *Session) resolveAction(pos domain.Position) bool {
	if !s.targetTiles.Has(pos) {
		return false
	}
	target, side, ok := s.UnitAt(pos)
	if !ok {
		return false
	}

	actor := s.activating
	if actor.IsHealer() {
		// Лекарь работает только по своим
		if side != domain.SidePlayer {
			return false
		}
		s.heal(domain.SidePlayer, actor, target)
	} else {
		if side != domain.SideEnemy {
			return false
		}
		s.attack(domain.SidePlayer, actor, target)
	}

	s.completeActivation(domain.SidePlayer)
	return true
}

func (s *Session) attack(side domain.Side, attacker, target *domain.Unit) {
	out := systems.ResolveAttack(s.roller, attacker, target)

	// Пульс зачисляется до проверки смерти
	s.pulse[side] += out.AttackerPulse
	s.pulse[side.Opponent()] += out.DefenderPulse

	s.logLines(LogCombat, systems.AttackLog(attacker, target, out, side))
	if out.TargetDied {
		delete(s.positions[side.Opponent()], target)
	}
}

func (s *Session) heal(side domain.Side, healer, target *domain.Unit) {
	out := systems.ResolveHeal(s.roller, healer, target)
	s.pulse[side] += out.Pulse
	s.logLines(LogCombat, systems.HealLog(healer, target, out))
}

func (s *Session) pass() bool {
	if s.phase != domain.PhaseActionSelected || s.activating == nil {
		return false
	}
	s.logf(LogInfo, "%s passed.", s.activating.Name)
	s.completeActivation(domain.SidePlayer)
	return true
}

// cancel сбрасывает активацию. Сделанный ход откатывается.
func (s *Session) cancel() bool {
	if s.phase == domain.PhaseIdle && s.inspected == nil {
		return false
	}
	if u := s.activating; u != nil && s.positions[domain.SidePlayer][u] != s.origin {
		s.positions[domain.SidePlayer][u] = s.origin
		s.logf(LogInfo, "%s returned to %s.", u.Name, s.origin)
	}
	s.clearActivation()
	return true
}

func (s *Session) endTurn() bool {
	if s.activeSide != domain.SidePlayer {
		return false
	}
	s.clearActivation()
	s.logf(LogInfo, "Player ends the turn.")
	s.alternate()
	return true
}

func (s *Session) buyExtraActivation() (bool, error) {
	if !s.AbilitiesEnabled() {
		return false, ErrAbilitiesLocked
	}
	if s.extraActivation {
		return false, ErrAbilityPending
	}
	if s.pulse[domain.SidePlayer] < s.cfg.ExtraActivationCost {
		return false, ErrInsufficientPulse
	}
	s.pulse[domain.SidePlayer] -= s.cfg.ExtraActivationCost
	s.extraActivation = true
	s.logf(LogSystem, "You may activate an extra unit this turn!")
	return true, nil
}

func (s *Session) buyReactivate() (bool, error) {
	if !s.AbilitiesEnabled() {
		return false, ErrAbilitiesLocked
	}
	if s.reactivateMode {
		return false, ErrAbilityPending
	}
	if s.pulse[domain.SidePlayer] < s.cfg.ReactivateCost {
		return false, ErrInsufficientPulse
	}
	s.pulse[domain.SidePlayer] -= s.cfg.ReactivateCost
	s.reactivateMode = true
	s.logf(LogSystem, "Select an already activated unit to reactivate.")
	return true, nil
}

// reactivate снимает отметку активации со своего бойца. Остальные клики
// в этом режиме игнорируются, режим сохраняется.
func (s *Session) reactivate(pos domain.Position) bool {
	unit, side, ok := s.UnitAt(pos)
	if !ok || side != domain.SidePlayer || !s.activated[domain.SidePlayer].Has(unit.ID) {
		return false
	}
	s.activated[domain.SidePlayer].Remove(unit.ID)
	s.reactivateMode = false
	s.logf(LogSystem, "%s is reactivated and can act again!", unit.Name)
	return true
}
