package battle

import (
	"github.com/zyedidia/generic/mapset"

	"skirmish-server/internal/domain"
)

// completeActivation отмечает активирующегося бойца и передает ход.
// Купленная доп. активация один раз оставляет ход у игрока.
func (s *Session) completeActivation(side domain.Side) {
	if s.activating != nil {
		s.activated[side].Put(s.activating.ID)
	}
	s.clearActivation()

	if side == domain.SidePlayer && s.extraActivation {
		s.extraActivation = false
		if len(s.Remaining(domain.SidePlayer)) > 0 {
			s.logf(LogSystem, "You may activate another unit this turn!")
			s.updateOutcome()
			return
		}
	}

	s.alternate()
}

// alternate - передача хода после каждой активации и после END_TURN.
// Ход переходит к другой стороне, если у нее есть неактивированные живые бойцы.
// Иначе текущая сторона продолжает. Если обе исчерпаны, планируется новый раунд.
func (s *Session) alternate() {
	s.updateOutcome()

	playerLeft := len(s.Remaining(domain.SidePlayer)) > 0
	enemyLeft := len(s.Remaining(domain.SideEnemy)) > 0

	if !playerLeft && !enemyLeft {
		if s.roundPending {
			return
		}
		s.roundPending = true
		s.logf(LogSystem, "Both sides finished. New round will begin.")
		s.emit(Effect{
			Kind:    EffectScheduleNewRound,
			Delay:   s.cfg.RoundDelay,
			Command: Simple(domain.ActionStartRound),
		})
		return
	}

	if s.activeSide == domain.SidePlayer {
		if enemyLeft {
			s.activeSide = domain.SideEnemy
			s.logf(LogInfo, "Enemy's turn.")
			s.scheduleEnemyStep()
		}
		return
	}

	if playerLeft {
		s.activeSide = domain.SidePlayer
		s.logf(LogInfo, "Your turn.")
		return
	}
	s.scheduleEnemyStep()
}

func (s *Session) scheduleEnemyStep() {
	// После конца боя противник больше не ходит
	if s.outcome != domain.OutcomeUndecided {
		return
	}
	s.emit(Effect{
		Kind:    EffectScheduleEnemyStep,
		Delay:   s.cfg.EnemyDelay,
		Command: Simple(domain.ActionEnemyStep),
	})
}

// updateOutcome фиксирует исход один раз. Бой при этом не останавливается.
func (s *Session) updateOutcome() {
	if s.outcome != domain.OutcomeUndecided {
		return
	}

	switch {
	case !s.alive(domain.SideEnemy):
		s.outcome = domain.OutcomeVictory
		s.logf(LogSystem, "Victory! All enemies defeated!")
	case !s.alive(domain.SidePlayer):
		s.outcome = domain.OutcomeDefeat
		s.logf(LogSystem, "Defeat! All your units have fallen!")
	default:
		return
	}

	s.emit(Effect{Kind: EffectBattleEnded, Outcome: s.outcome})
}

func (s *Session) startRound() bool {
	if !s.roundPending {
		return false
	}
	s.roundPending = false
	s.round++
	s.activated[domain.SidePlayer] = mapset.New[domain.UnitID]()
	s.activated[domain.SideEnemy] = mapset.New[domain.UnitID]()
	s.activeSide = domain.SidePlayer
	s.clearActivation()
	s.logf(LogSystem, "Round %d begins!", s.round)
	return true
}
