package battle

import (
	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/systems"
	"skirmish-server/pkg/logger"
)

// enemyStep - один тик автоматической стороны: активирует первого
// неактивированного живого врага и передает ход.
func (s *Session) enemyStep() bool {
	if s.activeSide != domain.SideEnemy || s.outcome != domain.OutcomeUndecided {
		return false
	}

	remaining := s.Remaining(domain.SideEnemy)
	if len(remaining) == 0 {
		s.alternate()
		return true
	}

	enemy := remaining[0]
	s.runEnemy(enemy)
	s.activated[domain.SideEnemy].Put(enemy.ID)
	s.alternate()
	return true
}

// runEnemy: атака соседней ближайшей цели, иначе один жадный шаг к ней.
func (s *Session) runEnemy(enemy *domain.Unit) {
	from, ok := s.positions[domain.SideEnemy][enemy]
	if !ok {
		return
	}

	target, dist, found := systems.NearestTarget(from, s.candidates(domain.SidePlayer))
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "enemy_ai",
		"unit_id":   enemy.ID,
		"unit":      enemy.Name,
		"from":      from.String(),
	})
	if !found {
		aiLogger.Debug("No target, skipping")
		return
	}

	if dist == 1 {
		aiLogger.WithField("target", target.Unit.Name).Debug("Attacking adjacent target")
		s.attack(domain.SideEnemy, enemy, target.Unit)
		return
	}

	step := systems.GreedyStep(from, target.Pos)
	if step == from || !step.InBounds(s.cfg.GridSize) {
		return
	}
	final := s.moveUnit(domain.SideEnemy, enemy, step)
	aiLogger.WithFields(logrus.Fields{
		"target": target.Unit.Name,
		"to":     final.String(),
	}).Debug("Enemy moved")
}

// candidates - живые бойцы стороны с позициями, в порядке расстановки.
func (s *Session) candidates(side domain.Side) []systems.Candidate {
	var out []systems.Candidate
	for _, u := range s.units[side] {
		if !u.IsAlive() {
			continue
		}
		if pos, ok := s.positions[side][u]; ok {
			out = append(out, systems.Candidate{Unit: u, Pos: pos})
		}
	}
	return out
}
