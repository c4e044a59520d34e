package engine

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// Playback воспроизводит записанный бой на свежей сессии.
// Команды планировщика записаны наравне с командами игрока, поэтому таймеры не нужны.
func Playback(rs *domain.ReplaySession, cfg battle.Config) (*battle.Session, error) {
	if rs == nil {
		return nil, fmt.Errorf("playback: nil replay")
	}
	if rs.GridSize > 0 {
		cfg.GridSize = rs.GridSize
	}

	party := unitsFromSnapshots(rs.Party)
	lineup := unitsFromSnapshots(rs.Enemies)
	sess := newSession(cfg, rs.Seed, party, lineup, rs.Upgrades)

	for i, act := range rs.Actions {
		if err := replayAction(sess, act); err != nil {
			return sess, fmt.Errorf("playback action %d (%s): %w", i, act.Action, err)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      rs.Seed,
		"actions":   len(rs.Actions),
		"outcome":   sess.Outcome().String(),
	}).Info("Replay finished")
	return sess, nil
}

func replayAction(sess *battle.Session, act domain.ReplayAction) error {
	switch {
	case act.Action == domain.ActionSelectTile:
		var p api.PositionPayload
		if err := json.Unmarshal(act.Payload, &p); err != nil {
			return fmt.Errorf("decode position: %w", err)
		}
		sess.Apply(battle.SelectTile(domain.Position{Row: p.Row, Col: p.Col}))

	case act.Action == domain.ActionAdminSetPulse:
		var p api.PulsePayload
		if err := json.Unmarshal(act.Payload, &p); err != nil {
			return fmt.Errorf("decode pulse: %w", err)
		}
		sess.SetPulse(domain.ParseSide(p.Side), p.Amount)

	case act.Action.IsBattle():
		sess.Apply(battle.Simple(act.Action))

	default:
		return fmt.Errorf("unexpected action")
	}
	return nil
}
