package agent

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/systems"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// Bot - "Игрок-компьютер" (headless agent).
// Подключается к хабу как обычный клиент: получает снимки боя
// и отвечает теми же командами, что шлет браузер.
//
// Жизненный цикл:
//  1. NewBot -> регистрация в хабе, личный канал Inbox.
//  2. Run -> слушает Inbox, пока не закроется контекст или канал.
//  3. На каждый новый тик, если ход игрока, вызывается Decide и команда уходит в сервис.
type Bot struct {
	ClientID string
	Service  *engine.Service
	Inbox    chan api.ServerResponse

	lastTick int
}

func NewBot(clientID string, service *engine.Service) *Bot {
	logger.Log.WithFields(logrus.Fields{"component": "bot", "client": clientID}).Info("Creating agent")
	return &Bot{
		ClientID: clientID,
		Service:  service,
		Inbox:    service.Hub.Register(clientID),
		lastTick: -1,
	}
}

// Run запускает цикл жизни бота. Должен быть запущен в горутине.
func (b *Bot) Run(ctx context.Context) {
	defer b.Service.Hub.Unregister(b.ClientID)

	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-b.Inbox:
			if !ok {
				return
			}
			b.react(state)
		}
	}
}

func (b *Bot) react(state api.ServerResponse) {
	// Отказ или повтор того же тика: ждем, пока бой сдвинется
	if state.Type == "ERROR" || state.Tick == b.lastTick {
		return
	}
	action, pos, ok := Decide(state.Battle)
	if !ok {
		return
	}
	b.lastTick = state.Tick
	b.Service.ProcessCommand(Command(b.ClientID, action, pos))
}

// Command собирает клиентскую команду. pos нужен только для SELECT_TILE.
func Command(clientID string, action domain.ActionType, pos *api.PositionPayload) api.ClientCommand {
	cmd := api.ClientCommand{Token: clientID, Action: action.String()}
	if pos != nil {
		payload, err := json.Marshal(pos)
		if err != nil {
			logger.Log.WithField("component", "bot").WithError(err).Error("Marshal payload")
			return cmd
		}
		cmd.Payload = payload
	}
	return cmd
}

// Decide - мозг бота. По снимку боя выбирает следующую команду игрока.
// ok=false, если сейчас не ход игрока или бой окончен.
func Decide(view *api.BattleView) (domain.ActionType, *api.PositionPayload, bool) {
	if view == nil || view.Outcome != domain.OutcomeUndecided.String() {
		return domain.ActionUnknown, nil, false
	}
	if view.ActiveSide != domain.SidePlayer.String() || view.RoundPending {
		return domain.ActionUnknown, nil, false
	}

	switch view.Phase {
	case domain.PhaseIdle.String():
		return decideIdle(view)
	case domain.PhaseMoveSelected.String():
		return decideMove(view)
	case domain.PhaseActionSelected.String():
		return decideAction(view)
	}
	return domain.ActionUnknown, nil, false
}

func decideIdle(view *api.BattleView) (domain.ActionType, *api.PositionPayload, bool) {
	for _, u := range view.Units {
		if u.Side != domain.SidePlayer.String() || u.IsDead || u.Activated || u.Pos == nil {
			continue
		}
		if view.CanBuyExtraActivation && !view.ExtraActivationPending && remaining(view) > 1 {
			return domain.ActionBuyExtraActivation, nil, true
		}
		return domain.ActionSelectTile, &api.PositionPayload{Row: u.Pos.Row, Col: u.Pos.Col}, true
	}
	return domain.ActionEndTurn, nil, true
}

func decideMove(view *api.BattleView) (domain.ActionType, *api.PositionPayload, bool) {
	me := activating(view)
	if me == nil || me.Pos == nil {
		return domain.ActionCancel, nil, true
	}
	from := toPosition(*me.Pos)
	target, dist, found := systems.NearestTarget(from, candidates(view, domain.SideEnemy))
	if !found || dist <= me.Range {
		return domain.ActionStay, nil, true
	}

	best, bestDist := from, dist
	for _, t := range view.MoveTiles {
		p := toPosition(t)
		if d := p.Manhattan(target.Pos); d < bestDist {
			best, bestDist = p, d
		}
	}
	if best == from {
		return domain.ActionStay, nil, true
	}
	return domain.ActionSelectTile, &api.PositionPayload{Row: best.Row, Col: best.Col}, true
}

func decideAction(view *api.BattleView) (domain.ActionType, *api.PositionPayload, bool) {
	me := activating(view)
	if me == nil {
		return domain.ActionPass, nil, true
	}

	// Лекарь лечит самого раненого союзника, остальные бьют самого слабого врага
	want := domain.SideEnemy
	if domain.Archetype(me.Archetype).IsHealer() {
		want = domain.SidePlayer
	}

	var pick *api.PosView
	bestScore := 0
	for _, t := range view.TargetTiles {
		u := unitAt(view, t)
		if u == nil || u.Side != want.String() || u.IsDead {
			continue
		}
		score := u.HP
		if want == domain.SidePlayer {
			score = u.HP - u.MaxHP
			if score == 0 {
				continue
			}
		}
		if pick == nil || score < bestScore {
			tile := t
			pick, bestScore = &tile, score
		}
	}
	if pick == nil {
		return domain.ActionPass, nil, true
	}
	return domain.ActionSelectTile, &api.PositionPayload{Row: pick.Row, Col: pick.Col}, true
}

// --- Хелперы разбора снимка ---

func activating(view *api.BattleView) *api.UnitView {
	for i := range view.Units {
		if view.Units[i].ID == view.ActivatingID {
			return &view.Units[i]
		}
	}
	return nil
}

func unitAt(view *api.BattleView, p api.PosView) *api.UnitView {
	for i := range view.Units {
		if pos := view.Units[i].Pos; pos != nil && *pos == p {
			return &view.Units[i]
		}
	}
	return nil
}

func remaining(view *api.BattleView) int {
	n := 0
	for _, u := range view.Units {
		if u.Side == domain.SidePlayer.String() && !u.IsDead && !u.Activated && u.Pos != nil {
			n++
		}
	}
	return n
}

// candidates конвертирует DTO в доменные сущности для системы AI.
func candidates(view *api.BattleView, side domain.Side) []systems.Candidate {
	out := make([]systems.Candidate, 0, len(view.Units))
	for _, u := range view.Units {
		if u.Side != side.String() || u.IsDead || u.Pos == nil {
			continue
		}
		out = append(out, systems.Candidate{
			Unit: &domain.Unit{Name: u.Name, CurrentHP: u.HP, MaxHP: u.MaxHP},
			Pos:  toPosition(*u.Pos),
		})
	}
	return out
}

func toPosition(p api.PosView) domain.Position {
	return domain.Position{Row: p.Row, Col: p.Col}
}
