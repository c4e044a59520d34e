package agent

import (
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
)

// DefaultMaxCommands - предохранитель от зацикливания одного боя.
const DefaultMaxCommands = 2000

// Play синхронно доигрывает текущий бой сервиса: решение бота, Step, и так по кругу.
// Отложенные ходы противника применяются сразу, без реальных задержек.
func Play(svc *engine.Service, maxCommands int) domain.Outcome {
	if maxCommands <= 0 {
		maxCommands = DefaultMaxCommands
	}

	for i := 0; i < maxCommands; i++ {
		state := svc.Snapshot()
		if state.Battle == nil {
			return domain.OutcomeUndecided
		}
		if outcome := svc.Outcome(); outcome != domain.OutcomeUndecided {
			return outcome
		}

		action, pos, ok := Decide(state.Battle)
		if !ok {
			// Ход противника или пауза между раундами
			if svc.Step() == 0 {
				return svc.Outcome()
			}
			continue
		}

		svc.ProcessCommand(Command("bot", action, pos))
		svc.Step()

		if svc.Snapshot().Tick == state.Tick {
			// Команда отклонена: выходим из фазы запасным ходом
			svc.ProcessCommand(Command("bot", fallback(state.Battle.Phase), nil))
			svc.Step()
			if svc.Snapshot().Tick == state.Tick {
				return svc.Outcome()
			}
		}
	}
	return svc.Outcome()
}

func fallback(phase string) domain.ActionType {
	switch phase {
	case domain.PhaseMoveSelected.String():
		return domain.ActionStay
	case domain.PhaseActionSelected.String():
		return domain.ActionPass
	}
	return domain.ActionEndTurn
}
