package actions

import (
	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine/handlers"
	"skirmish-server/pkg/api"
)

// HandleSelectTile - клик по клетке. Смысл зависит от фазы боя.
func HandleSelectTile(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	return handlers.ApplyBattle(ctx, battle.SelectTile(domain.Position{Row: p.Row, Col: p.Col}))
}

// BattleCommand - хендлер для команд боя без данных (STAY, PASS, CANCEL...).
func BattleCommand(action domain.ActionType) handlers.EmptyHandlerFunc {
	return func(ctx handlers.Context) (handlers.Result, error) {
		return handlers.ApplyBattle(ctx, battle.Simple(action))
	}
}
