package admin

import (
	"fmt"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine/handlers"
	"skirmish-server/pkg/api"
)

// HandleSetPulse выставляет запас Пульса стороне. { "side": "PLAYER", "amount": 20 }
func HandleSetPulse(ctx handlers.Context, p api.PulsePayload) (handlers.Result, error) {
	if ctx.Session == nil {
		return handlers.Result{}, handlers.ErrNoBattle
	}
	side := domain.ParseSide(p.Side)
	if side == domain.SideNone {
		return handlers.Result{Msg: "Unknown side", MsgType: "ERROR"}, nil
	}

	ctx.Session.SetPulse(side, p.Amount)
	return handlers.Result{
		Msg:     fmt.Sprintf("⚡ %s pulse set to %d via Admin Magic", side, ctx.Session.Pulse(side)),
		MsgType: "SYSTEM",
	}, nil
}
