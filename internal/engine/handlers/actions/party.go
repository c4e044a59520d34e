package actions

import (
	"fmt"

	"skirmish-server/internal/engine/handlers"
	"skirmish-server/pkg/api"
)

func HandlePartyAdd(ctx handlers.Context, p api.UnitPayload) (handlers.Result, error) {
	u, err := findUnit(ctx, p.UnitID)
	if err != nil {
		return handlers.Result{}, err
	}
	if !ctx.Party.Add(u) {
		return handlers.Result{
			Msg:     fmt.Sprintf("Cannot add %s: party is full or unit already selected.", u.Name),
			MsgType: "ERROR",
		}, nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s joins the party (%d/%d).", u.Name, ctx.Party.Size(), ctx.Party.MaxSize),
		MsgType: "INFO",
	}, nil
}

func HandlePartyRemove(ctx handlers.Context, p api.UnitPayload) (handlers.Result, error) {
	u, err := findUnit(ctx, p.UnitID)
	if err != nil {
		return handlers.Result{}, err
	}
	if !ctx.Party.Remove(u) {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s leaves the party.", u.Name),
		MsgType: "INFO",
	}, nil
}

func HandlePartyClear(ctx handlers.Context) (handlers.Result, error) {
	ctx.Party.Clear()
	return handlers.Result{Msg: "Party cleared.", MsgType: "INFO"}, nil
}
