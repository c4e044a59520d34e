package actions

import (
	"fmt"

	"skirmish-server/internal/engine/handlers"
)

// HandleRestart - новый бой тем же отрядом.
func HandleRestart(ctx handlers.Context) (handlers.Result, error) {
	ctx.Lifecycle.RestartBattle()
	return handlers.EmptyResult(), nil
}

func HandleSaveArmy(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Lifecycle.SaveArmy(); err != nil {
		return handlers.Result{}, fmt.Errorf("save army: %w", err)
	}
	return handlers.Result{Msg: "Army saved.", MsgType: "SYSTEM"}, nil
}
