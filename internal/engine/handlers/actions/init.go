package actions

import "skirmish-server/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Welcome to the skirmish.",
		MsgType: "INFO",
	}, nil
}
