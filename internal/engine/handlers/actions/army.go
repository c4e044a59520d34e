package actions

import (
	"errors"
	"fmt"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine/handlers"
	"skirmish-server/pkg/api"
)

// ErrBattleInProgress - прокачка запрещена, пока идет бой.
var ErrBattleInProgress = errors.New("cannot evolve units during a battle")

func findUnit(ctx handlers.Context, id string) (*domain.Unit, error) {
	if ctx.Army == nil {
		return nil, fmt.Errorf("unit %s not found", id)
	}
	u := ctx.Army.FindUnit(domain.UnitID(id))
	if u == nil {
		return nil, fmt.Errorf("unit %s not found", id)
	}
	return u, nil
}

func HandleAddXP(ctx handlers.Context, p api.ExperiencePayload) (handlers.Result, error) {
	u, err := findUnit(ctx, p.UnitID)
	if err != nil {
		return handlers.Result{}, err
	}

	before := u.Level
	u.AddExperience(p.Amount)

	if u.Level > before {
		return handlers.Result{
			Msg:     fmt.Sprintf("%s reached level %d! (%d/%d XP)", u.Name, u.Level, u.XP, u.XPToNextLevel()),
			MsgType: "SYSTEM",
		}, nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s gains %d XP (%d/%d).", u.Name, p.Amount, u.XP, u.XPToNextLevel()),
		MsgType: "INFO",
	}, nil
}

// HandleUnlockTile - открыть клетку сетки эволюции за свободный уровень.
func HandleUnlockTile(ctx handlers.Context, p api.UnlockPayload) (handlers.Result, error) {
	if ctx.Session != nil && ctx.Session.Outcome() == domain.OutcomeUndecided {
		return handlers.Result{}, ErrBattleInProgress
	}
	u, err := findUnit(ctx, p.UnitID)
	if err != nil {
		return handlers.Result{}, err
	}

	effect, ok := domain.ConfirmUnlock(u, domain.Position{Row: p.Row, Col: p.Col})
	if !ok {
		return handlers.Result{Msg: fmt.Sprintf("%s cannot unlock that tile.", u.Name), MsgType: "ERROR"}, nil
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s unlocked %s.", u.Name, effect.Label),
		MsgType: "SYSTEM",
	}, nil
}

// HandleSetUpgrade - постройка деревни. Действует со следующего боя.
func HandleSetUpgrade(ctx handlers.Context, p api.UpgradePayload) (handlers.Result, error) {
	if ctx.Army == nil {
		return handlers.EmptyResult(), nil
	}
	ctx.Army.SetUpgrade(p.Key, p.Enabled)

	state := "disabled"
	if p.Enabled {
		state = "built"
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("Upgrade %s %s.", p.Key, state),
		MsgType: "INFO",
	}, nil
}
