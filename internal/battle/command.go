package battle

import (
	"errors"
	"time"

	"skirmish-server/internal/domain"
)

// Отказы при покупке способностей. Состояние при этом не меняется.
var (
	ErrInsufficientPulse = errors.New("not enough pulse")
	ErrAbilityPending    = errors.New("ability already pending")
	ErrAbilitiesLocked   = errors.New("abilities require the wizards tower")
)

// Command - намерение, которое принимает машина состояний.
// Pos используется только в ActionSelectTile.
type Command struct {
	Type domain.ActionType
	Pos  domain.Position
}

func SelectTile(pos domain.Position) Command {
	return Command{Type: domain.ActionSelectTile, Pos: pos}
}

func Simple(t domain.ActionType) Command {
	return Command{Type: t}
}

// EffectKind - вид побочного эффекта перехода.
type EffectKind uint8

const (
	EffectLog EffectKind = iota + 1
	EffectScheduleNewRound
	EffectScheduleEnemyStep
	EffectBattleEnded
)

func (k EffectKind) String() string {
	switch k {
	case EffectLog:
		return "LOG"
	case EffectScheduleNewRound:
		return "SCHEDULE_NEW_ROUND"
	case EffectScheduleEnemyStep:
		return "SCHEDULE_ENEMY_STEP"
	case EffectBattleEnded:
		return "BATTLE_ENDED"
	default:
		return "UNKNOWN"
	}
}

// Effect - то, что ведущий код (сервис, тест, симулятор) должен сделать после перехода.
type Effect struct {
	Kind    EffectKind
	Delay   time.Duration  // для Schedule*
	Command Command        // для Schedule*: что применить по истечении Delay
	Outcome domain.Outcome // для BattleEnded
	Entry   LogEntry       // для Log
}

// Result - итог Apply.
// Accepted=false и Err=nil: команда не подходит ни под одно правило (no-op).
// Accepted=false и Err!=nil: отказ по ресурсу.
type Result struct {
	Accepted bool
	Err      error
	Effects  []Effect
}

// Scheduled возвращает только эффекты планирования.
func (r Result) Scheduled() []Effect {
	var out []Effect
	for _, e := range r.Effects {
		if e.Kind == EffectScheduleNewRound || e.Kind == EffectScheduleEnemyStep {
			out = append(out, e)
		}
	}
	return out
}

// Logs возвращает записи лога из эффектов.
func (r Result) Logs() []LogEntry {
	var out []LogEntry
	for _, e := range r.Effects {
		if e.Kind == EffectLog {
			out = append(out, e.Entry)
		}
	}
	return out
}
