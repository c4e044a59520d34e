package domain

import "strings"

// Side - сторона конфликта.
type Side uint8

const (
	SideNone Side = iota
	SidePlayer
	SideEnemy
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "PLAYER"
	case SideEnemy:
		return "ENEMY"
	default:
		return "NONE"
	}
}

// ParseSide - обратное к String. Неизвестное значение - SideNone.
func ParseSide(s string) Side {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLAYER":
		return SidePlayer
	case "ENEMY":
		return SideEnemy
	default:
		return SideNone
	}
}

// Opponent возвращает противоположную сторону.
func (s Side) Opponent() Side {
	switch s {
	case SidePlayer:
		return SideEnemy
	case SideEnemy:
		return SidePlayer
	default:
		return SideNone
	}
}

// Phase - под-состояние активации.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseMoveSelected
	PhaseActionSelected
)

func (p Phase) String() string {
	switch p {
	case PhaseMoveSelected:
		return "MOVE"
	case PhaseActionSelected:
		return "ACTION"
	default:
		return "IDLE"
	}
}

// Outcome - наблюдаемый итог боя. Не останавливает машину состояний.
type Outcome uint8

const (
	OutcomeUndecided Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "VICTORY"
	case OutcomeDefeat:
		return "DEFEAT"
	default:
		return "UNDECIDED"
	}
}
