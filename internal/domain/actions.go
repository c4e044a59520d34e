package domain

import "strings"

// ActionType - внутренний числовой идентификатор команды клиента.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit

	// Команды боя
	ActionSelectTile
	ActionStay
	ActionPass
	ActionCancel
	ActionEndTurn
	ActionBuyExtraActivation
	ActionBuyReactivate

	// Планировщик (клиент их не шлет)
	ActionEnemyStep
	ActionStartRound

	// Вне боя: армия, отряд, прокачка, деревня
	ActionRestart
	ActionSaveArmy
	ActionAddXP
	ActionUnlockTile
	ActionPartyAdd
	ActionPartyRemove
	ActionPartyClear
	ActionSetUpgrade

	// Отладка (только при включенных админ-командах)
	ActionAdminSetPulse
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":                 ActionInit,
	"SELECT_TILE":          ActionSelectTile,
	"STAY":                 ActionStay,
	"PASS":                 ActionPass,
	"CANCEL":               ActionCancel,
	"END_TURN":             ActionEndTurn,
	"BUY_EXTRA_ACTIVATION": ActionBuyExtraActivation,
	"BUY_REACTIVATE":       ActionBuyReactivate,
	"ENEMY_STEP":           ActionEnemyStep,
	"START_ROUND":          ActionStartRound,
	"RESTART":              ActionRestart,
	"SAVE_ARMY":            ActionSaveArmy,
	"ADD_XP":               ActionAddXP,
	"UNLOCK_TILE":          ActionUnlockTile,
	"PARTY_ADD":            ActionPartyAdd,
	"PARTY_REMOVE":         ActionPartyRemove,
	"PARTY_CLEAR":          ActionPartyClear,
	"SET_UPGRADE":          ActionSetUpgrade,
	"ADMIN_SET_PULSE":      ActionAdminSetPulse,
}

// Маппинг для логов Domain -> String
var actionCmdToString = func() map[ActionType]string {
	m := make(map[ActionType]string, len(actionStringToCmd))
	for s, a := range actionStringToCmd {
		m[a] = s
	}
	return m
}()

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsScheduled - команды, которые генерирует только планировщик.
func (a ActionType) IsScheduled() bool {
	return a == ActionEnemyStep || a == ActionStartRound
}

// IsBattle - команды машины состояний боя.
func (a ActionType) IsBattle() bool {
	return a >= ActionSelectTile && a <= ActionStartRound
}
