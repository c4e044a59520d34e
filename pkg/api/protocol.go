package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный снимок боя и армии. Отправляется после каждой примененной команды
// и после каждого сработавшего отложенного шага (ход противника, новый раунд).
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick порядковый номер примененной команды с начала боя.
	Tick int `json:"tick"`

	// Battle текущий бой. Отсутствует, пока бой не начат.
	Battle *BattleView `json:"battle,omitempty"`

	// Army ростер, отряд и постройки деревни.
	Army *ArmyView `json:"army,omitempty"`

	// Logs срез новых сообщений с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error текст отказа последней команды клиента (например, не хватает Пульса).
	Error string `json:"error,omitempty"`
}

// GridMeta размеры поля боя.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// PosView клетка поля.
type PosView struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// BattleView состояние машины активаций, всё, что нужно для отрисовки поля и кнопок.
type BattleView struct {
	Grid       GridMeta `json:"grid"`
	Round      int      `json:"round"`
	ActiveSide string   `json:"activeSide"` // PLAYER, ENEMY
	Phase      string   `json:"phase"`      // IDLE, MOVE, ACTION
	Outcome    string   `json:"outcome"`    // UNDECIDED, VICTORY, DEFEAT

	PlayerPulse int `json:"playerPulse"`
	EnemyPulse  int `json:"enemyPulse"`

	// Состояние способностей за Пульс
	AbilitiesEnabled       bool `json:"abilitiesEnabled"`
	ExtraActivationPending bool `json:"extraActivationPending"`
	ReactivateMode         bool `json:"reactivateMode"`
	CanBuyExtraActivation  bool `json:"canBuyExtraActivation"`
	CanBuyReactivate       bool `json:"canBuyReactivate"`
	RoundPending           bool `json:"roundPending"`

	// ActivatingID боец, который сейчас проходит активацию.
	ActivatingID string   `json:"activatingId,omitempty"`
	Selected     *PosView `json:"selected,omitempty"`

	// Подсветка: синие клетки движения и красные/зеленые клетки целей.
	MoveTiles   []PosView `json:"moveTiles"`
	TargetTiles []PosView `json:"targetTiles"`

	Units []UnitView `json:"units"`

	// Log весь боевой лог с начала боя. Logs в ServerResponse - только новые записи.
	Log []BattleLogEntry `json:"log"`
}

// BattleLogEntry запись боевого лога в хронологическом порядке.
type BattleLogEntry struct {
	Seq   int    `json:"seq"`
	Round int    `json:"round"`
	Side  string `json:"side"`
	Type  string `json:"type"` // INFO, COMBAT, SYSTEM
	Text  string `json:"text"`
}

// UnitView это DTO бойца. В бою заполнены Side, Pos и Activated.
type UnitView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archetype string `json:"unitType"`
	Side      string `json:"side,omitempty"`

	Pos       *PosView `json:"pos,omitempty"`
	Activated bool     `json:"activated,omitempty"`
	IsDead    bool     `json:"isDead"`

	HP       int `json:"hp"`
	MaxHP    int `json:"maxHp"`
	Attack   int `json:"atk"`
	Defense  int `json:"def"`
	Movement int `json:"mov"`
	Range    int `json:"rng"`

	Level int `json:"level"`
	XP    int `json:"xp"`

	DieFaces  []string `json:"dieFaces"`
	Abilities []string `json:"abilities,omitempty"`
	Traits    []string `json:"traits,omitempty"`

	// Evolution сетка прокачки. Только в ArmyView.
	Evolution []EvolutionTileView `json:"evolution,omitempty"`
}

// EvolutionTileView клетка сетки эволюции.
type EvolutionTileView struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	State  string `json:"state"` // LOCKED, UNLOCKED, SELECTABLE
	Reward string `json:"reward,omitempty"`
	Label  string `json:"label,omitempty"`
}

// ArmyView ростер игрока.
type ArmyView struct {
	Units    []UnitView      `json:"units"`
	Party    []string        `json:"party"` // ID бойцов выбранного отряда по порядку
	MaxParty int             `json:"maxParty"`
	Upgrades map[string]bool `json:"upgrades"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, SYSTEM, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID клиента. Проставляется сервером по соединению.
	Token string `json:"token,omitempty"`

	// Action название действия (SELECT_TILE, STAY, PASS, ...).
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// PositionPayload используется для SELECT_TILE.
type PositionPayload struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// UnitPayload используется для действий с бойцом ростера (PARTY_ADD, PARTY_REMOVE).
type UnitPayload struct {
	UnitID string `json:"unitId"`
}

// ExperiencePayload используется для ADD_XP.
type ExperiencePayload struct {
	UnitID string `json:"unitId"`
	Amount int    `json:"amount"`
}

// UnlockPayload используется для UNLOCK_TILE (клетка сетки эволюции).
type UnlockPayload struct {
	UnitID string `json:"unitId"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// UpgradePayload используется для SET_UPGRADE (постройки деревни).
type UpgradePayload struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// PulsePayload используется для ADMIN_SET_PULSE.
type PulsePayload struct {
	Side   string `json:"side"` // PLAYER, ENEMY
	Amount int    `json:"amount"`
}
