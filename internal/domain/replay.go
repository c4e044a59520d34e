package domain

import "encoding/json"

// ReplayAction - запись одной команды, примененной к бою.
// Команды планировщика тоже пишутся: реплей не зависит от таймеров.
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Action  ActionType      `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ReplaySession - полная запись боя: всё, что нужно, чтобы воспроизвести его заново.
type ReplaySession struct {
	Seed      int64           `json:"seed"` // Зерно кубиков и расстановки
	Timestamp int64           `json:"timestamp"`
	GridSize  int             `json:"gridSize"`
	Party     []UnitSnapshot  `json:"party"`
	Enemies   []UnitSnapshot  `json:"enemies,omitempty"` // Заданный состав врагов. Пусто - генерация по отряду.
	Upgrades  map[string]bool `json:"upgrades,omitempty"`
	Actions   []ReplayAction  `json:"actions"`
}
