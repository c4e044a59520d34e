package domain

import "encoding/json"

// InternalCommand - команда для движка после разбора JSON.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType
	Token   string          // ID клиента-источника
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
