package domain

import "github.com/google/uuid"

// UnitID - стабильный идентификатор бойца. Переживает сохранение/загрузку армии,
// поэтому по нему клиент адресует команды (ADD_XP, UNLOCK_TILE, PARTY_ADD).
type UnitID string

// NewUnitID генерирует новый уникальный ID.
func NewUnitID() UnitID {
	return UnitID(uuid.New().String())
}

func (id UnitID) String() string {
	return string(id)
}
