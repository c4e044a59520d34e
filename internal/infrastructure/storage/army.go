package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/domain"
	"skirmish-server/pkg/logger"
)

// ErrNoSave - сохранения нет или его невозможно прочитать.
var ErrNoSave = errors.New("no saved army")

// ArmyStore хранит ростер и флаги построек между запусками.
type ArmyStore interface {
	Save(ctx context.Context, army *domain.Army) error
	Load(ctx context.Context) (*domain.Army, error)
}

// saveDocument - формат файла сохранения: {"units": [...], "upgrades": {...}}.
type saveDocument struct {
	Units    []domain.UnitSnapshot `json:"units"`
	Upgrades map[string]bool       `json:"upgrades"`
}

// EncodeArmy сериализует армию в формат сохранения.
func EncodeArmy(army *domain.Army) ([]byte, error) {
	doc := saveDocument{
		Units:    make([]domain.UnitSnapshot, 0, len(army.Units)),
		Upgrades: army.Upgrades,
	}
	if doc.Upgrades == nil {
		doc.Upgrades = map[string]bool{}
	}
	for _, u := range army.Units {
		doc.Units = append(doc.Units, u.Snapshot())
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeArmy читает сохранение. Старый формат (голый список бойцов без построек)
// тоже принимается: постройки в нем считаются пустыми.
func DecodeArmy(data []byte) (*domain.Army, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty save", ErrNoSave)
	}

	var doc saveDocument
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &doc.Units); err != nil {
			return nil, fmt.Errorf("%w: decode legacy save: %v", ErrNoSave, err)
		}
	} else if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode save: %v", ErrNoSave, err)
	}

	units := make([]*domain.Unit, 0, len(doc.Units))
	for _, snap := range doc.Units {
		units = append(units, domain.FromSnapshot(snap))
	}
	return domain.NewArmy(units, doc.Upgrades), nil
}

// LoadOrDefault загружает армию. Любая ошибка чтения деградирует
// до стартового ростера без построек.
func LoadOrDefault(ctx context.Context, store ArmyStore) *domain.Army {
	if store == nil {
		return domain.NewArmy(domain.DefaultRoster(), nil)
	}

	storeLogger := logger.Log.WithFields(logrus.Fields{"component": "army_store"})

	army, err := store.Load(ctx)
	if err != nil {
		storeLogger.WithError(err).Warn("Saved army unavailable, using default roster")
		return domain.NewArmy(domain.DefaultRoster(), nil)
	}

	// Пустой ростер: постройки оставляем, бойцов выдаем стартовых
	if len(army.Units) == 0 {
		storeLogger.Info("Saved army is empty, using default roster")
		return domain.NewArmy(domain.DefaultRoster(), army.Upgrades)
	}
	return army
}
