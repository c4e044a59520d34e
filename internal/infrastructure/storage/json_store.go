package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"skirmish-server/internal/domain"
)

// JSONStore хранит армию в одном JSON-файле.
type JSONStore struct {
	Path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

func (s *JSONStore) Save(ctx context.Context, army *domain.Army) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("save path is required")
	}

	data, err := EncodeArmy(army)
	if err != nil {
		return fmt.Errorf("encode army: %w", err)
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create save dir: %w", err)
		}
	}

	// Пишем во временный файл и переименовываем, чтобы не оставить обрезанное сохранение
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

func (s *JSONStore) Load(ctx context.Context) (*domain.Army, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("%w: read save: %v", ErrNoSave, err)
	}
	return DecodeArmy(data)
}
