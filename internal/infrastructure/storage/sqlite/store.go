// Package sqlite хранит армию в SQLite (modernc.org/sqlite, без cgo).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/internal/infrastructure/storage/sqlite/migrations"
	"skirmish-server/internal/infrastructure/storage/sqlitemigrate"
)

// Store реализует storage.ArmyStore.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.ArmyStore = (*Store)(nil)

// Open открывает базу и применяет встроенные миграции.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save заменяет сохраненную армию целиком.
func (s *Store) Save(ctx context.Context, army *domain.Army) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM units`); err != nil {
		return fmt.Errorf("clear units: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM upgrades`); err != nil {
		return fmt.Errorf("clear upgrades: %w", err)
	}

	now := time.Now().UTC().UnixMilli()
	for i, u := range army.Units {
		snapshot, err := json.Marshal(u.Snapshot())
		if err != nil {
			return fmt.Errorf("encode unit %s: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO units (id, position, snapshot, updated_at) VALUES (?, ?, ?, ?)`,
			u.ID.String(), i, string(snapshot), now,
		); err != nil {
			return fmt.Errorf("insert unit %s: %w", u.ID, err)
		}
	}

	for key, enabled := range army.Upgrades {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO upgrades (key, enabled) VALUES (?, ?)`,
			key, boolToInt(enabled),
		); err != nil {
			return fmt.Errorf("insert upgrade %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load читает армию. Пустая база - storage.ErrNoSave.
func (s *Store) Load(ctx context.Context) (*domain.Army, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	units, err := s.loadUnits(ctx)
	if err != nil {
		return nil, err
	}
	upgrades, err := s.loadUpgrades(ctx)
	if err != nil {
		return nil, err
	}

	if len(units) == 0 && len(upgrades) == 0 {
		return nil, storage.ErrNoSave
	}
	return domain.NewArmy(units, upgrades), nil
}

func (s *Store) loadUnits(ctx context.Context) ([]*domain.Unit, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT snapshot FROM units ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		var snap domain.UnitSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("%w: decode unit: %v", storage.ErrNoSave, err)
		}
		units = append(units, domain.FromSnapshot(snap))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

func (s *Store) loadUpgrades(ctx context.Context) (map[string]bool, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT key, enabled FROM upgrades`)
	if err != nil {
		return nil, fmt.Errorf("query upgrades: %w", err)
	}
	defer rows.Close()

	upgrades := make(map[string]bool)
	for rows.Next() {
		var key string
		var enabled int
		if err := rows.Scan(&key, &enabled); err != nil {
			return nil, fmt.Errorf("scan upgrade: %w", err)
		}
		upgrades[key] = enabled != 0
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upgrades: %w", err)
	}
	return upgrades, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
