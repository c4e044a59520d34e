package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/engine"
)

// Хранилища армии
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config - настройки процесса из окружения.
type Config struct {
	Port      string `env:"SKIRMISH_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Store      string `env:"SKIRMISH_STORE" envDefault:"json"`
	SavePath   string `env:"SKIRMISH_SAVE_PATH" envDefault:"savegame.json"`
	SQLitePath string `env:"SKIRMISH_SQLITE_PATH" envDefault:"skirmish.db"`
	ReplayDir  string `env:"SKIRMISH_REPLAY_DIR" envDefault:"replays"`

	// Seed 0 - случайный сид при старте.
	Seed     int64 `env:"SKIRMISH_SEED" envDefault:"0"`
	GridSize int   `env:"SKIRMISH_GRID_SIZE" envDefault:"5"`
	MaxParty int   `env:"SKIRMISH_MAX_PARTY" envDefault:"4"`

	ExtraActivationCost int           `env:"SKIRMISH_EXTRA_ACTIVATION_COST" envDefault:"10"`
	ReactivateCost      int           `env:"SKIRMISH_REACTIVATE_COST" envDefault:"10"`
	RoundDelay          time.Duration `env:"SKIRMISH_ROUND_DELAY" envDefault:"1s"`
	EnemyDelay          time.Duration `env:"SKIRMISH_ENEMY_DELAY" envDefault:"500ms"`
	AbilitiesUnlocked   bool          `env:"SKIRMISH_ABILITIES_UNLOCKED" envDefault:"false"`

	// Admin включает отладочные команды ADMIN_*.
	Admin bool `env:"SKIRMISH_ADMIN" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load читает Config из окружения и проверяет его.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreJSON, StoreSQLite)
	}
	if c.GridSize < 3 {
		return fmt.Errorf("grid size %d is too small", c.GridSize)
	}
	if c.MaxParty <= 0 {
		return fmt.Errorf("max party must be positive, got %d", c.MaxParty)
	}
	if c.RoundDelay < 0 || c.EnemyDelay < 0 {
		return fmt.Errorf("delays cannot be negative")
	}
	return nil
}

// Engine строит конфиг движка. Нулевой сид заменяется случайным.
func (c Config) Engine() engine.Config {
	ec := engine.NewConfig()
	if c.Seed != 0 {
		ec.Seed = c.Seed
	}
	ec.MaxParty = c.MaxParty
	ec.Battle = c.Battle()
	return ec
}

// Battle - параметры одного боя.
func (c Config) Battle() battle.Config {
	bc := battle.DefaultConfig()
	bc.GridSize = c.GridSize
	bc.ExtraActivationCost = c.ExtraActivationCost
	bc.ReactivateCost = c.ReactivateCost
	bc.RoundDelay = c.RoundDelay
	bc.EnemyDelay = c.EnemyDelay
	bc.AbilitiesUnlocked = c.AbilitiesUnlocked
	return bc
}
