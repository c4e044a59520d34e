package engine

import (
	"time"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. Каждый бой получает Seed + номер боя,
	// так что бой воспроизводим по реплею.
	Seed int64

	MaxParty int
	Battle   battle.Config
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:     time.Now().UnixNano(),
		MaxParty: domain.DefaultMaxParty,
		Battle:   battle.DefaultConfig(),
	}
}
