package battle

import (
	"time"

	"skirmish-server/internal/systems"
)

// Config - параметры одного боя.
type Config struct {
	GridSize            int
	ExtraActivationCost int
	ReactivateCost      int
	SearchRadius        int

	// Задержки только для темпа показа. Ядро их не ждет, а отдает как эффекты.
	RoundDelay time.Duration
	EnemyDelay time.Duration

	// AbilitiesUnlocked снимает требование постройки wizards_tower.
	AbilitiesUnlocked bool
}

// DefaultConfig - эталонные значения: поле 5x5, способности по 10 Пульса.
func DefaultConfig() Config {
	return Config{
		GridSize:            5,
		ExtraActivationCost: 10,
		ReactivateCost:      10,
		SearchRadius:        systems.DefaultSearchRadius,
		RoundDelay:          time.Second,
		EnemyDelay:          500 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GridSize <= 0 {
		c.GridSize = d.GridSize
	}
	if c.ExtraActivationCost <= 0 {
		c.ExtraActivationCost = d.ExtraActivationCost
	}
	if c.ReactivateCost <= 0 {
		c.ReactivateCost = d.ReactivateCost
	}
	if c.SearchRadius <= 0 {
		c.SearchRadius = d.SearchRadius
	}
	return c
}
