package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stdout с настройками logrus по умолчанию.
var Log = logrus.New()

// Init настраивает глобальный логгер.
// Вызывается один раз при старте (main.go) или в TestMain.
//
// level: "debug", "info", "warn"... (неизвестное значение -> info).
// format: "json" для продакшена, всё остальное -> текстовый формат.
func Init(level, format string) {
	Log = logrus.New()

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// InitFromEnv читает LOG_LEVEL и LOG_FORMAT напрямую из окружения.
// Используется в тестах и утилитах, которым не нужен полный конфиг.
func InitFromEnv() {
	level, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		level = "info"
	}
	Init(level, os.Getenv("LOG_FORMAT"))
}
