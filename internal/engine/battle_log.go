package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// AddLog добавляет запись в буфер логов, который уйдет клиенту со следующим снимком
func (s *Service) AddLog(text, logType string) {
	s.Logs = append(s.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d_%d", s.battles, s.tick, time.Now().UnixNano()),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"battle":    s.battles,
		"component": "game_log",
		"log_type":  logType,
	}).Info(text)
}
