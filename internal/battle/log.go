package battle

import (
	"fmt"

	"skirmish-server/internal/domain"
)

// Типы записей лога
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogSystem = "SYSTEM"
)

// LogEntry - запись боевого лога.
type LogEntry struct {
	Seq   int
	Round int
	Side  domain.Side
	Type  string
	Text  string
}

func (s *Session) logf(logType, format string, args ...any) {
	s.logSeq++
	entry := LogEntry{
		Seq:   s.logSeq,
		Round: s.round,
		Side:  s.activeSide,
		Type:  logType,
		Text:  fmt.Sprintf(format, args...),
	}
	s.log = append(s.log, entry)
	s.emit(Effect{Kind: EffectLog, Entry: entry})
}

func (s *Session) logLines(logType string, lines []string) {
	for _, line := range lines {
		s.logf(logType, "%s", line)
	}
}
