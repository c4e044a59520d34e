package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skirmish-server/internal/domain"
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, Version1)
	}
	if header.ActionCount < 0 {
		return nil, fmt.Errorf("invalid action count: %d", header.ActionCount)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		GridSize:  int(header.GridSize),
		Actions:   make([]domain.ReplayAction, header.ActionCount),
	}

	// 2. Стартовый отряд
	if header.RosterLen > 0 {
		buf := make([]byte, header.RosterLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("failed to read roster: %w", err)
		}
		var roster replayRoster
		if err := json.Unmarshal(buf, &roster); err != nil {
			return nil, fmt.Errorf("failed to decode roster: %w", err)
		}
		session.Party = roster.Party
		session.Enemies = roster.Enemies
		session.Upgrades = roster.Upgrades
	}

	// 3. Действия
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}

		act := domain.ReplayAction{
			Tick:    int(ah.Tick),
			Action:  domain.ActionType(ah.ActionType),
			Payload: json.RawMessage{},
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("failed to read action %d payload: %w", i, err)
			}
		}

		session.Actions[i] = act
	}

	return session, nil
}
