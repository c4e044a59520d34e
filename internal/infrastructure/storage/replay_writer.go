package storage

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"skirmish-server/internal/domain"
)

const (
	MagicHeader string = `SKRP` // 4 байта
	Version1    uint32 = 1
)

// ReplayFileHeader - точное представление заголовка файла в памяти.
// binary.Write пишет его целиком: тут нет слайсов и строк, только массивы и числа.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Seed        int64   // 8 байт
	Timestamp   int64   // 8 байт
	GridSize    int32   // 4 байта
	ActionCount int32   // 4 байта
	RosterLen   uint32  // 4 байта: длина JSON с отрядом и постройками
}

// ActionHeader - заголовок каждой записи действия.
type ActionHeader struct {
	Tick       int32  // 4
	ActionType uint8  // 1
	Flags      uint8  // 1, зарезервировано
	PayloadLen uint16 // 2
}

// replayRoster - стартовый отряд боя, пишется JSON-блоком сразу после заголовка.
type replayRoster struct {
	Party    []domain.UnitSnapshot `json:"party"`
	Enemies  []domain.UnitSnapshot `json:"enemies,omitempty"`
	Upgrades map[string]bool       `json:"upgrades,omitempty"`
}

type ReplayService struct {
	SaveDir string
}

func NewReplayService(dir string) *ReplayService {
	// Создаем папку если нет
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0o755)
	}
	return &ReplayService{SaveDir: dir}
}

// Save пишет реплей в SaveDir и возвращает путь к файлу.
func (s *ReplayService) Save(session *domain.ReplaySession) (string, error) {
	filename := fmt.Sprintf("replay_%d_%d.skrp", session.Seed, session.Timestamp)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create replay file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		return "", err
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("flush replay: %w", err)
	}
	return path, nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	roster, err := json.Marshal(replayRoster{Party: s.Party, Enemies: s.Enemies, Upgrades: s.Upgrades})
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	// 1. Глобальный заголовок
	header := ReplayFileHeader{
		Version:     Version1,
		Seed:        s.Seed,
		Timestamp:   s.Timestamp,
		GridSize:    int32(s.GridSize),
		ActionCount: int32(len(s.Actions)),
		RosterLen:   uint32(len(roster)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Стартовый отряд
	if _, err := w.Write(roster); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}

	// 3. Действия
	for _, act := range s.Actions {
		payloadLen := len(act.Payload)
		if payloadLen > 65535 {
			return fmt.Errorf("payload too long: %d", payloadLen)
		}

		actHeader := ActionHeader{
			Tick:       int32(act.Tick),
			ActionType: uint8(act.Action),
			PayloadLen: uint16(payloadLen),
		}
		if err := binary.Write(w, binary.LittleEndian, &actHeader); err != nil {
			return err
		}
		if payloadLen > 0 {
			if _, err := w.Write(act.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}
