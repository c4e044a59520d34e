package domain

import (
	"fmt"
	"strings"
)

// Face - символ на грани кубика.
type Face uint8

const (
	FaceSword Face = iota
	FaceShield
	FacePulse
)

// DieFaceCount - у каждого кубика ровно 6 граней.
const DieFaceCount = 6

var faceToString = map[Face]string{
	FaceSword:  "Sword",
	FaceShield: "Shield",
	FacePulse:  "Pulse",
}

var stringToFace = map[string]Face{
	"SWORD":  FaceSword,
	"SHIELD": FaceShield,
	"PULSE":  FacePulse,
}

// ParseFace конвертирует строку сохранения в Face (регистр не важен).
func ParseFace(s string) (Face, error) {
	if f, ok := stringToFace[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown die face %q", s)
}

func (f Face) String() string {
	if s, ok := faceToString[f]; ok {
		return s
	}
	return "UNKNOWN"
}

// MarshalText сохраняет грань строкой ("Sword"), как в файле сохранения.
func (f Face) MarshalText() ([]byte, error) {
	s, ok := faceToString[f]
	if !ok {
		return nil, fmt.Errorf("unknown die face %d", f)
	}
	return []byte(s), nil
}

func (f *Face) UnmarshalText(text []byte) error {
	parsed, err := ParseFace(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// DieFaces собирает набор граней из количества мечей/щитов/пульсов.
func DieFaces(swords, shields, pulses int) []Face {
	faces := make([]Face, 0, swords+shields+pulses)
	for i := 0; i < swords; i++ {
		faces = append(faces, FaceSword)
	}
	for i := 0; i < shields; i++ {
		faces = append(faces, FaceShield)
	}
	for i := 0; i < pulses; i++ {
		faces = append(faces, FacePulse)
	}
	return faces
}

// BalancedDie - кубик по умолчанию 2/2/2.
func BalancedDie() []Face {
	return DieFaces(2, 2, 2)
}
