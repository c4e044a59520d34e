package systems

import (
	"fmt"
	"math/rand"
	"strings"

	"skirmish-server/internal/domain"
)

// Roll - результат броска n кубиков.
type Roll struct {
	Faces []domain.Face
}

// Count считает выпавшие грани одного вида.
func (r Roll) Count(face domain.Face) int {
	n := 0
	for _, f := range r.Faces {
		if f == face {
			n++
		}
	}
	return n
}

func (r Roll) Swords() int  { return r.Count(domain.FaceSword) }
func (r Roll) Shields() int { return r.Count(domain.FaceShield) }
func (r Roll) Pulses() int  { return r.Count(domain.FacePulse) }

func (r Roll) String() string {
	names := make([]string, len(r.Faces))
	for i, f := range r.Faces {
		names[i] = f.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(names, ", "))
}

// Roller бросает кубики. Реализация подменяется в тестах и при проверке реплеев.
type Roller interface {
	Roll(faces []domain.Face, n int) Roll
}

// RandomRoller - n независимых равновероятных выборов из граней (с возвращением).
type RandomRoller struct {
	rng *rand.Rand
}

func NewRoller(rng *rand.Rand) *RandomRoller {
	return &RandomRoller{rng: rng}
}

func (r *RandomRoller) Roll(faces []domain.Face, n int) Roll {
	if n <= 0 {
		return Roll{Faces: []domain.Face{}}
	}
	if len(faces) == 0 {
		faces = domain.BalancedDie()
	}
	out := make([]domain.Face, n)
	for i := range out {
		out[i] = faces[r.rng.Intn(len(faces))]
	}
	return Roll{Faces: out}
}

// ScriptedRoller отдает заранее заданные грани по порядку.
// Когда сценарий кончается, выпадают Pulse - они не меняют HP.
type ScriptedRoller struct {
	script []domain.Face
	pos    int
}

func NewScriptedRoller(faces ...domain.Face) *ScriptedRoller {
	return &ScriptedRoller{script: faces}
}

// Push дописывает грани в конец сценария.
func (s *ScriptedRoller) Push(faces ...domain.Face) {
	s.script = append(s.script, faces...)
}

func (s *ScriptedRoller) Roll(_ []domain.Face, n int) Roll {
	out := make([]domain.Face, 0, max(n, 0))
	for i := 0; i < n; i++ {
		if s.pos < len(s.script) {
			out = append(out, s.script[s.pos])
			s.pos++
			continue
		}
		out = append(out, domain.FacePulse)
	}
	return Roll{Faces: out}
}
