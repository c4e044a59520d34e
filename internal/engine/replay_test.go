package engine

import (
	"encoding/json"
	"testing"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/pkg/api"
)

// Живой бой и его проигрывание должны прийти в одно и то же состояние.
func TestPlayback_ReproducesBattle(t *testing.T) {
	s := newTestService()
	for _, u := range s.Army.Units[:3] {
		s.Party.Add(u)
	}
	s.StartBattle()
	playPassive(t, s)

	rs := s.Replay()
	if len(rs.Actions) == 0 {
		t.Fatal("nothing recorded")
	}

	replayed, err := Playback(rs, testConfig().Battle)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	assertSameBattle(t, s, replayed.Outcome(), replayed.Round(), replayed.Pulse(domain.SidePlayer), replayed.Pulse(domain.SideEnemy))

	for _, side := range []domain.Side{domain.SidePlayer, domain.SideEnemy} {
		live, again := s.Session.Units(side), replayed.Units(side)
		if len(live) != len(again) {
			t.Fatalf("%s units = %d, want %d", side, len(again), len(live))
		}
		for i := range live {
			if live[i].CurrentHP != again[i].CurrentHP {
				t.Errorf("%s unit %d hp = %d, want %d", side, i, again[i].CurrentHP, live[i].CurrentHP)
			}
		}
	}
}

// Реплей переживает запись в файл и чтение.
func TestPlayback_FromFile(t *testing.T) {
	svc := storage.NewReplayService(t.TempDir())
	s := newTestService(WithReplaySaver(svc))
	s.StartBattle()
	playPassive(t, s)

	path, err := svc.Save(s.Replay())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	replayed, err := Playback(loaded, testConfig().Battle)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	assertSameBattle(t, s, replayed.Outcome(), replayed.Round(), replayed.Pulse(domain.SidePlayer), replayed.Pulse(domain.SideEnemy))
}

func TestPlayback_EnemyLineup(t *testing.T) {
	s := newTestService()
	s.SetEnemyLineup([]domain.UnitSnapshot{
		domain.NewUnit("Lone Scout", domain.ArchetypeScout).Snapshot(),
	})
	s.StartBattle()
	if enemies := s.Session.Units(domain.SideEnemy); len(enemies) != 1 || enemies[0].Name != "Lone Scout" {
		t.Fatalf("lineup not used: %d enemies", len(enemies))
	}

	replayed, err := Playback(s.Replay(), testConfig().Battle)
	if err != nil {
		t.Fatalf("Playback: %v", err)
	}
	if enemies := replayed.Units(domain.SideEnemy); len(enemies) != 1 || enemies[0].Name != "Lone Scout" {
		t.Errorf("replay lost the lineup")
	}
}

func TestPlayback_BadPayload(t *testing.T) {
	rs := &domain.ReplaySession{
		Seed:     1,
		GridSize: 5,
		Actions: []domain.ReplayAction{
			{Tick: 1, Action: domain.ActionSelectTile, Payload: json.RawMessage(`{`)},
		},
	}
	if _, err := Playback(rs, testConfig().Battle); err == nil {
		t.Error("broken payload must fail playback")
	}

	rs.Actions = []domain.ReplayAction{{Tick: 1, Action: domain.ActionAddXP}}
	if _, err := Playback(rs, testConfig().Battle); err == nil {
		t.Error("non-battle action must fail playback")
	}

	if _, err := Playback(nil, testConfig().Battle); err == nil {
		t.Error("nil replay must fail")
	}
}

func TestReplay_RecordsSelectTilePayload(t *testing.T) {
	s := newTestService()
	s.StartBattle()
	send(t, s, "SELECT_TILE", api.PositionPayload{Row: 4, Col: 2})
	send(t, s, "SELECT_TILE", api.PositionPayload{Row: 0, Col: 0}) // не клетка движения: no-op

	acts := s.Replay().Actions
	if len(acts) != 1 {
		t.Fatalf("recorded %d actions, want 1 (no-ops are skipped)", len(acts))
	}
	var p api.PositionPayload
	if err := json.Unmarshal(acts[0].Payload, &p); err != nil || p.Row != 4 || p.Col != 2 {
		t.Errorf("payload = %s", acts[0].Payload)
	}
}

func assertSameBattle(t *testing.T, s *Service, outcome domain.Outcome, round, playerPulse, enemyPulse int) {
	t.Helper()
	if outcome != s.Session.Outcome() {
		t.Errorf("outcome = %s, want %s", outcome, s.Session.Outcome())
	}
	if round != s.Session.Round() {
		t.Errorf("round = %d, want %d", round, s.Session.Round())
	}
	if playerPulse != s.Session.Pulse(domain.SidePlayer) || enemyPulse != s.Session.Pulse(domain.SideEnemy) {
		t.Errorf("pulse = %d/%d, want %d/%d", playerPulse, enemyPulse,
			s.Session.Pulse(domain.SidePlayer), s.Session.Pulse(domain.SideEnemy))
	}
}
