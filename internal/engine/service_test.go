package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine/handlers"
	"skirmish-server/pkg/api"
)

func TestService_PartyThenRestart(t *testing.T) {
	s := newTestService()
	roster := s.Army.Units

	send(t, s, "PARTY_ADD", api.UnitPayload{UnitID: roster[0].ID.String()})
	send(t, s, "PARTY_ADD", api.UnitPayload{UnitID: roster[1].ID.String()})
	send(t, s, "PARTY_ADD", api.UnitPayload{UnitID: roster[1].ID.String()}) // дубль
	if s.Party.Size() != 2 {
		t.Fatalf("party size = %d, want 2", s.Party.Size())
	}

	send(t, s, "RESTART", nil)
	if s.Session == nil {
		t.Fatal("RESTART must start a battle")
	}
	if got := len(s.Session.Units(domain.SidePlayer)); got != 2 {
		t.Errorf("players = %d, want 2", got)
	}
	if got := len(s.Session.Units(domain.SideEnemy)); got != 3 {
		t.Errorf("enemies = %d, want 3", got)
	}

	state := s.Snapshot()
	if state.Battle == nil || state.Battle.Round != 1 || state.Battle.ActiveSide != "PLAYER" {
		t.Errorf("battle view = %+v", state.Battle)
	}
	if len(state.Army.Party) != 2 || state.Army.Party[0] != roster[0].ID.String() {
		t.Errorf("army party = %v", state.Army.Party)
	}

	send(t, s, "PARTY_CLEAR", nil)
	if s.Party.Size() != 0 {
		t.Error("PARTY_CLEAR must empty the party")
	}
}

func TestService_StartBattle_FillsPartyFromArmy(t *testing.T) {
	s := newTestService()
	s.StartBattle()

	players := s.Session.Units(domain.SidePlayer)
	want := []domain.Archetype{
		domain.ArchetypeWarrior,
		domain.ArchetypeRuneguard,
		domain.ArchetypeArcaneArcher,
		domain.ArchetypeCleric,
	}
	if len(players) != len(want) {
		t.Fatalf("players = %d, want %d", len(players), len(want))
	}
	for i, u := range players {
		if u.Archetype != want[i] {
			t.Errorf("player %d = %s, want %s", i, u.Archetype, want[i])
		}
	}
	if s.Party.Size() != len(want) {
		t.Errorf("party size = %d, want %d", s.Party.Size(), len(want))
	}
}

func TestService_StartBattle_EmptyArmyDeploysMilitia(t *testing.T) {
	s := NewService(testConfig(), domain.NewArmy(nil, nil))
	s.StartBattle()

	players := s.Session.Units(domain.SidePlayer)
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2", len(players))
	}
	for _, u := range players {
		if u.Archetype != domain.ArchetypeMilitia {
			t.Errorf("default unit %s is %s, want Militia", u.Name, u.Archetype)
		}
	}
}

func TestService_BattleCommandWithoutBattle(t *testing.T) {
	s := newTestService()
	send(t, s, "PASS", nil)

	state := s.Snapshot()
	if state.Type != "ERROR" || state.Error != handlers.ErrNoBattle.Error() {
		t.Errorf("state = %s %q", state.Type, state.Error)
	}
}

func TestService_RejectsScheduledAndUnknownActions(t *testing.T) {
	s := newTestService()
	s.ProcessCommand(api.ClientCommand{Action: "ENEMY_STEP"})
	s.ProcessCommand(api.ClientCommand{Action: "START_ROUND"})
	s.ProcessCommand(api.ClientCommand{Action: "FLY"})
	if len(s.CommandChan) != 0 {
		t.Errorf("queued %d commands, want 0", len(s.CommandChan))
	}
}

func TestService_InvalidPayload(t *testing.T) {
	s := newTestService()
	s.StartBattle()

	send(t, s, "SELECT_TILE", api.PositionPayload{Row: -1, Col: 0})
	if state := s.Snapshot(); state.Error == "" {
		t.Error("negative tile must fail validation")
	}
	send(t, s, "SELECT_TILE", nil)
	if state := s.Snapshot(); state.Error == "" {
		t.Error("missing payload must fail")
	}
}

func TestService_SelectTileFlow(t *testing.T) {
	s := newTestService()
	s.StartBattle()

	// Отряд набран из армии: Runeguard 1 стоит на (4, 2)
	send(t, s, "SELECT_TILE", api.PositionPayload{Row: 4, Col: 2})
	if s.Session.Phase() != domain.PhaseMoveSelected {
		t.Fatalf("phase = %s", s.Session.Phase())
	}
	if state := s.Snapshot(); len(state.Battle.MoveTiles) == 0 || state.Battle.ActivatingID == "" {
		t.Errorf("move highlights missing: %+v", state.Battle)
	}

	send(t, s, "CANCEL", nil)
	if s.Session.Phase() != domain.PhaseIdle || s.Session.Activating() != nil {
		t.Error("CANCEL must discard the activation")
	}
}

func TestService_SnapshotCarriesFullBattleLog(t *testing.T) {
	s := newTestService()
	s.StartBattle()

	send(t, s, "SELECT_TILE", api.PositionPayload{Row: 4, Col: 2})
	send(t, s, "STAY", nil)

	// Снимок для клиента, подключившегося позже: буфер новых логов уже разослан
	state := s.Snapshot()
	log := state.Battle.Log
	if len(log) == 0 {
		t.Fatal("battle log is empty")
	}
	if len(log) != len(s.Session.Log()) {
		t.Errorf("log entries = %d, want %d", len(log), len(s.Session.Log()))
	}
	for i := 1; i < len(log); i++ {
		if log[i].Seq <= log[i-1].Seq {
			t.Errorf("log out of order at %d: %d after %d", i, log[i].Seq, log[i-1].Seq)
		}
	}
	found := false
	for _, e := range log {
		if strings.Contains(e.Text, "stayed in place") {
			found = true
		}
	}
	if !found {
		t.Errorf("STAY missing from battle log: %+v", log)
	}
}

func TestService_ArmyProgression(t *testing.T) {
	militia := domain.NewUnit("Recruit", domain.ArchetypeMilitia)
	s := NewService(testConfig(), domain.NewArmy([]*domain.Unit{militia}, nil))
	id := militia.ID.String()

	send(t, s, "ADD_XP", api.ExperiencePayload{UnitID: id, Amount: 120})
	if militia.Level != 2 || militia.XP != 20 {
		t.Fatalf("level/xp = %d/%d, want 2/20", militia.Level, militia.XP)
	}

	send(t, s, "UNLOCK_TILE", api.UnlockPayload{UnitID: id, Row: 2, Col: 1})
	if militia.Attack != 5 || !militia.IsUnlocked(domain.Position{Row: 2, Col: 1}) {
		t.Errorf("unlock not applied: atk=%d", militia.Attack)
	}

	// Свободных уровней больше нет
	send(t, s, "UNLOCK_TILE", api.UnlockPayload{UnitID: id, Row: 1, Col: 2})
	if militia.IsUnlocked(domain.Position{Row: 1, Col: 2}) {
		t.Error("unlock without a spare level")
	}

	send(t, s, "ADD_XP", api.ExperiencePayload{UnitID: "missing", Amount: 10})
	if state := s.Snapshot(); state.Error == "" {
		t.Error("unknown unit must be reported")
	}

	send(t, s, "SET_UPGRADE", api.UpgradePayload{Key: domain.UpgradeWizardsTower, Enabled: true})
	if !s.Army.Upgrade(domain.UpgradeWizardsTower) {
		t.Error("upgrade not set")
	}
}

func TestService_UnlockBlockedDuringBattle(t *testing.T) {
	militia := domain.NewUnit("Recruit", domain.ArchetypeMilitia)
	militia.AddExperience(100)
	s := NewService(testConfig(), domain.NewArmy([]*domain.Unit{militia}, nil))
	s.StartBattle()

	send(t, s, "UNLOCK_TILE", api.UnlockPayload{UnitID: militia.ID.String(), Row: 2, Col: 1})
	if militia.IsUnlocked(domain.Position{Row: 2, Col: 1}) {
		t.Error("evolution must be locked while the battle runs")
	}
}

func TestService_UpgradeGatesAbilities(t *testing.T) {
	s := newTestService()
	s.StartBattle()
	if s.Session.AbilitiesEnabled() {
		t.Fatal("abilities need the wizards tower")
	}

	send(t, s, "SET_UPGRADE", api.UpgradePayload{Key: domain.UpgradeWizardsTower, Enabled: true})
	if s.Session.AbilitiesEnabled() {
		t.Error("upgrade applies from the next battle only")
	}

	send(t, s, "RESTART", nil)
	if !s.Session.AbilitiesEnabled() {
		t.Error("new battle must see the upgrade")
	}
}

func TestService_AdminSetPulse(t *testing.T) {
	s := newTestService()
	send(t, s, "ADMIN_SET_PULSE", api.PulsePayload{Side: "PLAYER", Amount: 30})
	if state := s.Snapshot(); state.Error != "" {
		t.Fatalf("admin commands are off by default, got error %q", state.Error)
	}

	s = newTestService(WithAdmin())
	s.StartBattle()
	send(t, s, "ADMIN_SET_PULSE", api.PulsePayload{Side: "PLAYER", Amount: 30})
	if got := s.Session.Pulse(domain.SidePlayer); got != 30 {
		t.Errorf("pulse = %d, want 30", got)
	}
	if acts := s.Replay().Actions; len(acts) != 1 || acts[0].Action != domain.ActionAdminSetPulse {
		t.Errorf("admin action must be recorded, got %+v", acts)
	}
}

func TestService_SaveArmy(t *testing.T) {
	s := newTestService()
	send(t, s, "SAVE_ARMY", nil)
	if state := s.Snapshot(); state.Error == "" {
		t.Error("SAVE_ARMY without a store must fail")
	}
	if !errors.Is(s.SaveArmy(), ErrNoStore) {
		t.Error("want ErrNoStore")
	}

	store := &memoryStore{}
	s = newTestService(WithStore(store))
	send(t, s, "SAVE_ARMY", nil)
	if store.saved != s.Army {
		t.Error("army not saved")
	}
}

func TestService_PassiveBattle(t *testing.T) {
	replays := &memoryReplays{}
	s := newTestService(WithReplaySaver(replays))
	for _, u := range s.Army.Units {
		s.Party.Add(u)
	}
	s.StartBattle()
	playPassive(t, s)

	if s.Outcome() != domain.OutcomeDefeat {
		t.Fatalf("outcome = %s, want DEFEAT", s.Outcome())
	}
	if s.Session.Round() < 2 {
		t.Errorf("round = %d, battle should span several rounds", s.Session.Round())
	}
	if len(replays.saved) != 1 {
		t.Fatalf("saved replays = %d, want 1", len(replays.saved))
	}
	if s.Scheduler.Len() != 0 {
		t.Errorf("enemy steps scheduled after the end: %+v", s.Scheduler.DebugDump())
	}
}

func TestService_RunLoop(t *testing.T) {
	cfg := testConfig()
	cfg.Battle.EnemyDelay = time.Millisecond
	cfg.Battle.RoundDelay = time.Millisecond
	s := NewService(cfg, domain.NewArmy(domain.DefaultRoster(), nil))
	s.StartBattle()

	sub := s.Hub.Register("watcher")
	defer s.Hub.Unregister("watcher")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	s.ProcessCommand(api.ClientCommand{Action: "END_TURN"})

	// Ждем, пока противник сходит по таймеру
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-sub:
			if msg.Battle != nil && msg.Battle.ActiveSide == "PLAYER" && msg.Tick >= 2 {
				cancel()
				<-done
				return
			}
		case <-deadline:
			cancel()
			<-done
			t.Fatal("enemy step did not fire")
		}
	}
}

type memoryStore struct {
	saved *domain.Army
}

func (m *memoryStore) Save(_ context.Context, army *domain.Army) error {
	m.saved = army
	return nil
}

func (m *memoryStore) Load(context.Context) (*domain.Army, error) {
	return m.saved, nil
}
