package battle

import (
	"math/rand"
	"testing"

	"skirmish-server/internal/domain"
)

func TestVictory_StopsEnemySteps(t *testing.T) {
	s, _ := newTestSession(
		[]Placement{at("Hero", domain.ArchetypeWarrior, 2, 2)},
		[]Placement{at("Guard", domain.ArchetypeRuneguard, 1, 2)},
		domain.FaceSword, domain.FaceSword, domain.FaceSword,
		domain.FacePulse, domain.FacePulse, domain.FacePulse,
	)
	guard := s.Units(domain.SideEnemy)[0]
	guard.CurrentHP = 1

	mustApply(t, s, SelectTile(pos(2, 2)))
	mustApply(t, s, Simple(domain.ActionStay))
	res := mustApply(t, s, SelectTile(pos(1, 2)))

	if guard.IsAlive() {
		t.Fatal("guard must be dead")
	}
	if s.Outcome() != domain.OutcomeVictory {
		t.Errorf("outcome = %s, want VICTORY", s.Outcome())
	}
	if !hasEffect(res.Effects, EffectBattleEnded) {
		t.Error("battle end must be reported")
	}
	if hasEffect(res.Effects, EffectScheduleEnemyStep) {
		t.Error("no enemy step after victory")
	}
	// Пульс защитника зачислен, хотя он погиб
	if s.Pulse(domain.SideEnemy) != 3 {
		t.Errorf("enemy pulse = %d, want 3", s.Pulse(domain.SideEnemy))
	}
	if _, ok := s.PositionOf(guard); ok {
		t.Error("defeated unit must leave the board")
	}
	if !logContains(s, "Guard was defeated!") || !logContains(s, "Victory! All enemies defeated!") {
		t.Errorf("log = %+v", s.Log())
	}
	if res := s.Apply(Simple(domain.ActionEnemyStep)); res.Accepted {
		t.Error("enemy step must be rejected after victory")
	}
}

func TestDefeat_ByEnemyStep(t *testing.T) {
	s, _ := newTestSession(
		[]Placement{at("Hero", domain.ArchetypeWarrior, 1, 2)},
		[]Placement{at("Orc", domain.ArchetypeWarrior, 0, 2)},
		domain.FaceSword, domain.FaceSword, domain.FaceSword,
		domain.FacePulse, domain.FacePulse,
	)
	hero := s.Units(domain.SidePlayer)[0]
	hero.CurrentHP = 1

	activateAndPass(t, s, pos(1, 2))
	res := mustApply(t, s, Simple(domain.ActionEnemyStep))

	if hero.IsAlive() {
		t.Fatal("hero must be dead")
	}
	if s.Outcome() != domain.OutcomeDefeat {
		t.Errorf("outcome = %s, want DEFEAT", s.Outcome())
	}
	if hasEffect(res.Effects, EffectScheduleEnemyStep) {
		t.Error("no enemy step after defeat")
	}
	if s.Pulse(domain.SidePlayer) != 2 {
		t.Errorf("player pulse = %d, want 2", s.Pulse(domain.SidePlayer))
	}
	if !logContains(s, "Hero has fallen!") {
		t.Errorf("log = %+v", s.Log())
	}
}

func TestRoundRollover(t *testing.T) {
	s, _ := newTestSession(
		[]Placement{at("Hero", domain.ArchetypeWarrior, 4, 2)},
		[]Placement{at("Orc", domain.ArchetypeWarrior, 0, 2)},
	)
	hero := s.Units(domain.SidePlayer)[0]
	orc := s.Units(domain.SideEnemy)[0]

	activateAndPass(t, s, pos(4, 2))
	res := mustApply(t, s, Simple(domain.ActionEnemyStep))

	if p, _ := s.PositionOf(orc); p != pos(1, 2) {
		t.Errorf("enemy moved to %s, want (1, 2)", p)
	}
	scheduled := res.Scheduled()
	if len(scheduled) != 1 || scheduled[0].Kind != EffectScheduleNewRound {
		t.Fatalf("scheduled = %+v, want new round", scheduled)
	}
	if scheduled[0].Command.Type != domain.ActionStartRound {
		t.Errorf("scheduled command = %s", scheduled[0].Command.Type)
	}
	if s.Round() != 1 {
		t.Error("round must not advance before the scheduled command runs")
	}

	mustApply(t, s, scheduled[0].Command)
	if s.Round() != 2 {
		t.Errorf("round = %d, want 2", s.Round())
	}
	if s.IsActivated(hero) || s.IsActivated(orc) {
		t.Error("activated sets must be empty")
	}
	if s.ActiveSide() != domain.SidePlayer {
		t.Errorf("side = %s, want PLAYER", s.ActiveSide())
	}

	if res := s.Apply(Simple(domain.ActionStartRound)); res.Accepted {
		t.Error("round must advance exactly once")
	}
	mustApply(t, s, SelectTile(pos(4, 2)))
}

func TestEnemyStep_ThroughFriendlyUnit(t *testing.T) {
	s, _ := newTestSession(
		[]Placement{at("Hero", domain.ArchetypeWarrior, 4, 2)},
		[]Placement{
			at("E1", domain.ArchetypeWarrior, 0, 2),
			at("E2", domain.ArchetypeWarrior, 1, 2),
		},
	)
	e1 := s.Units(domain.SideEnemy)[0]

	activateAndPass(t, s, pos(4, 2))
	mustApply(t, s, Simple(domain.ActionEnemyStep))

	if p, _ := s.PositionOf(e1); p != pos(1, 1) {
		t.Errorf("E1 at %s, want (1, 1)", p)
	}
	if !logContains(s, "E1 moved through friendly unit to (1, 1).") {
		t.Errorf("log = %+v", s.Log())
	}
	// Игрок исчерпан, враг продолжает сам
	if s.ActiveSide() != domain.SideEnemy {
		t.Errorf("side = %s, want ENEMY", s.ActiveSide())
	}
}

func TestDeploy(t *testing.T) {
	t.Run("empty party gets militia", func(t *testing.T) {
		s := Deploy(DefaultConfig(), nil, rand.New(rand.NewSource(1)))
		players := s.Units(domain.SidePlayer)
		if len(players) != 2 {
			t.Fatalf("players = %d, want 2", len(players))
		}
		if p, _ := s.PositionOf(players[0]); p != pos(4, 2) {
			t.Errorf("Militia 1 at %s", p)
		}
		if p, _ := s.PositionOf(players[1]); p != pos(3, 2) {
			t.Errorf("Militia 2 at %s", p)
		}
		if len(s.Units(domain.SideEnemy)) != 3 {
			t.Errorf("enemies = %d, want 3", len(s.Units(domain.SideEnemy)))
		}
	})

	t.Run("slots and enemy lineup", func(t *testing.T) {
		party := []*domain.Unit{domain.NewUnit("Solo", domain.ArchetypeWarrior)}
		party[0].CurrentHP = 1

		s := Deploy(DefaultConfig(), party, rand.New(rand.NewSource(1)))
		if p, _ := s.PositionOf(party[0]); p != pos(4, 1) {
			t.Errorf("first slot = %s, want (4, 1)", p)
		}
		if party[0].CurrentHP != party[0].MaxHP {
			t.Error("hp must be reset for battle")
		}

		enemies := s.Units(domain.SideEnemy)
		wantNames := []string{"Enemy Warrior 1", "Enemy Runeguard 2"}
		if len(enemies) != len(wantNames) {
			t.Fatalf("enemies = %d, want %d", len(enemies), len(wantNames))
		}
		for i, e := range enemies {
			if e.Name != wantNames[i] {
				t.Errorf("enemy %d = %q, want %q", i, e.Name, wantNames[i])
			}
			if p, _ := s.PositionOf(e); p != pos(0, i+1) {
				t.Errorf("enemy %d at %s", i, p)
			}
		}
	})

	t.Run("overflow lands in back rows", func(t *testing.T) {
		var party []*domain.Unit
		for i := 0; i < 6; i++ {
			party = append(party, domain.NewUnit("U", domain.ArchetypeWarrior))
		}
		s := Deploy(DefaultConfig(), party, rand.New(rand.NewSource(7)))

		seen := map[domain.Position]bool{}
		for _, u := range s.Units(domain.SidePlayer) {
			p, ok := s.PositionOf(u)
			if !ok || p.Row < 3 {
				t.Errorf("unit placed at %s", p)
			}
			if seen[p] {
				t.Errorf("two units at %s", p)
			}
			seen[p] = true
		}
		if len(seen) != 6 {
			t.Errorf("placed %d units, want 6", len(seen))
		}
		if len(s.Units(domain.SideEnemy)) != 3 {
			t.Error("enemy squad is capped at 3")
		}
	})
}

// Полный бой на случайных кубиках: игрок только пропускает действия,
// противник доводит бой до поражения.
func TestFullBattle_PassivePlayerLoses(t *testing.T) {
	s := Deploy(DefaultConfig(), domain.DefaultRoster(), rand.New(rand.NewSource(42)))

	var queue []Command
	for step := 0; step < 20000 && s.Outcome() == domain.OutcomeUndecided; step++ {
		var res Result
		switch {
		case len(queue) > 0:
			res = s.Apply(queue[0])
			queue = queue[1:]
		case s.ActiveSide() == domain.SidePlayer && len(s.Remaining(domain.SidePlayer)) > 0:
			p, _ := s.PositionOf(s.Remaining(domain.SidePlayer)[0])
			s.Apply(SelectTile(p))
			s.Apply(Simple(domain.ActionStay))
			res = s.Apply(Simple(domain.ActionPass))
		default:
			res = s.Apply(Simple(domain.ActionEndTurn))
		}
		for _, e := range res.Scheduled() {
			queue = append(queue, e.Command)
		}
	}

	if s.Outcome() != domain.OutcomeDefeat {
		t.Fatalf("outcome = %s, want DEFEAT", s.Outcome())
	}
	if s.Round() < 2 {
		t.Errorf("round = %d, battle cannot end in the first round", s.Round())
	}
}

func TestDeployVersus_Lineup(t *testing.T) {
	lineup := []*domain.Unit{
		domain.NewUnit("Boss", domain.ArchetypeRuneguard),
		domain.NewUnit("Minion", domain.ArchetypeScout),
	}
	s := DeployVersus(DefaultConfig(), nil, lineup, rand.New(rand.NewSource(1)))

	enemies := s.Units(domain.SideEnemy)
	if len(enemies) != 2 {
		t.Fatalf("enemies = %d, want 2", len(enemies))
	}
	for i, e := range enemies {
		if e != lineup[i] {
			t.Errorf("enemy %d = %s, want %s", i, e.Name, lineup[i].Name)
		}
		if p, _ := s.PositionOf(e); p != pos(0, i+1) {
			t.Errorf("enemy %d at %s, want (0, %d)", i, p, i+1)
		}
	}
}
