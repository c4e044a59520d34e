package engine

import (
	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
	"skirmish-server/pkg/api"
)

// BuildState создает полный "снимок" боя и армии для клиента.
// Вызывается под мьютексом сервиса.
func (s *Service) BuildState() *api.ServerResponse {
	// Копия логов, чтобы не было гонки данных
	logsCopy := make([]api.LogEntry, len(s.Logs))
	copy(logsCopy, s.Logs)

	resp := &api.ServerResponse{
		Type:  "UPDATE",
		Tick:  s.tick,
		Army:  s.buildArmy(),
		Logs:  logsCopy,
		Error: s.lastErr,
	}
	if s.lastErr != "" {
		resp.Type = "ERROR"
	}
	if s.Session != nil {
		resp.Battle = buildBattle(s.Session)
	}
	return resp
}

func buildBattle(sess *battle.Session) *api.BattleView {
	size := sess.GridSize()
	view := &api.BattleView{
		Grid:                   api.GridMeta{Width: size, Height: size},
		Round:                  sess.Round(),
		ActiveSide:             sess.ActiveSide().String(),
		Phase:                  sess.Phase().String(),
		Outcome:                sess.Outcome().String(),
		PlayerPulse:            sess.Pulse(domain.SidePlayer),
		EnemyPulse:             sess.Pulse(domain.SideEnemy),
		AbilitiesEnabled:       sess.AbilitiesEnabled(),
		ExtraActivationPending: sess.ExtraActivationPending(),
		ReactivateMode:         sess.ReactivateMode(),
		CanBuyExtraActivation:  sess.CanBuyExtraActivation(),
		CanBuyReactivate:       sess.CanBuyReactivate(),
		RoundPending:           sess.RoundPending(),
		MoveTiles:              posViews(sess.MoveTiles()),
		TargetTiles:            posViews(sess.TargetTiles()),
		Units:                  make([]api.UnitView, 0),
		Log:                    battleLog(sess.Log()),
	}

	if u := sess.Activating(); u != nil {
		view.ActivatingID = u.ID.String()
		if p, ok := sess.PositionOf(u); ok {
			view.Selected = &api.PosView{Row: p.Row, Col: p.Col}
		}
	} else if p, ok := sess.Inspected(); ok {
		view.Selected = &api.PosView{Row: p.Row, Col: p.Col}
	}

	for _, side := range []domain.Side{domain.SidePlayer, domain.SideEnemy} {
		for _, u := range sess.Units(side) {
			uv := toUnitView(u)
			uv.Side = side.String()
			uv.Activated = sess.IsActivated(u)
			if p, ok := sess.PositionOf(u); ok && u.IsAlive() {
				uv.Pos = &api.PosView{Row: p.Row, Col: p.Col}
			}
			view.Units = append(view.Units, uv)
		}
	}
	return view
}

func (s *Service) buildArmy() *api.ArmyView {
	view := &api.ArmyView{
		Units:    make([]api.UnitView, 0, len(s.Army.Units)),
		Party:    make([]string, 0, s.Party.Size()),
		MaxParty: s.Party.MaxSize,
		Upgrades: copyUpgrades(s.Army.Upgrades),
	}
	for _, u := range s.Army.Units {
		uv := toUnitView(u)
		uv.Evolution = evolutionView(u)
		view.Units = append(view.Units, uv)
	}
	for _, u := range s.Party.Units() {
		view.Party = append(view.Party, u.ID.String())
	}
	return view
}

// toUnitView конвертирует бойца в DTO для отправки клиенту.
func toUnitView(u *domain.Unit) api.UnitView {
	faces := make([]string, 0, len(u.DieFaces))
	for _, f := range u.DieFaces {
		faces = append(faces, f.String())
	}
	return api.UnitView{
		ID:        u.ID.String(),
		Name:      u.Name,
		Archetype: u.Archetype.String(),
		IsDead:    !u.IsAlive(),
		HP:        u.CurrentHP,
		MaxHP:     u.MaxHP,
		Attack:    u.Attack,
		Defense:   u.Defense,
		Movement:  u.Movement,
		Range:     u.Range,
		Level:     u.Level,
		XP:        u.XP,
		DieFaces:  faces,
		Abilities: append([]string(nil), u.Abilities...),
		Traits:    append([]string(nil), u.Traits...),
	}
}

func evolutionView(u *domain.Unit) []api.EvolutionTileView {
	grid := domain.EvolutionGrid(u)
	out := make([]api.EvolutionTileView, 0, len(grid))
	for _, tile := range grid {
		tv := api.EvolutionTileView{Row: tile.Pos.Row, Col: tile.Pos.Col, State: tile.State.String()}
		if tile.Effect != nil {
			tv.Reward = tile.Effect.Value()
			tv.Label = tile.Effect.Label
		}
		out = append(out, tv)
	}
	return out
}

func battleLog(entries []battle.LogEntry) []api.BattleLogEntry {
	out := make([]api.BattleLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, api.BattleLogEntry{
			Seq:   e.Seq,
			Round: e.Round,
			Side:  e.Side.String(),
			Type:  e.Type,
			Text:  e.Text,
		})
	}
	return out
}

func posViews(ps []domain.Position) []api.PosView {
	out := make([]api.PosView, 0, len(ps))
	for _, p := range ps {
		out = append(out, api.PosView{Row: p.Row, Col: p.Col})
	}
	return out
}
