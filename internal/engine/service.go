package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine/handlers"
	"skirmish-server/internal/engine/handlers/actions"
	"skirmish-server/internal/engine/handlers/admin"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/internal/network"
	"skirmish-server/internal/systems"
	"skirmish-server/pkg/api"
	"skirmish-server/pkg/logger"
)

// maxDrainTasks - предохранитель Step от бесконечной цепочки отложенных команд.
const maxDrainTasks = 10000

// ErrNoStore - SAVE_ARMY без подключенного хранилища.
var ErrNoStore = errors.New("army store is not configured")

// ReplaySaver сохраняет завершенный бой. storage.ReplayService неявно реализует этот интерфейс.
type ReplaySaver interface {
	Save(session *domain.ReplaySession) (string, error)
}

// Service - единственный владелец боя. Все команды (клиента и планировщика)
// применяются по одной из цикла Run или из Step.
type Service struct {
	cfg Config

	// mu защищает состояние от чтения debug-ручками во время применения команды
	mu sync.Mutex

	Army      *domain.Army
	Party     *domain.Party
	Session   *battle.Session
	Scheduler *Scheduler

	Logs []api.LogEntry

	CommandChan chan domain.InternalCommand
	Hub         *network.Broadcaster

	store   storage.ArmyStore
	replays ReplaySaver

	battles int
	tick    int
	lastErr string
	lineup  []domain.UnitSnapshot
	replay  *domain.ReplaySession

	handlers map[domain.ActionType]handlers.HandlerFunc
}

// ServiceOption настраивает сервис.
type ServiceOption func(*Service)

// WithStore подключает хранилище армии для SAVE_ARMY.
func WithStore(store storage.ArmyStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

// WithReplaySaver сохраняет реплей каждого завершенного боя.
func WithReplaySaver(r ReplaySaver) ServiceOption {
	return func(s *Service) { s.replays = r }
}

// WithAdmin включает отладочные команды ADMIN_*.
func WithAdmin() ServiceOption {
	return func(s *Service) {
		s.handlers[domain.ActionAdminSetPulse] = handlers.WithPayload(admin.HandleSetPulse)
	}
}

func NewService(cfg Config, army *domain.Army, opts ...ServiceOption) *Service {
	if army == nil {
		army = domain.NewArmy(domain.DefaultRoster(), nil)
	}

	s := &Service{
		cfg:         cfg,
		Army:        army,
		Party:       domain.NewParty(cfg.MaxParty),
		Scheduler:   NewScheduler(),
		Logs:        []api.LogEntry{},
		CommandChan: make(chan domain.InternalCommand, 100),
		Hub:         network.NewBroadcaster(),
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
	}

	s.registerHandlers()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)

	// Бой
	s.handlers[domain.ActionSelectTile] = handlers.WithPayload(actions.HandleSelectTile)
	for _, a := range []domain.ActionType{
		domain.ActionStay,
		domain.ActionPass,
		domain.ActionCancel,
		domain.ActionEndTurn,
		domain.ActionBuyExtraActivation,
		domain.ActionBuyReactivate,
	} {
		s.handlers[a] = handlers.WithEmptyPayload(actions.BattleCommand(a))
	}

	// Армия и отряд
	s.handlers[domain.ActionAddXP] = handlers.WithPayload(actions.HandleAddXP)
	s.handlers[domain.ActionUnlockTile] = handlers.WithPayload(actions.HandleUnlockTile)
	s.handlers[domain.ActionSetUpgrade] = handlers.WithPayload(actions.HandleSetUpgrade)
	s.handlers[domain.ActionPartyAdd] = handlers.WithPayload(actions.HandlePartyAdd)
	s.handlers[domain.ActionPartyRemove] = handlers.WithPayload(actions.HandlePartyRemove)
	s.handlers[domain.ActionPartyClear] = handlers.WithEmptyPayload(actions.HandlePartyClear)

	s.handlers[domain.ActionRestart] = handlers.WithEmptyPayload(actions.HandleRestart)
	s.handlers[domain.ActionSaveArmy] = handlers.WithEmptyPayload(actions.HandleSaveArmy)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket, бот).
// Команды планировщика (ENEMY_STEP, START_ROUND) снаружи не принимаются.
func (s *Service) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown || actionType.IsScheduled() {
		logger.Log.WithFields(logrus.Fields{
			"component": "battle_service",
			"action":    externalCmd.Action,
			"client":    externalCmd.Token,
		}).Warn("Rejected client action")
		return
	}

	s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}
}

// --- LOOP ---

// Run - живой цикл: команды из канала и отложенные задачи по реальному таймеру.
// Виртуальные часы планировщика двигаются на прошедшее реальное время.
func (s *Service) Run(ctx context.Context) {
	logger.Log.WithField("component", "battle_service").Info("Battle loop started")

	last := time.Now()
	catchUp := func() {
		now := time.Now()
		if fired := s.advance(now.Sub(last)); fired > 0 {
			s.publishUpdate()
		}
		last = now
	}

	for {
		s.mu.Lock()
		wait, pending := s.Scheduler.UntilNext()
		s.mu.Unlock()

		var fire <-chan time.Time
		if pending {
			fire = time.After(wait)
		}

		select {
		case <-ctx.Done():
			logger.Log.WithField("component", "battle_service").Info("Battle loop stopped")
			return

		case cmd := <-s.CommandChan:
			s.mu.Lock()
			catchUp()
			s.executeCommand(cmd)
			s.mu.Unlock()

		case <-fire:
			s.mu.Lock()
			catchUp()
			s.mu.Unlock()
		}
	}
}

// Step синхронно применяет все команды из канала и затем все отложенные задачи.
// Для тестов, симулятора и headless-прогонов. Возвращает число сработавших задач.
func (s *Service) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()

drain:
	for {
		select {
		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
		default:
			break drain
		}
	}

	fired := 0
	for fired < maxDrainTasks {
		task, ok := s.Scheduler.PopNext()
		if !ok {
			break
		}
		s.runTask(task)
		fired++
	}
	if fired > 0 {
		s.publishUpdate()
	}
	return fired
}

// Advance двигает виртуальные часы и применяет наступившие задачи.
func (s *Service) Advance(d time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	fired := s.advance(d)
	if fired > 0 {
		s.publishUpdate()
	}
	return fired
}

func (s *Service) advance(d time.Duration) int {
	due := s.Scheduler.Advance(d)
	for _, task := range due {
		s.runTask(task)
	}
	return len(due)
}

func (s *Service) runTask(task Task) {
	if s.Session == nil {
		return
	}
	res := s.Session.Apply(task.Command)
	s.absorb(handlers.Applied{Command: task.Command, Result: res})
}

// executeCommand выполняет хендлер и пишет логи
func (s *Service) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		return
	}

	ctx := handlers.Context{
		Session:   s.Session,
		Army:      s.Army,
		Party:     s.Party,
		Lifecycle: s,
	}

	s.lastErr = ""
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "battle_service",
			"action":    cmd.Action.String(),
			"client":    cmd.Token,
		}).WithError(err).Warn("Command failed")
		s.lastErr = err.Error()
		s.publishUpdate()
		return
	}

	// Логирование результата
	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}

	if result.Battle != nil {
		s.absorb(*result.Battle)
	} else if cmd.Action == domain.ActionAdminSetPulse && s.Session != nil {
		s.record(cmd.Action, cmd.Payload)
	}

	s.publishUpdate()
}

// absorb разбирает итог перехода: реплей, лог, планировщик, конец боя.
func (s *Service) absorb(applied handlers.Applied) {
	res := applied.Result
	if res.Err != nil {
		s.lastErr = res.Err.Error()
		s.AddLog(res.Err.Error(), "ERROR")
	}
	if res.Accepted {
		s.record(applied.Command.Type, commandPayload(applied.Command))
	}

	for _, effect := range res.Effects {
		switch effect.Kind {
		case battle.EffectLog:
			s.AddLog(effect.Entry.Text, effect.Entry.Type)
		case battle.EffectScheduleNewRound, battle.EffectScheduleEnemyStep:
			s.Scheduler.Schedule(effect.Delay, effect.Kind, effect.Command)
		case battle.EffectBattleEnded:
			s.finishBattle(effect.Outcome)
		}
	}
}

func commandPayload(cmd battle.Command) json.RawMessage {
	if cmd.Type != domain.ActionSelectTile {
		return nil
	}
	payload, _ := json.Marshal(api.PositionPayload{Row: cmd.Pos.Row, Col: cmd.Pos.Col})
	return payload
}

// --- ЖИЗНЕННЫЙ ЦИКЛ БОЯ ---

// StartBattle запускает новый бой текущим отрядом.
// Каждый бой получает свой сид: Seed + номер боя.
func (s *Service) StartBattle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startBattle()
}

// RestartBattle - то же, что StartBattle. Вызывается хендлером RESTART из цикла,
// поэтому мьютекс уже захвачен.
func (s *Service) RestartBattle() {
	s.startBattle()
}

func (s *Service) startBattle() {
	seed := s.cfg.Seed + int64(s.battles)
	s.battles++

	// Отряд не выбран: берем первых бойцов армии. Пустая армия - ополченцы по умолчанию.
	if s.Party.Size() == 0 {
		for _, u := range s.Army.Units {
			if !s.Party.Add(u) {
				break
			}
		}
	}

	party := s.Party.Units()
	snapshots := make([]domain.UnitSnapshot, 0, len(party))
	for _, u := range party {
		snapshots = append(snapshots, u.Snapshot())
	}
	upgrades := copyUpgrades(s.Army.Upgrades)

	s.Session = newSession(s.cfg.Battle, seed, party, unitsFromSnapshots(s.lineup), upgrades)
	s.Scheduler.Clear()
	s.tick = 0
	s.lastErr = ""
	s.replay = &domain.ReplaySession{
		Seed:      seed,
		Timestamp: time.Now().Unix(),
		GridSize:  s.Session.GridSize(),
		Party:     snapshots,
		Enemies:   append([]domain.UnitSnapshot(nil), s.lineup...),
		Upgrades:  upgrades,
		Actions:   make([]domain.ReplayAction, 0),
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "battle_service",
		"battle":    s.battles,
		"seed":      seed,
		"party":     len(party),
		"enemies":   len(s.Session.Units(domain.SideEnemy)),
	}).Info("Battle started")
	s.AddLog("Battle begins! Round 1.", "SYSTEM")
}

// newSession - единая точка создания боя для живого сервиса и проигрывания реплея.
// Один генератор сначала расставляет отряд, затем бросает кубики.
func newSession(cfg battle.Config, seed int64, party, lineup []*domain.Unit, upgrades map[string]bool) *battle.Session {
	rng := rand.New(rand.NewSource(seed))
	return battle.DeployVersus(cfg, party, lineup, rng,
		battle.WithRoller(systems.NewRoller(rng)),
		battle.WithUpgrades(upgrades),
	)
}

// SetEnemyLineup задает состав противника для следующих боев. nil - генерация по отряду.
func (s *Service) SetEnemyLineup(lineup []domain.UnitSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineup = append([]domain.UnitSnapshot(nil), lineup...)
}

func (s *Service) finishBattle(outcome domain.Outcome) {
	entry := logger.Log.WithFields(logrus.Fields{
		"component": "battle_service",
		"battle":    s.battles,
		"outcome":   outcome.String(),
		"round":     s.Session.Round(),
		"actions":   s.tick,
	})
	entry.Info("Battle finished")

	if s.replays == nil || s.replay == nil {
		return
	}
	path, err := s.replays.Save(s.replay)
	if err != nil {
		entry.WithError(err).Error("Failed to save replay")
		return
	}
	entry.WithField("path", path).Info("Replay saved")
}

// SaveArmy пишет армию в хранилище.
func (s *Service) SaveArmy() error {
	if s.store == nil {
		return ErrNoStore
	}
	return s.store.Save(context.Background(), s.Army)
}

// Replay возвращает копию записи текущего боя (nil, если бой не начат).
func (s *Service) Replay() *domain.ReplaySession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.replay == nil {
		return nil
	}
	cp := *s.replay
	cp.Actions = append([]domain.ReplayAction(nil), s.replay.Actions...)
	return &cp
}

func (s *Service) record(action domain.ActionType, payload json.RawMessage) {
	s.tick++
	if s.replay == nil {
		return
	}
	s.replay.Actions = append(s.replay.Actions, domain.ReplayAction{
		Tick:    s.tick,
		Action:  action,
		Payload: payload,
	})
}

// publishUpdate рассылает снимок всем подписчикам и очищает буфер логов
func (s *Service) publishUpdate() {
	if s.Hub.SubscriberCount() > 0 {
		s.Hub.Broadcast(*s.BuildState())
	}
	s.Logs = []api.LogEntry{}
}

// Snapshot - снимок состояния под мьютексом (debug-ручки, тесты).
func (s *Service) Snapshot() *api.ServerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.BuildState()
}

// ScheduleDump - очередь отложенных команд под мьютексом.
func (s *Service) ScheduleDump() []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Scheduler.DebugDump()
}

// Outcome - итог текущего боя.
func (s *Service) Outcome() domain.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Session == nil {
		return domain.OutcomeUndecided
	}
	return s.Session.Outcome()
}

func copyUpgrades(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func unitsFromSnapshots(snaps []domain.UnitSnapshot) []*domain.Unit {
	units := make([]*domain.Unit, 0, len(snaps))
	for _, snap := range snaps {
		units = append(units, domain.FromSnapshot(snap))
	}
	return units
}
