package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"skirmish-server/internal/config"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/internal/infrastructure/storage/sqlite"
	"skirmish-server/internal/server"
	"skirmish-server/internal/version"
	"skirmish-server/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	var seed int64
	var replayPath, scenarioPath string
	// -seed перекрывает SKIRMISH_SEED. 0 - оставить как есть.
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps SKIRMISH_SEED or random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .skrp replay file to simulate")
	flag.StringVar(&scenarioPath, "scenario", "", "Path to YAML scenario with a fixed party and enemy lineup")
	flag.Parse()

	logger.Log.Info("Starting Skirmish server...")
	logger.Log.Info(version.String())

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("💿 Mode: Replay Simulation")
		if err := runReplay(cfg, replayPath); err != nil {
			logger.Log.Fatal("Replay failed: ", err)
		}
		return
	}

	if seed != 0 {
		cfg.Seed = seed
	}
	engineCfg := cfg.Engine()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		logger.Log.Fatal("Store open error: ", err)
	}
	defer closeStore()

	army := storage.LoadOrDefault(ctx, store)
	var sc *config.Scenario
	if scenarioPath != "" {
		sc, err = config.LoadScenario(scenarioPath)
		if err != nil {
			logger.Log.Fatal(err)
		}
		army = domain.NewArmy(sc.PartyUnits(), sc.Upgrades)
		if sc.Seed != 0 && seed == 0 {
			engineCfg.Seed = sc.Seed
		}
		if sc.GridSize > 0 {
			engineCfg.Battle.GridSize = sc.GridSize
		}
	}
	logger.Log.Infof("🎲 Master Seed: %d", engineCfg.Seed)

	replays := storage.NewReplayService(cfg.ReplayDir)
	opts := []engine.ServiceOption{
		engine.WithStore(store),
		engine.WithReplaySaver(replays),
	}
	if cfg.Admin {
		logger.Log.Warn("Admin commands enabled")
		opts = append(opts, engine.WithAdmin())
	}

	gameService := engine.NewService(engineCfg, army, opts...)
	if sc != nil {
		for _, u := range army.Units {
			gameService.Party.Add(u)
		}
		gameService.SetEnemyLineup(sc.EnemyLineup())
	}
	gameService.StartBattle()
	go gameService.Run(ctx)

	srv := server.New(gameService, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.Error("Server error: ", err)
	}

	logger.Log.Info("Shutting down...")

	// Незавершенный бой сохраняем как есть
	if rs := gameService.Replay(); rs != nil && gameService.Outcome() == domain.OutcomeUndecided {
		if path, err := replays.Save(rs); err != nil {
			logger.Log.WithError(err).Error("Failed to save replay")
		} else {
			logger.Log.WithField("path", path).Info("Replay saved")
		}
	}
	// Армия сценария временная, сейв не трогаем
	if sc == nil {
		if err := gameService.SaveArmy(); err != nil {
			logger.Log.WithError(err).Error("Failed to save army")
		}
	}

	logger.Log.Info("Done.")
}

func openStore(cfg config.Config) (storage.ArmyStore, func(), error) {
	if cfg.Store == config.StoreSQLite {
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Log.WithError(err).Warn("Close store")
			}
		}, nil
	}
	return storage.NewJSONStore(cfg.SavePath), func() {}, nil
}

func runReplay(cfg config.Config, path string) error {
	rs, err := storage.NewReplayService(cfg.ReplayDir).Load(path)
	if err != nil {
		return err
	}
	sess, err := engine.Playback(rs, cfg.Battle())
	if err != nil {
		return err
	}
	fmt.Printf("seed=%d actions=%d rounds=%d outcome=%s\n",
		rs.Seed, len(rs.Actions), sess.Round(), sess.Outcome())
	return nil
}
