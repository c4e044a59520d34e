package main

import (
	"flag"
	"fmt"
	"os"

	"skirmish-server/internal/agent"
	"skirmish-server/internal/config"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/pkg/logger"
)

// simulate прогоняет сценарий N раз ботом и печатает статистику исходов.
func main() {
	var (
		scenarioPath string
		runs         int
		seed         int64
		replayDir    string
		logLevel     string
	)
	flag.StringVar(&scenarioPath, "scenario", "scenarios/skirmish.yaml", "Path to YAML scenario")
	flag.IntVar(&runs, "n", 100, "Number of battles")
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 uses the scenario seed)")
	flag.StringVar(&replayDir, "replays", "", "Directory to save every replay (empty disables)")
	flag.StringVar(&logLevel, "log", "warn", "Log level")
	flag.Parse()

	logger.Init(logLevel, "text")

	sc, err := config.LoadScenario(scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	ec := cfg.Engine()
	ec.Seed = sc.Seed
	if seed != 0 {
		ec.Seed = seed
	}
	if sc.GridSize > 0 {
		ec.Battle.GridSize = sc.GridSize
	}
	// Темп показа симулятору не нужен
	ec.Battle.RoundDelay = 0
	ec.Battle.EnemyDelay = 0

	army := domain.NewArmy(sc.PartyUnits(), sc.Upgrades)
	var opts []engine.ServiceOption
	if replayDir != "" {
		opts = append(opts, engine.WithReplaySaver(storage.NewReplayService(replayDir)))
	}
	svc := engine.NewService(ec, army, opts...)
	for _, u := range army.Units {
		svc.Party.Add(u)
	}
	svc.SetEnemyLineup(sc.EnemyLineup())

	stats := map[domain.Outcome]int{}
	totalRounds := 0
	for i := 0; i < runs; i++ {
		svc.StartBattle()
		outcome := agent.Play(svc, agent.DefaultMaxCommands)
		stats[outcome]++
		if b := svc.Snapshot().Battle; b != nil {
			totalRounds += b.Round
		}
	}

	name := sc.Name
	if name == "" {
		name = scenarioPath
	}
	fmt.Printf("scenario: %s  seed: %d  battles: %d\n", name, ec.Seed, runs)
	for _, o := range []domain.Outcome{domain.OutcomeVictory, domain.OutcomeDefeat, domain.OutcomeUndecided} {
		fmt.Printf("  %-9s %5d  (%5.1f%%)\n", o, stats[o], percent(stats[o], runs))
	}
	if runs > 0 {
		fmt.Printf("  avg rounds %.2f\n", float64(totalRounds)/float64(runs))
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
