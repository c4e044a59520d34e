package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
	"skirmish-server/internal/infrastructure/storage"
	"skirmish-server/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}
	logger.Init("warn", "text")

	switch os.Args[1] {
	case "info":
		rs, ok := load()
		if !ok {
			return
		}
		fmt.Printf("seed:      %d\n", rs.Seed)
		fmt.Printf("recorded:  %s\n", time.Unix(rs.Timestamp, 0).Format(time.RFC3339))
		fmt.Printf("grid:      %d\n", rs.GridSize)
		fmt.Printf("actions:   %d\n", len(rs.Actions))
		printUnits("party", rs.Party)
		printUnits("enemies", rs.Enemies)
		for key, on := range rs.Upgrades {
			fmt.Printf("upgrade:   %s=%v\n", key, on)
		}
	case "actions":
		rs, ok := load()
		if !ok {
			return
		}
		for _, a := range rs.Actions {
			if len(a.Payload) > 0 {
				fmt.Printf("%5d  %-16s %s\n", a.Tick, a.Action, a.Payload)
			} else {
				fmt.Printf("%5d  %s\n", a.Tick, a.Action)
			}
		}
	case "play":
		rs, ok := load()
		if !ok {
			return
		}
		sess, err := engine.Playback(rs, battle.DefaultConfig())
		if err != nil {
			fmt.Printf("Playback failed: %v\n", err)
			return
		}
		fmt.Printf("outcome: %s after %d rounds\n", sess.Outcome(), sess.Round())
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: replaydump format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func load() (*domain.ReplaySession, bool) {
	if len(os.Args) < 3 {
		fmt.Printf("Usage: replaydump %s <file.skrp>\n", os.Args[1])
		return nil, false
	}
	// Load не трогает SaveDir
	rs, err := (&storage.ReplayService{}).Load(os.Args[2])
	if err != nil {
		fmt.Printf("Invalid replay: %v\n", err)
		return nil, false
	}
	return rs, true
}

func printUnits(label string, units []domain.UnitSnapshot) {
	for _, u := range units {
		fmt.Printf("%-10s %s (%s)\n", label+":", u.Name, u.UnitType)
	}
}

func printHelp() {
	fmt.Println(`Replay Dump - просмотр файлов реплеев .skrp
Commands:
  info <file>            - сид, поле, отряд и состав врагов
  actions <file>         - все записанные команды по тикам
  play <file>            - воспроизвести бой и показать исход
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
