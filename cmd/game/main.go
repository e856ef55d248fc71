// cmd/game/main.go
package main

import (
	"flag"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/state"
	"go-tower-siege/internal/storage"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.stateMachine.Shutdown()
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	modeFlag := flag.String("mode", "standard", "session mode: standard or endless")
	dbPath := flag.String("db", "", "SQLite file for progress and run history (in-memory when empty)")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	cont := flag.Bool("continue", false, "resume the saved run for the mode")
	auto := flag.Bool("auto", false, "start waves automatically")
	towersPath := flag.String("towers", "", "JSON file overriding tower definitions")
	enemiesPath := flag.String("enemies", "", "JSON file overriding enemy definitions")
	flag.Parse()

	mode, err := defs.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *towersPath != "" {
		if err := defs.LoadTowerDefinitions(*towersPath); err != nil {
			log.Fatalf("Failed to load tower definitions: %v", err)
		}
	}
	if *enemiesPath != "" {
		if err := defs.LoadEnemyDefinitions(*enemiesPath); err != nil {
			log.Fatalf("Failed to load enemy definitions: %v", err)
		}
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	settings := state.Settings{
		Mode:        mode,
		Seed:        *seed,
		AutoAdvance: *auto,
		Continue:    *cont,
	}
	if *dbPath != "" {
		db, err := storage.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		settings.Store = db
		settings.History = db
	} else {
		settings.Store = storage.NewMemoryStore()
	}

	// An explicit -mode skips the menu.
	startFromGame := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "mode" {
			startFromGame = true
		}
	})

	sm := state.NewStateMachine()
	if startFromGame {
		gs, err := state.NewGameState(sm, settings)
		if err != nil {
			log.Fatalf("Failed to start session: %v", err)
		}
		sm.SetState(gs)
	} else {
		sm.SetState(state.NewMenuState(sm, settings))
	}

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tower Siege")
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
