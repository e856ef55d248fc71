// internal/state/game_state.go
package state

import (
	"fmt"
	"go-tower-siege/internal/app"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/ui"
	"go-tower-siege/pkg/gridmap"
	"go-tower-siege/pkg/render"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var towerKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// GameState is the battlefield screen. It translates input into commands and
// draws the scene and HUD.
type GameState struct {
	sm          *StateMachine
	settings    Settings
	game        *app.Game
	scene       *render.Scene
	hud         *ui.HUD
	infoPanel   *ui.InfoPanel
	indicator   *ui.StateIndicator
	speedButton *ui.SpeedButton
	pauseButton *ui.PauseButton
	selected    defs.TowerKind
	summary     *interfaces.Summary
}

func NewGameState(sm *StateMachine, settings Settings) (*GameState, error) {
	settings = settings.withDefaults()
	grid := gridmap.NewDefaultGrid(config.TileSize)
	scene := render.NewScene(grid, &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		BuildableColor:  config.BuildableColor,
		PathColor:       config.PathColor,
		GoalColor:       config.GoalColor,
		GridLineColor:   config.GridLineColor,
		StrokeWidth:     float32(config.StrokeWidth),
	})

	game, err := app.NewGame(app.Options{
		Mode:        settings.Mode,
		Seed:        settings.Seed,
		AutoAdvance: settings.AutoAdvance,
		Continue:    settings.Continue,
		Store:       settings.Store,
		Renderer:    scene,
		Grid:        grid,
	})
	if err != nil {
		return nil, err
	}

	gs := &GameState{
		sm:          sm,
		settings:    settings,
		game:        game,
		scene:       scene,
		hud:         ui.NewHUD(20, 30, settings.Face),
		infoPanel:   ui.NewInfoPanel(settings.Face, game),
		indicator:   ui.NewStateIndicator(config.ScreenWidth-50, 50, 22),
		speedButton: ui.NewSpeedButton(config.ScreenWidth-120, 50, 14),
		pauseButton: ui.NewPauseButton(config.ScreenWidth-180, 50, 14, config.TextLightColor, config.SelectedColor),
	}
	gs.hud.Select(gs.selected)

	scene.Bind(game.Events(), func(id types.EntityID) (interfaces.VisualHandle, bool) {
		r, ok := game.ECS().Renderables[id]
		if !ok {
			return nil, false
		}
		return r.Handle, true
	})
	game.Events().Subscribe(event.SessionEnded, event.ListenerFunc(func(e event.Event) {
		if s, ok := e.Data.(interfaces.Summary); ok {
			gs.summary = &s
		}
	}))
	return gs, nil
}

// Game returns the running session.
func (g *GameState) Game() *app.Game {
	return g.game
}

func (g *GameState) Enter() {
	g.pauseButton.SetPaused(false)
	g.game.SetPaused(false)
}

func (g *GameState) Update(deltaTime float64) {
	g.scene.Update(deltaTime)
	if g.summary != nil {
		g.sm.SetState(NewSummaryState(g.sm, g.settings, g, *g.summary))
		return
	}
	g.infoPanel.Update(g.game.ECS())

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.pause()
		return
	}
	for i, key := range towerKeys {
		if inpututil.IsKeyJustPressed(key) && i < len(defs.TowerKinds) {
			g.selectTower(defs.TowerKinds[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.startNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.game.SetAutoAdvance(!g.game.Snapshot().AutoAdvance)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.game.SetSpeed(g.speedButton.Toggle())
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if g.isClickOnUI(x, y) {
			g.handleUIClick(x, y)
		} else {
			g.handleGameClick(x, y, ebiten.MouseButtonLeft)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		x, y := ebiten.CursorPosition()
		g.handleGameClick(x, y, ebiten.MouseButtonRight)
	}

	g.game.Tick(deltaTime)
}

func (g *GameState) selectTower(kind defs.TowerKind) {
	g.selected = kind
	g.hud.Select(kind)
}

func (g *GameState) startNextWave() {
	g.indicator.HandleClick()
	if st := g.game.RequestStartNextWave(); st != interfaces.StatusOK {
		g.hud.Message = "A wave is already running"
	} else {
		g.hud.Message = ""
	}
}

func (g *GameState) pause() {
	g.pauseButton.TogglePause()
	g.sm.SetState(NewPauseState(g.sm, g))
}

// isClickOnUI reports whether the click hit any widget.
func (g *GameState) isClickOnUI(x, y int) bool {
	if g.indicator.IsClicked(x, y) || g.speedButton.IsClicked(x, y) || g.pauseButton.IsClicked(x, y) {
		return true
	}
	if _, ok := g.hud.PaletteAt(x, y); ok {
		return true
	}
	return g.infoPanel.Contains(x, y)
}

func (g *GameState) handleUIClick(x, y int) {
	switch {
	case g.indicator.IsClicked(x, y):
		g.startNextWave()
	case g.speedButton.IsClicked(x, y):
		g.game.SetSpeed(g.speedButton.Toggle())
	case g.pauseButton.IsClicked(x, y):
		g.pause()
	case g.infoPanel.Contains(x, y):
		g.infoPanel.HandleClick(g.game.ECS(), x, y)
	default:
		if kind, ok := g.hud.PaletteAt(x, y); ok {
			g.selectTower(kind)
		}
	}
}

func (g *GameState) handleGameClick(x, y int, button ebiten.MouseButton) {
	cell := render.ScreenToCell(x, y)
	if !g.game.Grid.InBounds(cell) {
		g.infoPanel.Hide()
		return
	}

	if button == ebiten.MouseButtonRight {
		if g.game.RequestSell(cell) == interfaces.StatusOK {
			g.hud.Message = ""
		}
		return
	}

	if id, ok := g.game.TowerAt(cell); ok {
		g.infoPanel.SetTarget(id)
		return
	}
	if id, ok := g.enemyNear(x, y); ok {
		g.infoPanel.SetTarget(id)
		return
	}
	g.infoPanel.Hide()

	switch st := g.game.RequestBuild(cell, g.selected); st {
	case interfaces.StatusOK:
		g.hud.Message = ""
	case interfaces.StatusInsufficientFunds:
		def := defs.TowerLibrary[g.selected]
		g.hud.Message = fmt.Sprintf("Not enough currency for %s ($%d)", def.Name, def.Cost)
	case interfaces.StatusInvalidPlacement:
		g.hud.Message = "Cannot build there"
	default:
		log.Printf("Build at %v: %s", cell, st)
	}
}

// enemyNear finds a hostile unit under the pointer.
func (g *GameState) enemyNear(x, y int) (types.EntityID, bool) {
	ecs := g.game.ECS()
	for _, id := range ecs.EnemyIDs() {
		pos, ok := ecs.Positions[id]
		if !ok {
			continue
		}
		sx, sy := render.WorldToScreen(g.game.Grid, *pos)
		dx, dy := float32(x)-sx, float32(y)-sy
		if dx*dx+dy*dy <= config.UnitPixels*config.UnitPixels {
			return id, true
		}
	}
	return 0, false
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	x, y := ebiten.CursorPosition()
	cell := render.ScreenToCell(x, y)
	cursorColor := color.Color(config.CursorColor)
	if !g.game.Grid.IsBuildable(cell) {
		cursorColor = config.GoalColor
	}
	g.scene.DrawCursor(screen, cell, cursorColor)

	ecs := g.game.ECS()
	if tower, ok := ecs.Towers[g.infoPanel.TargetEntity]; ok {
		if pos, ok := ecs.Positions[g.infoPanel.TargetEntity]; ok {
			g.scene.DrawRange(screen, *pos, tower.Stats.Range, config.SelectedColor)
		}
	}

	snap := g.game.Snapshot()
	g.hud.Draw(screen, snap, x, y)
	stateColor := config.IdleStateColor
	if snap.IsWaveActive {
		stateColor = config.WaveStateColor
	}
	g.indicator.Draw(screen, stateColor)
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)
	g.infoPanel.Draw(screen, ecs)
}

func (g *GameState) Exit() {}

// Quit persists the session and releases its visuals.
func (g *GameState) Quit() {
	if err := g.game.Exit(); err != nil {
		log.Printf("Error: %v", err)
	}
}
