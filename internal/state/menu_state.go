// internal/state/menu_state.go
package state

import (
	"fmt"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/storage"
	"go-tower-siege/internal/ui"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// MenuState picks the mode and whether to continue a saved run.
type MenuState struct {
	sm       *StateMachine
	settings Settings
	buttons  map[string]*ui.Button
	topRuns  map[defs.Mode][]storage.RunRow
}

func NewMenuState(sm *StateMachine, settings Settings) *MenuState {
	settings = settings.withDefaults()
	cx := config.ScreenWidth/2 - 120
	return &MenuState{
		sm:       sm,
		settings: settings,
		buttons: map[string]*ui.Button{
			"standard": ui.NewButton(cx, 300, 240, 44, "1  Standard"),
			"endless":  ui.NewButton(cx, 360, 240, 44, "2  Endless"),
			"continue": ui.NewButton(cx, 420, 240, 44, "C  Continue saved run"),
		},
		topRuns: make(map[defs.Mode][]storage.RunRow),
	}
}

func (m *MenuState) Enter() {
	m.buttons["continue"].Selected = m.settings.Continue
	if b, ok := m.buttons[string(m.settings.Mode)]; ok {
		b.Selected = true
	}
	if m.settings.History == nil {
		return
	}
	for _, mode := range []defs.Mode{defs.ModeStandard, defs.ModeEndless} {
		runs, err := m.settings.History.TopRuns(mode, 3)
		if err != nil {
			log.Printf("Error: loading %s run history: %v", mode, err)
			continue
		}
		m.topRuns[mode] = runs
	}
}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		m.toggleContinue()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		m.start(defs.ModeStandard)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		m.start(defs.ModeEndless)
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		m.start(m.settings.Mode)
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case m.buttons["standard"].Contains(x, y):
			m.start(defs.ModeStandard)
		case m.buttons["endless"].Contains(x, y):
			m.start(defs.ModeEndless)
		case m.buttons["continue"].Contains(x, y):
			m.toggleContinue()
		}
	}
}

func (m *MenuState) toggleContinue() {
	m.settings.Continue = !m.settings.Continue
	m.buttons["continue"].Selected = m.settings.Continue
}

func (m *MenuState) start(mode defs.Mode) {
	m.settings.Mode = mode
	gs, err := NewGameState(m.sm, m.settings)
	if err != nil {
		log.Printf("Error: starting %s session: %v", mode, err)
		return
	}
	m.sm.SetState(gs)
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	face := m.settings.Face
	text.Draw(screen, "TOWER SIEGE", face, config.ScreenWidth/2-40, 240, config.TextLightColor)

	x, y := ebiten.CursorPosition()
	for _, key := range []string{"standard", "endless", "continue"} {
		b := m.buttons[key]
		b.Draw(screen, face, b.Contains(x, y))
	}

	row := 520
	for _, mode := range []defs.Mode{defs.ModeStandard, defs.ModeEndless} {
		runs := m.topRuns[mode]
		if len(runs) == 0 {
			continue
		}
		text.Draw(screen, fmt.Sprintf("Best %s runs", mode), face, config.ScreenWidth/2-120, row, config.TextLightColor)
		row += config.HUDLineHeight
		for _, r := range runs {
			outcome := "defeat"
			if r.Victory {
				outcome = "victory"
			}
			line := fmt.Sprintf("  %6d pts  %2d waves  %s", r.Score, r.WavesSurvived, outcome)
			text.Draw(screen, line, face, config.ScreenWidth/2-120, row, config.TextLightColor)
			row += config.HUDLineHeight
		}
	}
}

func (m *MenuState) Exit() {}
