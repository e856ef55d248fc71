// internal/state/summary_state.go
package state

import (
	"fmt"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SummaryState shows the end-of-run report over the final battlefield.
type SummaryState struct {
	sm       *StateMachine
	settings Settings
	board    *GameState
	summary  interfaces.Summary
}

func NewSummaryState(sm *StateMachine, settings Settings, board *GameState, summary interfaces.Summary) *SummaryState {
	return &SummaryState{sm: sm, settings: settings, board: board, summary: summary}
}

func (s *SummaryState) Enter() {
	if s.settings.History == nil {
		return
	}
	if err := s.settings.History.RecordRun(s.summary); err != nil {
		log.Printf("Error: recording run: %v", err)
	}
}

func (s *SummaryState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.board.Quit()
		s.settings.Continue = false
		s.sm.SetState(NewMenuState(s.sm, s.settings))
	}
}

func (s *SummaryState) Draw(screen *ebiten.Image) {
	s.board.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.OverlayColor, false)

	title := "DEFEAT"
	if s.summary.Victory {
		title = "VICTORY"
	}
	lines := []string{
		title,
		"",
		fmt.Sprintf("Mode: %s", s.summary.Mode),
		fmt.Sprintf("Final score: %d", s.summary.FinalScore),
		fmt.Sprintf("Waves survived: %d", s.summary.WavesSurvived),
		fmt.Sprintf("Lives left: %d", s.summary.Lives),
		fmt.Sprintf("Currency: %d", s.summary.Currency),
		"",
		"Towers built:",
	}
	for _, kind := range defs.TowerKinds {
		lines = append(lines, fmt.Sprintf("  %-8s %d", defs.TowerLibrary[kind].Name, s.summary.TowerBuildCounts[kind]))
	}
	lines = append(lines, "", "Press Enter to return to the menu")

	x, y := config.ScreenWidth/2-120, 260
	for i, line := range lines {
		text.Draw(screen, line, s.settings.Face, x, y+i*config.HUDLineHeight, config.TextLightColor)
	}
}

func (s *SummaryState) Exit() {}

// Quit releases the finished session.
func (s *SummaryState) Quit() {
	s.board.Quit()
}
