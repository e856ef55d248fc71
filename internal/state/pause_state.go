// internal/state/pause_state.go
package state

import (
	"go-tower-siege/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ State = (*PauseState)(nil)

// PauseState freezes the session while still drawing it. Building and
// selling stay available through the game screen only.
type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {
	s.previousState.Game().SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.previousState.Quit()
		s.stateMachine.SetState(NewMenuState(s.stateMachine, s.previousState.settings))
		return
	}

	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = unpause || s.previousState.pauseButton.IsClicked(x, y)
	}
	if unpause {
		s.previousState.pauseButton.TogglePause()
		s.stateMachine.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, config.OverlayColor, false)

	face := s.previousState.settings.Face
	text.Draw(screen, "PAUSED", face, config.ScreenWidth/2-21, config.ScreenHeight/2, config.TextLightColor)
	text.Draw(screen, "P / Esc resume    Q save and quit to menu", face, config.ScreenWidth/2-140, config.ScreenHeight/2+24, config.TextLightColor)
}

func (s *PauseState) Exit() {}

// Quit persists the paused session.
func (s *PauseState) Quit() {
	s.previousState.Quit()
}
