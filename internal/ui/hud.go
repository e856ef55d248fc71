// internal/ui/hud.go
package ui

import (
	"fmt"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// HUD draws the session counters and the tower palette.
type HUD struct {
	X, Y    int
	face    font.Face
	Palette []*Button
	Wave    *WaveIndicator
	Message string
}

// NewHUD lays out one palette button per tower kind below the counters.
func NewHUD(x, y int, face font.Face) *HUD {
	h := &HUD{X: x, Y: y, face: face, Wave: NewWaveIndicator(config.ScreenWidth/2, y+config.HUDLineHeight)}
	for i, kind := range defs.TowerKinds {
		def := defs.TowerLibrary[kind]
		label := fmt.Sprintf("%d %s $%d", i+1, def.Name, def.Cost)
		h.Palette = append(h.Palette, NewButton(x+i*150, config.ScreenHeight-60, 140, 36, label))
	}
	return h
}

// Select highlights the palette button of kind.
func (h *HUD) Select(kind defs.TowerKind) {
	for i, b := range h.Palette {
		b.Selected = defs.TowerKinds[i] == kind
	}
}

// PaletteAt returns the tower kind whose button is under the point.
func (h *HUD) PaletteAt(x, y int) (defs.TowerKind, bool) {
	for i, b := range h.Palette {
		if b.Contains(x, y) {
			return defs.TowerKinds[i], true
		}
	}
	return 0, false
}

func (h *HUD) Draw(screen *ebiten.Image, snap interfaces.Snapshot, cursorX, cursorY int) {
	lines := []string{
		fmt.Sprintf("Lives: %d", snap.Lives),
		fmt.Sprintf("Currency: %d", snap.Currency),
		fmt.Sprintf("Score: %d", snap.Score),
	}
	if snap.Mode == defs.ModeStandard {
		lines = append(lines, fmt.Sprintf("Wave: %d/%d", snap.CurrentWaveIndex+1, snap.TotalWaveCount))
	} else {
		lines = append(lines, fmt.Sprintf("Wave: %d (endless)", snap.CurrentWaveIndex+1))
	}
	if snap.AutoAdvance {
		lines = append(lines, "Auto-advance on")
	}
	for i, line := range lines {
		text.Draw(screen, line, h.face, h.X, h.Y+i*config.HUDLineHeight, config.TextLightColor)
	}

	h.Wave.Draw(screen, h.face, snap.CurrentWaveIndex+1, snap.CurrentWaveIndex >= snap.TotalWaveCount)

	for _, b := range h.Palette {
		b.Draw(screen, h.face, b.Contains(cursorX, cursorY))
	}
	if h.Message != "" {
		text.Draw(screen, h.Message, h.face, h.X, config.ScreenHeight-75, config.TextLightColor)
	}
}
