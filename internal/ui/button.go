// internal/ui/button.go
package ui

import (
	"go-tower-siege/internal/config"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// Button is a clickable rectangle with a centered label.
type Button struct {
	Rect     image.Rectangle
	Text     string
	Selected bool
}

// NewButton creates a button at (x, y) of the given size.
func NewButton(x, y, w, h int, label string) *Button {
	return &Button{Rect: image.Rect(x, y, x+w, y+h), Text: label}
}

// Contains reports whether the point lies on the button.
func (b *Button) Contains(x, y int) bool {
	return image.Pt(x, y).In(b.Rect)
}

// Draw renders the button. Hovered buttons are lighter, selected ones get a
// green border.
func (b *Button) Draw(screen *ebiten.Image, face font.Face, hovered bool) {
	bg := config.ButtonColor
	if hovered {
		bg = config.ButtonHover
	}
	x, y := float32(b.Rect.Min.X), float32(b.Rect.Min.Y)
	w, h := float32(b.Rect.Dx()), float32(b.Rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)

	var border color.Color = color.White
	if b.Selected {
		border = config.SelectedColor
	}
	vector.StrokeRect(screen, x, y, w, h, config.StrokeWidth, border, true)

	bounds := text.BoundString(face, b.Text)
	textX := b.Rect.Min.X + (b.Rect.Dx()-bounds.Dx())/2
	textY := b.Rect.Min.Y + (b.Rect.Dy()-bounds.Dy())/2 - bounds.Min.Y
	text.Draw(screen, b.Text, face, textX, textY, config.TextLightColor)
}
