// internal/ui/speed_button.go
package ui

import (
	"go-tower-siege/internal/config"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpeedButton cycles the simulation speed through config.SpeedMultipliers.
type SpeedButton struct {
	X, Y          float32
	Size          float32
	LastClickTime time.Time
	StateColors   []color.RGBA
	CurrentState  int
}

func NewSpeedButton(x, y, size float32) *SpeedButton {
	return &SpeedButton{
		X:    x,
		Y:    y,
		Size: size,
		StateColors: []color.RGBA{
			{100, 200, 100, 255},
			{230, 200, 60, 255},
			{230, 90, 60, 255},
		},
	}
}

// Multiplier returns the speed of the current state.
func (b *SpeedButton) Multiplier() float64 {
	return config.SpeedMultipliers[b.CurrentState%len(config.SpeedMultipliers)]
}

// Toggle advances to the next speed and returns it.
func (b *SpeedButton) Toggle() float64 {
	b.CurrentState = (b.CurrentState + 1) % len(config.SpeedMultipliers)
	b.LastClickTime = time.Now()
	return b.Multiplier()
}

// IsClicked uses a circle for hit testing since the shape is irregular.
func (b *SpeedButton) IsClicked(x, y int) bool {
	dx, dy := float32(x)-b.X, float32(y)-b.Y
	r := b.Size * 1.5
	return dx*dx+dy*dy <= r*r
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	size := b.Size * clickPulse(time.Since(b.LastClickTime).Seconds())
	c := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := size * 1.2
	width := size
	offset := width * 0.8
	fillPolygon(screen, [][2]float32{{b.X - width, b.Y - height/2}, {b.X, b.Y}, {b.X - width, b.Y + height/2}}, c)
	fillPolygon(screen, [][2]float32{{b.X - width + offset, b.Y - height/2}, {b.X + offset, b.Y}, {b.X - width + offset, b.Y + height/2}}, c)
}
