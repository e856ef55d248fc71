// internal/ui/wave_indicator.go
package ui

import (
	"go-tower-siege/internal/config"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// WaveIndicator shows the current wave number in Roman numerals.
type WaveIndicator struct {
	X, Y             int
	Color            color.RGBA
	EndlessColor     color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int
}

func NewWaveIndicator(x, y int) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            config.IdleStateColor,
		EndlessColor:     config.WaveStateColor,
		OutlineColor:     color.RGBA{255, 255, 255, 255},
		OutlineThickness: 1,
	}
}

// toRoman converts a positive integer to Roman numerals.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Draw renders waveNumber centered on X. Waves past the campaign use the
// endless color.
func (i *WaveIndicator) Draw(screen *ebiten.Image, face font.Face, waveNumber int, endless bool) {
	label := toRoman(waveNumber)
	if label == "" {
		return
	}
	textColor := i.Color
	if endless {
		textColor = i.EndlessColor
	}

	bounds := text.BoundString(face, label)
	x := i.X - bounds.Dx()/2
	for dy := -i.OutlineThickness; dy <= i.OutlineThickness; dy++ {
		for dx := -i.OutlineThickness; dx <= i.OutlineThickness; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, face, x+dx, i.Y+dy, i.OutlineColor)
		}
	}
	text.Draw(screen, label, face, x, i.Y, textColor)
}
