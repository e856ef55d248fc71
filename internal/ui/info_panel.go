// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/system"
	"go-tower-siege/internal/types"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelWidth     = 260
	panelHeight    = 150
	panelMargin    = 5
	animationSpeed = 20.0
	lineHeight     = 18
)

// InfoPanel slides in from the right and describes the selected tower or
// unit. Towers get a sell button.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID
	fontFace     font.Face
	currentX     float64
	targetX      float64
	SellButton   Button
	commands     interfaces.Commands
}

func NewInfoPanel(face font.Face, commands interfaces.Commands) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentX: config.ScreenWidth,
		targetX:  config.ScreenWidth,
		commands: commands,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetX = config.ScreenWidth - panelWidth
}

func (p *InfoPanel) Hide() {
	p.targetX = config.ScreenWidth
}

// Contains reports whether the point lies on the visible panel.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && image.Pt(x, y).In(p.rect())
}

// Update animates the panel and drops targets that left the battlefield.
func (p *InfoPanel) Update(ecs *entity.ECS) {
	if p.TargetEntity != 0 {
		_, isTower := ecs.Towers[p.TargetEntity]
		_, isEnemy := ecs.Enemies[p.TargetEntity]
		if !isTower && !isEnemy {
			p.Hide()
		}
	}

	if p.currentX != p.targetX {
		diff := p.targetX - p.currentX
		if math.Abs(diff) < animationSpeed {
			p.currentX = p.targetX
		} else if diff > 0 {
			p.currentX += animationSpeed
		} else {
			p.currentX -= animationSpeed
		}
		if p.currentX >= config.ScreenWidth {
			p.IsVisible = false
			p.TargetEntity = 0
		}
	}
}

// HandleClick sells the shown tower when the sell button is hit.
func (p *InfoPanel) HandleClick(ecs *entity.ECS, x, y int) interfaces.Status {
	tower, ok := ecs.Towers[p.TargetEntity]
	if !ok || !p.SellButton.Contains(x, y) {
		return interfaces.StatusNoActionTaken
	}
	st := p.commands.RequestSell(tower.Cell)
	if st == interfaces.StatusOK {
		p.Hide()
	}
	return st
}

func (p *InfoPanel) rect() image.Rectangle {
	x := int(p.currentX)
	return image.Rect(x+panelMargin, config.MapOffsetY, x+panelWidth-panelMargin, config.MapOffsetY+panelHeight)
}

func (p *InfoPanel) Draw(screen *ebiten.Image, ecs *entity.ECS) {
	if !p.IsVisible {
		return
	}
	r := p.rect()
	bg := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), bg, true)
	border := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 2, border, true)

	x, y := r.Min.X+10, r.Min.Y+20
	if tower, ok := ecs.Towers[p.TargetEntity]; ok {
		def := defs.TowerLibrary[tower.Kind]
		lines := []string{
			def.Name,
			fmt.Sprintf("Damage: %.0f %s", tower.Stats.Damage, tower.Stats.Element),
			fmt.Sprintf("Range: %.1f", tower.Stats.Range),
			fmt.Sprintf("Fire rate: %.2f/s", 1/def.FireInterval()),
		}
		p.drawLines(screen, lines, x, y)

		p.SellButton = Button{
			Rect: image.Rect(r.Max.X-110, r.Max.Y-40, r.Max.X-10, r.Max.Y-10),
			Text: fmt.Sprintf("Sell $%d", system.RefundFor(tower.Cost)),
		}
		p.SellButton.Draw(screen, p.fontFace, false)
		return
	}
	if enemy, ok := ecs.Enemies[p.TargetEntity]; ok {
		def := defs.EnemyLibrary[enemy.Kind]
		lines := []string{def.Name, fmt.Sprintf("Weakness: %s", enemy.Weakness)}
		if health, ok := ecs.Healths[p.TargetEntity]; ok {
			lines = append(lines, fmt.Sprintf("Health: %.0f / %.0f", math.Max(health.Value, 0), health.Max))
		}
		if velocity, ok := ecs.Velocities[p.TargetEntity]; ok {
			lines = append(lines, fmt.Sprintf("Speed: %.2f", velocity.Speed))
		}
		p.drawLines(screen, lines, x, y)
	}
}

func (p *InfoPanel) drawLines(screen *ebiten.Image, lines []string, x, y int) {
	for i, line := range lines {
		text.Draw(screen, line, p.fontFace, x, y+i*lineHeight, config.TextLightColor)
	}
}
