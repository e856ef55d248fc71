// pkg/render/scene.go
package render

import (
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"go-tower-siege/pkg/gridmap"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hitFlashDuration = 0.1 // seconds
	projectileKey    = "projectile"
)

// sprite is the visual handle the scene gives out.
type sprite struct {
	seq        int
	key        string
	pos        utils.Vec3
	scale      float64
	color      color.RGBA
	flashUntil float64
}

// Scene is a flat top-down view of the battlefield. It implements
// interfaces.Renderer: the simulation creates, places and removes sprites,
// the scene only draws them.
type Scene struct {
	grid     *gridmap.Grid
	colors   *MapColors
	palette  map[string]color.RGBA
	sprites  map[*sprite]struct{}
	seq      int
	clock    float64
	mapImage *ebiten.Image
	handleOf func(types.EntityID) (interfaces.VisualHandle, bool)
}

// NewScene builds the scene and pre-renders the static map.
func NewScene(grid *gridmap.Grid, colors *MapColors) *Scene {
	s := &Scene{
		grid:    grid,
		colors:  colors,
		palette: make(map[string]color.RGBA),
		sprites: make(map[*sprite]struct{}),
	}
	for _, def := range defs.TowerLibrary {
		s.palette[def.Visuals.ModelKey] = def.Visuals.Color
	}
	for _, def := range defs.EnemyLibrary {
		s.palette[def.Visuals.ModelKey] = def.Visuals.Color
	}
	s.palette[projectileKey] = color.RGBA{255, 255, 160, 255}
	s.RenderMapImage()
	return s
}

// Bind lets the scene resolve entity ids from UnitHit events to sprites.
func (s *Scene) Bind(dispatcher *event.Dispatcher, handleOf func(types.EntityID) (interfaces.VisualHandle, bool)) {
	s.handleOf = handleOf
	dispatcher.Subscribe(event.UnitHit, s)
}

// OnEvent starts the hit flash. The scene times it on its own clock.
func (s *Scene) OnEvent(e event.Event) {
	data, ok := e.Data.(event.UnitHitData)
	if !ok || s.handleOf == nil {
		return
	}
	h, ok := s.handleOf(data.ID)
	if !ok {
		return
	}
	if sp, ok := h.(*sprite); ok {
		sp.flashUntil = s.clock + hitFlashDuration
	}
}

// Update advances the scene clock by wall-clock seconds.
func (s *Scene) Update(deltaTime float64) {
	s.clock += deltaTime
}

func (s *Scene) GetVisualHandle(typeKey string) interfaces.VisualHandle {
	s.seq++
	c, ok := s.palette[typeKey]
	if !ok {
		c = config.TextLightColor
	}
	sp := &sprite{seq: s.seq, key: typeKey, color: c, scale: 1}
	s.sprites[sp] = struct{}{}
	return sp
}

func (s *Scene) PlaceVisual(h interfaces.VisualHandle, worldPosition utils.Vec3, scale float64) {
	if sp, ok := h.(*sprite); ok {
		sp.pos = worldPosition
		sp.scale = scale
	}
}

func (s *Scene) RemoveVisual(h interfaces.VisualHandle) {
	if sp, ok := h.(*sprite); ok {
		delete(s.sprites, sp)
	}
}

// SpriteCount returns the number of live sprites.
func (s *Scene) SpriteCount() int {
	return len(s.sprites)
}

// WorldToScreen maps a world point to screen pixels.
func WorldToScreen(grid *gridmap.Grid, p utils.Vec3) (float32, float32) {
	x := config.MapOffsetX + p.X/grid.TileSize*config.CellPixels + config.CellPixels/2
	y := config.MapOffsetY + p.Z/grid.TileSize*config.CellPixels + config.CellPixels/2
	return float32(x), float32(y)
}

// ScreenToCell returns the grid cell under a screen pixel.
func ScreenToCell(x, y int) gridmap.Cell {
	cx := (x - config.MapOffsetX)
	cy := (y - config.MapOffsetY)
	if cx < 0 {
		cx -= config.CellPixels
	}
	if cy < 0 {
		cy -= config.CellPixels
	}
	return gridmap.Cell{X: cx / config.CellPixels, Z: cy / config.CellPixels}
}

// RenderMapImage draws the static terrain once.
func (s *Scene) RenderMapImage() {
	w := s.grid.Width()*config.CellPixels + 1
	h := s.grid.Height()*config.CellPixels + 1
	img := ebiten.NewImage(w, h)
	img.Fill(s.colors.BackgroundColor)
	for z := 0; z < s.grid.Height(); z++ {
		for x := 0; x < s.grid.Width(); x++ {
			tile, _ := s.grid.Tile(gridmap.Cell{X: x, Z: z})
			c := s.colors.BuildableColor
			switch tile {
			case gridmap.TilePath:
				c = s.colors.PathColor
			case gridmap.TileGoal:
				c = s.colors.GoalColor
			}
			px, py := float32(x*config.CellPixels), float32(z*config.CellPixels)
			vector.DrawFilledRect(img, px, py, config.CellPixels, config.CellPixels, c, false)
			vector.StrokeRect(img, px, py, config.CellPixels, config.CellPixels, 1, s.colors.GridLineColor, false)
		}
	}
	s.mapImage = img
}

// Draw renders terrain, then towers, units and projectiles.
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.colors.BackgroundColor)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(config.MapOffsetX, config.MapOffsetY)
	screen.DrawImage(s.mapImage, op)

	ordered := make([]*sprite, 0, len(s.sprites))
	for sp := range s.sprites {
		ordered = append(ordered, sp)
	}
	sort.Slice(ordered, func(i, j int) bool {
		li, lj := layer(ordered[i].key), layer(ordered[j].key)
		if li != lj {
			return li < lj
		}
		return ordered[i].seq < ordered[j].seq
	})

	for _, sp := range ordered {
		x, y := WorldToScreen(s.grid, sp.pos)
		c := sp.color
		if s.clock < sp.flashUntil {
			c = config.HitFlashColor
		}
		switch layer(sp.key) {
		case 0:
			half := float32(config.TowerPixels)
			vector.DrawFilledRect(screen, x-half, y-half, 2*half, 2*half, DarkenColor(c), true)
			vector.DrawFilledCircle(screen, x, y, half*0.6, c, true)
			vector.StrokeRect(screen, x-half, y-half, 2*half, 2*half, s.colors.StrokeWidth, c, true)
		case 1:
			r := float32(config.UnitPixels * sp.scale)
			vector.DrawFilledCircle(screen, x, y, r, c, true)
			vector.StrokeCircle(screen, x, y, r, s.colors.StrokeWidth, DarkenColor(c), true)
		default:
			vector.DrawFilledCircle(screen, x, y, config.ProjectilePixels, c, true)
		}
	}
}

// DrawCursor outlines the cell under the pointer.
func (s *Scene) DrawCursor(screen *ebiten.Image, cell gridmap.Cell, c color.Color) {
	if !s.grid.InBounds(cell) {
		return
	}
	px := float32(config.MapOffsetX + cell.X*config.CellPixels)
	py := float32(config.MapOffsetY + cell.Z*config.CellPixels)
	vector.StrokeRect(screen, px, py, config.CellPixels, config.CellPixels, s.colors.StrokeWidth, c, false)
}

// DrawRange outlines an emplacement's reach.
func (s *Scene) DrawRange(screen *ebiten.Image, center utils.Vec3, worldRange float64, c color.Color) {
	x, y := WorldToScreen(s.grid, center)
	r := float32(worldRange / s.grid.TileSize * config.CellPixels)
	vector.StrokeCircle(screen, x, y, r, 1, c, true)
}

func layer(key string) int {
	switch {
	case strings.HasPrefix(key, "tower_"):
		return 0
	case strings.HasPrefix(key, "enemy_"):
		return 1
	}
	return 2
}
