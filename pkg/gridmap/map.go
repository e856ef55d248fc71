// pkg/gridmap/map.go
package gridmap

import (
	"errors"
	"fmt"
	"math"
)

// TileKind is the terrain of one grid cell.
type TileKind int

const (
	TilePath      TileKind = 0
	TileBuildable TileKind = 1
	TileGoal      TileKind = 2
)

// Cell addresses a grid square by column (X) and row (Z).
type Cell struct {
	X, Z int
}

// Grid is the static battlefield: terrain per cell plus the fixed route
// hostile units walk. Rows are indexed by Z, columns by X.
type Grid struct {
	Tiles     [][]TileKind
	Waypoints []Cell
	TileSize  float64
}

// DefaultLayout is the 20x15 battlefield used by both front-ends.
var DefaultLayout = [][]TileKind{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 2},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// DefaultWaypoints is the route across DefaultLayout, entry first.
var DefaultWaypoints = []Cell{
	{0, 1}, {4, 1}, {4, 3}, {10, 3},
	{10, 6}, {6, 6}, {6, 8}, {13, 8},
	{13, 10}, {19, 10},
}

// NewDefaultGrid returns the standard battlefield.
func NewDefaultGrid(tileSize float64) *Grid {
	tiles := make([][]TileKind, len(DefaultLayout))
	for z, row := range DefaultLayout {
		tiles[z] = append([]TileKind(nil), row...)
	}
	return &Grid{
		Tiles:     tiles,
		Waypoints: append([]Cell(nil), DefaultWaypoints...),
		TileSize:  tileSize,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	if len(g.Tiles) == 0 {
		return 0
	}
	return len(g.Tiles[0])
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return len(g.Tiles)
}

// InBounds reports whether c lies on the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Z >= 0 && c.Z < len(g.Tiles) && c.X >= 0 && c.X < len(g.Tiles[c.Z])
}

// Tile returns the terrain at c. Out-of-bounds cells report false.
func (g *Grid) Tile(c Cell) (TileKind, bool) {
	if !g.InBounds(c) {
		return 0, false
	}
	return g.Tiles[c.Z][c.X], true
}

// IsBuildable reports whether an emplacement may stand on c.
func (g *Grid) IsBuildable(c Cell) bool {
	t, ok := g.Tile(c)
	return ok && t == TileBuildable
}

// CellToWorld returns the ground-plane world coordinates of the cell center.
func (g *Grid) CellToWorld(c Cell) (x, z float64) {
	return float64(c.X) * g.TileSize, float64(c.Z) * g.TileSize
}

// WorldToCell returns the cell nearest to the world point.
func (g *Grid) WorldToCell(x, z float64) Cell {
	return Cell{X: int(math.Round(x / g.TileSize)), Z: int(math.Round(z / g.TileSize))}
}

// Validate checks that the route is walkable: at least two waypoints, all on
// the grid and on path or goal terrain.
func (g *Grid) Validate() error {
	if g.TileSize <= 0 {
		return errors.New("gridmap: tile size must be positive")
	}
	if len(g.Waypoints) < 2 {
		return errors.New("gridmap: route needs at least two waypoints")
	}
	for i, wp := range g.Waypoints {
		t, ok := g.Tile(wp)
		if !ok {
			return fmt.Errorf("gridmap: waypoint %d %v is off the grid", i, wp)
		}
		if t == TileBuildable {
			return fmt.Errorf("gridmap: waypoint %d %v is on buildable terrain", i, wp)
		}
	}
	return nil
}
