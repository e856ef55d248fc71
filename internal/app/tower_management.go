// internal/app/tower_management.go
package app

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/system"
	"go-tower-siege/internal/types"
	"go-tower-siege/pkg/gridmap"
)

// RequestBuild places an emplacement of kind on cell. The cell must be
// buildable and free and the full cost must be affordable; a rejected build
// changes nothing.
func (g *Game) RequestBuild(cell gridmap.Cell, kind defs.TowerKind) interfaces.Status {
	if g.ecs.GameState.Ended() {
		return interfaces.StatusNoActionTaken
	}
	def, ok := defs.TowerLibrary[kind]
	if !ok {
		return interfaces.StatusNoActionTaken
	}
	if !g.Grid.IsBuildable(cell) {
		return interfaces.StatusInvalidPlacement
	}
	if _, occupied := g.ecs.Occupancy[cell]; occupied {
		return interfaces.StatusInvalidPlacement
	}
	if !g.EconomySystem.Spend(def.Cost) {
		return interfaces.StatusInsufficientFunds
	}

	id := g.createTowerEntity(cell, kind, def)
	g.EconomySystem.RecordBuild(kind)
	g.eventDispatcher.Dispatch(event.Event{Type: event.TowerPlaced, Data: event.TowerData{ID: id, Kind: kind, Cell: cell}})
	g.refreshSnapshot()
	return interfaces.StatusOK
}

// RequestSell removes the emplacement on cell and refunds half its recorded
// cost, rounded down.
func (g *Game) RequestSell(cell gridmap.Cell) interfaces.Status {
	if g.ecs.GameState.Ended() {
		return interfaces.StatusNoActionTaken
	}
	id, ok := g.ecs.Occupancy[cell]
	if !ok {
		return interfaces.StatusNoActionTaken
	}
	tower, ok := g.ecs.Towers[id]
	if !ok {
		return interfaces.StatusNoActionTaken
	}

	data := event.TowerData{ID: id, Kind: tower.Kind, Cell: cell}
	g.EconomySystem.Credit(system.RefundFor(tower.Cost))
	g.disposeEntity(id)
	g.eventDispatcher.Dispatch(event.Event{Type: event.TowerRemoved, Data: data})
	g.refreshSnapshot()
	return interfaces.StatusOK
}

// TowerAt returns the emplacement standing on cell.
func (g *Game) TowerAt(cell gridmap.Cell) (types.EntityID, bool) {
	id, ok := g.ecs.Occupancy[cell]
	return id, ok
}

// createTowerEntity copies the definition's stats into a new emplacement so
// later definition reloads never change a standing tower.
func (g *Game) createTowerEntity(cell gridmap.Cell, kind defs.TowerKind, def defs.TowerDefinition) types.EntityID {
	id := g.ecs.NewEntity()
	x, z := g.Grid.CellToWorld(cell)
	g.ecs.Positions[id] = &component.Position{X: x, Z: z}
	g.ecs.Towers[id] = &component.Tower{
		Kind:      kind,
		Cell:      cell,
		Cost:      def.Cost,
		ShotCount: def.ShotCount,
		Spread:    def.Spread,
		Stats:     def.CombatStats,
	}
	g.ecs.Combats[id] = component.NewCombat(def.FireInterval())
	g.ecs.Occupancy[cell] = id
	g.attachVisual(id, def.Visuals.ModelKey, def.Visuals.Scale)
	return id
}
