// internal/entity/ecs.go
package entity

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/types"
	"go-tower-siege/pkg/gridmap"
	"slices"
)

// ECS is the simulation context: every live entity and the session record.
// It is owned by one controller and mutated only from its tick and command
// methods.
type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Positions   map[types.EntityID]*component.Position
	Velocities  map[types.EntityID]*component.Velocity
	Paths       map[types.EntityID]*component.Path
	Healths     map[types.EntityID]*component.Health
	Renderables map[types.EntityID]*component.Renderable
	Towers      map[types.EntityID]*component.Tower
	Combats     map[types.EntityID]*component.Combat
	Projectiles map[types.EntityID]*component.Projectile
	Enemies     map[types.EntityID]*component.Enemy
	Occupancy   map[gridmap.Cell]types.EntityID
	Wave        *component.Wave
	GameState   *component.GameState
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Positions:   make(map[types.EntityID]*component.Position),
		Velocities:  make(map[types.EntityID]*component.Velocity),
		Paths:       make(map[types.EntityID]*component.Path),
		Healths:     make(map[types.EntityID]*component.Health),
		Renderables: make(map[types.EntityID]*component.Renderable),
		Towers:      make(map[types.EntityID]*component.Tower),
		Combats:     make(map[types.EntityID]*component.Combat),
		Projectiles: make(map[types.EntityID]*component.Projectile),
		Enemies:     make(map[types.EntityID]*component.Enemy),
		Occupancy:   make(map[gridmap.Cell]types.EntityID),
		Wave:        nil,
		GameState: &component.GameState{
			Phase:       component.PhaseIdle,
			BuildCounts: make(map[defs.TowerKind]int),
		},
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// EnemyIDs returns live hostile unit IDs in spawn order. Systems iterate in
// this order so "first found" is deterministic.
func (ecs *ECS) EnemyIDs() []types.EntityID {
	return sortedKeys(ecs.Enemies)
}

// TowerIDs returns emplacement IDs in placement order.
func (ecs *ECS) TowerIDs() []types.EntityID {
	return sortedKeys(ecs.Towers)
}

// ProjectileIDs returns projectile IDs in firing order.
func (ecs *ECS) ProjectileIDs() []types.EntityID {
	return sortedKeys(ecs.Projectiles)
}

// RemoveEntity deletes every component of id and frees its cell.
func (ecs *ECS) RemoveEntity(id types.EntityID) {
	if tower, ok := ecs.Towers[id]; ok {
		if ecs.Occupancy[tower.Cell] == id {
			delete(ecs.Occupancy, tower.Cell)
		}
	}
	delete(ecs.Positions, id)
	delete(ecs.Velocities, id)
	delete(ecs.Paths, id)
	delete(ecs.Healths, id)
	delete(ecs.Renderables, id)
	delete(ecs.Towers, id)
	delete(ecs.Combats, id)
	delete(ecs.Projectiles, id)
	delete(ecs.Enemies, id)
}

func sortedKeys[T any](m map[types.EntityID]T) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
