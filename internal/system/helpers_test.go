package system

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"go-tower-siege/pkg/gridmap"
)

func addEnemy(ecs *entity.ECS, pos utils.Vec3, hp float64, weakness defs.Element) types.EntityID {
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: pos.X, Y: pos.Y, Z: pos.Z}
	ecs.Healths[id] = &component.Health{Value: hp, Max: hp}
	ecs.Enemies[id] = &component.Enemy{Kind: defs.EnemyNormal, Weakness: weakness}
	return id
}

func addTower(ecs *entity.ECS, kind defs.TowerKind, pos utils.Vec3) types.EntityID {
	def := defs.TowerLibrary[kind]
	id := ecs.NewEntity()
	ecs.Positions[id] = &component.Position{X: pos.X, Y: pos.Y, Z: pos.Z}
	ecs.Towers[id] = &component.Tower{
		Kind:      kind,
		Cell:      gridmap.Cell{X: int(pos.X), Z: int(pos.Z)},
		Cost:      def.Cost,
		ShotCount: def.ShotCount,
		Spread:    def.Spread,
		Stats:     def.CombatStats,
	}
	ecs.Combats[id] = component.NewCombat(def.FireInterval())
	return id
}
