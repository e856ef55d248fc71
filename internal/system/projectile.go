// internal/system/projectile.go
package system

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/types"
)

// ProjectileSystem moves projectiles and resolves their hits.
type ProjectileSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	hitRadius       float64
}

func NewProjectileSystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *ProjectileSystem {
	return &ProjectileSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		hitRadius:       config.HitRadius,
	}
}

// Update advances every live projectile. A projectile hits the first live
// unit within the hit radius; otherwise it expires once its distance from the
// origin exceeds its range. Hits are checked before expiry.
func (s *ProjectileSystem) Update(deltaTime float64) {
	enemies := s.ecs.EnemyIDs()
	for _, id := range s.ecs.ProjectileIDs() {
		proj := s.ecs.Projectiles[id]
		if proj.ShouldRemove() {
			continue
		}
		pos, ok := s.ecs.Positions[id]
		if !ok {
			proj.Expired = true
			continue
		}

		*pos = pos.Add(proj.Direction.Scale(proj.Speed * deltaTime))
		proj.Traveled = pos.Dist(proj.Origin)

		if s.resolveHit(proj, *pos, enemies) {
			continue
		}
		if proj.Traveled > proj.Stats.Range {
			proj.Expired = true
		}
	}
}

func (s *ProjectileSystem) resolveHit(proj *component.Projectile, at component.Position, enemies []types.EntityID) bool {
	for _, enemyID := range enemies {
		if !s.ecs.Enemies[enemyID].Targetable() {
			continue
		}
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		if at.Dist(*enemyPos) < s.hitRadius {
			ApplyDamage(s.ecs, s.eventDispatcher, enemyID, proj.Stats.Damage, proj.Stats.Element)
			proj.Hit = true
			return true
		}
	}
	return false
}
