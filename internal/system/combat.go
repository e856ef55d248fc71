// internal/system/combat.go
package system

import (
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"math"
)

// FireIntent asks the controller to spawn one projectile.
type FireIntent struct {
	Source    types.EntityID
	Target    types.EntityID
	Origin    utils.Vec3
	Direction utils.Vec3
	Stats     defs.CombatStats
}

// CombatSystem selects targets for emplacements and produces fire intents.
// It never creates entities itself.
type CombatSystem struct {
	ecs *entity.ECS
}

func NewCombatSystem(ecs *entity.ECS) *CombatSystem {
	return &CombatSystem{ecs: ecs}
}

// Update returns the projectiles every ready emplacement fires at game time
// now and resets the cooldown of those that fired.
func (s *CombatSystem) Update(now float64) []FireIntent {
	var intents []FireIntent
	enemies := s.ecs.EnemyIDs()
	for _, id := range s.ecs.TowerIDs() {
		tower := s.ecs.Towers[id]
		combat, hasCombat := s.ecs.Combats[id]
		towerPos, hasPos := s.ecs.Positions[id]
		if !hasCombat || !hasPos {
			continue
		}
		if tower.Stats.Range <= 0 || !combat.Ready(now) {
			continue
		}

		targetID := s.findNearestEnemyInRange(*towerPos, tower.Stats.Range, enemies)
		if targetID == 0 {
			continue
		}
		targetPos := *s.ecs.Positions[targetID]

		muzzle := towerPos.Add(utils.Vec3{Y: config.MuzzleHeight})
		intents = append(intents, volley(id, targetID, muzzle, targetPos, tower.ShotCount, tower.Spread, tower.Stats)...)
		combat.LastFired = now
	}
	return intents
}

// volley builds a symmetric fan of shotCount shots aimed at target. Shot i is
// rotated about the vertical axis by (i - (shotCount-1)/2) * spread.
func volley(source, targetID types.EntityID, muzzle, target utils.Vec3, shotCount int, spread float64, stats defs.CombatStats) []FireIntent {
	if shotCount < 1 {
		shotCount = 1
	}
	aim := target.Sub(muzzle).Normalize()
	intents := make([]FireIntent, 0, shotCount)
	for i := 0; i < shotCount; i++ {
		dir := aim
		if shotCount > 1 {
			offset := (float64(i) - float64(shotCount-1)/2) * spread
			dir = aim.RotateY(offset)
		}
		intents = append(intents, FireIntent{
			Source:    source,
			Target:    targetID,
			Origin:    muzzle,
			Direction: dir,
			Stats:     stats,
		})
	}
	return intents
}

// findNearestEnemyInRange returns the closest targetable unit strictly closer
// than rangeRadius to from, or 0. Ties go to the earliest spawned unit.
func (s *CombatSystem) findNearestEnemyInRange(from utils.Vec3, rangeRadius float64, enemies []types.EntityID) types.EntityID {
	var nearestEnemy types.EntityID
	minDistance := math.MaxFloat64
	for _, enemyID := range enemies {
		if !s.ecs.Enemies[enemyID].Targetable() {
			continue
		}
		enemyPos, ok := s.ecs.Positions[enemyID]
		if !ok {
			continue
		}
		distance := from.Dist(*enemyPos)
		if distance < rangeRadius && distance < minDistance {
			minDistance = distance
			nearestEnemy = enemyID
		}
	}
	return nearestEnemy
}
