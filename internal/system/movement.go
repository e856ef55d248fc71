// internal/system/movement.go
package system

import (
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/entity"
)

// MovementSystem walks hostile units along their waypoint routes.
type MovementSystem struct {
	ecs *entity.ECS
}

func NewMovementSystem(ecs *entity.ECS) *MovementSystem {
	return &MovementSystem{ecs: ecs}
}

// Update advances every live unit by speed*deltaTime. Distance left over
// after reaching a waypoint carries into the next segment. A unit that
// reaches the final waypoint is flagged as escaped.
func (s *MovementSystem) Update(deltaTime float64) {
	for _, id := range s.ecs.EnemyIDs() {
		enemy := s.ecs.Enemies[id]
		if !enemy.Targetable() {
			continue
		}
		pos, hasPos := s.ecs.Positions[id]
		vel, hasVel := s.ecs.Velocities[id]
		path, hasPath := s.ecs.Paths[id]
		if !hasPos || !hasVel || !hasPath {
			continue
		}

		remaining := vel.Speed * deltaTime
		for !path.Finished() && remaining > 0 {
			target := path.Waypoints[path.CurrentIndex]
			delta := target.Sub(*pos)
			dist := delta.Len()

			if dist <= remaining || dist < config.WaypointEpsilon {
				*pos = target
				remaining -= dist
				path.CurrentIndex++
				continue
			}
			*pos = pos.Add(delta.Scale(remaining / dist))
			remaining = 0
		}

		if path.Finished() {
			enemy.Escaped = true
		}
	}
}
