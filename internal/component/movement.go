// internal/component/movement.go
package component

import "go-tower-siege/internal/utils"

// Position is a world-space point. Hostile units and projectiles move in
// three dimensions; emplacements sit on the ground plane.
type Position = utils.Vec3

// Velocity holds the scalar speed in world units per second.
type Velocity struct {
	Speed float64
}

// Path is the fixed waypoint route of a hostile unit. CurrentIndex is the
// waypoint the unit is walking toward.
type Path struct {
	Waypoints    []utils.Vec3
	CurrentIndex int
}

// Finished reports whether the final waypoint has been reached.
func (p *Path) Finished() bool {
	return p.CurrentIndex >= len(p.Waypoints)
}
