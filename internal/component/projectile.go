// internal/component/projectile.go
package component

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
)

// Projectile is a shot in flight. It travels in a straight line until it hits
// a unit or has covered Stats.Range.
type Projectile struct {
	Source    types.EntityID // emplacement that fired it
	Origin    utils.Vec3
	Direction utils.Vec3 // unit length
	Speed     float64
	Stats     defs.CombatStats
	Traveled  float64
	Expired   bool
	Hit       bool
}

// ShouldRemove reports whether the projectile is finished.
func (p *Projectile) ShouldRemove() bool {
	return p.Expired || p.Hit
}
