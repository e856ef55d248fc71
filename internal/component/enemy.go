// internal/component/enemy.go
package component

import "go-tower-siege/internal/defs"

// Enemy marks a hostile unit.
type Enemy struct {
	Kind     defs.EnemyKind
	Weakness defs.Element
	Wave     int  // index of the wave that spawned the unit
	Dead     bool // set exactly once by the damage model
	Escaped  bool // reached the final waypoint
}

// ShouldRemove reports whether the unit leaves the battlefield this tick.
func (e *Enemy) ShouldRemove() bool {
	return e.Dead || e.Escaped
}

// Targetable reports whether towers and projectiles may still interact with
// the unit.
func (e *Enemy) Targetable() bool {
	return !e.Dead && !e.Escaped
}
