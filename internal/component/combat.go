// internal/component/combat.go
package component

import "math"

// Health tracks hit points. Max is the wave-scaled baseline.
type Health struct {
	Value float64
	Max   float64
}

// Combat gates how often an emplacement may fire.
type Combat struct {
	FireInterval float64 // seconds between volleys
	LastFired    float64 // game time of the last volley
}

// NewCombat returns a gate that allows an immediate first volley.
func NewCombat(interval float64) *Combat {
	return &Combat{FireInterval: interval, LastFired: math.Inf(-1)}
}

// Ready reports whether the cooldown has elapsed at game time now.
func (c *Combat) Ready(now float64) bool {
	return now-c.LastFired >= c.FireInterval
}
