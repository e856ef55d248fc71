// internal/component/wave.go
package component

import "go-tower-siege/internal/defs"

// Wave is the running wave: its shuffled spawn queue and pacing.
type Wave struct {
	Index            int
	Queue            []defs.EnemyKind
	SpawnDelay       float64 // seconds
	HealthMultiplier float64
	LastSpawnAt      float64 // game time of the previous spawn
	Spawned          int
	Alive            int // spawned units not yet removed
}

// Drained reports whether every queued unit has spawned.
func (w *Wave) Drained() bool {
	return len(w.Queue) == 0
}

// Complete reports whether the wave has nothing left to spawn and nothing
// left alive.
func (w *Wave) Complete() bool {
	return w.Drained() && w.Alive == 0
}
