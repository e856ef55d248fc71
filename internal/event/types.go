// internal/event/types.go
package event

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/types"
	"go-tower-siege/pkg/gridmap"
)

const (
	UnitSpawned     EventType = "UnitSpawned"     // UnitSpawnedData
	UnitHit         EventType = "UnitHit"         // UnitHitData
	EnemyKilled     EventType = "EnemyKilled"     // types.EntityID
	EnemyEscaped    EventType = "EnemyEscaped"    // types.EntityID
	ProjectileFired EventType = "ProjectileFired" // types.EntityID of the projectile
	TowerPlaced     EventType = "TowerPlaced"     // TowerData
	TowerRemoved    EventType = "TowerRemoved"    // TowerData
	WaveStarted     EventType = "WaveStarted"     // wave index
	WaveEnded       EventType = "WaveEnded"       // wave index
	SessionEnded    EventType = "SessionEnded"    // interfaces.Summary
	SnapshotChanged EventType = "SnapshotChanged" // interfaces.Snapshot
)

// UnitSpawnedData describes a freshly spawned hostile unit.
type UnitSpawnedData struct {
	ID   types.EntityID
	Kind defs.EnemyKind
	Wave int
}

// UnitHitData is published on every damage application. Renderers time the
// hit flash from Time themselves.
type UnitHitData struct {
	ID      types.EntityID
	Time    float64 // game time of the hit
	Damage  float64 // after the weakness multiplier
	Element defs.Element
	Killed  bool
}

// TowerData identifies a placed or removed emplacement.
type TowerData struct {
	ID   types.EntityID
	Kind defs.TowerKind
	Cell gridmap.Cell
}
