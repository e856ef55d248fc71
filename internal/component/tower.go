// internal/component/tower.go
package component

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/pkg/gridmap"
)

// Tower is a placed emplacement. Its stats are copied from the library at
// placement so later definition reloads never change a standing tower.
type Tower struct {
	Kind      defs.TowerKind
	Cell      gridmap.Cell
	Cost      int
	ShotCount int
	Spread    float64
	Stats     defs.CombatStats
}
