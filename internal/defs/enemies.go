// internal/defs/enemies.go
package defs

import (
	"fmt"
	"go-tower-siege/internal/config"
	"image/color"
)

// EnemyKind is the closed set of hostile unit types.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyIceGolem
	EnemyFireImp
)

// EnemyKinds lists every kind; waves iterate it so spawn queues are built in a
// stable order before shuffling.
var EnemyKinds = []EnemyKind{EnemyNormal, EnemyIceGolem, EnemyFireImp}

var enemyKindIDs = map[EnemyKind]string{
	EnemyNormal:   "normal",
	EnemyIceGolem: "ice_golem",
	EnemyFireImp:  "fire_imp",
}

func (k EnemyKind) String() string {
	if id, ok := enemyKindIDs[k]; ok {
		return id
	}
	return fmt.Sprintf("enemy(%d)", int(k))
}

// ParseEnemyKind maps a definition ID back to its kind.
func ParseEnemyKind(id string) (EnemyKind, error) {
	for k, v := range enemyKindIDs {
		if v == id {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy id %q", id)
}

// EnemyDefinition holds all the static data for a specific type of enemy.
type EnemyDefinition struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Health   float64 `json:"health"`
	Speed    float64 `json:"speed"`
	Weakness Element `json:"weakness"`
	Visuals  Visuals `json:"visuals"`
}

// EnemyLibrary is the stat table indexed by kind.
var EnemyLibrary = map[EnemyKind]EnemyDefinition{
	EnemyNormal: {
		ID: "normal", Name: "Normal", Health: 100, Speed: config.UnitSpeed, Weakness: ElementNone,
		Visuals: Visuals{ModelKey: "enemy_normal", Scale: 1, Color: color.RGBA{136, 136, 136, 255}},
	},
	EnemyIceGolem: {
		ID: "ice_golem", Name: "Ice Golem", Health: 150, Speed: config.UnitSpeed, Weakness: ElementFire,
		Visuals: Visuals{ModelKey: "enemy_ice_golem", Scale: 1, Color: color.RGBA{0, 255, 255, 255}},
	},
	EnemyFireImp: {
		ID: "fire_imp", Name: "Fire Imp", Health: 80, Speed: config.UnitSpeed, Weakness: ElementIce,
		Visuals: Visuals{ModelKey: "enemy_fire_imp", Scale: 1, Color: color.RGBA{255, 68, 0, 255}},
	},
}

// ValidateEnemies rejects definitions the simulation cannot run.
func ValidateEnemies(lib map[EnemyKind]EnemyDefinition) error {
	for _, k := range EnemyKinds {
		def, ok := lib[k]
		if !ok {
			return fmt.Errorf("enemy %s: missing definition", k)
		}
		if def.Health <= 0 {
			return fmt.Errorf("enemy %s: health must be positive", k)
		}
		if def.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive", k)
		}
		if !def.Weakness.ValidWeakness() {
			return fmt.Errorf("enemy %s: invalid weakness %q", k, def.Weakness)
		}
	}
	return nil
}
