// internal/defs/towers.go
package defs

import (
	"fmt"
	"image/color"
)

// TowerKind is the closed set of emplacement types.
type TowerKind int

const (
	TowerTurret TowerKind = iota
	TowerShotgun
	TowerPyro
	TowerCryo
)

// TowerKinds lists every kind in build-bar order.
var TowerKinds = []TowerKind{TowerTurret, TowerShotgun, TowerPyro, TowerCryo}

var towerKindIDs = map[TowerKind]string{
	TowerTurret:  "turret",
	TowerShotgun: "shotgun",
	TowerPyro:    "pyro",
	TowerCryo:    "cryo",
}

func (k TowerKind) String() string {
	if id, ok := towerKindIDs[k]; ok {
		return id
	}
	return fmt.Sprintf("tower(%d)", int(k))
}

// ParseTowerKind maps a definition ID back to its kind.
func ParseTowerKind(id string) (TowerKind, error) {
	for k, v := range towerKindIDs {
		if v == id {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown tower id %q", id)
}

// CombatStats is the part of a tower definition that is copied into every
// projectile it fires.
type CombatStats struct {
	Damage  float64 `json:"damage"`
	Element Element `json:"element"`
	Range   float64 `json:"range"`
}

// TowerDefinition holds all the static data for a specific type of tower.
type TowerDefinition struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Cost       int     `json:"cost"`
	FireRateMs int     `json:"fire_rate_ms"` // minimum interval between volleys
	ShotCount  int     `json:"shot_count"`
	Spread     float64 `json:"spread"` // radians between adjacent shots of a volley
	CombatStats
	Visuals Visuals `json:"visuals"`
}

// FireInterval returns the cooldown between volleys in seconds.
func (d TowerDefinition) FireInterval() float64 {
	return float64(d.FireRateMs) / 1000.0
}

// Visuals contains parameters handed to the rendering collaborator.
type Visuals struct {
	ModelKey string     `json:"model_key"`
	Scale    float64    `json:"scale"`
	Color    color.RGBA `json:"color"`
}

// TowerLibrary is the stat table indexed by kind.
var TowerLibrary = map[TowerKind]TowerDefinition{
	TowerTurret: {
		ID: "turret", Name: "Turret", Cost: 50, FireRateMs: 800, ShotCount: 1,
		CombatStats: CombatStats{Damage: 30, Element: ElementPhysical, Range: 8},
		Visuals:     Visuals{ModelKey: "tower_turret", Scale: 7, Color: color.RGBA{255, 255, 0, 255}},
	},
	TowerShotgun: {
		ID: "shotgun", Name: "Shotgun", Cost: 120, FireRateMs: 1200, ShotCount: 3, Spread: 0.3,
		CombatStats: CombatStats{Damage: 20, Element: ElementPhysical, Range: 6},
		Visuals:     Visuals{ModelKey: "tower_shotgun", Scale: 7, Color: color.RGBA{255, 165, 0, 255}},
	},
	TowerPyro: {
		ID: "pyro", Name: "Pyro", Cost: 200, FireRateMs: 200, ShotCount: 1,
		CombatStats: CombatStats{Damage: 5, Element: ElementFire, Range: 7},
		Visuals:     Visuals{ModelKey: "tower_pyro", Scale: 7, Color: color.RGBA{255, 0, 0, 255}},
	},
	TowerCryo: {
		ID: "cryo", Name: "Cryo", Cost: 150, FireRateMs: 1500, ShotCount: 1,
		CombatStats: CombatStats{Damage: 80, Element: ElementIce, Range: 10},
		Visuals:     Visuals{ModelKey: "tower_cryo", Scale: 7, Color: color.RGBA{0, 255, 255, 255}},
	},
}

// ValidateTowers rejects definitions the simulation cannot run.
func ValidateTowers(lib map[TowerKind]TowerDefinition) error {
	for _, k := range TowerKinds {
		def, ok := lib[k]
		if !ok {
			return fmt.Errorf("tower %s: missing definition", k)
		}
		if def.Cost <= 0 {
			return fmt.Errorf("tower %s: cost must be positive, got %d", k, def.Cost)
		}
		if def.FireRateMs < 0 {
			return fmt.Errorf("tower %s: negative fire rate", k)
		}
		if def.ShotCount < 1 {
			return fmt.Errorf("tower %s: shot count must be at least 1", k)
		}
		if !def.Element.ValidAttack() {
			return fmt.Errorf("tower %s: invalid attack element %q", k, def.Element)
		}
	}
	return nil
}
