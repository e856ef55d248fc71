// internal/system/damage.go
package system

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/types"
)

const (
	weaknessMultiplier   = 2.0
	resistanceMultiplier = 0.5
)

// DamageMultiplier returns the elemental multiplier of an attack against a
// unit's weakness tag. Physical attacks and none-weakness targets always
// take base damage.
func DamageMultiplier(element, weakness defs.Element) float64 {
	if weakness == defs.ElementNone {
		return 1.0
	}
	if weakness == element {
		return weaknessMultiplier
	}
	if element != defs.ElementPhysical {
		return resistanceMultiplier
	}
	return 1.0
}

// ResolveDamage applies the elemental multiplier to base damage.
func ResolveDamage(base float64, element, weakness defs.Element) float64 {
	return base * DamageMultiplier(element, weakness)
}

// ApplyDamage hits a hostile unit. Units that are already dead or have
// escaped are ignored, so a unit is killed exactly once. It reports whether
// this hit killed the unit and publishes a UnitHit event.
func ApplyDamage(ecs *entity.ECS, dispatcher *event.Dispatcher, entityID types.EntityID, damage float64, element defs.Element) bool {
	enemy, isEnemy := ecs.Enemies[entityID]
	health, hasHealth := ecs.Healths[entityID]
	if !isEnemy || !hasHealth || !enemy.Targetable() {
		return false
	}

	finalDamage := ResolveDamage(damage, element, enemy.Weakness)
	health.Value -= finalDamage

	killed := false
	if health.Value <= 0 {
		enemy.Dead = true
		killed = true
	}

	if dispatcher != nil {
		dispatcher.Dispatch(event.Event{Type: event.UnitHit, Data: event.UnitHitData{
			ID:      entityID,
			Time:    ecs.GameTime,
			Damage:  finalDamage,
			Element: element,
			Killed:  killed,
		}})
	}
	return killed
}
