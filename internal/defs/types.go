// internal/defs/types.go
package defs

import "fmt"

// Element is the damage type of an attack and, for hostile units, the
// element they are weak to.
type Element string

const (
	ElementNone     Element = "none"
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementIce      Element = "ice"
)

// ValidAttack reports whether e may be carried by a projectile.
func (e Element) ValidAttack() bool {
	return e == ElementPhysical || e == ElementFire || e == ElementIce
}

// ValidWeakness reports whether e may be used as a unit weakness tag.
func (e Element) ValidWeakness() bool {
	return e == ElementNone || e == ElementFire || e == ElementIce
}

// Mode selects between the finite campaign and the endless run.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeEndless  Mode = "endless"
)

// ParseMode converts a flag value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStandard, ModeEndless:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
