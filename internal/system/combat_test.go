package system

import (
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/utils"
	"math"
	"testing"
)

func TestCombatTargetsNearestInRange(t *testing.T) {
	ecs := entity.NewECS()
	tower := addTower(ecs, defs.TowerTurret, utils.Vec3{})
	far := addEnemy(ecs, utils.Vec3{X: 6, Y: 1}, 100, defs.ElementNone)
	near := addEnemy(ecs, utils.Vec3{X: 3, Y: 1}, 100, defs.ElementNone)
	addEnemy(ecs, utils.Vec3{X: 30, Y: 1}, 100, defs.ElementNone) // out of range

	intents := NewCombatSystem(ecs).Update(0)
	if len(intents) != 1 {
		t.Fatalf("expected 1 shot, got %d", len(intents))
	}
	if intents[0].Target != near || intents[0].Target == far {
		t.Errorf("expected target %d, got %d", near, intents[0].Target)
	}
	if intents[0].Source != tower {
		t.Errorf("expected source %d, got %d", tower, intents[0].Source)
	}
	if intents[0].Origin.Y != config.MuzzleHeight {
		t.Errorf("shots should leave from the muzzle, got origin %v", intents[0].Origin)
	}
	if math.Abs(intents[0].Direction.Len()-1) > 1e-9 {
		t.Errorf("direction should be normalized, got length %v", intents[0].Direction.Len())
	}
}

func TestCombatRangeIsExclusive(t *testing.T) {
	reach := defs.TowerLibrary[defs.TowerTurret].Range

	ecs := entity.NewECS()
	addTower(ecs, defs.TowerTurret, utils.Vec3{})
	addEnemy(ecs, utils.Vec3{X: reach}, 100, defs.ElementNone)
	if n := len(NewCombatSystem(ecs).Update(0)); n != 0 {
		t.Errorf("unit exactly at range should not be targeted, got %d shots", n)
	}

	ecs = entity.NewECS()
	addTower(ecs, defs.TowerTurret, utils.Vec3{})
	addEnemy(ecs, utils.Vec3{X: reach - 0.01}, 100, defs.ElementNone)
	if n := len(NewCombatSystem(ecs).Update(0)); n != 1 {
		t.Errorf("unit just inside range should be targeted, got %d shots", n)
	}
}

func TestCombatRespectsCooldown(t *testing.T) {
	ecs := entity.NewECS()
	addTower(ecs, defs.TowerTurret, utils.Vec3{})
	addEnemy(ecs, utils.Vec3{X: 3, Y: 1}, 100, defs.ElementNone)
	cs := NewCombatSystem(ecs)
	interval := defs.TowerLibrary[defs.TowerTurret].FireInterval()

	if n := len(cs.Update(1.0)); n != 1 {
		t.Fatalf("expected first volley, got %d shots", n)
	}
	if n := len(cs.Update(1.0 + interval/2)); n != 0 {
		t.Errorf("tower fired during cooldown (%d shots)", n)
	}
	if n := len(cs.Update(1.0 + interval + 0.01)); n != 1 {
		t.Errorf("tower should fire once the interval has elapsed, got %d shots", n)
	}
}

func TestCombatNoTargetKeepsCooldown(t *testing.T) {
	ecs := entity.NewECS()
	id := addTower(ecs, defs.TowerTurret, utils.Vec3{})
	if n := len(NewCombatSystem(ecs).Update(5)); n != 0 {
		t.Fatalf("expected no shots, got %d", n)
	}
	if !math.IsInf(ecs.Combats[id].LastFired, -1) {
		t.Error("cooldown should only reset when the tower fires")
	}
}

func TestCombatIgnoresDeadAndZeroRange(t *testing.T) {
	ecs := entity.NewECS()
	id := addTower(ecs, defs.TowerTurret, utils.Vec3{})
	dead := addEnemy(ecs, utils.Vec3{X: 2, Y: 1}, 100, defs.ElementNone)
	ecs.Enemies[dead].Dead = true
	if n := len(NewCombatSystem(ecs).Update(0)); n != 0 {
		t.Errorf("dead units must not be targeted, got %d shots", n)
	}

	addEnemy(ecs, utils.Vec3{X: 2, Y: 1}, 100, defs.ElementNone)
	ecs.Towers[id].Stats.Range = 0
	if n := len(NewCombatSystem(ecs).Update(0)); n != 0 {
		t.Errorf("zero-range tower must never fire, got %d shots", n)
	}
}

func TestShotgunFanIsSymmetric(t *testing.T) {
	ecs := entity.NewECS()
	addTower(ecs, defs.TowerShotgun, utils.Vec3{})
	addEnemy(ecs, utils.Vec3{X: 4, Y: 1}, 100, defs.ElementNone)

	intents := NewCombatSystem(ecs).Update(0)
	if len(intents) != 3 {
		t.Fatalf("expected 3 shots, got %d", len(intents))
	}
	spread := defs.TowerLibrary[defs.TowerShotgun].Spread
	center := intents[1].Direction
	aim := utils.Vec3{X: 4, Y: 1 - config.MuzzleHeight}.Normalize()
	if center.Dist(aim) > 1e-9 {
		t.Errorf("middle shot should aim at the target, got %v want %v", center, aim)
	}
	angle := func(v utils.Vec3) float64 { return math.Atan2(-v.Z, v.X) }
	if d := angle(intents[2].Direction) - angle(center); math.Abs(d-spread) > 1e-9 {
		t.Errorf("expected +%v rad offset, got %v", spread, d)
	}
	if d := angle(intents[0].Direction) - angle(center); math.Abs(d+spread) > 1e-9 {
		t.Errorf("expected -%v rad offset, got %v", spread, d)
	}
}
