package entity

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/pkg/gridmap"
	"testing"
)

func TestNewEntityNeverZero(t *testing.T) {
	ecs := NewECS()
	a, b := ecs.NewEntity(), ecs.NewEntity()
	if a == 0 || b == 0 || a == b {
		t.Errorf("expected distinct non-zero IDs, got %d and %d", a, b)
	}
}

func TestIDsAreSorted(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 20; i++ {
		ecs.Enemies[ecs.NewEntity()] = &component.Enemy{}
	}
	ids := ecs.EnemyIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not ascending: %v", ids)
		}
	}
}

func TestRemoveEntityFreesCell(t *testing.T) {
	ecs := NewECS()
	id := ecs.NewEntity()
	cell := gridmap.Cell{X: 2, Z: 0}
	ecs.Towers[id] = &component.Tower{Cell: cell}
	ecs.Combats[id] = component.NewCombat(1)
	ecs.Occupancy[cell] = id

	ecs.RemoveEntity(id)
	if _, ok := ecs.Occupancy[cell]; ok {
		t.Error("cell still occupied after removal")
	}
	if _, ok := ecs.Towers[id]; ok {
		t.Error("tower component not removed")
	}
	if _, ok := ecs.Combats[id]; ok {
		t.Error("combat component not removed")
	}
}
