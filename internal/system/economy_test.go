package system

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/utils"
	"testing"
)

func TestSpendRejectsOverdraft(t *testing.T) {
	ecs := entity.NewECS()
	ecs.GameState.Currency = 100
	es := NewEconomySystem(ecs, event.NewDispatcher())

	if es.Spend(120) {
		t.Error("spending more than the balance must fail")
	}
	if ecs.GameState.Currency != 100 {
		t.Errorf("failed spend changed currency to %d", ecs.GameState.Currency)
	}
	if !es.Spend(100) || ecs.GameState.Currency != 0 {
		t.Errorf("expected exact spend to succeed, currency %d", ecs.GameState.Currency)
	}
}

func TestRefundFor(t *testing.T) {
	cases := map[int]int{50: 25, 120: 60, 151: 75, 0: 0}
	for cost, want := range cases {
		if got := RefundFor(cost); got != want {
			t.Errorf("RefundFor(%d): expected %d, got %d", cost, want, got)
		}
	}
}

func TestEconomySettlesKillsAndEscapes(t *testing.T) {
	ecs := entity.NewECS()
	ecs.GameState.Lives = 5
	d := event.NewDispatcher()
	es := NewEconomySystem(ecs, d)

	killed := addEnemy(ecs, utils.Vec3{}, 0, defs.ElementNone)
	ecs.Enemies[killed].Dead = true
	escaped := addEnemy(ecs, utils.Vec3{}, 10, defs.ElementNone)
	ecs.Enemies[escaped].Escaped = true
	addEnemy(ecs, utils.Vec3{}, 10, defs.ElementNone)

	var got []event.EventType
	d.SubscribeAll(event.ListenerFunc(func(e event.Event) { got = append(got, e.Type) }))

	removed, lost := es.Update()
	if lost {
		t.Error("session should not be lost")
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(removed))
	}
	s := ecs.GameState
	if s.Score != config.KillScore || s.Currency != config.KillReward || s.Lives != 4 {
		t.Errorf("unexpected state after settle: %+v", s)
	}
	if len(got) != 2 || got[0] != event.EnemyKilled || got[1] != event.EnemyEscaped {
		t.Errorf("unexpected events %v", got)
	}
}

func TestEconomyStopsAtLastLife(t *testing.T) {
	ecs := entity.NewECS()
	ecs.GameState.Lives = 1
	es := NewEconomySystem(ecs, event.NewDispatcher())

	first := addEnemy(ecs, utils.Vec3{}, 10, defs.ElementNone)
	ecs.Enemies[first].Escaped = true
	later := addEnemy(ecs, utils.Vec3{}, 0, defs.ElementNone)
	ecs.Enemies[later].Dead = true

	removed, lost := es.Update()
	if !lost {
		t.Fatal("expected the session to be lost")
	}
	if len(removed) != 1 || removed[0] != first {
		t.Errorf("expected only the escaping unit, got %v", removed)
	}
	if ecs.GameState.Lives != 0 || ecs.GameState.Score != 0 {
		t.Errorf("no economy after defeat, got %+v", ecs.GameState)
	}
}

func TestStateCompleteWave(t *testing.T) {
	ecs := entity.NewECS()
	ecs.GameState.Mode = defs.ModeStandard
	d := event.NewDispatcher()
	ss := NewStateSystem(ecs, NewEconomySystem(ecs, d), d, 2)

	ss.SwitchToWaveState(&component.Wave{Index: 0})
	if ss.Current() != component.PhaseActive {
		t.Fatalf("expected active, got %s", ss.Current())
	}
	if ss.CompleteWave() {
		t.Fatal("first wave is not the last")
	}
	if ecs.GameState.WaveIndex != 1 || ecs.GameState.Currency != config.WaveCompletionBonus {
		t.Errorf("unexpected state %+v", ecs.GameState)
	}
	if ss.Current() != component.PhaseIdle || ecs.Wave != nil {
		t.Error("director should be idle between waves")
	}

	ss.SwitchToWaveState(&component.Wave{Index: 1})
	if !ss.CompleteWave() {
		t.Fatal("clearing the last wave should win")
	}
	if !ecs.GameState.Ended() || ecs.GameState.Outcome != component.OutcomeVictory {
		t.Errorf("expected victory, got %+v", ecs.GameState)
	}

	ss.End(component.OutcomeDefeat)
	if ecs.GameState.Outcome != component.OutcomeVictory {
		t.Error("End must be idempotent")
	}
}
