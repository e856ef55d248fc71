// internal/system/economy.go
package system

import (
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/types"
)

// EconomySystem owns currency, lives and score.
type EconomySystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
}

func NewEconomySystem(ecs *entity.ECS, eventDispatcher *event.Dispatcher) *EconomySystem {
	return &EconomySystem{ecs: ecs, eventDispatcher: eventDispatcher}
}

// CanAfford reports whether cost can be paid in full.
func (s *EconomySystem) CanAfford(cost int) bool {
	return cost >= 0 && s.ecs.GameState.Currency >= cost
}

// Spend debits cost. Unaffordable spending is rejected, never clamped.
func (s *EconomySystem) Spend(cost int) bool {
	if !s.CanAfford(cost) {
		return false
	}
	s.ecs.GameState.Currency -= cost
	return true
}

// Credit adds a non-negative amount.
func (s *EconomySystem) Credit(amount int) {
	if amount > 0 {
		s.ecs.GameState.Currency += amount
	}
}

// RefundFor returns the sell value of an emplacement that cost cost.
func RefundFor(cost int) int {
	return cost * config.RefundNumerator / config.RefundDenominator
}

// RecordBuild increments the per-type build counter.
func (s *EconomySystem) RecordBuild(kind defs.TowerKind) {
	s.ecs.GameState.BuildCounts[kind]++
}

// Update settles the units removed this tick: kills pay out score and
// currency, escapes cost a life. It returns the IDs to dispose and whether
// the session was lost. Processing stops at the escape that takes the last
// life.
func (s *EconomySystem) Update() (removed []types.EntityID, lost bool) {
	state := s.ecs.GameState
	for _, id := range s.ecs.EnemyIDs() {
		enemy := s.ecs.Enemies[id]
		switch {
		case enemy.Dead:
			state.Score += config.KillScore
			state.Currency += config.KillReward
			s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyKilled, Data: id})
			removed = append(removed, id)
		case enemy.Escaped:
			if state.Lives > 0 {
				state.Lives--
			}
			s.eventDispatcher.Dispatch(event.Event{Type: event.EnemyEscaped, Data: id})
			removed = append(removed, id)
			if state.Lives == 0 {
				return removed, true
			}
		}
	}
	return removed, false
}
