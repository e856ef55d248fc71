// internal/system/state.go
package system

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"log"
)

// StateSystem drives the director phase: idle, active, ended.
type StateSystem struct {
	ecs             *entity.ECS
	economy         *EconomySystem
	eventDispatcher *event.Dispatcher
	totalWaves      int
}

func NewStateSystem(ecs *entity.ECS, economy *EconomySystem, eventDispatcher *event.Dispatcher, totalWaves int) *StateSystem {
	return &StateSystem{
		ecs:             ecs,
		economy:         economy,
		eventDispatcher: eventDispatcher,
		totalWaves:      totalWaves,
	}
}

func (s *StateSystem) Current() component.Phase {
	return s.ecs.GameState.Phase
}

// SwitchToWaveState makes wave the running wave.
func (s *StateSystem) SwitchToWaveState(wave *component.Wave) {
	s.ecs.Wave = wave
	s.ecs.GameState.Phase = component.PhaseActive
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: wave.Index})
}

// CompleteWave closes the running wave: the wave index advances and the
// completion bonus is paid. In standard mode, finishing the last predefined
// wave ends the session with a victory, reported by the return value.
func (s *StateSystem) CompleteWave() bool {
	state := s.ecs.GameState
	finished := state.WaveIndex
	state.WaveIndex++
	s.economy.Credit(config.WaveCompletionBonus)
	s.ecs.Wave = nil
	state.Phase = component.PhaseIdle
	log.Printf("Wave %d complete, currency %d, lives %d", finished+1, state.Currency, state.Lives)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveEnded, Data: finished})

	if state.Mode == defs.ModeStandard && state.WaveIndex >= s.totalWaves {
		s.End(component.OutcomeVictory)
		return true
	}
	return false
}

// End moves the session to its terminal phase. Calling it again is a no-op.
func (s *StateSystem) End(outcome component.Outcome) {
	state := s.ecs.GameState
	if state.Phase == component.PhaseEnded {
		return
	}
	state.Phase = component.PhaseEnded
	state.Outcome = outcome
	s.ecs.Wave = nil
	log.Printf("Session ended: %s after %d waves, score %d", outcome, state.WaveIndex, state.Score)
}
