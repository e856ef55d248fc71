// internal/component/game_state.go
package component

import "go-tower-siege/internal/defs"

// Phase is the wave director state.
type Phase int

const (
	PhaseIdle   Phase = iota // no wave running
	PhaseActive              // spawn queue draining or units alive
	PhaseEnded               // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

// Outcome is how an ended session finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	}
	return "none"
}

// GameState is the session record: economy, progress and director phase.
type GameState struct {
	Mode        defs.Mode
	Phase       Phase
	Outcome     Outcome
	Currency    int
	Lives       int
	Score       int
	WaveIndex   int // zero-based index of the next wave to run (or the running one)
	BuildCounts map[defs.TowerKind]int
}

// Ended reports whether the session is over.
func (s *GameState) Ended() bool {
	return s.Phase == PhaseEnded
}
