// internal/interfaces/game_context.go
package interfaces

import "go-tower-siege/internal/defs"

// Snapshot is the read-only view handed to the UI collaborator. It is
// recomputed after every state-changing operation.
type Snapshot struct {
	Mode             defs.Mode
	Lives            int
	Score            int
	Currency         int
	CurrentWaveIndex int
	TotalWaveCount   int // predefined waves; 0 would be meaningless, endless runs past it
	IsWaveActive     bool
	TowerBuildCounts map[defs.TowerKind]int
	AutoAdvance      bool
	Paused           bool
	Ended            bool
	Victory          bool
}

// Summary is the end-of-run report.
type Summary struct {
	Mode             defs.Mode
	Victory          bool
	FinalScore       int
	WavesSurvived    int
	Lives            int
	Currency         int
	TowerBuildCounts map[defs.TowerKind]int
}

// GameContext is the full surface a front-end drives.
type GameContext interface {
	Commands
	Snapshot() Snapshot
	Summary() (Summary, bool)
}
