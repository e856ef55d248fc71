// internal/interfaces/store.go
package interfaces

import "go-tower-siege/internal/defs"

// Progress is the persisted per-mode record.
type Progress struct {
	WaveIndex        int
	Currency         int
	Lives            int
	Score            int
	TowerBuildCounts map[defs.TowerKind]int
}

// ProgressStore is the persistence collaborator. Records are keyed by mode.
type ProgressStore interface {
	SaveProgress(mode defs.Mode, p Progress) error
	LoadProgress(mode defs.Mode) (Progress, bool, error)
}
