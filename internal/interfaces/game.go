// internal/interfaces/game.go
package interfaces

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/pkg/gridmap"
)

// Status is the outcome of a player command. Rejections are ordinary results
// and never mutate the session.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidPlacement
	StatusInsufficientFunds
	StatusNoActionTaken
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidPlacement:
		return "invalid placement"
	case StatusInsufficientFunds:
		return "insufficient funds"
	case StatusNoActionTaken:
		return "no action taken"
	}
	return "unknown"
}

// Commands is what the input/UI collaborator may ask of the simulation.
type Commands interface {
	RequestBuild(cell gridmap.Cell, kind defs.TowerKind) Status
	RequestSell(cell gridmap.Cell) Status
	RequestStartNextWave() Status
	SetAutoAdvance(on bool)
	SetPaused(on bool)
}
