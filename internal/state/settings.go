// internal/state/settings.go
package state

import (
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/storage"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// RunHistory records finished sessions. The SQLite store implements it.
type RunHistory interface {
	RecordRun(s interfaces.Summary) error
	TopRuns(mode defs.Mode, limit int) ([]storage.RunRow, error)
}

// Settings carries the command-line choices into every screen.
type Settings struct {
	Mode        defs.Mode
	Seed        int64
	AutoAdvance bool
	Continue    bool
	Store       interfaces.ProgressStore
	History     RunHistory // may be nil
	Face        font.Face
}

// withDefaults fills the font face.
func (s Settings) withDefaults() Settings {
	if s.Face == nil {
		s.Face = basicfont.Face7x13
	}
	if s.Mode == "" {
		s.Mode = defs.ModeStandard
	}
	return s
}
