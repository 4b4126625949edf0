package catalog

import (
	"time"

	"github.com/rpggio/propcatalog/internal/domain/project"
)

// Phase is the fetch lifecycle of the catalog.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// Snapshot is one immutable fetch result.
type Snapshot struct {
	Version   string            `json:"version"`
	FetchedAt time.Time         `json:"fetched_at"`
	Projects  []project.Project `json:"projects"`
}

// State is a value copy of the catalog's fetch state. Snapshot is only set
// when Phase is PhaseLoaded and Error only when Phase is PhaseFailed.
type State struct {
	Phase    Phase     `json:"phase"`
	Snapshot *Snapshot `json:"-"`
	Error    string    `json:"error,omitempty"`
}

// Loaded reports whether a snapshot is available.
func (s State) Loaded() bool {
	return s.Phase == PhaseLoaded && s.Snapshot != nil
}

// ProjectCount is the snapshot size, or zero when nothing is loaded.
func (s State) ProjectCount() int {
	if s.Snapshot == nil {
		return 0
	}
	return len(s.Snapshot.Projects)
}
