package catalog

import (
	"context"

	"github.com/rpggio/propcatalog/internal/domain/project"
)

// Source fetches one ordered snapshot of the catalog.
type Source interface {
	Fetch(ctx context.Context) ([]project.Project, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]project.Project, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]project.Project, error) {
	return f(ctx)
}

// Recorder is notified of every terminal refresh outcome.
type Recorder interface {
	RecordRefresh(ctx context.Context, st State) error
}
