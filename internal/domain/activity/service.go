package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rpggio/propcatalog/internal/domain/catalog"
)

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// LogActivity logs an activity entry with the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, entry *ActivityEntry) error {
	if entry == nil || entry.ActivityType == "" {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists activity entries newest first.
func (s *Service) GetRecentActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	switch {
	case opts.Limit <= 0:
		opts.Limit = DefaultListLimit
	case opts.Limit > MaxListLimit:
		opts.Limit = MaxListLimit
	}
	return s.repo.List(ctx, opts)
}

// RecordRefresh implements catalog.Recorder. Only terminal phases are logged.
func (s *Service) RecordRefresh(ctx context.Context, st catalog.State) error {
	var entry ActivityEntry
	switch st.Phase {
	case catalog.PhaseLoaded:
		entry = ActivityEntry{
			ActivityType: TypeRefreshSucceeded,
			Summary:      fmt.Sprintf("loaded %d projects", st.ProjectCount()),
			ProjectCount: st.ProjectCount(),
		}
		if st.Snapshot != nil {
			entry.Version = st.Snapshot.Version
			entry.CreatedAt = st.Snapshot.FetchedAt
		}
	case catalog.PhaseFailed:
		entry = ActivityEntry{
			ActivityType: TypeRefreshFailed,
			Summary:      "catalog fetch failed",
			Error:        st.Error,
		}
	default:
		return nil
	}
	return s.LogActivity(ctx, &entry)
}
