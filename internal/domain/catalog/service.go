package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/propcatalog/internal/domain/project"
)

// Service owns the catalog fetch state. Consumers read snapshots by value and
// never see a partially applied fetch.
type Service struct {
	source   Source
	logger   *slog.Logger
	now      func() time.Time
	recorder Recorder

	mu    sync.RWMutex
	state State
	gen   uint64
}

// NewService creates a catalog service in the idle phase.
func NewService(source Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		source: source,
		logger: logger,
		now:    time.Now,
		state:  State{Phase: PhaseIdle},
	}
}

// SetRecorder registers a recorder notified after every refresh. Call it
// before the first Refresh.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// State returns the current fetch state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns the loaded snapshot. It returns ErrNotLoaded while idle or
// loading and an error wrapping ErrFetchFailed after a failed fetch.
func (s *Service) Snapshot() (Snapshot, error) {
	st := s.State()
	switch st.Phase {
	case PhaseLoaded:
		return *st.Snapshot, nil
	case PhaseFailed:
		return Snapshot{}, fmt.Errorf("%w: %s", ErrFetchFailed, st.Error)
	default:
		return Snapshot{}, ErrNotLoaded
	}
}

// Refresh fetches a new snapshot. The outcome is recorded in the state rather
// than returned to rendering code; the returned error is for callers that
// want to log or retry.
//
// Refreshes may overlap. Only the most recently started one publishes its
// outcome; an older fetch that finishes later is dropped.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = State{Phase: PhaseLoading}
	s.mu.Unlock()

	projects, err := s.source.Fetch(ctx)
	if err == nil {
		err = project.ValidateBatch(projects)
	}
	if err != nil {
		msg := err.Error()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			msg = "catalog fetch interrupted: " + msg
		}
		st := State{Phase: PhaseFailed, Error: msg}
		if s.publish(gen, st) {
			s.logger.Warn("catalog refresh failed", "error", err)
			s.record(ctx, st)
		} else {
			s.logger.Debug("dropping superseded catalog refresh", "error", err)
		}
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	snap := &Snapshot{
		Version:   uuid.NewString(),
		FetchedAt: s.now(),
		Projects:  project.CloneAll(projects),
	}
	st := State{Phase: PhaseLoaded, Snapshot: snap}
	if !s.publish(gen, st) {
		s.logger.Debug("dropping superseded catalog refresh", "version", snap.Version)
		return nil
	}
	s.logger.Info("catalog refreshed", "projects", len(snap.Projects), "version", snap.Version)
	s.record(ctx, st)
	return nil
}

// Run refreshes immediately and then every interval until ctx is done. A
// non-positive interval refreshes once.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	_ = s.Refresh(ctx)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Refresh(ctx)
		}
	}
}

// record runs outside the state lock; a recorder failure never changes the
// refresh outcome.
func (s *Service) record(ctx context.Context, st State) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordRefresh(context.WithoutCancel(ctx), st); err != nil {
		s.logger.Warn("recording catalog refresh failed", "error", err)
	}
}

// publish stores st if gen is still the latest refresh.
func (s *Service) publish(gen uint64, st State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.state = st
	return true
}
