package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/propcatalog/internal/repository"
)

// Service handles project ingestion and lookup.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{repo: repo, logger: logger}
}

// Import validates a batch and upserts it in input order. Projects without an
// id get a generated one; the returned slice carries the final ids.
func (s *Service) Import(ctx context.Context, projects []Project) ([]Project, error) {
	if err := ValidateBatch(projects); err != nil {
		return nil, err
	}

	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		proj := p.Clone()
		if strings.TrimSpace(proj.ID) == "" {
			proj.ID = uuid.NewString()
		}
		if err := s.repo.Upsert(ctx, &proj); err != nil {
			return nil, fmt.Errorf("importing project %s: %w", proj.ID, err)
		}
		out = append(out, proj)
	}

	s.logger.Info("imported projects", "count", len(out))
	return out, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all stored projects in insertion order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// ValidateBatch rejects a batch containing a repeated non-blank id. Blank ids
// are allowed; callers decide whether to generate or reject them.
func ValidateBatch(projects []Project) error {
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
