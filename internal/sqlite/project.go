package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/repository"
)

// ProjectRepository stores catalog projects in SQLite. It doubles as a
// catalog source: Fetch returns every stored project in insertion order.
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, name, developer, city, locality, status, starting_price, possession_date, tags`

// Upsert inserts a project or replaces the stored fields of an existing one.
// An existing project keeps its position in the catalog order.
func (r *ProjectRepository) Upsert(ctx context.Context, proj *project.Project) error {
	if proj == nil || proj.ID == "" {
		return repository.ErrInvalidInput
	}

	tags, err := encodeTags(proj.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			developer = excluded.developer,
			city = excluded.city,
			locality = excluded.locality,
			status = excluded.status,
			starting_price = excluded.starting_price,
			possession_date = excluded.possession_date,
			tags = excluded.tags,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = r.db.ExecContext(ctx, query,
		proj.ID,
		proj.Name,
		proj.Developer,
		proj.City,
		proj.Locality,
		proj.Status,
		proj.StartingPrice,
		proj.PossessionDate,
		tags,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert project: %w", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// List returns all projects in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Fetch implements catalog.Source.
func (r *ProjectRepository) Fetch(ctx context.Context) ([]project.Project, error) {
	return r.List(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (*project.Project, error) {
	var proj project.Project
	var tags string
	err := row.Scan(
		&proj.ID,
		&proj.Name,
		&proj.Developer,
		&proj.City,
		&proj.Locality,
		&proj.Status,
		&proj.StartingPrice,
		&proj.PossessionDate,
		&tags,
	)
	if err != nil {
		return nil, err
	}
	if proj.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &proj, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
