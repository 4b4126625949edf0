package project

import "context"

// Repository provides persistence for catalog projects.
type Repository interface {
	Upsert(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
}
