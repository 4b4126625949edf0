package sqlite

import (
	"context"
	"testing"

	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/repository"
	"github.com/stretchr/testify/require"
)

var _ catalog.Source = (*ProjectRepository)(nil)
var _ project.Repository = (*ProjectRepository)(nil)

func TestProjectRepository_UpsertAndGet(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))
	ctx := context.Background()

	proj := &project.Project{
		ID:             "p1",
		Name:           "Skyline Heights",
		Developer:      "Godrej Properties",
		City:           "Pune",
		Locality:       "Baner",
		Status:         project.StatusNewLaunch,
		StartingPrice:  850_000_000,
		PossessionDate: "Dec 2027",
		Tags:           []string{"Trending", "Premium"},
	}
	require.NoError(t, repo.Upsert(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, proj, got)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_UpsertRejectsEmptyID(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))

	err := repo.Upsert(context.Background(), &project.Project{Name: "x"})
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestProjectRepository_ListKeepsInsertionOrder(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, repo.Upsert(ctx, &project.Project{ID: id, Developer: "D"}))
	}
	// Updating an existing row must not move it.
	require.NoError(t, repo.Upsert(ctx, &project.Project{ID: "c", Developer: "E"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "c", list[0].ID)
	require.Equal(t, "E", list[0].Developer)
	require.Equal(t, "a", list[1].ID)
	require.Equal(t, "b", list[2].ID)
	require.Nil(t, list[1].Tags)
}

func TestProjectRepository_FetchEmpty(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))

	list, err := repo.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestProjectRepository_FeedsCatalog(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, &project.Project{ID: "p1", Status: project.StatusNewLaunch}))

	svc := catalog.NewService(repo, nil)
	require.NoError(t, svc.Refresh(ctx))

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	require.Equal(t, "p1", snap.Projects[0].ID)
}
