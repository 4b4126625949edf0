package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/propcatalog/internal/config"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/sqlite"
	"github.com/stretchr/testify/require"
)

const seedYAML = `projects:
  - id: a
    developer: X
    status: New Launch
  - id: b
    developer: Y
`

func testDB(t *testing.T, path string) *sqlite.DB {
	t.Helper()
	db, err := openDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenDB_CreatesDirectoryAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	db := testDB(t, path)

	_, err := os.Stat(path)
	require.NoError(t, err)

	entries, err := sqlite.NewActivityRepository(db).List(context.Background(), activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestBuildSource_SQLiteImportsSeed(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(seedYAML), 0o644))

	cfg := config.Default()
	cfg.DB.Path = filepath.Join(dir, "data", "catalog.db")
	cfg.Catalog.SeedFile = seed

	src, err := buildSource(context.Background(), cfg, testDB(t, cfg.DB.Path), nil)
	require.NoError(t, err)

	projects, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "a", projects[0].ID)
}

func TestBuildSource_File(t *testing.T) {
	seed := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seed, []byte(seedYAML), 0o644))

	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	cfg.Catalog.Source = config.SourceFile
	cfg.Catalog.SeedFile = seed

	src, err := buildSource(context.Background(), cfg, testDB(t, cfg.DB.Path), nil)
	require.NoError(t, err)

	projects, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
}

func TestBuildSource_BadSeed(t *testing.T) {
	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	cfg.Catalog.SeedFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := buildSource(context.Background(), cfg, testDB(t, cfg.DB.Path), nil)
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLogFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()

	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(data))
}
