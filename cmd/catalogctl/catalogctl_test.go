package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/stretchr/testify/require"
)

const seedYAML = `projects:
  - id: a
    name: Alpha
    developer: X
    city: Pune
    status: New Launch
    starting_price: 850000000
  - id: b
    developer: Y
    city: Mumbai
    status: Ready to Move
  - id: c
    developer: X
    city: Delhi
    status: New Launch
`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestViewsNewLaunches_JSON(t *testing.T) {
	out, err := run(t, "views", "new-launches", "--json", "--file", writeSeed(t, seedYAML))
	require.NoError(t, err)

	var projects []project.Project
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 2)
	require.Equal(t, "a", projects[0].ID)
	require.Equal(t, "c", projects[1].ID)
}

func TestViewsTrending_Table(t *testing.T) {
	out, err := run(t, "views", "trending", "-n", "2", "--locale", "en", "--file", writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.Contains(t, out, "Alpha")
	require.Contains(t, out, "₹8,500,000")
	require.Contains(t, out, "Mumbai")
	require.NotContains(t, out, "Delhi")
}

func TestViewsDevelopers(t *testing.T) {
	seed := writeSeed(t, seedYAML)

	out, err := run(t, "views", "developers", "--json", "--file", seed)
	require.NoError(t, err)
	var summaries []developer.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 2)
	require.Equal(t, 2, summaries[0].Count)
	require.Equal(t, "Pune", summaries[0].City)

	out, err = run(t, "views", "developers", "--featured", "1", "--file", seed)
	require.NoError(t, err)
	require.Contains(t, out, "a,c")
	require.NotContains(t, out, "Mumbai")
}

func TestViews_EmptyCatalog(t *testing.T) {
	out, err := run(t, "views", "new-launches", "--file", writeSeed(t, "projects: []\n"))
	require.NoError(t, err)
	require.Contains(t, out, "No projects")
}

func TestViews_DuplicateIDs(t *testing.T) {
	_, err := run(t, "views", "trending", "--file", writeSeed(t, "- id: a\n- id: a\n"))
	require.ErrorIs(t, err, project.ErrDuplicateID)
}

func TestCarousel_Autoplays(t *testing.T) {
	out, err := run(t, "carousel", "--view", "trending", "--width", "0",
		"--delay", "20ms", "--duration", "200ms", "--file", writeSeed(t, seedYAML))
	require.NoError(t, err)
	require.Contains(t, out, "carousel trending: 3 slides, 1 per view")
	require.Contains(t, out, "slide 1/3")
	require.Contains(t, out, "slide 2/3")
	require.Contains(t, out, "stopped")
}

func TestCarousel_UnknownView(t *testing.T) {
	_, err := run(t, "carousel", "--view", "spotlight", "--duration", "0s", "--file", writeSeed(t, seedYAML))
	require.Error(t, err)
}
