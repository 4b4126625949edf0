package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/mcp"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/rpggio/propcatalog/internal/sqlite"
	"github.com/rpggio/propcatalog/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// TestServer is the full HTTP stack over an in-memory SQLite catalog.
type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Projects *project.Service
	Catalog  *catalog.Service
	History  *activity.Service
}

// New seeds the database with projects, loads the catalog and starts the
// REST API with MCP mounted at /mcp.
func New(t *testing.T, seed []project.Project) *TestServer {
	t.Helper()
	ctx := context.Background()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	projectSvc := project.NewService(projectRepo, nil)
	if len(seed) > 0 {
		_, err := projectSvc.Import(ctx, seed)
		require.NoError(t, err)
	}

	historySvc := activity.NewService(sqlite.NewActivityRepository(db), nil)
	catalogSvc := catalog.NewService(projectRepo, nil)
	catalogSvc.SetRecorder(historySvc)
	require.NoError(t, catalogSvc.Refresh(ctx))

	formatter := present.NewFormatter("en", "₹")
	mcpServer := mcp.NewServer(mcp.Config{
		Catalog:   catalogSvc,
		Carousel:  carousel.DefaultConfig(),
		Formatter: formatter,
		History:   historySvc,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Catalog:   catalogSvc,
		Carousel:  carousel.DefaultConfig(),
		Formatter: formatter,
		History:   historySvc,
		MCP:       mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Projects: projectSvc,
		Catalog:  catalogSvc,
		History:  historySvc,
	}
}

// URL joins path onto the server address.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}
