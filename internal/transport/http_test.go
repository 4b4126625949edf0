package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/stretchr/testify/require"
)

func fixture() []project.Project {
	return []project.Project{
		{ID: "p1", Name: "Skyline", Developer: "Godrej Properties", City: "Pune", Locality: "Baner", Status: project.StatusNewLaunch, StartingPrice: 850_000_000, Tags: []string{"Trending"}},
		{ID: "p2", Name: "Harbour", Developer: "Sobha/Ltd", City: "Mumbai", Status: project.StatusReadyToMove, StartingPrice: 2_000_000_000},
		{ID: "p3", Name: "Greens", Developer: "Godrej Properties", City: "Mumbai", Status: project.StatusNewLaunch, StartingPrice: 1_200_000_000},
		{ID: "p4", Developer: " ", City: "Pune", Locality: "baner", Status: project.StatusUnderConstruction},
	}
}

func staticSource(projects []project.Project) catalog.Source {
	return catalog.SourceFunc(func(context.Context) ([]project.Project, error) {
		return projects, nil
	})
}

func newTestServer(t *testing.T, svc CatalogService, mcpHandler http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(Config{
		Catalog:       svc,
		Carousel:      carousel.DefaultConfig(),
		TrendingSize:  2,
		FeaturedLimit: 1,
		Formatter:     present.NewFormatter("en", "₹"),
		MCP:           mcpHandler,
	}))
	t.Cleanup(server.Close)
	return server
}

func loadedServer(t *testing.T, projects []project.Project) *httptest.Server {
	t.Helper()
	svc := catalog.NewService(staticSource(projects), nil)
	require.NoError(t, svc.Refresh(context.Background()))
	return newTestServer(t, svc, nil)
}

func get(t *testing.T, server *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHTTPServer_Health(t *testing.T) {
	server := newTestServer(t, catalog.NewService(staticSource(nil), nil), nil)

	resp := get(t, server, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPServer_Idle(t *testing.T) {
	server := newTestServer(t, catalog.NewService(staticSource(fixture()), nil), nil)

	var body ErrorResponse
	resp := get(t, server, "/api/projects/new-launches", &body)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get("Retry-After"))
	require.Equal(t, catalog.PhaseIdle, body.State)
	require.Equal(t, codeNotLoaded, body.Error.Code)
}

func TestHTTPServer_Loading(t *testing.T) {
	release := make(chan struct{})
	svc := catalog.NewService(catalog.SourceFunc(func(context.Context) ([]project.Project, error) {
		<-release
		return fixture(), nil
	}), nil)
	server := newTestServer(t, svc, nil)

	done := make(chan error, 1)
	go func() { done <- svc.Refresh(context.Background()) }()
	require.Eventually(t, func() bool {
		return svc.State().Phase == catalog.PhaseLoading
	}, time.Second, 5*time.Millisecond)

	var body ErrorResponse
	resp := get(t, server, "/api/developers", &body)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, catalog.PhaseLoading, body.State)

	close(release)
	require.NoError(t, <-done)

	var summaries []developer.Summary
	resp = get(t, server, "/api/developers", &summaries)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, summaries, 3)
}

func TestHTTPServer_Failed(t *testing.T) {
	svc := catalog.NewService(catalog.SourceFunc(func(context.Context) ([]project.Project, error) {
		return nil, errors.New("upstream unavailable")
	}), nil)
	require.Error(t, svc.Refresh(context.Background()))
	server := newTestServer(t, svc, nil)

	var body ErrorResponse
	resp := get(t, server, "/api/projects/trending", &body)
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.Equal(t, codeFetchFailed, body.Error.Code)
	require.Contains(t, body.Error.Message, "upstream unavailable")

	var status CatalogStatus
	resp = get(t, server, "/api/catalog", &status)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, catalog.PhaseFailed, status.Phase)
}

func TestHTTPServer_EmptyCatalogIsNotAnError(t *testing.T) {
	server := loadedServer(t, []project.Project{})

	for _, path := range []string{"/api/projects", "/api/projects/new-launches", "/api/projects/trending", "/api/developers", "/api/developers/featured"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, "[]", strings.TrimSpace(string(body)), path)
	}
}

func TestHTTPServer_NewLaunchesAndTrending(t *testing.T) {
	server := loadedServer(t, fixture())

	var launches []project.Project
	get(t, server, "/api/projects/new-launches", &launches)
	require.Len(t, launches, 2)
	require.Equal(t, "p1", launches[0].ID)
	require.Equal(t, "p3", launches[1].ID)

	var trending []project.Project
	get(t, server, "/api/projects/trending", &trending)
	require.Len(t, trending, 2)

	get(t, server, "/api/projects/trending?limit=10", &trending)
	require.Len(t, trending, 4)

	resp := get(t, server, "/api/projects/trending?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_FilterProjects(t *testing.T) {
	server := loadedServer(t, fixture())

	var list []project.Project
	get(t, server, "/api/projects?city=PUNE&locality=baner", &list)
	require.Len(t, list, 2)

	get(t, server, "/api/projects?status=New+Launch&max_price=1000000000", &list)
	require.Len(t, list, 1)
	require.Equal(t, "p1", list[0].ID)

	get(t, server, "/api/projects?tag=Trending", &list)
	require.Len(t, list, 1)

	resp := get(t, server, "/api/projects?max_price=lots", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHTTPServer_Project(t *testing.T) {
	server := loadedServer(t, fixture())

	var detail ProjectDetail
	resp := get(t, server, "/api/projects/p1", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Skyline", detail.Project.Name)
	require.Equal(t, "₹8,500,000", detail.PriceLabel)
	require.Equal(t, "/projects/p1", detail.Href)
	require.Equal(t, "/developers/Godrej%20Properties", detail.DeveloperHref)

	var body ErrorResponse
	resp = get(t, server, "/api/projects/missing", &body)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, codeProjectNotFound, body.Error.Code)
}

func TestHTTPServer_Developers(t *testing.T) {
	server := loadedServer(t, fixture())

	var all []developer.Summary
	get(t, server, "/api/developers", &all)
	require.Len(t, all, 3)
	require.Equal(t, "Godrej Properties", all[0].Developer)
	require.Equal(t, 2, all[0].Count)
	require.Equal(t, "Pune", all[0].City)
	require.Equal(t, developer.UnlistedDeveloper, all[2].Developer)

	var featured []developer.Summary
	get(t, server, "/api/developers/featured", &featured)
	require.Len(t, featured, 1)

	get(t, server, "/api/developers/featured?limit=0", &featured)
	require.Empty(t, featured)
}

func TestHTTPServer_DeveloperByEncodedName(t *testing.T) {
	server := loadedServer(t, fixture())

	var summary developer.Summary
	resp := get(t, server, "/api/developers/Godrej%20Properties", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, summary.Count)

	resp = get(t, server, "/api/developers/Sobha%2FLtd", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Sobha/Ltd", summary.Developer)

	resp = get(t, server, "/api/developers/Unlisted%20Developer", &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "p4", summary.Projects[0].ID)

	resp = get(t, server, "/api/developers/Nobody", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPServer_Home(t *testing.T) {
	server := loadedServer(t, fixture())

	var home views.Home
	get(t, server, "/api/home", &home)
	require.Len(t, home.NewLaunches, 2)
	require.Len(t, home.Trending, 2)
	require.Len(t, home.FeaturedDevelopers, 1)
}

func TestHTTPServer_Carousel(t *testing.T) {
	server := loadedServer(t, fixture())

	var c present.Carousel
	resp := get(t, server, "/api/carousel/trending", &c)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "trending", c.View)
	require.Len(t, c.Slides, 2)
	require.Equal(t, "/projects/p2", c.Slides[1].Href)
	require.Equal(t, 24, c.Config.SpaceBetween)

	resp = get(t, server, "/api/carousel/spotlight", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHTTPServer_Refresh(t *testing.T) {
	svc := catalog.NewService(staticSource(fixture()), nil)
	server := newTestServer(t, svc, nil)

	resp, err := http.Post(server.URL+"/api/catalog/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status CatalogStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Equal(t, catalog.PhaseLoaded, status.Phase)
	require.Equal(t, 4, status.ProjectCount)
	require.NotEmpty(t, status.Version)
	require.NotNil(t, status.FetchedAt)
}

func TestHTTPServer_RefreshFailure(t *testing.T) {
	svc := catalog.NewService(catalog.SourceFunc(func(context.Context) ([]project.Project, error) {
		return nil, errors.New("boom")
	}), nil)
	server := newTestServer(t, svc, nil)

	resp, err := http.Post(server.URL+"/api/catalog/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHTTPServer_MountsMCP(t *testing.T) {
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})
	server := newTestServer(t, catalog.NewService(staticSource(nil), nil), mcpHandler)

	resp, err := http.Post(server.URL+"/mcp", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
}

type fakeHistory struct {
	entries []activity.ActivityEntry
	last    activity.ListActivityOptions
	err     error
}

func (f *fakeHistory) GetRecentActivity(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	f.last = opts
	return f.entries, f.err
}

func historyServer(t *testing.T, history HistoryService) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(Config{
		Catalog: catalog.NewService(staticSource(nil), nil),
		History: history,
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHTTPServer_History(t *testing.T) {
	history := &fakeHistory{entries: []activity.ActivityEntry{
		{ID: 2, ActivityType: activity.TypeRefreshFailed, Error: "timeout"},
		{ID: 1, ActivityType: activity.TypeRefreshSucceeded, ProjectCount: 4},
	}}
	server := historyServer(t, history)

	var body []activity.ActivityEntry
	resp := get(t, server, "/api/catalog/history?limit=5&type=refresh_failed", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body, 2)
	require.Equal(t, "timeout", body[0].Error)
	require.Equal(t, 5, history.last.Limit)
	require.NotNil(t, history.last.ActivityType)
	require.Equal(t, activity.TypeRefreshFailed, *history.last.ActivityType)
}

func TestHTTPServer_HistoryErrors(t *testing.T) {
	server := historyServer(t, &fakeHistory{err: errors.New("db closed")})

	var body ErrorResponse
	resp := get(t, server, "/api/catalog/history", &body)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, codeInternal, body.Error.Code)

	resp = get(t, server, "/api/catalog/history?type=bogus", &body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, codeInvalidInput, body.Error.Code)
}

func TestHTTPServer_HistoryNotMountedWithoutService(t *testing.T) {
	server := newTestServer(t, catalog.NewService(staticSource(nil), nil), nil)

	resp := get(t, server, "/api/catalog/history", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
