package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/rpggio/propcatalog/internal/routing"
)

// CatalogService defines the catalog operations the REST API needs.
type CatalogService interface {
	State() catalog.State
	Refresh(ctx context.Context) error
}

// HistoryService lists recorded catalog refreshes.
type HistoryService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config wires the REST API.
type Config struct {
	Catalog       CatalogService
	Carousel      carousel.Config
	TrendingSize  int
	FeaturedLimit int
	Formatter     present.Formatter
	Logger        *slog.Logger
	// History serves /api/catalog/history when set.
	History HistoryService
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Server wires HTTP handlers.
type Server struct {
	catalog       CatalogService
	carousel      carousel.Config
	trendingSize  int
	featuredLimit int
	formatter     present.Formatter
	history       HistoryService
	logger        *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	trending := cfg.TrendingSize
	if trending <= 0 {
		trending = views.DefaultTrendingSize
	}
	featured := cfg.FeaturedLimit
	if featured <= 0 {
		featured = views.DefaultFeaturedLimit
	}

	srv := &Server{
		catalog:       cfg.Catalog,
		carousel:      cfg.Carousel.Normalize(),
		trendingSize:  trending,
		featuredLimit: featured,
		formatter:     cfg.Formatter,
		history:       cfg.History,
		logger:        logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", srv.handleCatalogStatus)
		r.Post("/catalog/refresh", srv.handleRefresh)
		if srv.history != nil {
			r.Get("/catalog/history", srv.handleHistory)
		}
		r.Get("/home", srv.handleHome)

		r.Get("/projects", srv.handleProjects)
		r.Get("/projects/new-launches", srv.handleNewLaunches)
		r.Get("/projects/trending", srv.handleTrending)
		r.Get("/projects/{id}", srv.handleProject)

		r.Get("/developers", srv.handleDevelopers)
		r.Get("/developers/featured", srv.handleFeaturedDevelopers)
		r.Get("/developers/{name}", srv.handleDeveloper)

		r.Get("/carousel/{view}", srv.handleCarousel)
	})

	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// CatalogStatus is the body of GET /api/catalog.
type CatalogStatus struct {
	Phase        catalog.Phase `json:"phase"`
	Version      string        `json:"version,omitempty"`
	FetchedAt    *time.Time    `json:"fetched_at,omitempty"`
	ProjectCount int           `json:"project_count"`
	Error        string        `json:"error,omitempty"`
}

func statusOf(st catalog.State) CatalogStatus {
	out := CatalogStatus{Phase: st.Phase, ProjectCount: st.ProjectCount(), Error: st.Error}
	if st.Snapshot != nil {
		at := st.Snapshot.FetchedAt
		out.Version = st.Snapshot.Version
		out.FetchedAt = &at
	}
	return out
}

func (s *Server) handleCatalogStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusOf(s.catalog.State()))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Refresh(r.Context()); err != nil {
		s.logger.Warn("manual catalog refresh failed", "error", err)
		writeError(w, http.StatusBadGateway, codeFetchFailed, err.Error(), "Check the catalog source and retry")
		return
	}
	writeJSON(w, http.StatusOK, statusOf(s.catalog.State()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, activity.DefaultListLimit)
	if !ok {
		return
	}
	opts := activity.ListActivityOptions{Limit: limit}
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ := activity.ActivityType(raw)
		if typ != activity.TypeRefreshSucceeded && typ != activity.TypeRefreshFailed {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "unknown activity type: "+raw, "Use refresh_succeeded or refresh_failed")
			return
		}
		opts.ActivityType = &typ
	}

	entries, err := s.history.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.logger.Error("listing catalog history failed", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "could not list catalog history", "")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.BuildHome(all, views.HomeOptions{
		TrendingSize:  s.trendingSize,
		FeaturedLimit: s.featuredLimit,
	}))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var preds []views.Predicate
	if v := q.Get("status"); v != "" {
		preds = append(preds, views.ByStatus(v))
	}
	if v := q.Get("city"); v != "" {
		preds = append(preds, views.ByCity(v))
	}
	if v := q.Get("locality"); v != "" {
		preds = append(preds, views.ByLocality(v))
	}
	if v := q.Get("tag"); v != "" {
		preds = append(preds, views.ByTag(v))
	}
	if v := q.Get("max_price"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, codeInvalidInput, "max_price must be a non-negative integer", "")
			return
		}
		preds = append(preds, views.PriceAtMost(limit))
	}

	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.FilterByPredicate(all, views.All(preds...)))
}

func (s *Server) handleNewLaunches(w http.ResponseWriter, _ *http.Request) {
	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.NewLaunches(all))
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, s.trendingSize)
	if !ok {
		return
	}
	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, views.TakeTrending(all, limit))
}

// ProjectDetail is the body of GET /api/projects/{id}.
type ProjectDetail struct {
	Project       project.Project `json:"project"`
	PriceLabel    string          `json:"price_label"`
	Href          string          `json:"href"`
	DeveloperHref string          `json:"developer_href"`
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	all, ok := s.projects(w)
	if !ok {
		return
	}
	p, found := views.FindProject(all, id)
	if !found {
		writeError(w, http.StatusNotFound, codeProjectNotFound, "project not found", "Check ID spelling")
		return
	}
	writeJSON(w, http.StatusOK, ProjectDetail{
		Project:       p,
		PriceLabel:    s.formatter.Price(p.StartingPrice),
		Href:          routing.ProjectPath(p.ID),
		DeveloperHref: routing.DeveloperPath(developer.Key(p)),
	})
}

func (s *Server) handleDevelopers(w http.ResponseWriter, _ *http.Request) {
	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, developer.Aggregate(all))
}

func (s *Server) handleFeaturedDevelopers(w http.ResponseWriter, r *http.Request) {
	limit, ok := limitParam(w, r, s.featuredLimit)
	if !ok {
		return
	}
	all, ok := s.projects(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, developer.Featured(all, limit))
}

func (s *Server) handleDeveloper(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	all, ok := s.projects(w)
	if !ok {
		return
	}
	summary, found := developer.Find(all, name)
	if !found {
		writeError(w, http.StatusNotFound, codeDeveloperNotFound, "developer not found", "Use /api/developers for exact names")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleCarousel(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if view != present.ViewNewLaunches && view != present.ViewTrending {
		writeError(w, http.StatusNotFound, codeInvalidView, "unknown carousel view "+strconv.Quote(view), "Use new-launches or trending")
		return
	}
	all, ok := s.projects(w)
	if !ok {
		return
	}
	out, err := present.BuildCarousel(view, all, s.carousel, s.trendingSize, s.formatter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error(), "")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// projects returns the loaded snapshot, or writes the not-loaded or failed
// response and reports false.
func (s *Server) projects(w http.ResponseWriter) ([]project.Project, bool) {
	st := s.catalog.State()
	switch {
	case st.Loaded():
		return st.Snapshot.Projects, true
	case st.Phase == catalog.PhaseFailed:
		writeError(w, http.StatusBadGateway, codeFetchFailed, st.Error, "POST /api/catalog/refresh to retry")
	default:
		writeNotLoaded(w, st.Phase)
	}
	return nil, false
}

// pathParam returns a decoded path parameter. chi hands back the escaped
// form only when the request carried a non-canonical encoding.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath != "" {
		return routing.Segment(v)
	}
	return v
}

func limitParam(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "limit must be a non-negative integer", "")
		return 0, false
	}
	return n, true
}
