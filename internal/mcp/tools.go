package mcp

import (
	"context"
	"time"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/present"
	"github.com/rpggio/propcatalog/internal/routing"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type toolset struct {
	catalog       CatalogService
	carousel      carousel.Config
	trendingSize  int
	featuredLimit int
	formatter     present.Formatter
	history       HistoryService
}

func registerTools(server *sdkmcp.Server, t *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "catalog_status",
		Description: "Report whether the catalog is idle, loading, loaded or failed",
	}, t.catalogStatus)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "refresh_catalog",
		Description: "Fetch a new catalog snapshot and report the resulting status",
	}, t.refreshCatalog)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_new_launches",
		Description: "List projects whose status is exactly New Launch, in catalog order",
	}, t.listNewLaunches)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_trending",
		Description: "List the first projects of the catalog (the trending prefix)",
	}, t.listTrending)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "filter_projects",
		Description: "Filter projects by status, city, locality, tag and maximum price; all given filters must match",
	}, t.filterProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project by id",
	}, t.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_developers",
		Description: "Group the catalog by developer in order of first appearance",
	}, t.listDevelopers)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "featured_developers",
		Description: "List the first developer groups (the featured prefix)",
	}, t.featuredDevelopers)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_developer",
		Description: "Get one developer group by exact name",
	}, t.getDeveloper)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "carousel_config",
		Description: "Get the carousel settings, breakpoints and rendered slides for a view",
	}, t.carouselConfig)
	if t.history != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "catalog_history",
			Description: "List recent catalog refreshes, newest first",
		}, t.catalogHistory)
	}
}

func statusOf(st catalog.State) CatalogStatus {
	out := CatalogStatus{
		Phase:        string(st.Phase),
		ProjectCount: st.ProjectCount(),
		Error:        st.Error,
	}
	if st.Snapshot != nil {
		out.Version = st.Snapshot.Version
		out.FetchedAt = st.Snapshot.FetchedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func (t *toolset) projects() ([]project.Project, error) {
	snap, err := t.catalog.Snapshot()
	if err != nil {
		return nil, toolError(err)
	}
	return snap.Projects, nil
}

func projectList(list []project.Project) ProjectList {
	return ProjectList{Projects: list, Count: len(list)}
}

func developerList(list []developer.Summary) DeveloperList {
	return DeveloperList{Developers: list, Count: len(list)}
}

func (t *toolset) catalogStatus(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, CatalogStatus, error) {
	return nil, statusOf(t.catalog.State()), nil
}

func (t *toolset) refreshCatalog(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, CatalogStatus, error) {
	if err := t.catalog.Refresh(ctx); err != nil {
		return nil, CatalogStatus{}, &APIError{Code: "CATALOG_FETCH_FAILED", Message: err.Error(), RecoveryHint: "Check the catalog source and retry"}
	}
	return nil, statusOf(t.catalog.State()), nil
}

func (t *toolset) listNewLaunches(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, ProjectList, error) {
	all, err := t.projects()
	if err != nil {
		return nil, ProjectList{}, err
	}
	return nil, projectList(views.NewLaunches(all)), nil
}

func (t *toolset) listTrending(_ context.Context, _ *sdkmcp.CallToolRequest, in LimitInput) (*sdkmcp.CallToolResult, ProjectList, error) {
	all, err := t.projects()
	if err != nil {
		return nil, ProjectList{}, err
	}
	n := in.Limit
	if n <= 0 {
		n = t.trendingSize
	}
	if n <= 0 {
		n = views.DefaultTrendingSize
	}
	return nil, projectList(views.TakeTrending(all, n)), nil
}

func (t *toolset) filterProjects(_ context.Context, _ *sdkmcp.CallToolRequest, in FilterProjectsInput) (*sdkmcp.CallToolResult, ProjectList, error) {
	all, err := t.projects()
	if err != nil {
		return nil, ProjectList{}, err
	}
	var preds []views.Predicate
	if in.Status != "" {
		preds = append(preds, views.ByStatus(in.Status))
	}
	if in.City != "" {
		preds = append(preds, views.ByCity(in.City))
	}
	if in.Locality != "" {
		preds = append(preds, views.ByLocality(in.Locality))
	}
	if in.Tag != "" {
		preds = append(preds, views.ByTag(in.Tag))
	}
	if in.MaxPrice > 0 {
		preds = append(preds, views.PriceAtMost(in.MaxPrice))
	}
	return nil, projectList(views.FilterByPredicate(all, views.All(preds...))), nil
}

func (t *toolset) getProject(_ context.Context, _ *sdkmcp.CallToolRequest, in GetProjectInput) (*sdkmcp.CallToolResult, ProjectDetail, error) {
	all, err := t.projects()
	if err != nil {
		return nil, ProjectDetail{}, err
	}
	p, ok := views.FindProject(all, in.ID)
	if !ok {
		return nil, ProjectDetail{}, toolError(project.ErrProjectNotFound)
	}
	return nil, ProjectDetail{
		Project:    p,
		PriceLabel: t.formatter.Price(p.StartingPrice),
		Href:       routing.ProjectPath(p.ID),
	}, nil
}

func (t *toolset) listDevelopers(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyInput) (*sdkmcp.CallToolResult, DeveloperList, error) {
	all, err := t.projects()
	if err != nil {
		return nil, DeveloperList{}, err
	}
	return nil, developerList(developer.Aggregate(all)), nil
}

func (t *toolset) featuredDevelopers(_ context.Context, _ *sdkmcp.CallToolRequest, in LimitInput) (*sdkmcp.CallToolResult, DeveloperList, error) {
	all, err := t.projects()
	if err != nil {
		return nil, DeveloperList{}, err
	}
	n := in.Limit
	if n <= 0 {
		n = t.featuredLimit
	}
	if n <= 0 {
		n = views.DefaultFeaturedLimit
	}
	return nil, developerList(developer.Featured(all, n)), nil
}

func (t *toolset) getDeveloper(_ context.Context, _ *sdkmcp.CallToolRequest, in GetDeveloperInput) (*sdkmcp.CallToolResult, DeveloperDetail, error) {
	all, err := t.projects()
	if err != nil {
		return nil, DeveloperDetail{}, err
	}
	summary, ok := developer.Find(all, in.Name)
	if !ok {
		return nil, DeveloperDetail{}, toolError(ErrDeveloperNotFound)
	}
	return nil, DeveloperDetail{
		Developer: summary,
		Href:      routing.DeveloperPath(summary.Developer),
	}, nil
}

func (t *toolset) carouselConfig(_ context.Context, _ *sdkmcp.CallToolRequest, in CarouselInput) (*sdkmcp.CallToolResult, present.Carousel, error) {
	all, err := t.projects()
	if err != nil {
		return nil, present.Carousel{}, err
	}
	out, err := present.BuildCarousel(in.View, all, t.carousel, t.trendingSize, t.formatter)
	if err != nil {
		return nil, present.Carousel{}, toolError(err)
	}
	return nil, out, nil
}

func (t *toolset) catalogHistory(ctx context.Context, _ *sdkmcp.CallToolRequest, in HistoryInput) (*sdkmcp.CallToolResult, HistoryList, error) {
	opts := activity.ListActivityOptions{Limit: in.Limit}
	if in.Type != "" {
		typ := activity.ActivityType(in.Type)
		if typ != activity.TypeRefreshSucceeded && typ != activity.TypeRefreshFailed {
			return nil, HistoryList{}, &APIError{Code: "INVALID_INPUT", Message: "unknown activity type: " + in.Type, RecoveryHint: "Use refresh_succeeded or refresh_failed"}
		}
		opts.ActivityType = &typ
	}

	entries, err := t.history.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, HistoryList{}, err
	}
	out := HistoryList{Entries: make([]HistoryEntry, 0, len(entries)), Count: len(entries)}
	for _, e := range entries {
		out.Entries = append(out.Entries, HistoryEntry{
			ID:           e.ID,
			Type:         string(e.ActivityType),
			Summary:      e.Summary,
			Version:      e.Version,
			ProjectCount: e.ProjectCount,
			Error:        e.Error,
			CreatedAt:    e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return nil, out, nil
}
