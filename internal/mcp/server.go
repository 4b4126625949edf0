package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/activity"
	"github.com/rpggio/propcatalog/internal/domain/catalog"
	"github.com/rpggio/propcatalog/internal/present"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// CatalogService defines the catalog operations needed by MCP.
type CatalogService interface {
	State() catalog.State
	Snapshot() (catalog.Snapshot, error)
	Refresh(ctx context.Context) error
}

// HistoryService lists recorded catalog refreshes.
type HistoryService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Config contains server configuration.
type Config struct {
	Catalog       CatalogService
	Carousel      carousel.Config
	TrendingSize  int
	FeaturedLimit int
	Formatter     present.Formatter
	Logger        *slog.Logger
	// History enables the catalog_history tool when set.
	History HistoryService
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "propcatalog",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &toolset{
		catalog:       cfg.Catalog,
		carousel:      cfg.Carousel.Normalize(),
		trendingSize:  cfg.TrendingSize,
		featuredLimit: cfg.FeaturedLimit,
		formatter:     cfg.Formatter,
		history:       cfg.History,
	})

	return server
}
