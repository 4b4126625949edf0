package views

import (
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
)

// Default sizes for the landing page slices.
const (
	DefaultTrendingSize  = 8
	DefaultFeaturedLimit = 6
)

// HomeOptions sizes the slices of a Home view. Zero values fall back to the
// defaults above.
type HomeOptions struct {
	TrendingSize  int
	FeaturedLimit int
}

// Home bundles the views shown on the landing page.
type Home struct {
	NewLaunches        []project.Project   `json:"new_launches"`
	Trending           []project.Project   `json:"trending"`
	FeaturedDevelopers []developer.Summary `json:"featured_developers"`
}

// BuildHome derives every landing-page view from one snapshot.
func BuildHome(catalog []project.Project, opts HomeOptions) Home {
	if opts.TrendingSize <= 0 {
		opts.TrendingSize = DefaultTrendingSize
	}
	if opts.FeaturedLimit <= 0 {
		opts.FeaturedLimit = DefaultFeaturedLimit
	}
	return Home{
		NewLaunches:        NewLaunches(catalog),
		Trending:           TakeTrending(catalog, opts.TrendingSize),
		FeaturedDevelopers: developer.Featured(catalog, opts.FeaturedLimit),
	}
}
