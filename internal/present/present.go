// Package present shapes catalog views into the payloads served over REST
// and MCP.
package present

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/propcatalog/internal/carousel"
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
	"github.com/rpggio/propcatalog/internal/domain/views"
	"github.com/rpggio/propcatalog/internal/format"
	"github.com/rpggio/propcatalog/internal/routing"
	"golang.org/x/text/message"
)

// Carousel view names.
const (
	ViewNewLaunches = "new-launches"
	ViewTrending    = "trending"
)

// ErrUnknownView is returned for a carousel view name that isn't served.
var ErrUnknownView = errors.New("unknown view")

// Formatter renders prices for one locale and currency symbol.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a formatter. An unparseable locale falls back to
// English grouping.
func NewFormatter(locale, symbol string) Formatter {
	return Formatter{printer: format.Printer(locale), symbol: symbol}
}

// Price formats a minor-unit price.
func (f Formatter) Price(minor int64) string {
	return format.Price(f.printer, minor, f.symbol)
}

// Slide is the display payload for one project card.
type Slide struct {
	ProjectID      string   `json:"project_id"`
	Title          string   `json:"title"`
	Developer      string   `json:"developer"`
	Location       string   `json:"location"`
	Status         string   `json:"status"`
	PriceLabel     string   `json:"price_label"`
	PossessionDate string   `json:"possession_date"`
	Tags           []string `json:"tags,omitempty"`
	Href           string   `json:"href"`
	DeveloperHref  string   `json:"developer_href"`
}

// Slide renders one project. Projects without a name use their id as title.
func (f Formatter) Slide(p project.Project) Slide {
	title := strings.TrimSpace(p.Name)
	if title == "" {
		title = p.ID
	}
	var tags []string
	if len(p.Tags) > 0 {
		tags = append([]string(nil), p.Tags...)
	}
	return Slide{
		ProjectID:      p.ID,
		Title:          title,
		Developer:      p.Developer,
		Location:       location(p),
		Status:         p.Status,
		PriceLabel:     f.Price(p.StartingPrice),
		PossessionDate: p.PossessionDate,
		Tags:           tags,
		Href:           routing.ProjectPath(p.ID),
		DeveloperHref:  routing.DeveloperPath(developer.Key(p)),
	}
}

func location(p project.Project) string {
	switch {
	case p.Locality != "" && p.City != "":
		return p.Locality + ", " + p.City
	case p.Locality != "":
		return p.Locality
	default:
		return p.City
	}
}

// SelectView returns the projects behind a named carousel view.
func SelectView(view string, catalog []project.Project, trendingSize int) ([]project.Project, error) {
	switch view {
	case ViewNewLaunches:
		return views.NewLaunches(catalog), nil
	case ViewTrending:
		if trendingSize <= 0 {
			trendingSize = views.DefaultTrendingSize
		}
		return views.TakeTrending(catalog, trendingSize), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}
}

// CarouselSettings is carousel.Config with plain string breakpoint keys.
type CarouselSettings struct {
	SlidesPerView                map[string]int `json:"slides_per_view"`
	SpaceBetween                 int            `json:"space_between"`
	AutoplayDelayMs              int            `json:"autoplay_delay_ms"`
	DisableAutoplayOnInteraction bool           `json:"disable_autoplay_on_interaction"`
	Loop                         bool           `json:"loop"`
}

// Settings converts a normalized engine config.
func Settings(cfg carousel.Config) CarouselSettings {
	n := cfg.Normalize()
	spv := make(map[string]int, len(n.SlidesPerView))
	for bp, count := range n.SlidesPerView {
		spv[string(bp)] = count
	}
	return CarouselSettings{
		SlidesPerView:                spv,
		SpaceBetween:                 n.SpaceBetween,
		AutoplayDelayMs:              n.AutoplayDelayMs,
		DisableAutoplayOnInteraction: n.DisableAutoplayOnInteraction,
		Loop:                         n.Loop,
	}
}

// Carousel is the full payload a client needs to mount one carousel.
type Carousel struct {
	View        string                       `json:"view"`
	Config      CarouselSettings             `json:"config"`
	Breakpoints []carousel.BreakpointSetting `json:"breakpoints"`
	Slides      []Slide                      `json:"slides"`
}

// BuildCarousel resolves view against catalog and renders its slides.
func BuildCarousel(view string, catalog []project.Project, cfg carousel.Config, trendingSize int, f Formatter) (Carousel, error) {
	items, err := SelectView(view, catalog, trendingSize)
	if err != nil {
		return Carousel{}, err
	}
	return Carousel{
		View:        view,
		Config:      Settings(cfg),
		Breakpoints: cfg.Breakpoints(),
		Slides:      carousel.RenderSlides(items, f.Slide),
	}, nil
}
