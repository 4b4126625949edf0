package mcp

import (
	"github.com/rpggio/propcatalog/internal/domain/developer"
	"github.com/rpggio/propcatalog/internal/domain/project"
)

type EmptyInput struct{}

type LimitInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of items (defaults to the server setting)"`
}

type FilterProjectsInput struct {
	Status   string `json:"status,omitempty" jsonschema:"exact status label, e.g. New Launch"`
	City     string `json:"city,omitempty" jsonschema:"city name, case-insensitive"`
	Locality string `json:"locality,omitempty" jsonschema:"locality name, case-insensitive"`
	Tag      string `json:"tag,omitempty" jsonschema:"exact tag, e.g. Trending"`
	MaxPrice int64  `json:"max_price,omitempty" jsonschema:"upper bound on starting price in minor units"`
}

type GetProjectInput struct {
	ID string `json:"id" jsonschema:"project id"`
}

type GetDeveloperInput struct {
	Name string `json:"name" jsonschema:"developer name as listed, or Unlisted Developer"`
}

type CarouselInput struct {
	View string `json:"view" jsonschema:"new-launches or trending"`
}

type HistoryInput struct {
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of entries (default 20)"`
	Type  string `json:"type,omitempty" jsonschema:"refresh_succeeded or refresh_failed"`
}

type CatalogStatus struct {
	Phase        string `json:"phase"`
	Version      string `json:"version,omitempty"`
	FetchedAt    string `json:"fetched_at,omitempty"`
	ProjectCount int    `json:"project_count"`
	Error        string `json:"error,omitempty"`
}

type ProjectList struct {
	Projects []project.Project `json:"projects"`
	Count    int               `json:"count"`
}

type ProjectDetail struct {
	Project    project.Project `json:"project"`
	PriceLabel string          `json:"price_label"`
	Href       string          `json:"href"`
}

type DeveloperList struct {
	Developers []developer.Summary `json:"developers"`
	Count      int                 `json:"count"`
}

type DeveloperDetail struct {
	Developer developer.Summary `json:"developer"`
	Href      string            `json:"href"`
}

type HistoryEntry struct {
	ID           int64  `json:"id"`
	Type         string `json:"type"`
	Summary      string `json:"summary"`
	Version      string `json:"version,omitempty"`
	ProjectCount int    `json:"project_count"`
	Error        string `json:"error,omitempty"`
	CreatedAt    string `json:"created_at"`
}

type HistoryList struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}
