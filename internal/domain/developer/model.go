package developer

import "github.com/rpggio/propcatalog/internal/domain/project"

// UnlistedDeveloper groups projects whose developer field is blank.
const UnlistedDeveloper = "Unlisted Developer"

// Summary aggregates the projects of one developer.
//
// City and NextPossession are copied from the first project seen for the
// developer in source order. They are not the most common city or the
// earliest possession date.
type Summary struct {
	Developer      string            `json:"developer"`
	Projects       []project.Project `json:"projects"`
	Count          int               `json:"count"`
	City           string            `json:"city"`
	NextPossession string            `json:"next_possession"`
}
