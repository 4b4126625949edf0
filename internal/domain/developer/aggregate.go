// Package developer groups catalog projects by developer name.
package developer

import (
	"strings"

	"github.com/rpggio/propcatalog/internal/domain/project"
)

// Key returns the grouping key for a project: its developer name, or
// UnlistedDeveloper when the name is blank.
func Key(p project.Project) string {
	if strings.TrimSpace(p.Developer) == "" {
		return UnlistedDeveloper
	}
	return p.Developer
}

// Aggregate groups the catalog by developer in a single pass. Groups appear in
// the order their developer was first seen; projects inside a group keep
// source order. An empty catalog yields an empty, non-nil slice.
func Aggregate(catalog []project.Project) []Summary {
	index := make(map[string]int)
	out := make([]Summary, 0)

	for _, p := range catalog {
		p := p.Clone()
		key := Key(p)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, Summary{
				Developer:      key,
				City:           p.City,
				NextPossession: p.PossessionDate,
			})
		}
		out[i].Projects = append(out[i].Projects, p)
	}

	for i := range out {
		out[i].Count = len(out[i].Projects)
	}
	return out
}

// Featured returns the first limit summaries of Aggregate. It does not rank by
// count or anything else.
func Featured(catalog []project.Project, limit int) []Summary {
	all := Aggregate(catalog)
	if limit < 0 {
		limit = 0
	}
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

// Find returns the summary for name. Blank names resolve to the unlisted group.
func Find(catalog []project.Project, name string) (Summary, bool) {
	key := Key(project.Project{Developer: name})
	for _, s := range Aggregate(catalog) {
		if s.Developer == key {
			return s, true
		}
	}
	return Summary{}, false
}
