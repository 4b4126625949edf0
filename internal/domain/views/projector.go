// Package views derives read-only subsets of a catalog snapshot.
//
// Every function here is pure: it never mutates its input, always returns a
// freshly allocated slice, and preserves the source order of the projects it
// keeps. An empty result is a valid answer, never an error.
package views

import "github.com/rpggio/propcatalog/internal/domain/project"

// Predicate decides whether a project belongs to a view.
type Predicate func(project.Project) bool

// FilterByStatus returns the projects whose status equals status exactly.
// Matching is case-sensitive and performs no normalization.
func FilterByStatus(catalog []project.Project, status string) []project.Project {
	return FilterByPredicate(catalog, func(p project.Project) bool {
		return p.Status == status
	})
}

// NewLaunches is the feed of projects labelled project.StatusNewLaunch.
func NewLaunches(catalog []project.Project) []project.Project {
	return FilterByStatus(catalog, project.StatusNewLaunch)
}

// TakeTrending returns the first n projects in source order. Trending is an
// insertion-order prefix, not a ranking. A short catalog yields everything it
// has; a negative n is treated as zero.
func TakeTrending(catalog []project.Project, n int) []project.Project {
	if n < 0 {
		n = 0
	}
	if n > len(catalog) {
		n = len(catalog)
	}
	out := make([]project.Project, n)
	for i := 0; i < n; i++ {
		out[i] = catalog[i].Clone()
	}
	return out
}

// FilterByPredicate keeps the projects accepted by pred, in source order.
// A nil predicate keeps everything.
func FilterByPredicate(catalog []project.Project, pred Predicate) []project.Project {
	out := make([]project.Project, 0, len(catalog))
	for _, p := range catalog {
		if pred == nil || pred(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FindProject looks a project up by id.
func FindProject(catalog []project.Project, id string) (project.Project, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return project.Project{}, false
}
