package views

import (
	"strings"

	"github.com/rpggio/propcatalog/internal/domain/project"
)

// ByCity matches the city case-insensitively, ignoring surrounding spaces.
func ByCity(city string) Predicate {
	want := strings.TrimSpace(city)
	return func(p project.Project) bool {
		return strings.EqualFold(strings.TrimSpace(p.City), want)
	}
}

// ByLocality matches the locality case-insensitively.
func ByLocality(locality string) Predicate {
	want := strings.TrimSpace(locality)
	return func(p project.Project) bool {
		return strings.EqualFold(strings.TrimSpace(p.Locality), want)
	}
}

// ByTag matches projects carrying tag exactly.
func ByTag(tag string) Predicate {
	return func(p project.Project) bool {
		return p.HasTag(tag)
	}
}

// ByStatus is the predicate form of FilterByStatus.
func ByStatus(status string) Predicate {
	return func(p project.Project) bool {
		return p.Status == status
	}
}

// PriceAtMost keeps projects whose starting price does not exceed limit.
func PriceAtMost(limit int64) Predicate {
	return func(p project.Project) bool {
		return p.StartingPrice <= limit
	}
}

// All combines predicates with logical AND. Nil entries are skipped and an
// empty list accepts everything.
func All(preds ...Predicate) Predicate {
	return func(p project.Project) bool {
		for _, pred := range preds {
			if pred != nil && !pred(p) {
				return false
			}
		}
		return true
	}
}
