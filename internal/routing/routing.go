// Package routing builds the identifier-based addresses of catalog entities.
package routing

import "net/url"

const (
	projectsPrefix   = "/projects/"
	developersPrefix = "/developers/"
)

// ProjectPath addresses a project by id.
func ProjectPath(id string) string {
	return projectsPrefix + url.PathEscape(id)
}

// DeveloperPath addresses a developer summary by its URL-encoded name.
func DeveloperPath(name string) string {
	return developersPrefix + url.PathEscape(name)
}

// Segment decodes one escaped path segment. Segments that fail to decode
// are returned as given.
func Segment(segment string) string {
	v, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return v
}
