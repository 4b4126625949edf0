package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeRefreshSucceeded ActivityType = "refresh_succeeded"
	TypeRefreshFailed    ActivityType = "refresh_failed"
)

// ActivityEntry represents an event in the catalog activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Version      string       `json:"version,omitempty"`
	ProjectCount int          `json:"project_count"`
	Error        string       `json:"error,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
