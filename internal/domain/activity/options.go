package activity

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ActivityType *ActivityType
	Limit        int
}
