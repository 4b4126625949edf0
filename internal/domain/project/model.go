package project

// Common status labels seen in the catalog. The set is open: any other label
// is carried through untouched and simply never matches these filters.
const (
	StatusNewLaunch         = "New Launch"
	StatusUnderConstruction = "Under Construction"
	StatusReadyToMove       = "Ready to Move"
)

// Project is a real-estate listing as delivered by the data-fetch layer.
// Values are treated as immutable once fetched.
type Project struct {
	ID             string   `json:"id" yaml:"id"`
	Name           string   `json:"name,omitempty" yaml:"name"`
	Developer      string   `json:"developer" yaml:"developer"`
	City           string   `json:"city" yaml:"city"`
	Locality       string   `json:"locality" yaml:"locality"`
	Status         string   `json:"status" yaml:"status"`
	StartingPrice  int64    `json:"starting_price" yaml:"starting_price"`
	PossessionDate string   `json:"possession_date" yaml:"possession_date"`
	Tags           []string `json:"tags,omitempty" yaml:"tags"`
}

// HasTag reports whether tag is one of the project's tags.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with p.
func (p Project) Clone() Project {
	if p.Tags != nil {
		p.Tags = append([]string(nil), p.Tags...)
	}
	return p
}

// CloneAll clones every project into a new non-nil slice.
func CloneAll(projects []Project) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = p.Clone()
	}
	return out
}
