package carousel

// State is the navigation-binding lifecycle of a Controller.
type State int

const (
	Uninitialized State = iota
	ControlsRegistered
	EngineMounted
	NavigationBound
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ControlsRegistered:
		return "controls_registered"
	case EngineMounted:
		return "engine_mounted"
	case NavigationBound:
		return "navigation_bound"
	default:
		return "unknown"
	}
}
