package carousel

import "errors"

var (
	// ErrEngineDestroyed is returned by an engine that has been torn down.
	ErrEngineDestroyed = errors.New("slide engine destroyed")
	// ErrControlsMissing is returned when navigation is initialized before
	// both controls are mounted.
	ErrControlsMissing = errors.New("navigation controls not mounted")
	// ErrInvalidConfig indicates an unusable carousel configuration.
	ErrInvalidConfig = errors.New("invalid carousel config")
)
