package catalog

import "errors"

var (
	// ErrNotLoaded indicates no snapshot is available yet (idle or loading).
	ErrNotLoaded = errors.New("catalog not loaded")
	// ErrFetchFailed indicates the most recent fetch failed.
	ErrFetchFailed = errors.New("catalog fetch failed")
)
