package carousel

// Engine is the slide-presentation engine the controller binds navigation to.
// The engine owns its own timing and swipe state; the controller only hands
// it the navigation controls and drives autoplay.
type Engine interface {
	// SetNavigation registers the controls in the engine's navigation
	// parameters. Either may be nil when the presentation layer hasn't
	// mounted it yet.
	SetNavigation(prev, next Control)
	DestroyNavigation() error
	InitNavigation() error
	UpdateNavigation() error

	SlideNext()
	// OnInteraction subscribes to user-driven slide changes (button presses
	// and swipes). The returned function unsubscribes.
	OnInteraction(fn func()) (unsubscribe func())
}
