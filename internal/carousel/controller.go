// Package carousel binds previous/next navigation controls to a slide engine
// whose readiness is established asynchronously, and drives its autoplay.
//
// The presentation layer mounts the controls some time after the engine may
// first look for them. The controller registers whatever it has at the
// engine's earliest hook and then schedules a deferred pass that re-binds
// navigation once both controls exist. That pass is best effort: the engine's
// swipe gestures work without the buttons, so a failed re-bind is logged and
// dropped.
package carousel

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxRebindAttempts bounds how many deferred passes wait for the
// controls before giving up.
const DefaultMaxRebindAttempts = 10

// Controller owns one carousel instance's binding state and autoplay timer.
// Instances share nothing.
type Controller struct {
	id          string
	cfg         Config
	sched       Scheduler
	logger      *slog.Logger
	maxAttempts int

	prev *Handle
	next *Handle

	mu              sync.Mutex
	state           State
	engine          Engine
	disposed        bool
	attempts        int
	cancelDeferred  func()
	autoplayOn      bool
	stopAutoplay    func()
	unsubscribeUser func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the timer-backed scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the logger used for swallowed re-bind failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxRebindAttempts bounds the deferred passes that wait for controls.
func WithMaxRebindAttempts(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// NewController creates a controller in the Uninitialized state.
func NewController(cfg Config, opts ...Option) *Controller {
	c := &Controller{
		id:          uuid.NewString(),
		cfg:         cfg.Normalize(),
		sched:       TimerScheduler{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAttempts: DefaultMaxRebindAttempts,
		prev:        &Handle{},
		next:        &Handle{},
		state:       Uninitialized,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID identifies this instance in logs.
func (c *Controller) ID() string { return c.id }

// Config returns the normalized configuration.
func (c *Controller) Config() Config { return c.cfg }

// Prev is the slot for the previous-slide control.
func (c *Controller) Prev() *Handle { return c.prev }

// Next is the slot for the next-slide control.
func (c *Controller) Next() *Handle { return c.next }

// State returns the current binding state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// AutoplayRunning reports whether the autoplay timer is active.
func (c *Controller) AutoplayRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoplayOn
}

// BeforeInit is the engine's earliest hook. It registers the current handle
// contents, nil or not, into the engine's navigation parameters.
func (c *Controller) BeforeInit(engine Engine) {
	c.mu.Lock()
	if c.disposed || c.state != Uninitialized {
		c.mu.Unlock()
		return
	}
	c.engine = engine
	c.state = ControlsRegistered
	c.mu.Unlock()

	engine.SetNavigation(c.prev.Element(), c.next.Element())
}

// Mount records that the engine finished initializing. It starts autoplay
// and schedules the deferred re-binding pass.
func (c *Controller) Mount(engine Engine) {
	c.mu.Lock()
	if c.disposed || c.state >= EngineMounted {
		c.mu.Unlock()
		return
	}
	register := c.state == Uninitialized
	c.engine = engine
	c.state = EngineMounted
	c.attempts = 0
	c.cancelDeferred = c.sched.Defer(c.rebind)
	c.mu.Unlock()

	if register {
		engine.SetNavigation(c.prev.Element(), c.next.Element())
	}
	c.startAutoplay(engine)
}

// Rebind schedules another deferred pass, for callers that learn the controls
// were mounted late. It replaces any pending pass and is a no-op before the
// engine is mounted or once navigation is bound.
func (c *Controller) Rebind() {
	c.mu.Lock()
	if c.disposed || c.engine == nil || c.state != EngineMounted {
		c.mu.Unlock()
		return
	}
	pending := c.cancelDeferred
	c.attempts = 0
	c.cancelDeferred = c.sched.Defer(c.rebind)
	c.mu.Unlock()

	if pending != nil {
		pending()
	}
}

// Dispose cancels the pending deferred pass and the autoplay timer. The
// controller ignores every later call.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.autoplayOn = false
	cancel, stop, unsubscribe := c.cancelDeferred, c.stopAutoplay, c.unsubscribeUser
	c.cancelDeferred, c.stopAutoplay, c.unsubscribeUser = nil, nil, nil
	c.engine = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if stop != nil {
		stop()
	}
	if unsubscribe != nil {
		unsubscribe()
	}
}

// rebind is the deferred pass. Errors and panics from the engine are
// swallowed; this is the only place the controller discards failures.
func (c *Controller) rebind() {
	c.mu.Lock()
	if c.disposed || c.engine == nil || c.state == NavigationBound {
		c.mu.Unlock()
		return
	}
	prev, next := c.prev.Element(), c.next.Element()
	if prev == nil || next == nil {
		c.attempts++
		if c.attempts < c.maxAttempts {
			c.cancelDeferred = c.sched.Defer(c.rebind)
		} else {
			c.logger.Debug("carousel controls never mounted", "carousel", c.id, "attempts", c.attempts)
		}
		c.mu.Unlock()
		return
	}
	engine := c.engine
	c.mu.Unlock()

	if err := bindNavigation(engine, prev, next); err != nil {
		c.logger.Debug("carousel navigation rebind dropped", "carousel", c.id, "error", err)
		return
	}

	c.mu.Lock()
	if !c.disposed && c.engine == engine {
		c.state = NavigationBound
	}
	c.mu.Unlock()
}

func bindNavigation(engine Engine, prev, next Control) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("navigation rebind panicked: %v", r)
		}
	}()

	engine.SetNavigation(prev, next)
	if err := engine.DestroyNavigation(); err != nil {
		return err
	}
	if err := engine.InitNavigation(); err != nil {
		return err
	}
	return engine.UpdateNavigation()
}

func (c *Controller) startAutoplay(engine Engine) {
	delay := c.cfg.AutoplayDelay()
	if delay <= 0 {
		return
	}

	unsubscribe := engine.OnInteraction(c.onUserInteraction)

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		unsubscribe()
		return
	}
	c.unsubscribeUser = unsubscribe
	c.autoplayOn = true
	c.stopAutoplay = c.sched.Every(delay, c.autoplayTick)
	c.mu.Unlock()
}

func (c *Controller) autoplayTick() {
	c.mu.Lock()
	if c.disposed || !c.autoplayOn || c.engine == nil {
		c.mu.Unlock()
		return
	}
	engine := c.engine
	c.mu.Unlock()

	engine.SlideNext()
}

// onUserInteraction pauses autoplay for good when DisableAutoplayOnInteraction
// is set and otherwise restarts the delay from the interaction.
func (c *Controller) onUserInteraction() {
	c.mu.Lock()
	if c.disposed || !c.autoplayOn {
		c.mu.Unlock()
		return
	}
	old := c.stopAutoplay
	if c.cfg.DisableAutoplayOnInteraction {
		c.autoplayOn = false
		c.stopAutoplay = nil
	} else {
		c.stopAutoplay = c.sched.Every(c.cfg.AutoplayDelay(), c.autoplayTick)
	}
	c.mu.Unlock()

	if old != nil {
		old()
	}
}
