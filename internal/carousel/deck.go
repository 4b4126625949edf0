package carousel

import (
	"sort"
	"sync"
)

// Deck is a headless slide engine. It tracks the active slide, binds
// navigation controls and reports user interaction. Swipes work whether or
// not navigation is bound.
type Deck struct {
	mu        sync.Mutex
	count     int
	perView   int
	loop      bool
	active    int
	prev      Control
	next      Control
	unbind    []func()
	navBound  bool
	prevOff   bool
	nextOff   bool
	destroyed bool

	subID     int
	listeners map[int]func()
	onChange  func(active int)
}

// NewDeck creates an engine for count slides showing perView at once.
func NewDeck(count, perView int, loop bool) *Deck {
	if count < 0 {
		count = 0
	}
	if perView < 1 {
		perView = 1
	}
	return &Deck{count: count, perView: perView, loop: loop}
}

// OnSlideChange registers a callback for active index changes.
func (d *Deck) OnSlideChange(fn func(active int)) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// SetNavigation implements Engine.
func (d *Deck) SetNavigation(prev, next Control) {
	d.mu.Lock()
	d.prev, d.next = prev, next
	d.mu.Unlock()
}

// InitNavigation binds press handlers to the registered controls.
func (d *Deck) InitNavigation() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrEngineDestroyed
	}
	if d.prev == nil || d.next == nil {
		return ErrControlsMissing
	}
	if d.navBound {
		return nil
	}
	d.unbind = append(d.unbind,
		d.prev.Bind(func() { d.press(-1) }),
		d.next.Bind(func() { d.press(1) }),
	)
	d.navBound = true
	d.updateLocked()
	return nil
}

// UpdateNavigation recomputes which controls are disabled.
func (d *Deck) UpdateNavigation() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrEngineDestroyed
	}
	d.updateLocked()
	return nil
}

// DestroyNavigation detaches press handlers. Destroying unbound navigation is
// a no-op.
func (d *Deck) DestroyNavigation() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return ErrEngineDestroyed
	}
	d.detachLocked()
	return nil
}

// NavigationBound reports whether the controls are wired to the deck.
func (d *Deck) NavigationBound() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.navBound
}

// ControlsDisabled reports whether prev and next are disabled at the edges.
func (d *Deck) ControlsDisabled() (prev, next bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prevOff, d.nextOff
}

// SlideNext advances one slide. It is what autoplay calls and does not count
// as user interaction.
func (d *Deck) SlideNext() {
	d.move(1, false)
}

// SlidePrev moves back one slide without counting as interaction.
func (d *Deck) SlidePrev() {
	d.move(-1, false)
}

// Swipe moves by delta slides as a user gesture.
func (d *Deck) Swipe(delta int) {
	if delta == 0 {
		return
	}
	d.move(delta, true)
}

// Active returns the index of the first visible slide.
func (d *Deck) Active() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// OnInteraction implements Engine.
func (d *Deck) OnInteraction(fn func()) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listeners == nil {
		d.listeners = make(map[int]func())
	}
	id := d.subID
	d.subID++
	d.listeners[id] = fn
	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Destroy tears the engine down. Later navigation calls fail with
// ErrEngineDestroyed and slide moves are ignored.
func (d *Deck) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroyed {
		return
	}
	d.detachLocked()
	d.destroyed = true
	d.listeners = nil
	d.onChange = nil
}

// Destroyed reports whether Destroy has been called.
func (d *Deck) Destroyed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.destroyed
}

func (d *Deck) press(delta int) {
	d.move(delta, true)
}

func (d *Deck) move(delta int, interactive bool) {
	d.mu.Lock()
	if d.destroyed || d.count == 0 {
		d.mu.Unlock()
		return
	}
	before := d.active
	d.active = d.target(delta)
	d.updateLocked()
	changed := d.active != before
	active := d.active
	onChange := d.onChange
	var listeners []func()
	if interactive {
		listeners = d.listenersLocked()
	}
	d.mu.Unlock()

	if changed && onChange != nil {
		onChange(active)
	}
	for _, fn := range listeners {
		fn()
	}
}

func (d *Deck) target(delta int) int {
	last := d.lastIndex()
	next := d.active + delta
	if d.loop {
		span := last + 1
		return ((next % span) + span) % span
	}
	if next < 0 {
		return 0
	}
	if next > last {
		return last
	}
	return next
}

// lastIndex is the highest index the first visible slide can take.
func (d *Deck) lastIndex() int {
	last := d.count - d.perView
	if last < 0 {
		return 0
	}
	return last
}

func (d *Deck) updateLocked() {
	if d.loop || d.count == 0 {
		d.prevOff, d.nextOff = false, false
		return
	}
	d.prevOff = d.active == 0
	d.nextOff = d.active >= d.lastIndex()
}

func (d *Deck) detachLocked() {
	for _, fn := range d.unbind {
		fn()
	}
	d.unbind = nil
	d.navBound = false
}

func (d *Deck) listenersLocked() []func() {
	ids := make([]int, 0, len(d.listeners))
	for id := range d.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, d.listeners[id])
	}
	return out
}
