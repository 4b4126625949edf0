package carousel

import (
	"sort"
	"sync"
)

// Control is an interactive element rendered by the presentation layer.
// Bind registers a press handler and returns a function that removes it.
type Control interface {
	Bind(onPress func()) (unbind func())
}

// Handle is a slot the presentation layer fills once its control is mounted.
// The controller only keeps the slot; the element may arrive later.
type Handle struct {
	mu sync.RWMutex
	el Control
}

// Mount stores the rendered control.
func (h *Handle) Mount(el Control) {
	h.mu.Lock()
	h.el = el
	h.mu.Unlock()
}

// Unmount clears the slot.
func (h *Handle) Unmount() {
	h.Mount(nil)
}

// Element returns the mounted control, or nil.
func (h *Handle) Element() Control {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.el
}

// Ready reports whether a control is mounted.
func (h *Handle) Ready() bool {
	return h.Element() != nil
}

// Button is an in-process Control. Press invokes every bound handler.
type Button struct {
	Label string

	mu       sync.Mutex
	next     int
	handlers map[int]func()
}

// NewButton creates a labelled button.
func NewButton(label string) *Button {
	return &Button{Label: label}
}

// Bind implements Control.
func (b *Button) Bind(onPress func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[int]func())
	}
	id := b.next
	b.next++
	b.handlers[id] = onPress

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

// Press fires the bound handlers in registration order.
func (b *Button) Press() {
	b.mu.Lock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	handlers := make([]func(), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		handlers = append(handlers, b.handlers[id])
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
}

// Bound reports how many handlers are attached.
func (b *Button) Bound() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}
