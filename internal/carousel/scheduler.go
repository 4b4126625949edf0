package carousel

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs deferred and recurring work for a Controller.
type Scheduler interface {
	// Defer runs fn once after the current turn. cancel prevents a run that
	// hasn't started yet.
	Defer(fn func()) (cancel func())
	// Every runs fn each interval until stop is called. No run starts after
	// stop returns; a run already in progress finishes. stop never blocks, so
	// fn may call it.
	Every(interval time.Duration, fn func()) (stop func())
}

// TimerScheduler is the production Scheduler backed by the runtime timers.
type TimerScheduler struct{}

// Defer implements Scheduler with a zero-delay timer.
func (TimerScheduler) Defer(fn func()) func() {
	t := time.AfterFunc(0, fn)
	return func() { t.Stop() }
}

// Every implements Scheduler with a ticker goroutine. fn runs without any
// scheduler lock held.
func (TimerScheduler) Every(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	var stopped atomic.Bool

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if stopped.Load() {
					return
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			stopped.Store(true)
			close(done)
		})
	}
}
