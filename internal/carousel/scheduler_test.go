package carousel

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// manualScheduler queues deferred work and recurring ticks until the test
// drives them explicitly.
type manualScheduler struct {
	mu       sync.Mutex
	deferred []*manualTask
	timers   []*manualTimer
}

type manualTask struct {
	fn        func()
	cancelled bool
}

type manualTimer struct {
	interval time.Duration
	fn       func()
	stopped  bool
}

func (s *manualScheduler) Defer(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{fn: fn}
	s.deferred = append(s.deferred, task)
	return func() {
		s.mu.Lock()
		task.cancelled = true
		s.mu.Unlock()
	}
}

func (s *manualScheduler) Every(interval time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	timer := &manualTimer{interval: interval, fn: fn}
	s.timers = append(s.timers, timer)
	return func() {
		s.mu.Lock()
		timer.stopped = true
		s.mu.Unlock()
	}
}

// Tick runs the tasks that were queued before the call, like one turn of an
// event loop. Tasks they queue wait for the next Tick.
func (s *manualScheduler) Tick() int {
	s.mu.Lock()
	tasks := s.deferred
	s.deferred = nil
	s.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		s.mu.Lock()
		cancelled := task.cancelled
		s.mu.Unlock()
		if cancelled {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}

// RunDeferredIgnoringCancel runs queued tasks even if cancelled, to model a
// timer that already fired when cancel raced with it.
func (s *manualScheduler) RunDeferredIgnoringCancel() {
	s.mu.Lock()
	tasks := s.deferred
	s.deferred = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task.fn()
	}
}

// Fire triggers every running recurring timer once.
func (s *manualScheduler) Fire() int {
	s.mu.Lock()
	var live []*manualTimer
	for _, tm := range s.timers {
		if !tm.stopped {
			live = append(live, tm)
		}
	}
	s.mu.Unlock()

	for _, tm := range live {
		tm.fn()
	}
	return len(live)
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, task := range s.deferred {
		if !task.cancelled {
			n++
		}
	}
	return n
}

func (s *manualScheduler) RunningTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, tm := range s.timers {
		if !tm.stopped {
			n++
		}
	}
	return n
}

func TestTimerScheduler_DeferRunsAfterCurrentTurn(t *testing.T) {
	ran := make(chan struct{})
	TimerScheduler{}.Defer(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("deferred task never ran")
	}
}

func TestTimerScheduler_EveryStopsDeterministically(t *testing.T) {
	var count atomic.Int64
	stop := TimerScheduler{}.Every(time.Millisecond, func() {
		count.Add(1)
	})

	require.Eventually(t, func() bool { return count.Load() >= 2 }, time.Second, time.Millisecond)

	stop()
	atStop := count.Load()

	// A run that was already past its check may still land once.
	time.Sleep(20 * time.Millisecond)
	settled := count.Load()
	require.LessOrEqual(t, settled, atStop+1)

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, settled, count.Load(), "tick ran after stop returned")

	stop()
}

func TestTimerScheduler_StopFromInsideTick(t *testing.T) {
	var count atomic.Int64
	ready := make(chan struct{})
	returned := make(chan struct{})
	var once sync.Once

	var stop func()
	stop = TimerScheduler{}.Every(time.Millisecond, func() {
		<-ready
		count.Add(1)
		stop()
		once.Do(func() { close(returned) })
	})
	close(ready)

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("stop called from a tick never returned")
	}

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int64(1), count.Load())
}
