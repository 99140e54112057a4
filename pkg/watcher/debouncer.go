// Package watcher provides debouncing for resize signals and dataset file
// watching with a polling fallback.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer holds at most one pending callback. Each Trigger replaces the
// pending callback and restarts the window, so only the latest one runs.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	seq      uint64
	stopped  bool
}

// NewDebouncer creates a new Debouncer with the specified duration.
// If duration is 0, DefaultDebounceDuration is used.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration == 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{
		duration: duration,
	}
}

// Trigger schedules callback after the debounce duration, replacing any
// pending callback. It does nothing once the debouncer is stopped.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		if !d.claim(seq) {
			return
		}
		callback()
	})
}

// claim reports whether seq is still the latest scheduled callback. A timer
// that already fired can lose the race with a newer Trigger or Cancel.
func (d *Debouncer) claim(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || seq != d.seq {
		return false
	}
	d.timer = nil
	return true
}

// Cancel drops the pending callback, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

func (d *Debouncer) cancelLocked() {
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending callback and ignores every later Trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending reports whether a callback is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Duration returns the debounce duration.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Latest debounces a stream of values and delivers only the most recent one.
type Latest[T any] struct {
	d       *Debouncer
	deliver func(T)
}

// NewLatest returns a Latest that calls deliver with the last pushed value
// once pushes have been quiet for duration.
func NewLatest[T any](duration time.Duration, deliver func(T)) *Latest[T] {
	return &Latest[T]{d: NewDebouncer(duration), deliver: deliver}
}

// Push replaces the pending value.
func (l *Latest[T]) Push(v T) {
	l.d.Trigger(func() { l.deliver(v) })
}

// Stop drops the pending value and ignores later pushes.
func (l *Latest[T]) Stop() {
	l.d.Stop()
}

// Pending reports whether a value is waiting to be delivered.
func (l *Latest[T]) Pending() bool {
	return l.d.Pending()
}
