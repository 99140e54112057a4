// Package view owns the chart state that hosts drive: the current frame,
// the tier history used for hysteresis, and the hovered project.
package view

import "sync"

// Host is a surface the chart renders into. It reports its pixel width and
// notifies about later width changes.
type Host interface {
	MeasureWidth() float64
	ObserveWidth(fn func(width float64)) (unsubscribe func())
}

// StaticHost is a Host whose width changes only when Resize is called.
type StaticHost struct {
	mu        sync.Mutex
	width     float64
	observers map[int]func(float64)
	next      int
}

// NewStaticHost returns a host with a fixed initial width.
func NewStaticHost(width float64) *StaticHost {
	return &StaticHost{width: width, observers: make(map[int]func(float64))}
}

// MeasureWidth returns the current width.
func (h *StaticHost) MeasureWidth() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width
}

// ObserveWidth registers fn for width changes.
func (h *StaticHost) ObserveWidth(fn func(float64)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	h.observers[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.observers, id)
	}
}

// Resize sets the width and notifies observers synchronously.
func (h *StaticHost) Resize(width float64) {
	h.mu.Lock()
	h.width = width
	fns := make([]func(float64), 0, len(h.observers))
	for _, fn := range h.observers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(width)
	}
}

// Observers returns the number of registered observers.
func (h *StaticHost) Observers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}
