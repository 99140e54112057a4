package view

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/watcher"
)

// RelayoutThreshold is the width change, in pixels, below which a resize
// within the same tier is ignored.
const RelayoutThreshold = 5.0

// ErrTornDown is returned when mounting a chart after Teardown.
var ErrTornDown = errors.New("chart has been torn down")

// Option configures a Chart.
type Option func(*Chart)

// WithLogger sets the logger used for degraded layouts.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chart) { c.logger = l }
}

// WithDebounce sets the quiet period before a resize is applied.
func WithDebounce(d time.Duration) Option {
	return func(c *Chart) { c.debounce = d }
}

// WithOnChange registers a callback run after every applied relayout, data
// swap or hover change. It runs without the chart lock held.
func WithOnChange(fn func()) Option {
	return func(c *Chart) { c.onChange = fn }
}

// Chart is the stateful renderer. Layout results are computed from scratch
// and swapped in whole; hover only toggles which tooltip is composed.
type Chart struct {
	mu        sync.Mutex
	projects  []model.Project
	frame     *layout.Frame
	lastTier  layout.Tier
	lastWidth float64
	hovered   string
	torn      bool

	host        Host
	unsubscribe func()
	resize      *watcher.Latest[float64]

	debounce time.Duration
	logger   *slog.Logger
	onChange func()
}

// NewChart creates an unmounted chart over the provider's projects.
func NewChart(p model.Provider, opts ...Option) *Chart {
	c := &Chart{debounce: watcher.DefaultDebounceDuration}
	if p != nil {
		c.projects = p.Projects()
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.resize = watcher.NewLatest(c.debounce, func(w float64) {
		if c.Relayout(w) {
			c.changed()
		}
	})
	return c
}

// Mount measures the host, lays out the first frame and subscribes to
// width changes. Mounting again moves the chart to the new host.
func (c *Chart) Mount(h Host) error {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return ErrTornDown
	}
	prev := c.unsubscribe
	c.host = h
	c.unsubscribe = nil
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
	c.Relayout(h.MeasureWidth())
	unsub := h.ObserveWidth(c.resize.Push)

	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		unsub()
		return ErrTornDown
	}
	c.unsubscribe = unsub
	c.mu.Unlock()

	c.changed()
	return nil
}

// Relayout applies a measured width. It reports whether a new frame was
// computed: the first call always computes, later calls only when the width
// moved by more than RelayoutThreshold or the tier changed.
func (c *Chart) Relayout(width float64) bool {
	if math.IsNaN(width) || width < 0 {
		width = 0
	}

	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return false
	}
	tier := layout.ResolveTier(width, c.lastTier, c.lastWidth)
	if c.frame != nil && math.Abs(width-c.lastWidth) <= RelayoutThreshold && tier == c.lastTier {
		c.mu.Unlock()
		return false
	}
	c.lastWidth = width
	c.lastTier = tier
	f := layout.ComputeFrame(c.projects, width, tier)
	c.frame = &f
	c.mu.Unlock()

	c.logDegraded(&f)
	return true
}

// SetProjects replaces the data and recomputes the frame at the current
// width. A hovered project that no longer exists is cleared.
func (c *Chart) SetProjects(projects []model.Project) {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	c.projects = append([]model.Project(nil), projects...)
	var f *layout.Frame
	if c.frame != nil {
		next := layout.ComputeFrame(c.projects, c.lastWidth, c.lastTier)
		f = &next
		c.frame = f
		if _, ok := f.Point(c.hovered); !ok {
			c.hovered = ""
		}
	}
	c.mu.Unlock()

	if f != nil {
		c.logDegraded(f)
	}
	c.changed()
}

func (c *Chart) logDegraded(f *layout.Frame) {
	for _, l := range f.Forced() {
		c.logger.Warn("label placed by last-resort fallback",
			"project", l.Name, "tier", f.Tier, "width", f.Width)
	}
}

// Hover shows the tooltip of the named project. It reports false when no
// frame is laid out or the project is unknown.
func (c *Chart) Hover(name string) bool {
	c.mu.Lock()
	if c.torn || c.frame == nil {
		c.mu.Unlock()
		return false
	}
	if _, ok := c.frame.Point(name); !ok {
		c.mu.Unlock()
		return false
	}
	changed := c.hovered != name
	c.hovered = name
	c.mu.Unlock()

	if changed {
		c.changed()
	}
	return true
}

// Unhover clears the tooltip.
func (c *Chart) Unhover() {
	c.mu.Lock()
	changed := c.hovered != ""
	c.hovered = ""
	c.mu.Unlock()

	if changed {
		c.changed()
	}
}

// Hovered returns the name of the hovered project, or "".
func (c *Chart) Hovered() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hovered
}

// Scene composes the current frame with the hover state. Before the first
// layout it returns the placeholder scene.
func (c *Chart) Scene() layout.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return layout.Compose(c.frame, c.hovered)
}

// Frame returns a copy of the current frame.
func (c *Chart) Frame() (layout.Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frame == nil {
		return layout.Frame{}, false
	}
	return *c.frame, true
}

// Tier returns the tier of the current frame.
func (c *Chart) Tier() layout.Tier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastTier
}

// Width returns the width of the current frame.
func (c *Chart) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastWidth
}

// Projects returns the chart's projects.
func (c *Chart) Projects() []model.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Project(nil), c.projects...)
}

// Teardown cancels any pending resize, unsubscribes from the host and
// clears the tooltip. No relayout applies afterwards.
func (c *Chart) Teardown() {
	c.mu.Lock()
	if c.torn {
		c.mu.Unlock()
		return
	}
	c.torn = true
	c.hovered = ""
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.host = nil
	c.mu.Unlock()

	c.resize.Stop()
	if unsub != nil {
		unsub()
	}
}

// TornDown reports whether Teardown has run.
func (c *Chart) TornDown() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.torn
}

func (c *Chart) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
