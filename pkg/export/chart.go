package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
)

// Response headers describing the laid-out frame.
const (
	headerTier  = "X-Chart-Tier"
	headerWidth = "X-Chart-Width"
)

// MaxChartWidth bounds the width a client may request.
const MaxChartWidth = 8192.0

// hitSlop widens marker hit testing beyond the glyph radius.
const hitSlop = 4.0

// chartRequest holds the query parameters shared by the chart endpoints.
type chartRequest struct {
	Width     float64
	PrevWidth float64
	PrevTier  layout.Tier
	Hover     string
	Pointer   *r2.Vec
}

func parseChartRequest(r *http.Request) (chartRequest, error) {
	q := r.URL.Query()
	req := chartRequest{
		Width: layout.DefaultViewport.Width,
		Hover: q.Get("hover"),
	}

	var err error
	if v := q.Get("width"); v != "" {
		if req.Width, err = parseWidth("width", v); err != nil {
			return req, err
		}
	}
	if v := q.Get("prevWidth"); v != "" {
		if req.PrevWidth, err = parseWidth("prevWidth", v); err != nil {
			return req, err
		}
	}
	if v := q.Get("prevTier"); v != "" {
		req.PrevTier = layout.Tier(v)
		if !req.PrevTier.IsValid() {
			return req, fmt.Errorf("invalid prevTier %q", v)
		}
	}

	px, py := q.Get("px"), q.Get("py")
	if px != "" || py != "" {
		x, errX := strconv.ParseFloat(px, 64)
		y, errY := strconv.ParseFloat(py, 64)
		if errX != nil || errY != nil {
			return req, fmt.Errorf("px and py must both be numbers")
		}
		req.Pointer = &r2.Vec{X: x, Y: y}
	}
	return req, nil
}

func parseWidth(name, v string) (float64, error) {
	w, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(w) || w < 0 || w > MaxChartWidth {
		return 0, fmt.Errorf("%s must be a number between 0 and %g", name, MaxChartWidth)
	}
	return w, nil
}

// scene lays out the current portfolio for req.
func (p *PreviewServer) scene(req chartRequest) layout.Scene {
	tier := layout.ResolveTier(req.Width, req.PrevTier, req.PrevWidth)
	f := layout.ComputeFrame(p.Projects(), req.Width, tier)
	if forced := f.Forced(); len(forced) > 0 {
		p.logger.Debug("labels placed by last-resort fallback",
			"tier", f.Tier, "width", req.Width, "count", len(forced))
	}

	hovered := req.Hover
	if hovered == "" && req.Pointer != nil {
		base := layout.Compose(&f, "")
		if m, ok := base.HitTest(*req.Pointer, base.Sizes.Marker/2+hitSlop); ok {
			hovered = m.Project.Name
		}
	}
	return layout.Compose(&f, hovered)
}

// serveChart renders the requested scene into a buffer so render failures
// still produce a clean 500.
func (p *PreviewServer) serveChart(w http.ResponseWriter, r *http.Request, contentType string, draw func(io.Writer, layout.Scene) error) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	req, err := parseChartRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s := p.scene(req)
	var buf bytes.Buffer
	if err := draw(&buf, s); err != nil {
		p.logger.Error("render chart", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(headerTier, string(s.Tier))
	w.Header().Set(headerWidth, strconv.FormatFloat(req.Width, 'f', -1, 64))
	if _, err := buf.WriteTo(w); err != nil {
		p.logger.Debug("write chart", "error", err)
	}
}

func (p *PreviewServer) svgHandler(w http.ResponseWriter, r *http.Request) {
	p.serveChart(w, r, "image/svg+xml", render.RenderSVG)
}

func (p *PreviewServer) pngHandler(w http.ResponseWriter, r *http.Request) {
	p.serveChart(w, r, "image/png", render.RenderPNG)
}

func (p *PreviewServer) sceneHandler(w http.ResponseWriter, r *http.Request) {
	p.serveChart(w, r, "application/json", func(w io.Writer, s layout.Scene) error {
		return json.NewEncoder(w).Encode(s)
	})
}
