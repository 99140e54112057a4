package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// RenderImage rasterizes the scene at one pixel per scene unit.
func RenderImage(s layout.Scene) (image.Image, error) {
	dc, err := drawPNG(s)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// RenderPNG writes the scene as a PNG image.
func RenderPNG(w io.Writer, s layout.Scene) error {
	dc, err := drawPNG(s)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func drawPNG(s layout.Scene) (*gg.Context, error) {
	width, height := surfaceSize(s)
	dc := gg.NewContext(width, height)
	dc.SetColor(bgSurface)
	dc.Clear()
	if s.Placeholder {
		return dc, nil
	}

	fonts, err := newFaceCache()
	if err != nil {
		return nil, err
	}
	defer fonts.close()

	drawGridPNG(dc, s)
	if err := drawAxesPNG(dc, fonts, s); err != nil {
		return nil, err
	}
	drawCurvePNG(dc, s.Geometry.Path)
	if err := drawLabelsPNG(dc, fonts, s); err != nil {
		return nil, err
	}
	for _, m := range s.Markers {
		drawMarkerPNG(dc, m.Project.Timeline, m.X, m.Y, s.Sizes.Marker/2, CategoryColor(m.Project.Category))
	}
	if err := drawLegendPNG(dc, fonts, s); err != nil {
		return nil, err
	}
	if s.Tooltip != nil {
		if err := drawTooltipPNG(dc, fonts, *s.Tooltip); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

func drawGridPNG(dc *gg.Context, s layout.Scene) {
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	for _, g := range s.Grid {
		dc.DrawLine(g.X1, g.Y, g.X2, g.Y)
		dc.Stroke()
	}
	dc.SetDash()
}

func drawAxesPNG(dc *gg.Context, fonts *faceCache, s layout.Scene) error {
	face, err := fonts.face(s.Sizes.Axis, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(axisText)

	dc.Push()
	dc.Rotate(gg.Radians(s.YCaption.Rotate))
	dc.DrawStringAnchored(s.YCaption.Text, s.YCaption.X, s.YCaption.Y, 0.5, 0)
	dc.Pop()

	for _, c := range s.XCaptions {
		dc.DrawStringAnchored(c.Text, c.X, c.Y, 0.5, 0)
	}
	return nil
}

func drawCurvePNG(dc *gg.Context, p layout.PathSpec) {
	dc.SetColor(curveColor)
	dc.SetLineWidth(2)
	dc.MoveTo(p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		dc.CubicTo(seg.Control1.X, seg.Control1.Y, seg.Control2.X, seg.Control2.Y, seg.End.X, seg.End.Y)
	}
	dc.Stroke()
}

func anchorX(a layout.Anchor) float64 {
	switch a {
	case layout.AnchorEnd:
		return 1
	case layout.AnchorMiddle:
		return 0.5
	default:
		return 0
	}
}

func drawLabelsPNG(dc *gg.Context, fonts *faceCache, s layout.Scene) error {
	for _, pl := range s.Labels {
		if pl.ShowLeader {
			dc.SetColor(leaderColor)
			dc.SetLineWidth(1)
			dc.DrawLine(pl.LeaderEnd.X, pl.LeaderEnd.Y, pl.X, pl.Y)
			dc.Stroke()
		}
		face, err := fonts.face(pl.FontSize, false)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		dc.SetColor(labelText)
		for i, y := range baselines(pl) {
			dc.DrawStringAnchored(pl.Lines[i], pl.X, y, anchorX(pl.Anchor), 0)
		}
	}
	return nil
}

// drawMarkerPNG draws the timeline glyph as a shape so the raster does not
// depend on symbol coverage of the bundled font.
func drawMarkerPNG(dc *gg.Context, tl model.Timeline, x, y, r float64, c color.RGBA) {
	r *= 0.6
	tri := func() {
		h := r * math.Sqrt(3) / 2
		dc.MoveTo(x, y-r)
		dc.LineTo(x+h, y+r/2)
		dc.LineTo(x-h, y+r/2)
		dc.ClosePath()
	}
	ring := func() {
		dc.DrawCircle(x, y, r)
	}

	// Halo keeps markers readable over the curve.
	dc.SetColor(haloColor)
	dc.SetLineWidth(3)
	switch tl {
	case model.TimelineNextHalf, model.TimelineNextYear:
		tri()
	default:
		ring()
	}
	dc.Stroke()

	dc.SetColor(c)
	dc.SetLineWidth(math.Max(1.5, r/5))
	switch tl {
	case model.TimelineNextMonth:
		ring()
		dc.Stroke()
	case model.TimelineNextQuarter:
		ring()
		dc.Fill()
	case model.TimelineNextHalf:
		tri()
		dc.Stroke()
	case model.TimelineNextYear:
		tri()
		dc.Fill()
	default:
		ring()
		d := r * math.Sqrt2 / 2
		dc.MoveTo(x-d, y-d)
		dc.LineTo(x+d, y+d)
		dc.MoveTo(x+d, y-d)
		dc.LineTo(x-d, y+d)
		dc.Stroke()
	}
}

func drawLegendPNG(dc *gg.Context, fonts *faceCache, s layout.Scene) error {
	title, err := fonts.face(s.Sizes.Legend, true)
	if err != nil {
		return err
	}
	dc.SetFontFace(title)
	dc.SetColor(labelText)
	dc.DrawStringAnchored(s.LegendTitle.Text, s.LegendTitle.X, s.LegendTitle.Y, 0, 0)

	face, err := fonts.face(s.Sizes.Legend, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	r := s.Sizes.LegendMarker / 2
	for _, it := range s.Legend {
		drawMarkerPNG(dc, model.Timeline(it.Label), it.X+r, it.Y, r, curveColor)
		dc.SetColor(axisText)
		dc.DrawStringAnchored(it.Label, it.X+s.Sizes.LegendMarker+8, it.Y, 0, 0.35)
	}
	return nil
}

func drawTooltipPNG(dc *gg.Context, fonts *faceCache, t layout.Tooltip) error {
	st := t.Style
	dc.SetColor(tooltipBg)
	dc.DrawRoundedRectangle(t.Position.X, t.Position.Y, st.Width, st.Height, 6)
	dc.Fill()
	dc.SetColor(tooltipBorder)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(t.Position.X, t.Position.Y, st.Width, st.Height, 6)
	dc.Stroke()

	x := t.Position.X + st.Padding
	for _, l := range tooltipLines(t) {
		face, err := fonts.face(l.size, l.bold)
		if err != nil {
			return err
		}
		dc.SetFontFace(face)
		switch {
		case l.meta:
			dc.SetColor(tooltipMeta)
		case l.bold:
			dc.SetColor(labelText)
		default:
			dc.SetColor(CategoryColor(t.Project.Category))
		}
		dc.DrawStringAnchored(l.text, x, l.y, 0, 0)
	}
	return nil
}
