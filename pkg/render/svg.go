package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
)

const fontFamily = "font-family:system-ui,-apple-system,sans-serif"

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(w io.Writer, s layout.Scene) error {
	ew := &errWriter{w: w}
	width, height := surfaceSize(s)

	canvas := svg.New(ew)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height), `class="progress-curve"`)
	canvas.Title("Progress curve")
	canvas.Rect(0, 0, width, height, "fill:"+cssRGBA(bgSurface))

	if s.Placeholder {
		canvas.End()
		return ew.err
	}

	drawGridSVG(canvas, s)
	drawAxesSVG(canvas, s)
	canvas.Path(s.PathData, fmt.Sprintf("fill:none;stroke:%s;stroke-width:2", cssRGBA(curveColor)))
	drawLabelsSVG(canvas, s)
	drawMarkersSVG(canvas, s)
	drawLegendSVG(canvas, s)
	if s.Tooltip != nil {
		drawTooltipSVG(canvas, *s.Tooltip)
	}

	canvas.End()
	return ew.err
}

func surfaceSize(s layout.Scene) (int, int) {
	w := int(math.Round(s.Viewport.Width))
	h := int(math.Round(s.Viewport.Height))
	return max(w, 1), max(h, 1)
}

func px(v float64) int {
	return int(math.Round(v))
}

func drawGridSVG(canvas *svg.SVG, s layout.Scene) {
	canvas.Gid("grid")
	for _, g := range s.Grid {
		canvas.Line(px(g.X1), px(g.Y), px(g.X2), px(g.Y),
			fmt.Sprintf("stroke:%s;stroke-dasharray:4,4", cssRGBA(gridColor)))
	}
	canvas.Gend()
}

func drawAxesSVG(canvas *svg.SVG, s layout.Scene) {
	style := fmt.Sprintf("fill:%s;font-size:%gpx;%s;text-anchor:middle", cssRGBA(axisText), s.Sizes.Axis, fontFamily)

	canvas.Gtransform(fmt.Sprintf("rotate(%g)", s.YCaption.Rotate))
	canvas.Text(px(s.YCaption.X), px(s.YCaption.Y), s.YCaption.Text, style)
	canvas.Gend()

	for _, c := range s.XCaptions {
		canvas.Text(px(c.X), px(c.Y), c.Text, style)
	}
}

func anchorCSS(a layout.Anchor) string {
	switch a {
	case layout.AnchorEnd:
		return "end"
	case layout.AnchorMiddle:
		return "middle"
	default:
		return "start"
	}
}

// baselines returns the baseline y of each line of a label whose block is
// vertically centred on y.
func baselines(pl layout.LabelPlacement) []float64 {
	lineH := pl.FontSize * layout.LineHeight
	top := pl.Y - lineH*float64(len(pl.Lines))/2
	out := make([]float64, len(pl.Lines))
	for i := range pl.Lines {
		out[i] = top + lineH*float64(i) + pl.FontSize
	}
	return out
}

func drawLabelsSVG(canvas *svg.SVG, s layout.Scene) {
	canvas.Gid("labels")
	for _, pl := range s.Labels {
		if pl.ShowLeader {
			canvas.Line(px(pl.LeaderEnd.X), px(pl.LeaderEnd.Y), px(pl.X), px(pl.Y),
				fmt.Sprintf("stroke:%s;stroke-width:1", cssRGBA(leaderColor)))
		}
		style := fmt.Sprintf("fill:%s;font-size:%gpx;%s;text-anchor:%s",
			cssRGBA(labelText), pl.FontSize, fontFamily, anchorCSS(pl.Anchor))
		for i, y := range baselines(pl) {
			canvas.Text(px(pl.X), px(y), pl.Lines[i], style)
		}
	}
	canvas.Gend()
}

func drawMarkersSVG(canvas *svg.SVG, s layout.Scene) {
	canvas.Gid("markers")
	for _, m := range s.Markers {
		canvas.Text(px(m.X), px(m.Y), m.Symbol,
			fmt.Sprintf("fill:%s;font-size:%gpx;text-anchor:middle;dominant-baseline:central;stroke:%s;stroke-width:3;paint-order:stroke",
				cssRGBA(CategoryColor(m.Project.Category)), s.Sizes.Marker, cssRGBA(haloColor)),
			fmt.Sprintf(`data-project="%s"`, escapeAttr(m.Project.Name)))
	}
	canvas.Gend()
}

func drawLegendSVG(canvas *svg.SVG, s layout.Scene) {
	canvas.Gid("legend")
	canvas.Text(px(s.LegendTitle.X), px(s.LegendTitle.Y), s.LegendTitle.Text,
		fmt.Sprintf("fill:%s;font-size:%gpx;%s;font-weight:600", cssRGBA(labelText), s.Sizes.Legend, fontFamily))
	for _, it := range s.Legend {
		canvas.Text(px(it.X), px(it.Y), it.Symbol,
			fmt.Sprintf("fill:%s;font-size:%gpx;dominant-baseline:central", cssRGBA(curveColor), s.Sizes.LegendMarker))
		canvas.Text(px(it.X+s.Sizes.LegendMarker+8), px(it.Y), it.Label,
			fmt.Sprintf("fill:%s;font-size:%gpx;%s;dominant-baseline:central", cssRGBA(axisText), s.Sizes.Legend, fontFamily))
	}
	canvas.Gend()
}

// tooltipLines returns each tooltip text line with its baseline and size.
func tooltipLines(t layout.Tooltip) []tooltipLine {
	st := t.Style
	y := t.Position.Y + st.Padding
	var out []tooltipLine
	for _, l := range t.Content.Title {
		y += st.TitleSize
		out = append(out, tooltipLine{text: l, y: y, size: st.TitleSize, bold: true})
		y += st.TitleSize * (layout.LineHeight - 1)
	}
	for _, l := range t.Content.Category {
		y += st.CategorySize
		out = append(out, tooltipLine{text: l, y: y, size: st.CategorySize})
		y += st.CategorySize * (layout.LineHeight - 1)
	}
	out = append(out, tooltipLine{
		text: t.Content.Meta,
		y:    t.Position.Y + st.Height - st.Padding,
		size: st.MetaSize,
		meta: true,
	})
	return out
}

type tooltipLine struct {
	text string
	y    float64
	size float64
	bold bool
	meta bool
}

func drawTooltipSVG(canvas *svg.SVG, t layout.Tooltip) {
	st := t.Style
	canvas.Gid("tooltip")
	canvas.Roundrect(px(t.Position.X), px(t.Position.Y), px(st.Width), px(st.Height), 6, 6,
		fmt.Sprintf("fill:%s;fill-opacity:0.95;stroke:%s", cssRGBA(tooltipBg), cssRGBA(tooltipBorder)))
	x := px(t.Position.X + st.Padding)
	for _, l := range tooltipLines(t) {
		fill := labelText
		switch {
		case l.meta:
			fill = tooltipMeta
		case !l.bold:
			fill = CategoryColor(t.Project.Category)
		}
		weight := ""
		if l.bold {
			weight = ";font-weight:600"
		}
		canvas.Text(x, px(l.y), l.text, fmt.Sprintf("fill:%s;font-size:%gpx;%s%s", cssRGBA(fill), l.size, fontFamily, weight))
	}
	canvas.Gend()
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;")

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
