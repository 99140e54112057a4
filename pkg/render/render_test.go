package render

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioScene(hover string) layout.Scene {
	return SnapshotScene(model.DefaultProjects(), 1200, hover)
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, scenarioScene("")))
	out := buf.String()

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, `viewBox="0 0 1200 720"`)
	assert.Equal(t, 10, strings.Count(out, "data-project="))
	assert.Equal(t, 6, strings.Count(out, "stroke-dasharray:4,4"))
	assert.Contains(t, out, "Expectations / Visibility")
	assert.Contains(t, out, "rotate(-90)")
	assert.Contains(t, out, "Next plateau:")
	assert.Contains(t, out, "&#34;Evolving&#34;")
	assert.Contains(t, out, `d="M 60.00,526.00`)
	assert.NotContains(t, out, `id="tooltip"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestRenderSVGTooltip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, scenarioScene("Microsoft 365")))
	out := buf.String()
	assert.Contains(t, out, `id="tooltip"`)
	assert.Contains(t, out, "RISK: H / COMPLEXITY: H")
}

func TestRenderSVGPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, layout.PlaceholderScene()))
	out := buf.String()
	assert.Contains(t, out, `viewBox="0 0 1200 800"`)
	assert.NotContains(t, out, `id="markers"`)
}

func TestRenderSVGEscapesNames(t *testing.T) {
	projects := []model.Project{{
		Name:       `R&D "Core" <Platform>`,
		Position:   0.5,
		Category:   model.CategoryIS,
		Risk:       model.LevelLow,
		Complexity: model.LevelLow,
		Timeline:   model.TimelineOnHold,
	}}
	var buf bytes.Buffer
	require.NoError(t, RenderSVG(&buf, SnapshotScene(projects, 900, "")))
	out := buf.String()
	assert.Contains(t, out, `data-project="R&amp;D &quot;Core&quot; &lt;Platform&gt;"`)
	assert.NotContains(t, out, "<Platform>")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderSVGReportsWriteErrors(t *testing.T) {
	err := RenderSVG(failingWriter{}, scenarioScene(""))
	assert.EqualError(t, err, "disk full")
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, scenarioScene("Leadership")))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	inked := 0
	for y := 0; y < 720; y += 3 {
		for x := 0; x < 1200; x += 3 {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0xc000 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 100)
}

func TestRenderImagePlaceholder(t *testing.T) {
	img, err := RenderImage(layout.PlaceholderScene())
	require.NoError(t, err)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestRenderDegenerateViewport(t *testing.T) {
	s := SnapshotScene(model.DefaultProjects(), 1, "")
	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, s))
	require.NoError(t, RenderSVG(&buf, s))
}

func TestCategoryColor(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range model.Categories {
		seen[cssRGBA(CategoryColor(c))] = true
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, CategoryColor(model.CategoryBAU), CategoryColor("unknown"))
}

func TestBaselinesCentreTheBlock(t *testing.T) {
	pl := layout.LabelPlacement{Y: 100, FontSize: 10, Lines: []string{"a", "b"}}
	got := baselines(pl)
	require.Len(t, got, 2)
	// Block is 24px tall, so it spans 88..112.
	assert.InDelta(t, 98.0, got[0], 1e-9)
	assert.InDelta(t, 110.0, got[1], 1e-9)
}
