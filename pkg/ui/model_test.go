package ui

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// keyMsg creates a tea.KeyMsg for testing
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func testRenderer() *lipgloss.Renderer {
	return lipgloss.NewRenderer(io.Discard)
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Renderer = testRenderer()
	m := NewModel(model.DefaultProjects(), opts)
	t.Cleanup(m.chart.Teardown)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out, cmd
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 150, Height: 50})
	return m
}

func TestWindowSizeMountsChart(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))

	if got := m.chart.Width(); got != 1200 {
		t.Errorf("Expected width 1200, got %v", got)
	}
	if got := m.chart.Tier(); got != layout.TierLG {
		t.Errorf("Expected lg tier, got %s", got)
	}
	if m.host.Observers() != 1 {
		t.Errorf("Expected one observer, got %d", m.host.Observers())
	}
}

func TestResizeIsDebounced(t *testing.T) {
	m := sized(t, newTestModel(t, Options{Debounce: 10 * time.Millisecond}))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 70, Height: 50})

	deadline := time.Now().Add(time.Second)
	for m.chart.Tier() != layout.TierBase && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := m.chart.Tier(); got != layout.TierBase {
		t.Fatalf("Expected base tier after resize, got %s", got)
	}
	if got := m.chart.Width(); got != 560 {
		t.Errorf("Expected width 560, got %v", got)
	}
}

func TestHoverStepFollowsCurve(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))

	steps := []struct {
		key  string
		want string
	}{
		{"j", "Leadership"},
		{"j", "Cyber Transformation"},
		{"k", "Leadership"},
		{"k", "Issue Management Program"},
		{"j", "Leadership"},
	}
	for i, s := range steps {
		m, _ = update(t, m, keyMsg(s.key))
		if got := m.chart.Hovered(); got != s.want {
			t.Fatalf("step %d (%s): expected %q, got %q", i, s.key, s.want, got)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.chart.Hovered(); got != "" {
		t.Errorf("Expected esc to clear hover, got %q", got)
	}
}

func TestSearchHoversChoice(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))

	m, _ = update(t, m, keyMsg("/"))
	if !m.search.Active() {
		t.Fatal("Expected search to be active")
	}
	m, _ = update(t, m, keyMsg("vuln"))
	if got := m.search.Results(); len(got) != 1 || got[0] != "Vulnerability Management" {
		t.Fatalf("Unexpected results %v", got)
	}
	// While searching, j is typed rather than navigating.
	if m.chart.Hovered() != "" {
		t.Errorf("Expected no hover while typing")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.search.Active() {
		t.Error("Expected search to close on enter")
	}
	if got := m.chart.Hovered(); got != "Vulnerability Management" {
		t.Errorf("Expected search choice to be hovered, got %q", got)
	}
}

func TestCopyHovered(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}

	m, _ = update(t, m, keyMsg("c"))
	if m.Status() != "Hover a project first" {
		t.Errorf("Unexpected status %q", m.Status())
	}

	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg("c"))
	if !strings.HasPrefix(copied, "Leadership\n") || !strings.Contains(copied, "Timeline: next month") {
		t.Errorf("Unexpected clipboard text %q", copied)
	}
	if m.Status() != "Copied Leadership" {
		t.Errorf("Unexpected status %q", m.Status())
	}

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	m, _ = update(t, m, keyMsg("c"))
	if !strings.Contains(m.Status(), "no clipboard") {
		t.Errorf("Expected clipboard error in status, got %q", m.Status())
	}
}

func TestExportSnapshot(t *testing.T) {
	dir := t.TempDir()
	m := sized(t, newTestModel(t, Options{SnapshotDir: dir}))

	m, cmd := update(t, m, keyMsg("e"))
	if cmd == nil {
		t.Fatal("Expected export command")
	}
	m, _ = update(t, m, cmd())

	if !strings.HasPrefix(m.Status(), "Exported ") {
		t.Fatalf("Unexpected status %q", m.Status())
	}
	for _, ext := range []string{".svg", ".png"} {
		if _, err := os.Stat(dir + "/" + SnapshotBaseName + ext); err != nil {
			t.Errorf("Expected %s snapshot: %v", ext, err)
		}
	}
}

func TestReload(t *testing.T) {
	calls := 0
	m := sized(t, newTestModel(t, Options{Reload: func() ([]model.Project, error) {
		calls++
		return model.DefaultProjects()[:3], nil
	}}))

	m, cmd := update(t, m, keyMsg("r"))
	if cmd == nil {
		t.Fatal("Expected reload command")
	}
	m, _ = update(t, m, cmd())
	if calls != 1 {
		t.Errorf("Expected one reload, got %d", calls)
	}
	if got := len(m.chart.Scene().Markers); got != 3 {
		t.Errorf("Expected 3 markers after reload, got %d", got)
	}

	m, _ = update(t, m, ProjectsMsg{Err: errors.New("bad row")})
	if !strings.Contains(m.Status(), "bad row") {
		t.Errorf("Expected reload error in status, got %q", m.Status())
	}
	if got := len(m.chart.Scene().Markers); got != 3 {
		t.Errorf("Failed reload should keep data, got %d markers", got)
	}
}

func TestReloadWithoutDataset(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))
	m, cmd := update(t, m, keyMsg("r"))
	if cmd != nil {
		t.Error("Expected no command without a reload func")
	}
	if m.Status() != "No dataset to reload" {
		t.Errorf("Unexpected status %q", m.Status())
	}
}

func TestHelpToggle(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))
	m.help.theme.GlamourStyle = "notty"

	m, _ = update(t, m, keyMsg("?"))
	if !m.help.IsVisible() {
		t.Fatal("Expected help to be visible")
	}
	if !strings.Contains(m.View(), "Press any key to close") {
		t.Error("Expected help hint in view")
	}

	// Any key closes help without acting.
	m, _ = update(t, m, keyMsg("j"))
	if m.help.IsVisible() {
		t.Error("Expected help to close")
	}
	if m.chart.Hovered() != "" {
		t.Error("Closing key should not navigate")
	}
}

func TestQuitTearsDown(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))
	_, cmd := update(t, m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if !m.chart.TornDown() {
		t.Error("Expected chart teardown on quit")
	}
}

func TestMouseClickHovers(t *testing.T) {
	m := sized(t, newTestModel(t, Options{}))
	s := m.chart.Scene()
	c := DrawScene(s, m.chartCols(), m.chartRows(s))

	var target layout.Marker
	for _, mk := range s.Markers {
		if mk.Project.Name == "Leadership" {
			target = mk
		}
	}
	col, row, ok := c.toCell(target.X, target.Y)
	if !ok {
		t.Fatal("Leadership marker is off the canvas")
	}

	click := func(x, y int) tea.MouseMsg {
		return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	}
	m, _ = update(t, m, click(col, row+headerRows))
	if got := m.chart.Hovered(); got != "Leadership" {
		t.Fatalf("Expected click to hover Leadership, got %q", got)
	}

	m, _ = update(t, m, click(m.width-1, headerRows))
	if got := m.chart.Hovered(); got != "" {
		t.Errorf("Expected click on empty space to clear hover, got %q", got)
	}
}

func TestViewShowsTooltipPanel(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.View() != "Loading..." {
		t.Error("Expected loading view before sizing")
	}

	m = sized(t, m)
	m, _ = update(t, m, keyMsg("j"))
	v := m.View()
	for _, want := range []string{"Progress Curve", " LG ", "1200px", "RISK", "COMPLEXITY", "Unplanned Work"} {
		if !strings.Contains(v, want) {
			t.Errorf("Expected view to contain %q", want)
		}
	}
}

func TestChartChangedKeepsListening(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := update(t, m, chartChangedMsg{})
	if cmd == nil {
		t.Error("Expected a new wait command")
	}
}

func TestProjectSummary(t *testing.T) {
	p := model.DefaultProjects()[1]
	want := "Cyber Transformation\nCategory: IS Projects\nPosition: 0.25\nRisk: H / Complexity: H\nTimeline: on hold"
	if got := ProjectSummary(p); got != want {
		t.Errorf("ProjectSummary mismatch:\n%s\nwant:\n%s", got, want)
	}
}
