// Package ui is the terminal front end: it hosts a chart in the terminal,
// rasterizes scenes into a character grid and handles keyboard and mouse
// hover.
package ui

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
	"github.com/Dicklesworthstone/progress_curve/pkg/view"
)

// Rows kept free around the chart.
const (
	headerRows   = 2
	reservedRows = 8
)

// SnapshotBaseName is the file stem written by the export key.
const SnapshotBaseName = "progress-curve"

// Options configures the TUI model.
type Options struct {
	// SnapshotDir is where the export key writes; empty means cwd.
	SnapshotDir string
	// Reload re-reads the dataset for the reload key; nil disables it.
	Reload func() ([]model.Project, error)
	// Debounce overrides the resize debounce.
	Debounce time.Duration
	Logger   *slog.Logger
	// Renderer overrides the lipgloss renderer, mainly for tests.
	Renderer *lipgloss.Renderer
}

// ProjectsMsg delivers a reloaded dataset to the model.
type ProjectsMsg struct {
	Projects []model.Project
	Err      error
}

type chartChangedMsg struct{}

type exportedMsg struct {
	paths []string
	err   error
}

// Model is the bubbletea model of the chart viewer.
type Model struct {
	chart   *view.Chart
	host    *TermHost
	changes chan struct{}
	opts    Options

	theme  Theme
	help   HelpOverlayModel
	search SearchModel

	width  int
	height int
	status string

	copyFn func(string) error
	saveFn func(render.SnapshotOptions) ([]string, error)
}

// NewModel creates the viewer over projects. The chart mounts on the first
// window size message.
func NewModel(projects []model.Project, opts Options) Model {
	theme := DefaultTheme(opts.Renderer)
	changes := make(chan struct{}, 1)
	chartOpts := []view.Option{
		view.WithOnChange(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	}
	if opts.Debounce > 0 {
		chartOpts = append(chartOpts, view.WithDebounce(opts.Debounce))
	}
	if opts.Logger != nil {
		chartOpts = append(chartOpts, view.WithLogger(opts.Logger))
	}

	return Model{
		chart:   view.NewChart(model.NewPortfolio(projects), chartOpts...),
		changes: changes,
		opts:    opts,
		theme:   theme,
		help:    NewHelpOverlayModel(theme),
		search:  NewSearchModel(theme),
		copyFn:  clipboard.WriteAll,
		saveFn:  render.SaveSnapshot,
	}
}

// Chart returns the underlying chart.
func (m Model) Chart() *view.Chart {
	return m.chart
}

// Init waits for the first chart change.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange turns chart change notifications into messages.
func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return chartChangedMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		m.search.SetSize(msg.Width)
		if m.host == nil {
			m.host = NewTermHost(msg.Width)
			if err := m.chart.Mount(m.host); err != nil {
				m.status = "mount failed: " + err.Error()
			}
		} else {
			m.host.ResizeCols(msg.Width)
		}
		return m, nil

	case chartChangedMsg:
		return m, m.waitForChange()

	case ProjectsMsg:
		if msg.Err != nil {
			m.status = "Reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.chart.SetProjects(msg.Projects)
		m.status = fmt.Sprintf("Loaded %d projects", len(msg.Projects))
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Exported " + strings.Join(msg.paths, ", ")
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.hoverAt(msg.X, msg.Y)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help.IsVisible() {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.search.Active() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if name, ok := m.search.TakeChoice(); ok {
			m.chart.Hover(name)
		}
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.chart.Teardown()
		return m, tea.Quit
	case "?":
		m.help.Toggle()
	case "/":
		cmd := m.search.Open(m.orderedNames())
		return m, cmd
	case "j", "down", "tab":
		m.hoverStep(1)
	case "k", "up", "shift+tab":
		m.hoverStep(-1)
	case "esc":
		m.chart.Unhover()
	case "c":
		m.copyHovered()
	case "e":
		return m, m.exportSnapshot()
	case "r":
		if m.opts.Reload != nil {
			reload := m.opts.Reload
			return m, func() tea.Msg {
				projects, err := reload()
				return ProjectsMsg{Projects: projects, Err: err}
			}
		}
		m.status = "No dataset to reload"
	}
	return m, nil
}

// orderedNames lists projects left to right along the curve.
func (m Model) orderedNames() []string {
	projects := m.chart.Projects()
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].Position < projects[j].Position
	})
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}

// hoverStep moves the hover delta places along the curve, wrapping around.
func (m *Model) hoverStep(delta int) {
	names := m.orderedNames()
	if len(names) == 0 {
		return
	}
	idx := -1
	current := m.chart.Hovered()
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && delta > 0:
		idx = 0
	case idx < 0:
		idx = len(names) - 1
	default:
		idx = ((idx+delta)%len(names) + len(names)) % len(names)
	}
	m.chart.Hover(names[idx])
}

// chartRows is the number of rows the chart may use for a scene.
func (m Model) chartRows(s layout.Scene) int {
	rows := RowsForHeight(s.Viewport.Height)
	if avail := m.height - headerRows - reservedRows; avail < rows {
		rows = avail
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) chartCols() int {
	if m.width < 1 {
		return 1
	}
	return m.width
}

// hoverAt hovers the marker under a terminal cell, or clears the hover.
func (m *Model) hoverAt(x, y int) {
	s := m.chart.Scene()
	if s.Placeholder {
		return
	}
	c := DrawScene(s, m.chartCols(), m.chartRows(s))
	px, py, ok := c.ToScene(x, y-headerRows)
	if !ok {
		return
	}
	// One cell in either direction counts as a hit.
	radius := math.Max(s.Sizes.Marker/2, math.Max(1/c.sx, 1/c.sy))
	if mk, hit := s.HitTest(r2.Vec{X: px, Y: py}, radius); hit {
		m.chart.Hover(mk.Project.Name)
		return
	}
	m.chart.Unhover()
}

// ProjectSummary is the text copied for a project.
func ProjectSummary(p model.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Name)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	fmt.Fprintf(&b, "Position: %.2f\n", p.Position)
	fmt.Fprintf(&b, "Risk: %s / Complexity: %s\n", p.Risk, p.Complexity)
	fmt.Fprintf(&b, "Timeline: %s", p.Timeline)
	return b.String()
}

func (m *Model) copyHovered() {
	name := m.chart.Hovered()
	if name == "" {
		m.status = "Hover a project first"
		return
	}
	for _, p := range m.chart.Projects() {
		if p.Name != name {
			continue
		}
		if err := m.copyFn(ProjectSummary(p)); err != nil {
			m.status = "Clipboard error: " + err.Error()
			return
		}
		m.status = "Copied " + name
		return
	}
}

func (m Model) exportSnapshot() tea.Cmd {
	opts := render.SnapshotOptions{
		Path:     filepath.Join(m.opts.SnapshotDir, SnapshotBaseName+".svg"),
		Format:   render.FormatAll,
		Projects: m.chart.Projects(),
		Width:    m.chart.Width(),
		Hover:    m.chart.Hovered(),
	}
	save := m.saveFn
	return func() tea.Msg {
		paths, err := save(opts)
		return exportedMsg{paths: paths, err: err}
	}
}

// View renders the model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.help.IsVisible() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.help.View())
	}

	s := m.chart.Scene()
	canvas := DrawScene(s, m.chartCols(), m.chartRows(s))

	parts := []string{m.headerView(s), RenderDivider(m.theme, m.width), canvas.Render(m.theme)}
	switch {
	case m.search.Active():
		parts = append(parts, m.search.View())
	case s.Tooltip != nil:
		parts = append(parts, m.tooltipView(*s.Tooltip))
	}
	parts = append(parts, m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) headerView(s layout.Scene) string {
	title := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("Progress Curve")
	info := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted).
		Render(fmt.Sprintf(" %.0fpx · %d projects", m.chart.Width(), len(s.Markers)))
	return title + " " + RenderTierBadge(m.theme, s.Tier) + info
}

func (m Model) tooltipView(tt layout.Tooltip) string {
	titleStyle := m.theme.Renderer.NewStyle().Bold(true).Foreground(m.theme.Curve)
	meta := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	lines := []string{
		titleStyle.Render(strings.Join(tt.Content.Title, " ")),
		RenderCategoryBadge(m.theme, tt.Project.Category),
		meta.Render("RISK ") + RenderLevelBadge(m.theme, tt.Project.Risk) +
			meta.Render("  COMPLEXITY ") + RenderLevelBadge(m.theme, tt.Project.Complexity),
		meta.Render(fmt.Sprintf("%s %s  ", tt.Project.Timeline.Marker(), tt.Project.Timeline)) +
			RenderPositionBar(tt.Project.Position, 20, m.theme),
	}
	return FocusedPanelStyle(m.theme).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) footerView() string {
	style := m.theme.Renderer.NewStyle().Foreground(m.theme.Muted)
	if m.status != "" {
		return style.Render(m.status)
	}
	return style.Render("? help · / search · j/k hover · c copy · e export · q quit")
}

// Status returns the last status message.
func (m Model) Status() string {
	return m.status
}
