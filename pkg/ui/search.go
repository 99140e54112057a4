package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// maxSearchResults caps the visible result list.
const maxSearchResults = 8

// SearchModel is the fuzzy project picker.
type SearchModel struct {
	input   textinput.Model
	names   []string
	results []string
	cursor  int
	active  bool
	chosen  string
	theme   Theme
}

// NewSearchModel creates an inactive search over no projects.
func NewSearchModel(theme Theme) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return SearchModel{input: ti, theme: theme}
}

// Open activates the search over names, keeping their order for an empty query.
func (m *SearchModel) Open(names []string) tea.Cmd {
	m.names = append([]string(nil), names...)
	m.input.SetValue("")
	m.cursor = 0
	m.chosen = ""
	m.active = true
	m.filter()
	return m.input.Focus()
}

// Close deactivates the search without choosing.
func (m *SearchModel) Close() {
	m.active = false
	m.input.Blur()
}

// Active reports whether the search has focus.
func (m SearchModel) Active() bool {
	return m.active
}

// Results returns the names matching the current query, best first.
func (m SearchModel) Results() []string {
	return m.results
}

// Query returns the typed text.
func (m SearchModel) Query() string {
	return m.input.Value()
}

// TakeChoice returns the confirmed name once and clears it.
func (m *SearchModel) TakeChoice() (string, bool) {
	if m.chosen == "" {
		return "", false
	}
	name := m.chosen
	m.chosen = ""
	return name, true
}

// SetSize updates the input width
func (m *SearchModel) SetSize(width int) {
	w := width - 10
	if w < 20 {
		w = 20
	}
	m.input.Width = w
}

func (m *SearchModel) filter() {
	q := m.input.Value()
	if q == "" {
		m.results = append(m.results[:0], m.names...)
	} else {
		m.results = m.results[:0]
		for _, match := range fuzzy.Find(q, m.names) {
			m.results = append(m.results, match.Str)
		}
	}
	if m.cursor >= len(m.results) {
		m.cursor = len(m.results) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles keys while the search is active.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, nil
		case "enter":
			if len(m.results) > 0 {
				m.chosen = m.results[m.cursor]
			}
			m.Close()
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

// View renders the input and the top results.
func (m SearchModel) View() string {
	if !m.active {
		return ""
	}
	selected := m.theme.Renderer.NewStyle().Foreground(m.theme.Primary).Bold(true)
	normal := m.theme.Renderer.NewStyle().Foreground(m.theme.Subtext)

	lines := []string{m.input.View()}
	for i, name := range m.results {
		if i >= maxSearchResults {
			break
		}
		if i == m.cursor {
			lines = append(lines, selected.Render("▸ "+name))
		} else {
			lines = append(lines, normal.Render("  "+name))
		}
	}
	if len(m.results) == 0 {
		lines = append(lines, normal.Faint(true).Render("  no matches"))
	}
	return PanelStyle(m.theme).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
