package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// helpMarkdown is rendered through glamour when the overlay opens.
const helpMarkdown = `# Progress Curve

## Navigation

| Key | Action |
| --- | --- |
| j / ↓ / tab | Hover next project |
| k / ↑ / shift+tab | Hover previous project |
| click | Hover the project under the pointer |
| / | Search projects |
| esc | Clear hover |

## Actions

| Key | Action |
| --- | --- |
| c | Copy hovered project details |
| e | Export a snapshot at the current width |
| r | Reload the dataset |

## Markers

| Marker | Timeline |
| --- | --- |
| ○ | next month |
| ● | next quarter |
| △ | next half |
| ▲ | next year |
| ⊗ | on hold |

Press ? to toggle this help and q to quit.
`

// HelpOverlayModel shows keyboard shortcuts help
type HelpOverlayModel struct {
	visible  bool
	width    int
	height   int
	theme    Theme
	rendered string
	cachedW  int
}

// NewHelpOverlayModel creates a new help overlay
func NewHelpOverlayModel(theme Theme) HelpOverlayModel {
	return HelpOverlayModel{
		theme: theme,
	}
}

// Show makes the help overlay visible
func (m *HelpOverlayModel) Show() {
	m.visible = true
	m.Markdown()
}

// Hide makes the help overlay invisible
func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

// Toggle toggles visibility
func (m *HelpOverlayModel) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// IsVisible returns true if overlay is showing
func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *HelpOverlayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.visible {
		m.Markdown()
	}
}

// Update handles input
func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}

	switch msg.(type) {
	case tea.KeyMsg:
		// Any key closes help
		m.visible = false
	}

	return m, nil
}

// contentWidth is the wrap width inside the box.
func (m HelpOverlayModel) contentWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Markdown renders the help text for the current width. Glamour failures
// fall back to the raw markdown.
func (m *HelpOverlayModel) Markdown() string {
	w := m.contentWidth()
	if m.rendered != "" && m.cachedW == w {
		return m.rendered
	}
	out := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle),
		glamour.WithWordWrap(w),
	)
	if err == nil {
		if rendered, err := r.Render(helpMarkdown); err == nil {
			// Strip trailing whitespace/newlines that glamour adds
			out = strings.TrimRight(rendered, " \n\r\t")
		}
	}
	m.rendered = out
	m.cachedW = w
	return out
}

// View renders the help overlay
func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	body := m.rendered
	if body == "" {
		body = helpMarkdown
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n\n")
	hintStyle := m.theme.Renderer.NewStyle().Faint(true).Italic(true)
	b.WriteString(hintStyle.Render("[Press any key to close]"))

	// Wrap in box
	boxStyle := m.theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(1, 2)

	return boxStyle.Render(b.String())
}
