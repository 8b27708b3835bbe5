package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sprite-ai/sabun/internal/diff"
	"github.com/sprite-ai/sabun/internal/log"
)

// Model is the Bubble Tea model of an interactive paging session.
type Model struct {
	viewport Viewport
	renderer *Renderer

	width  int
	height int

	added   int
	removed int
}

// NewModel creates a model over records. The viewport is sized on the first
// tea.WindowSizeMsg.
func NewModel(records []diff.Record, r *Renderer) Model {
	added, removed := diff.Stats(records)
	return Model{
		viewport: NewViewport(records, 0),
		renderer: r,
		added:    added,
		removed:  removed,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetRows(m.height - 1) // status line
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			log.Debug(log.CatPager, "quit", "top", m.viewport.Top())
			return m, tea.Quit
		case key.Matches(msg, keys.Down):
			m.viewport.LineDown()
		case key.Matches(msg, keys.Up):
			m.viewport.LineUp()
		case key.Matches(msg, keys.HalfPageDown):
			m.viewport.HalfPageDown()
		case key.Matches(msg, keys.HalfPageUp):
			m.viewport.HalfPageUp()
		case key.Matches(msg, keys.PageDown):
			m.viewport.PageDown()
		case key.Matches(msg, keys.PageUp):
			m.viewport.PageUp()
		case key.Matches(msg, keys.Top):
			m.viewport.Home()
		case key.Matches(msg, keys.Bottom):
			m.viewport.End()
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	visible := m.viewport.Visible()
	for _, rec := range visible {
		b.WriteString(ansi.Truncate(m.renderer.Line(rec), m.width, ""))
		b.WriteByte('\n')
	}
	// Keep the status line at the bottom when the records don't fill the screen.
	for i := len(visible); i < m.viewport.Rows(); i++ {
		b.WriteByte('\n')
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderStatusBar() string {
	left := " " + m.viewport.Status()

	var help []string
	for _, k := range keys.shortHelp() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	right := fmt.Sprintf("+%d -%d  %s ", m.added, m.removed, strings.Join(help, " · "))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		right = ""
		gap = max(0, m.width-lipgloss.Width(left))
	}

	style := m.renderer.style(RoleStatus)
	return ansi.Truncate(style.Render(left+strings.Repeat(" ", gap)+right), m.width, "")
}
