package cities

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

// SelectCityMsg asks for city to become the selected one.
type SelectCityMsg struct {
	City models.City
}

// RefreshCitiesMsg asks for the city list to be refetched.
type RefreshCitiesMsg struct{}

var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(theme.Highlight)

	mutedStyle = lipgloss.NewStyle().Foreground(theme.Muted)
)

type KeyMap struct {
	Search  key.Binding
	Blur    key.Binding
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Blur:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Refresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh list")),
	}
}

type Model struct {
	input    textinput.Model
	keys     KeyMap
	cities   []models.City
	results  []models.City
	cursor   int
	offset   int
	selected string
	width    int
	height   int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search city (e.g. jakarta)"
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	return Model{input: ti, keys: DefaultKeyMap()}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
}

// SetCities replaces the searchable list.
func (m *Model) SetCities(cities []models.City) {
	m.cities = cities
	m.filter()
}

// SetSelected marks the city with id as the current one.
func (m *Model) SetSelected(id string) {
	m.selected = id
}

// Typing reports whether the search input has focus.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// Results returns the cities currently listed.
func (m Model) Results() []models.City {
	return m.results
}

// Query returns the current search text.
func (m Model) Query() string {
	return m.input.Value()
}

func (m *Model) filter() {
	q := m.input.Value()
	if strings.TrimSpace(q) == "" {
		m.results = m.cities
	} else {
		m.results = session.SearchCities(m.cities, q)
	}
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
	m.clampOffset()
}

func (m *Model) visibleRows() int {
	rows := m.height - 4
	if rows < 5 {
		rows = 10
	}
	return rows
}

func (m *Model) clampOffset() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) move(delta int) {
	if len(m.results) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.results)-1)
	m.clampOffset()
}

func (m Model) selectCmd() tea.Cmd {
	if m.cursor >= len(m.results) {
		return nil
	}
	city := m.results[m.cursor]
	return func() tea.Msg { return SelectCityMsg{City: city} }
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.input.Focused() {
		switch {
		case key.Matches(keyMsg, m.keys.Blur):
			m.input.Blur()
			return m, nil
		case key.Matches(keyMsg, m.keys.Select):
			m.input.Blur()
			return m, m.selectCmd()
		case keyMsg.Type == tea.KeyUp:
			m.move(-1)
			return m, nil
		case keyMsg.Type == tea.KeyDown:
			m.move(1)
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.filter()
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, m.keys.Search):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Select):
		return m, m.selectCmd()
	case key.Matches(keyMsg, m.keys.Refresh):
		return m, func() tea.Msg { return RefreshCitiesMsg{} }
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.cities) == 0 {
		b.WriteString(mutedStyle.Render("No cities loaded yet."))
		return b.String()
	}
	if len(m.results) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No cities match %q.", m.input.Value())))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(m.results))
	for i := m.offset; i < end; i++ {
		c := m.results[i]
		line := fmt.Sprintf("%-6s %s", c.ID, c.Name)
		if c.ID == m.selected {
			line += " ✓"
		}
		switch {
		case i == m.cursor:
			b.WriteString(cursorStyle.Render("> " + line))
		case c.ID == m.selected:
			b.WriteString(selectedStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
