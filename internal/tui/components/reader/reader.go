package reader

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	quranapi "github.com/julianstephens/waktu/internal/api/quran"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

// OpenSurahMsg asks for surah Number to be fetched and shown.
type OpenSurahMsg struct {
	Number int
}

// LookupMsg asks for Term to be resolved as a surah number or name.
type LookupMsg struct {
	Term string
}

// ToggleBookmarkMsg asks for Bookmark to be added or removed.
type ToggleBookmarkMsg struct {
	Bookmark models.Bookmark
}

var (
	cursorStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true)

	arabicStyle = lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true)

	translationStyle = lipgloss.NewStyle().
				Foreground(theme.Subtle)

	mutedStyle = lipgloss.NewStyle().Foreground(theme.Muted)
)

type KeyMap struct {
	Search   key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Bookmark key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read")),
		Bookmark: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bookmark")),
	}
}

type Model struct {
	input      textinput.Model
	viewport   viewport.Model
	keys       KeyMap
	surahs     []models.Surah
	matches    []models.Surah
	filtered   bool
	cursor     int
	offset     int
	reading    *models.Surah
	bookmarked map[string]bool
	lang       string
	width      int
	height     int
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Surah number or name"
	ti.Prompt = "🔍 "
	ti.CharLimit = 32
	return Model{
		input:      ti,
		viewport:   viewport.New(0, 0),
		keys:       DefaultKeyMap(),
		bookmarked: make(map[string]bool),
		lang:       constants.DefaultLanguage,
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 4
	m.viewport.Width = width
	m.viewport.Height = max(height-3, 1)
	m.render()
}

func (m *Model) SetLanguage(lang string) {
	if lang != "" {
		m.lang = lang
	}
	m.render()
}

// SetSurahs replaces the surah index.
func (m *Model) SetSurahs(surahs []models.Surah) {
	m.surahs = surahs
	if !m.filtered {
		m.cursor = 0
		m.offset = 0
	}
}

// SetMatches narrows the list to a search result.
func (m *Model) SetMatches(matches []models.Surah) {
	m.matches = matches
	m.filtered = true
	m.cursor = 0
	m.offset = 0
}

// SetReading shows s in the reader.
func (m *Model) SetReading(s models.Surah) {
	m.reading = &s
	m.viewport.GotoTop()
	m.render()
}

// SetBookmarks records which surahs and verses are bookmarked.
func (m *Model) SetBookmarks(bookmarks []models.Bookmark) {
	m.bookmarked = make(map[string]bool, len(bookmarks))
	for _, b := range bookmarks {
		m.bookmarked[b.Key()] = true
	}
	m.render()
}

// Typing reports whether the search input has focus.
func (m Model) Typing() bool {
	return m.input.Focused()
}

// Reading reports whether a surah is open.
func (m Model) Reading() bool {
	return m.reading != nil
}

// Listed returns the surahs currently listed.
func (m Model) Listed() []models.Surah {
	if m.filtered {
		return m.matches
	}
	return m.surahs
}

func (m *Model) visibleRows() int {
	rows := m.height - 4
	if rows < 5 {
		rows = 10
	}
	return rows
}

func (m *Model) move(delta int) {
	listed := m.Listed()
	if len(listed) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(listed)-1)
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

func (m *Model) resetFilter() {
	m.input.SetValue("")
	m.filtered = false
	m.matches = nil
	m.cursor = 0
	m.offset = 0
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if m.input.Focused() {
			m.input, cmd = m.input.Update(msg)
		} else if m.reading != nil {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}

	if m.reading != nil {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.reading = nil
			return m, nil
		case key.Matches(keyMsg, m.keys.Bookmark):
			b := models.SurahBookmark(m.reading.Number)
			return m, func() tea.Msg { return ToggleBookmarkMsg{Bookmark: b} }
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		switch {
		case key.Matches(keyMsg, m.keys.Back):
			m.input.Blur()
			m.resetFilter()
			return m, nil
		case key.Matches(keyMsg, m.keys.Open):
			m.input.Blur()
			term := strings.TrimSpace(m.input.Value())
			if term == "" {
				m.resetFilter()
				return m, nil
			}
			return m, func() tea.Msg { return LookupMsg{Term: term} }
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if q := strings.TrimSpace(m.input.Value()); q != "" {
			m.matches = quranapi.FilterSurahs(m.surahs, q)
			m.filtered = true
		} else {
			m.filtered = false
		}
		m.cursor = 0
		m.offset = 0
		return m, cmd
	}

	listed := m.Listed()
	switch {
	case key.Matches(keyMsg, m.keys.Search):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Back):
		m.resetFilter()
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Open):
		if m.cursor < len(listed) {
			n := listed[m.cursor].Number
			return m, func() tea.Msg { return OpenSurahMsg{Number: n} }
		}
	case key.Matches(keyMsg, m.keys.Bookmark):
		if m.cursor < len(listed) {
			b := models.SurahBookmark(listed[m.cursor].Number)
			return m, func() tea.Msg { return ToggleBookmarkMsg{Bookmark: b} }
		}
	}
	return m, nil
}

func (m *Model) other() string {
	if m.lang == constants.LanguageEnglish {
		return constants.LanguageIndonesian
	}
	return constants.LanguageEnglish
}

func (m *Model) render() {
	if m.reading == nil {
		return
	}
	s := m.reading
	width := max(m.width-2, 20)
	arabic := arabicStyle.Width(width).Align(lipgloss.Right)
	translation := translationStyle.Width(width)

	var b strings.Builder
	for _, v := range s.Verses {
		mark := ""
		if m.bookmarked[models.VerseBookmark(s.Number, v.Number).Key()] {
			mark = " ★"
		}
		b.WriteString(arabic.Render(v.Arabic))
		b.WriteString("\n")
		b.WriteString(translation.Render(fmt.Sprintf("%d. %s%s", v.Number, v.Translation.Get(m.lang, m.other()), mark)))
		b.WriteString("\n\n")
	}
	m.viewport.SetContent(b.String())
}

func (m Model) View() string {
	if m.reading != nil {
		s := m.reading
		star := ""
		if m.bookmarked[models.SurahBookmark(s.Number).Key()] {
			star = " ★"
		}
		header := headerStyle.Render(fmt.Sprintf("%d. %s  %s%s", s.Number, s.Title(), s.Name, star))
		sub := mutedStyle.Render(fmt.Sprintf("%s · %d verses · %s",
			s.Translation.Get(m.lang, m.other()), s.VersesCount, s.Revelation.Get(m.lang, m.other())))
		return lipgloss.JoinVertical(lipgloss.Left, header, sub, m.viewport.View())
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	listed := m.Listed()
	if len(m.surahs) == 0 {
		b.WriteString(mutedStyle.Render("Loading surahs..."))
		return b.String()
	}
	if len(listed) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No surahs match %q.", m.input.Value())))
		return b.String()
	}

	end := min(m.offset+m.visibleRows(), len(listed))
	for i := m.offset; i < end; i++ {
		s := listed[i]
		star := "  "
		if m.bookmarked[models.SurahBookmark(s.Number).Key()] {
			star = "★ "
		}
		line := fmt.Sprintf("%s%3d. %-20s %s", star, s.Number, s.Title(), s.Translation.Get(m.lang, m.other()))
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
