package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/quran"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/handlers"
	"github.com/julianstephens/waktu/internal/tui/state"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

type Model struct {
	state.Model
}

func NewModel(sess *session.Session, lib *quran.Library, surahs state.SurahLister) Model {
	theme.Apply(sess.Settings().Theme)
	m := Model{Model: state.New(sess, lib, surahs)}
	// Restore, cities and surahs are started by Init.
	m.Loading = 3
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.Keys.Tab, m.Keys.Quit, m.Keys.Help}
	switch m.State {
	case constants.StateCities:
		keys = append(keys, m.Keys.Search, m.Keys.Enter, m.Keys.Refresh)
	case constants.StateQuran:
		keys = append(keys, m.Keys.Search, m.Keys.Enter, m.Keys.Bookmark)
	case constants.StateSettings:
		keys = append(keys, m.Keys.Edit)
	}
	if m.Err != nil {
		keys = append(keys, m.Keys.Retry)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.Keys.Tab, m.Keys.ShiftTab, m.Keys.Quit, m.Keys.Help, m.Keys.Retry}
	navigation := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.Enter, m.Keys.Search, m.Keys.Back}
	actions := []key.Binding{m.Keys.Refresh, m.Keys.Bookmark, m.Keys.Edit}
	return [][]key.Binding{global, navigation, actions}
}

// Init restores the last city and starts the clock. Cities, surahs and a
// dua load alongside.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		handlers.Restore(m.Session),
		handlers.LoadCities(m.Session),
		handlers.LoadSurahs(m.Surahs),
		handlers.RandomDua(m.Session),
		handlers.Tick(),
		m.Spinner.Tick,
	)
}
