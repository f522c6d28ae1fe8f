package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/tui/handlers"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width

		// tabs, status line and help
		h := msg.Height - 4
		m.NowModel.SetSize(msg.Width, h)
		m.ScheduleModel.SetSize(msg.Width, h)
		m.CitiesModel.SetSize(msg.Width, h)
		m.ReaderModel.SetSize(msg.Width, h)
		m.SettingsModel.SetSize(msg.Width, h)
		return m, nil

	case handlers.TickMsg:
		cmd := m.tick()
		return m, cmd

	case spinner.TickMsg:
		if m.Loading == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	if handled, cmd := handlers.HandleResults(&m.Model, msg); handled {
		return m, cmd
	}

	if m.State == constants.StateEditSettings {
		return m, handlers.HandleEditSettingsState(&m.Model, msg)
	}

	if handled, cmd := handlers.HandleSettingsMessages(&m.Model, msg); handled {
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := handlers.HandleGlobalKeys(&m.Model, keyMsg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	switch m.State {
	case constants.StateCities:
		m.CitiesModel, cmd = m.CitiesModel.Update(msg)
	case constants.StateQuran:
		m.ReaderModel, cmd = m.ReaderModel.Update(msg)
	case constants.StateSettings:
		m.SettingsModel, cmd = m.SettingsModel.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// tick advances the countdown and refetches the schedule once the local
// date has moved past the one it was fetched for.
func (m *Model) tick() tea.Cmd {
	cmds := []tea.Cmd{handlers.Tick()}

	_, next, changed := m.Session.Tick()
	if changed {
		logger.Debug("next prayer changed", "prayer", next.Key, "at", next.Time)
	}
	m.SyncSession()

	today := m.Session.Now().Format(constants.DateFormat)
	if m.ScheduleDate != "" && today != m.ScheduleDate {
		m.ScheduleDate = today
		cmds = append(cmds, handlers.Start(&m.Model, handlers.RefreshSchedule(m.Session)))
	}
	return tea.Batch(cmds...)
}
