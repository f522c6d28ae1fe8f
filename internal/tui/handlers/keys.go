package handlers

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/tui/state"
)

var tabs = []constants.SessionState{
	constants.StateNow,
	constants.StateSchedule,
	constants.StateCities,
	constants.StateQuran,
	constants.StateSettings,
}

func tabIndex(s constants.SessionState) int {
	for i, t := range tabs {
		if t == s {
			return i
		}
	}
	return -1
}

// HandleGlobalKeys handles global key presses. While a text input has focus
// only ctrl+c is taken.
func HandleGlobalKeys(m *state.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return true, tea.Quit
	}
	if m.Typing() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.Keys.Tab):
		if i := tabIndex(m.State); i >= 0 {
			m.State = tabs[(i+1)%len(tabs)]
			m.Notice = ""
		}
		return true, nil
	case key.Matches(msg, m.Keys.ShiftTab):
		if i := tabIndex(m.State); i >= 0 {
			m.State = tabs[(i+len(tabs)-1)%len(tabs)]
			m.Notice = ""
		}
		return true, nil
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return true, nil
	case key.Matches(msg, m.Keys.Retry):
		if m.Err == nil || m.Retry == nil {
			return false, nil
		}
		retry := m.Retry
		m.ClearError()
		return true, Start(m, retry())
	}
	return false, nil
}
