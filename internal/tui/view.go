package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/constants"
)

var tabTitles = []struct {
	state constants.SessionState
	title string
}{
	{constants.StateNow, "Now"},
	{constants.StateSchedule, "Schedule"},
	{constants.StateCities, "Cities"},
	{constants.StateQuran, "Quran"},
	{constants.StateSettings, "Settings"},
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	switch m.State {
	case constants.StateNow:
		content = m.NowModel.View()
	case constants.StateSchedule:
		content = docStyle.Render(m.ScheduleModel.View())
	case constants.StateCities:
		content = docStyle.Render(m.CitiesModel.View())
	case constants.StateQuran:
		content = docStyle.Render(m.ReaderModel.View())
	case constants.StateSettings:
		content = m.SettingsModel.View()
	case constants.StateEditSettings:
		content = m.viewSettingsForm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewStatus(),
		content,
		m.Help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, t := range tabTitles {
		active := m.State == t.state ||
			(m.State == constants.StateEditSettings && t.state == constants.StateSettings)
		if active {
			tabs = append(tabs, activeTabStyle.Render(t.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(t.title))
		}
	}
	if city, ok := m.Session.City(); ok {
		tabs = append(tabs, cityStyle.Render("📍 "+city.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewStatus shows, in order of precedence, the last primary error, the
// loading spinner or a notice.
func (m Model) viewStatus() string {
	switch {
	case m.Err != nil:
		return dangerStyle.Render(fmt.Sprintf("⚠ %v (press r to retry)", m.Err))
	case m.Loading > 0:
		return m.Spinner.View() + " Loading..."
	case m.Notice != "":
		return warningStyle.Render(m.Notice)
	}
	return ""
}

func (m Model) viewSettingsForm() string {
	view := m.Form.View()
	if m.FormError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, dangerStyle.Render(m.FormError), view)
	}
	return docStyle.Render(view)
}
