package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

type EditSettingsMsg struct{}

type Model struct {
	settings   models.Settings
	permission session.Permission
	pending    int
	width      int
	height     int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(theme.Bright).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

func New(settings models.Settings) Model {
	return Model{settings: settings}
}

func (m *Model) SetSnapshot(snap session.Snapshot) {
	m.settings = snap.Settings
	m.permission = snap.Permission
	m.pending = snap.Pending
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func (m Model) row(label, value string) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	var sections []string

	generalContent := lipgloss.JoinVertical(
		lipgloss.Left,
		m.row("Theme:", m.settings.Theme),
		m.row("Language:", m.settings.Language),
		m.row("Timezone:", m.settings.Timezone),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("General Settings")+"\n"+generalContent))

	offsets := models.FormatOffsets(m.settings.NotifyOffsets)
	if offsets == "" {
		offsets = "at time only"
	}
	notifContent := lipgloss.JoinVertical(
		lipgloss.Left,
		m.row("Enabled:", fmt.Sprintf("%t", m.settings.NotificationsEnabled)),
		m.row("Minutes before:", offsets),
		m.row("Permission:", m.permission.String()),
		m.row("Pending:", fmt.Sprintf("%d", m.pending)),
	)
	sections = append(sections, sectionStyle.Render(titleStyle.Render("Notification Settings")+"\n"+notifContent))

	helpText := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to edit settings")
	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Left,
		lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
