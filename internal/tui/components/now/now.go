package now

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/prayer"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	timeStyle = lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1)

	prayerStyle = lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width(40).
			Align(lipgloss.Center)

	countdownStyle = lipgloss.NewStyle().
			Foreground(theme.Highlight).
			Bold(true)

	duaStyle = lipgloss.NewStyle().
			Foreground(theme.Subtle).
			Italic(true).
			Width(60).
			Align(lipgloss.Center).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().Foreground(theme.Muted)
)

type Model struct {
	snap   session.Snapshot
	dua    *models.Dua
	time   time.Time
	zone   string
	width  int
	height int
}

func New() Model {
	return Model{time: time.Now()}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetSnapshot(snap session.Snapshot, now time.Time, zone string) {
	m.snap = snap
	m.time = now
	m.zone = zone
}

func (m *Model) SetDua(d *models.Dua) {
	m.dua = d
}

func (m Model) View() string {
	header := titleStyle.Render(fmt.Sprintf("Now: %s %s", m.time.Format("15:04:05"), m.zone))

	var content string
	switch {
	case m.snap.City == nil:
		content = mutedStyle.Render("No city selected. Press tab to open Cities.")
	case !m.snap.HasNext:
		content = lipgloss.JoinVertical(lipgloss.Center,
			timeStyle.Render(m.snap.City.Name),
			mutedStyle.Render("No prayer times available."),
		)
	default:
		next := m.snap.Next
		label := fmt.Sprintf("%s %s  %s", next.Emoji, next.Name, next.Time)
		if next.Tomorrow {
			label += " (tomorrow)"
		}
		content = lipgloss.JoinVertical(lipgloss.Center,
			timeStyle.Render(m.snap.City.Name),
			prayerStyle.Render(label),
			countdownStyle.Render(prayer.FormatCountdown(m.snap.Countdown)),
			mutedStyle.Render(m.notificationStatus()),
		)
	}

	parts := []string{header, content}
	if m.dua != nil {
		text := m.dua.Title
		if m.dua.Translation != "" {
			text += "\n" + m.dua.Translation
		}
		parts = append(parts, duaStyle.Render(text))
	}
	view := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

func (m Model) notificationStatus() string {
	switch {
	case !m.snap.Settings.NotificationsEnabled:
		return "🔕 notifications off"
	case m.snap.Permission == session.PermissionDenied, m.snap.Permission == session.PermissionUnsupported:
		return fmt.Sprintf("🔕 notifications %s", m.snap.Permission)
	default:
		return fmt.Sprintf("🔔 %d pending", m.snap.Pending)
	}
}
