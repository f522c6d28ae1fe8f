package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(theme.Text)

	nextStyle = lipgloss.NewStyle().
			Foreground(theme.Highlight).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().Foreground(theme.Muted)
)

type Model struct {
	city     *models.City
	schedule models.PrayerSchedule
	next     models.NextPrayer
	hasNext  bool
	zone     string
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) SetSnapshot(snap session.Snapshot, zone string) {
	m.city = snap.City
	m.schedule = snap.Schedule
	m.next = snap.Next
	m.hasNext = snap.HasNext
	m.zone = zone
}

func (m Model) View() string {
	if m.city == nil {
		return mutedStyle.Render("No city selected.")
	}

	var b strings.Builder
	header := m.city.Name
	if m.schedule.Date != "" {
		header += " · " + m.schedule.Date
	}
	if m.zone != "" {
		header += " (" + m.zone + ")"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, k := range models.AllPrayerKeys() {
		t := m.schedule.Time(k)
		if t == "" {
			t = "--:--"
		}
		line := fmt.Sprintf("  %s %-8s %s", k.Emoji(), k.Name(), t)
		if m.hasNext && !m.next.Tomorrow && m.next.Key == k {
			b.WriteString(nextStyle.Render("▶" + line[1:]))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.hasNext && m.next.Tomorrow {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Next: %s tomorrow at %s", m.next.Name, m.next.Time)))
	}
	return b.String()
}
