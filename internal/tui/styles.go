package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/tui/theme"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(theme.Accent).
			Background(theme.TabBg).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(theme.Muted).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(theme.Danger).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(theme.Warning).
			Italic(true)

	cityStyle = lipgloss.NewStyle().
			Foreground(theme.Highlight).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
