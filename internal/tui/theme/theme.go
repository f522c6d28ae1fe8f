// Package theme holds the TUI palette. Every color adapts to the terminal
// background, which Apply pins to the configured theme.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/constants"
)

var (
	Accent    = lipgloss.AdaptiveColor{Light: "163", Dark: "205"}
	Highlight = lipgloss.AdaptiveColor{Light: "30", Dark: "86"}
	Text      = lipgloss.AdaptiveColor{Light: "236", Dark: "252"}
	Bright    = lipgloss.AdaptiveColor{Light: "232", Dark: "255"}
	Subtle    = lipgloss.AdaptiveColor{Light: "243", Dark: "245"}
	Muted     = lipgloss.AdaptiveColor{Light: "246", Dark: "240"}
	Border    = lipgloss.AdaptiveColor{Light: "62", Dark: "62"}
	TabBg     = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}
	Danger    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	Warning   = lipgloss.AdaptiveColor{Light: "166", Dark: "214"}
)

// detected is the terminal's own answer, read before any override.
var detected = sync.OnceValue(lipgloss.HasDarkBackground)

// Apply selects the light or dark palette for theme. "system" uses what the
// terminal reports.
func Apply(theme string) {
	dark := detected()
	switch theme {
	case constants.ThemeLight:
		dark = false
	case constants.ThemeDark:
		dark = true
	}
	lipgloss.SetHasDarkBackground(dark)
}
