package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/utils"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingNotifyOffsets:
			offsets, err := ParseOffsets(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing notify_offsets: %w", err)
			}
			settings.NotifyOffsets = offsets
		case constants.SettingTheme:
			settings.Theme = value
		case constants.SettingLanguage:
			settings.Language = value
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingNotifyOffsets:        FormatOffsets(settings.NotifyOffsets),
		constants.SettingTheme:                settings.Theme,
		constants.SettingLanguage:             settings.Language,
		constants.SettingTimezone:             settings.Timezone,
	}
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		NotifyOffsets:        []int{constants.DefaultNotifyOffset},
		Theme:                constants.DefaultTheme,
		Language:             constants.DefaultLanguage,
		Timezone:             constants.DefaultTimezone,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
// NotifyOffsets is only defaulted when nil; an empty list means only the
// at-time notification.
func ApplyDefaultSettings(settings *Settings) {
	if settings.NotifyOffsets == nil {
		settings.NotifyOffsets = []int{constants.DefaultNotifyOffset}
	}
	if settings.Theme == "" {
		settings.Theme = constants.DefaultTheme
	}
	if settings.Language == "" {
		settings.Language = constants.DefaultLanguage
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}

// Validate checks enumerated values and offset ranges.
func (s Settings) Validate() error {
	for _, o := range s.NotifyOffsets {
		if o < 1 || o > 180 {
			return fmt.Errorf("notification offset must be between 1 and 180 minutes, got %d", o)
		}
	}
	switch s.Theme {
	case constants.ThemeSystem, constants.ThemeLight, constants.ThemeDark:
	default:
		return fmt.Errorf("invalid theme: %q (must be system, light, or dark)", s.Theme)
	}
	switch s.Language {
	case constants.LanguageIndonesian, constants.LanguageEnglish:
	default:
		return fmt.Errorf("invalid language: %q (must be id or en)", s.Language)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone: %q (must be wib, wita, or wit)", s.Timezone)
	}
	return nil
}

// ParseOffsets parses a comma-separated list of minute offsets, e.g. "5,15".
// The result is sorted descending with duplicates removed.
func ParseOffsets(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	seen := make(map[int]bool)
	var offsets []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %s", part)
		}
		if !seen[n] {
			seen[n] = true
			offsets = append(offsets, n)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(offsets)))
	return offsets, nil
}

// FormatOffsets renders offsets as a comma-separated list.
func FormatOffsets(offsets []int) string {
	parts := make([]string, len(offsets))
	for i, o := range offsets {
		parts[i] = strconv.Itoa(o)
	}
	return strings.Join(parts, ",")
}
