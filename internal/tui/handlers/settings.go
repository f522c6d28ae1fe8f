package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/tui/components/settings"
	"github.com/julianstephens/waktu/internal/tui/state"
	"github.com/julianstephens/waktu/internal/tui/theme"
)

// NewSettingsForm creates a new form for editing settings
func NewSettingsForm(fm *state.SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable Notifications").
				Value(&fm.NotificationsEnabled),
			huh.NewInput().
				Title("Minutes before each prayer").
				Description("Comma-separated, e.g. 5,15. Empty notifies at the time only.").
				Value(&fm.Offsets).
				Validate(func(s string) error {
					offsets, err := models.ParseOffsets(s)
					if err != nil {
						return err
					}
					for _, o := range offsets {
						if o < 1 || o > 180 {
							return fmt.Errorf("offsets must be between 1 and 180 minutes")
						}
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Timezone").
				Options(
					huh.NewOption("WIB (UTC+7)", constants.TimezoneWIB),
					huh.NewOption("WITA (UTC+8)", constants.TimezoneWITA),
					huh.NewOption("WIT (UTC+9)", constants.TimezoneWIT),
				).
				Value(&fm.Timezone),
			huh.NewSelect[string]().
				Title("Language").
				Options(
					huh.NewOption("Bahasa Indonesia", constants.LanguageIndonesian),
					huh.NewOption("English", constants.LanguageEnglish),
				).
				Value(&fm.Language),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("System", constants.ThemeSystem),
					huh.NewOption("Light", constants.ThemeLight),
					huh.NewOption("Dark", constants.ThemeDark),
				).
				Value(&fm.Theme),
		),
	).WithTheme(huh.ThemeDracula())
}

// FormToSettings converts the edited form back into settings.
func FormToSettings(fm *state.SettingsFormModel) (models.Settings, error) {
	offsets, err := models.ParseOffsets(fm.Offsets)
	if err != nil {
		return models.Settings{}, err
	}
	s := models.Settings{
		NotificationsEnabled: fm.NotificationsEnabled,
		NotifyOffsets:        offsets,
		Theme:                fm.Theme,
		Language:             fm.Language,
		Timezone:             fm.Timezone,
	}
	return s, s.Validate()
}

// HandleEditSettingsState handles the edit settings state
func HandleEditSettingsState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.FormError = ""
		m.State = constants.StateSettings
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		newSettings, err := FormToSettings(m.SettingsForm)
		if err == nil {
			err = m.Session.UpdateSettings(newSettings)
		}
		if err != nil {
			// Stay in the form so the user can fix it.
			m.FormError = "Failed to update settings: " + err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.FormError = ""
		theme.Apply(newSettings.Theme)
		m.ReaderModel.SetLanguage(newSettings.Language)
		m.SyncSession()
		m.Notice = "Settings updated."
		m.State = constants.StateSettings
	case huh.StateAborted:
		m.FormError = ""
		m.State = constants.StateSettings
	}
	return tea.Batch(cmds...)
}

// HandleSettingsMessages handles messages from the settings component
func HandleSettingsMessages(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	switch msg.(type) {
	case settings.EditSettingsMsg:
		current := m.Session.Settings()
		m.FormError = ""
		m.SettingsForm = &state.SettingsFormModel{
			NotificationsEnabled: current.NotificationsEnabled,
			Offsets:              models.FormatOffsets(current.NotifyOffsets),
			Theme:                current.Theme,
			Language:             current.Language,
			Timezone:             current.Timezone,
		}
		m.Form = NewSettingsForm(m.SettingsForm)
		m.State = constants.StateEditSettings
		return true, m.Form.Init()
	}
	return false, nil
}
