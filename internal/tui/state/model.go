package state

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/quran"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/components/cities"
	"github.com/julianstephens/waktu/internal/tui/components/now"
	"github.com/julianstephens/waktu/internal/tui/components/reader"
	"github.com/julianstephens/waktu/internal/tui/components/schedule"
	"github.com/julianstephens/waktu/internal/tui/components/settings"
	"github.com/julianstephens/waktu/internal/tui/theme"
	"github.com/julianstephens/waktu/internal/utils"
)

// SurahLister loads the surah index for the Quran tab.
type SurahLister interface {
	ListSurahs(ctx context.Context) ([]models.Surah, error)
}

// SettingsFormModel represents the form model for settings
type SettingsFormModel struct {
	NotificationsEnabled bool
	Offsets              string
	Theme                string
	Language             string
	Timezone             string
}

// Model represents the shared state for the TUI
type Model struct {
	Session *session.Session
	Library *quran.Library
	Surahs  SurahLister

	State    constants.SessionState
	Keys     KeyMap
	Help     help.Model
	Spinner  spinner.Model
	Loading  int
	Quitting bool
	Width    int
	Height   int

	NowModel      now.Model
	ScheduleModel schedule.Model
	CitiesModel   cities.Model
	ReaderModel   reader.Model
	SettingsModel settings.Model

	Form         *huh.Form
	SettingsForm *SettingsFormModel
	FormError    string

	// Err is the last failed primary fetch; Retry reissues it.
	Err   error
	Retry func() tea.Cmd
	// Notice is a transient secondary message.
	Notice string

	// ScheduleDate is the local date the current schedule was fetched for.
	ScheduleDate string
}

// New creates a new state Model
func New(sess *session.Session, lib *quran.Library, surahs SurahLister) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	m := Model{
		Session:       sess,
		Library:       lib,
		Surahs:        surahs,
		State:         constants.StateNow,
		Keys:          DefaultKeyMap(),
		Help:          help.New(),
		Spinner:       sp,
		NowModel:      now.New(),
		ScheduleModel: schedule.New(),
		CitiesModel:   cities.New(),
		ReaderModel:   reader.New(),
		SettingsModel: settings.New(sess.Settings()),
	}
	m.ReaderModel.SetLanguage(sess.Settings().Language)
	if bookmarks, err := lib.Bookmarks(); err == nil {
		m.ReaderModel.SetBookmarks(bookmarks)
	}
	m.SyncSession()
	return m
}

// SyncSession copies the session state into the views.
func (m *Model) SyncSession() {
	snap := m.Session.State()
	zone := utils.ZoneLabel(snap.Settings.Timezone)
	now := m.Session.Now()

	m.NowModel.SetSnapshot(snap, now, zone)
	m.ScheduleModel.SetSnapshot(snap, zone)
	m.SettingsModel.SetSnapshot(snap)
	if snap.City != nil {
		m.CitiesModel.SetSelected(snap.City.ID)
	}
}

// Typing reports whether the active tab has a focused text input, in which
// case single-key shortcuts belong to the input.
func (m Model) Typing() bool {
	switch m.State {
	case constants.StateCities:
		return m.CitiesModel.Typing()
	case constants.StateQuran:
		return m.ReaderModel.Typing()
	}
	return false
}

// SetError records a primary failure and how to retry it.
func (m *Model) SetError(err error, retry func() tea.Cmd) {
	m.Err = err
	m.Retry = retry
}

// ClearError forgets the last primary failure.
func (m *Model) ClearError() {
	m.Err = nil
	m.Retry = nil
}
