package handlers

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/quran"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/state"
)

type RestoredMsg struct {
	Selected bool
	Err      error
}

type CitiesLoadedMsg struct {
	Cities []models.City
	Err    error
}

type CitySelectedMsg struct {
	City models.City
	Err  error
}

type ScheduleRefreshedMsg struct {
	Err error
}

type DuaMsg struct {
	Dua *models.Dua
}

type SurahsLoadedMsg struct {
	Surahs []models.Surah
	Err    error
}

type SurahOpenedMsg struct {
	Surah models.Surah
	Err   error
}

type LookupResultMsg struct {
	Term   string
	Result quran.LookupResult
	Err    error
}

type BookmarkToggledMsg struct {
	Bookmark models.Bookmark
	Added    bool
	Err      error
}

// TickMsg drives the clock and countdown once a second.
type TickMsg time.Time

func Tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func Restore(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		ok, err := sess.Restore(context.Background())
		return RestoredMsg{Selected: ok, Err: err}
	}
}

func LoadCities(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		cities, err := sess.LoadCities(context.Background())
		return CitiesLoadedMsg{Cities: cities, Err: err}
	}
}

func RefreshCities(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		cities, err := sess.RefreshCities(context.Background())
		return CitiesLoadedMsg{Cities: cities, Err: err}
	}
}

func SelectCity(sess *session.Session, city models.City) tea.Cmd {
	return func() tea.Msg {
		_, err := sess.SelectCity(context.Background(), city)
		return CitySelectedMsg{City: city, Err: err}
	}
}

func RefreshSchedule(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return ScheduleRefreshedMsg{Err: sess.Refresh(context.Background())}
	}
}

func RandomDua(sess *session.Session) tea.Cmd {
	return func() tea.Msg {
		return DuaMsg{Dua: sess.RandomDua(context.Background())}
	}
}

func LoadSurahs(lister state.SurahLister) tea.Cmd {
	return func() tea.Msg {
		surahs, err := lister.ListSurahs(context.Background())
		return SurahsLoadedMsg{Surahs: surahs, Err: err}
	}
}

func OpenSurah(lib *quran.Library, n int) tea.Cmd {
	return func() tea.Msg {
		s, err := lib.OpenSurah(context.Background(), n)
		return SurahOpenedMsg{Surah: s, Err: err}
	}
}

func Lookup(lib *quran.Library, term string) tea.Cmd {
	return func() tea.Msg {
		res, err := lib.Lookup(context.Background(), term)
		return LookupResultMsg{Term: term, Result: res, Err: err}
	}
}

func ToggleBookmark(lib *quran.Library, b models.Bookmark) tea.Cmd {
	return func() tea.Msg {
		added, err := lib.ToggleBookmark(b)
		return BookmarkToggledMsg{Bookmark: b, Added: added, Err: err}
	}
}

// Start begins a tracked fetch; Loading counts the ones in flight.
func Start(m *state.Model, cmd tea.Cmd) tea.Cmd {
	m.Loading++
	if m.Loading == 1 {
		return tea.Batch(cmd, m.Spinner.Tick)
	}
	return cmd
}

func done(m *state.Model) {
	if m.Loading > 0 {
		m.Loading--
	}
}
