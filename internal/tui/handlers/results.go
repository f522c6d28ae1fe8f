package handlers

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/tui/components/cities"
	"github.com/julianstephens/waktu/internal/tui/components/reader"
	"github.com/julianstephens/waktu/internal/tui/state"
)

// HandleResults applies the outcome of a finished command.
func HandleResults(m *state.Model, msg tea.Msg) (bool, tea.Cmd) {
	sess, lister := m.Session, m.Surahs
	switch msg := msg.(type) {
	case RestoredMsg:
		done(m)
		if msg.Err != nil {
			m.SetError(msg.Err, func() tea.Cmd { return Restore(sess) })
			return true, nil
		}
		m.SyncSession()
		if msg.Selected {
			m.ScheduleDate = m.Session.Now().Format(constants.DateFormat)
		} else {
			m.Notice = "Pick a city to see today's prayer times."
			m.State = constants.StateCities
		}
		return true, nil

	case CitiesLoadedMsg:
		done(m)
		if msg.Err != nil {
			m.SetError(msg.Err, func() tea.Cmd { return LoadCities(sess) })
			return true, nil
		}
		m.CitiesModel.SetCities(msg.Cities)
		return true, nil

	case CitySelectedMsg:
		done(m)
		if errors.Is(msg.Err, session.ErrSuperseded) {
			return true, nil
		}
		if msg.Err != nil {
			city := msg.City
			m.SetError(msg.Err, func() tea.Cmd { return SelectCity(sess, city) })
			return true, nil
		}
		m.ClearError()
		m.Notice = ""
		m.ScheduleDate = m.Session.Now().Format(constants.DateFormat)
		m.SyncSession()
		m.State = constants.StateNow
		return true, nil

	case ScheduleRefreshedMsg:
		done(m)
		if errors.Is(msg.Err, session.ErrNoCity) || errors.Is(msg.Err, session.ErrSuperseded) {
			return true, nil
		}
		if msg.Err != nil {
			m.SetError(msg.Err, func() tea.Cmd { return RefreshSchedule(sess) })
			return true, nil
		}
		m.ScheduleDate = m.Session.Now().Format(constants.DateFormat)
		m.SyncSession()
		return true, nil

	case DuaMsg:
		m.NowModel.SetDua(msg.Dua)
		return true, nil

	case SurahsLoadedMsg:
		done(m)
		if msg.Err != nil {
			m.SetError(msg.Err, func() tea.Cmd { return LoadSurahs(lister) })
			return true, nil
		}
		m.ReaderModel.SetSurahs(msg.Surahs)
		return true, nil

	case SurahOpenedMsg:
		done(m)
		if msg.Err != nil {
			m.Notice = "Could not open surah: " + msg.Err.Error()
			return true, nil
		}
		m.Notice = ""
		m.ReaderModel.SetReading(msg.Surah)
		return true, nil

	case LookupResultMsg:
		done(m)
		if msg.Err != nil {
			m.Notice = fmt.Sprintf("Lookup %q failed: %v", msg.Term, msg.Err)
			return true, nil
		}
		m.Notice = ""
		if msg.Result.Surah != nil {
			m.ReaderModel.SetReading(*msg.Result.Surah)
		} else {
			m.ReaderModel.SetMatches(msg.Result.Matches)
		}
		return true, nil

	case BookmarkToggledMsg:
		if msg.Err != nil {
			m.Notice = "Bookmark failed: " + msg.Err.Error()
			return true, nil
		}
		if msg.Added {
			m.Notice = "✓ Bookmarked " + msg.Bookmark.Key()
		} else {
			m.Notice = "✓ Removed bookmark " + msg.Bookmark.Key()
		}
		reloadBookmarks(m)
		return true, nil

	case cities.SelectCityMsg:
		m.Notice = ""
		return true, Start(m, SelectCity(m.Session, msg.City))

	case cities.RefreshCitiesMsg:
		return true, Start(m, RefreshCities(m.Session))

	case reader.OpenSurahMsg:
		return true, Start(m, OpenSurah(m.Library, msg.Number))

	case reader.LookupMsg:
		return true, Start(m, Lookup(m.Library, msg.Term))

	case reader.ToggleBookmarkMsg:
		return true, ToggleBookmark(m.Library, msg.Bookmark)
	}
	return false, nil
}

func reloadBookmarks(m *state.Model) {
	bookmarks, err := m.Library.Bookmarks()
	if err != nil {
		logger.Warn("failed to reload bookmarks", "error", err)
		bookmarks = []models.Bookmark{}
	}
	m.ReaderModel.SetBookmarks(bookmarks)
}
