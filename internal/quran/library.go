// Package quran keeps the reader's bookmarks and recent readings on top of
// the Quran provider.
package quran

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

// Source is the part of the Quran provider the library needs.
type Source interface {
	Surah(ctx context.Context, n int) (models.Surah, error)
	SearchSurahs(ctx context.Context, query string) ([]models.Surah, error)
}

// Store is the part of the local store the library needs.
type Store interface {
	AddBookmark(models.Bookmark) error
	RemoveBookmark(models.Bookmark) error
	HasBookmark(models.Bookmark) (bool, error)
	GetBookmarks() ([]models.Bookmark, error)
	GetRecentReadings() ([]models.RecentReading, error)
	SaveRecentReadings([]models.RecentReading) error
}

var _ Store = (storage.Provider)(nil)

// ErrInvalidNumber is returned by Lookup for numbers outside 1..114.
var ErrInvalidNumber = errors.New("invalid number: enter a surah number (1-114)")

type Library struct {
	source Source
	store  Store
	clock  clock.Clock
}

func NewLibrary(source Source, store Store, c clock.Clock) *Library {
	if c == nil {
		c = clock.Real{}
	}
	return &Library{source: source, store: store, clock: c}
}

// OpenSurah fetches surah n and records it as the most recent reading.
// Failing to save the reading is logged, not returned.
func (l *Library) OpenSurah(ctx context.Context, n int) (models.Surah, error) {
	s, err := l.source.Surah(ctx, n)
	if err != nil {
		return models.Surah{}, err
	}
	if s.Number == 0 {
		s.Number = n
	}
	if _, err := l.PushRecent(models.RecentFromSurah(s, l.clock.Now())); err != nil {
		logger.Warn("failed to save recent reading", "surah", n, "error", err)
	}
	return s, nil
}

// PushRecent stores r at the head of the recent list and returns the list.
func (l *Library) PushRecent(r models.RecentReading) ([]models.RecentReading, error) {
	current, err := l.store.GetRecentReadings()
	if err != nil {
		return nil, fmt.Errorf("failed to load recent readings: %w", err)
	}
	updated := PushRecent(current, r, constants.MaxRecentReadings)
	if err := l.store.SaveRecentReadings(updated); err != nil {
		return nil, fmt.Errorf("failed to save recent readings: %w", err)
	}
	return updated, nil
}

// Recent returns the recent readings, most recent first.
func (l *Library) Recent() ([]models.RecentReading, error) {
	return l.store.GetRecentReadings()
}

// PushRecent puts r first, drops any older entry for the same surah and
// truncates to max entries. list is not modified.
func PushRecent(list []models.RecentReading, r models.RecentReading, max int) []models.RecentReading {
	out := make([]models.RecentReading, 0, len(list)+1)
	out = append(out, r)
	for _, existing := range list {
		if existing.Number == r.Number {
			continue
		}
		out = append(out, existing)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// ToggleBookmark adds b if absent and removes it otherwise. It reports
// whether b is bookmarked afterwards.
func (l *Library) ToggleBookmark(b models.Bookmark) (bool, error) {
	if err := b.Validate(); err != nil {
		return false, err
	}
	has, err := l.store.HasBookmark(b)
	if err != nil {
		return false, err
	}
	if has {
		if err := l.store.RemoveBookmark(b); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return true, err
		}
		return false, nil
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = l.clock.Now()
	}
	if err := l.store.AddBookmark(b); err != nil {
		return false, err
	}
	return true, nil
}

// Bookmarks returns every bookmark, newest first.
func (l *Library) Bookmarks() ([]models.Bookmark, error) {
	return l.store.GetBookmarks()
}

// SurahBookmarks returns the surah-level bookmarks only.
func (l *Library) SurahBookmarks() ([]models.Bookmark, error) {
	return l.bookmarksOfKind(models.BookmarkSurah)
}

// VerseBookmarks returns the verse-level bookmarks only.
func (l *Library) VerseBookmarks() ([]models.Bookmark, error) {
	return l.bookmarksOfKind(models.BookmarkVerse)
}

func (l *Library) bookmarksOfKind(kind models.BookmarkKind) ([]models.Bookmark, error) {
	all, err := l.store.GetBookmarks()
	if err != nil {
		return nil, err
	}
	var out []models.Bookmark
	for _, b := range all {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out, nil
}

// ResolvedVerse is a verse bookmark with its text loaded.
type ResolvedVerse struct {
	Bookmark   models.Bookmark
	Verse      models.Verse
	SurahName  string
	SurahTitle string
}

// ResolveVerseBookmarks loads the text of every verse bookmark. Bookmarks
// whose surah cannot be fetched, or whose verse is missing, are skipped and
// logged.
func (l *Library) ResolveVerseBookmarks(ctx context.Context) ([]ResolvedVerse, error) {
	bookmarks, err := l.VerseBookmarks()
	if err != nil {
		return nil, err
	}

	surahs := make(map[int]models.Surah)
	var out []ResolvedVerse
	for _, b := range bookmarks {
		s, ok := surahs[b.Surah]
		if !ok {
			s, err = l.source.Surah(ctx, b.Surah)
			if err != nil {
				logger.Warn("failed to load bookmarked verse", "bookmark", b.Key(), "error", err)
				continue
			}
			surahs[b.Surah] = s
		}

		found := false
		for _, v := range s.Verses {
			if v.Number == b.Verse {
				out = append(out, ResolvedVerse{Bookmark: b, Verse: v, SurahName: s.Name, SurahTitle: s.Title()})
				found = true
				break
			}
		}
		if !found {
			logger.Warn("bookmarked verse not found", "bookmark", b.Key())
		}
	}
	return out, nil
}

// LookupResult holds either a single opened surah or a list of matches.
type LookupResult struct {
	Surah   *models.Surah
	Matches []models.Surah
}

// Lookup interprets term as a surah number when it parses as an integer and
// as a name search otherwise. A number surah is opened and recorded.
func (l *Library) Lookup(ctx context.Context, term string) (LookupResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return LookupResult{}, nil
	}

	if n, err := strconv.Atoi(term); err == nil {
		if n < 1 || n > constants.SurahCount {
			return LookupResult{}, ErrInvalidNumber
		}
		s, err := l.OpenSurah(ctx, n)
		if err != nil {
			return LookupResult{}, err
		}
		return LookupResult{Surah: &s}, nil
	}

	matches, err := l.source.SearchSurahs(ctx, term)
	if err != nil {
		return LookupResult{}, err
	}
	return LookupResult{Matches: matches}, nil
}

// ReadAgo renders how long ago a recent reading was opened.
func ReadAgo(r models.RecentReading, now time.Time) string {
	d := now.Sub(r.ReadAt)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
