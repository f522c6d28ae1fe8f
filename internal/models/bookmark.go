package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BookmarkKind distinguishes surah-level from verse-level bookmarks.
type BookmarkKind string

const (
	BookmarkSurah BookmarkKind = "surah"
	BookmarkVerse BookmarkKind = "verse"
)

// Bookmark is either a whole surah or a single verse. Verse is zero for
// surah bookmarks.
type Bookmark struct {
	Kind      BookmarkKind `json:"kind"`
	Surah     int          `json:"surah"`
	Verse     int          `json:"verse,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// SurahBookmark returns a surah-level bookmark.
func SurahBookmark(surah int) Bookmark {
	return Bookmark{Kind: BookmarkSurah, Surah: surah}
}

// VerseBookmark returns a verse-level bookmark.
func VerseBookmark(surah, verse int) Bookmark {
	return Bookmark{Kind: BookmarkVerse, Surah: surah, Verse: verse}
}

// Key renders the bookmark as "12" or "12:5".
func (b Bookmark) Key() string {
	if b.Kind == BookmarkVerse {
		return fmt.Sprintf("%d:%d", b.Surah, b.Verse)
	}
	return strconv.Itoa(b.Surah)
}

// Validate checks the surah and verse ranges for the bookmark kind.
func (b Bookmark) Validate() error {
	if b.Surah < 1 || b.Surah > 114 {
		return fmt.Errorf("surah must be between 1 and 114, got %d", b.Surah)
	}
	switch b.Kind {
	case BookmarkSurah:
		if b.Verse != 0 {
			return fmt.Errorf("surah bookmark cannot carry a verse")
		}
	case BookmarkVerse:
		if b.Verse < 1 {
			return fmt.Errorf("verse must be at least 1, got %d", b.Verse)
		}
	default:
		return fmt.Errorf("unknown bookmark kind: %q", b.Kind)
	}
	return nil
}

// ParseBookmark parses "12" or "12:5".
func ParseBookmark(key string) (Bookmark, error) {
	key = strings.TrimSpace(key)
	surahPart, versePart, isVerse := strings.Cut(key, ":")

	surah, err := strconv.Atoi(surahPart)
	if err != nil {
		return Bookmark{}, fmt.Errorf("invalid surah in bookmark %q", key)
	}

	b := SurahBookmark(surah)
	if isVerse {
		verse, err := strconv.Atoi(versePart)
		if err != nil {
			return Bookmark{}, fmt.Errorf("invalid verse in bookmark %q", key)
		}
		b = VerseBookmark(surah, verse)
	}

	if err := b.Validate(); err != nil {
		return Bookmark{}, err
	}
	return b, nil
}
