package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

// sortableTime keeps a fixed width so created_at orders lexically.
const sortableTime = "2006-01-02T15:04:05.000000000Z07:00"

type bookmarkRow struct {
	Kind      string `db:"kind"`
	Surah     int    `db:"surah"`
	Verse     int    `db:"verse"`
	CreatedAt string `db:"created_at"`
}

// AddBookmark stores b. Adding an existing bookmark is a no-op.
func (s *Store) AddBookmark(b models.Bookmark) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := s.db.NamedExec(`
		INSERT OR IGNORE INTO bookmarks (kind, surah, verse, created_at)
		VALUES (:kind, :surah, :verse, :created_at)`,
		bookmarkRow{
			Kind:      string(b.Kind),
			Surah:     b.Surah,
			Verse:     b.Verse,
			CreatedAt: b.CreatedAt.UTC().Format(sortableTime),
		})
	return err
}

func (s *Store) RemoveBookmark(b models.Bookmark) error {
	res, err := s.db.Exec("DELETE FROM bookmarks WHERE surah = ? AND verse = ?", b.Surah, b.Verse)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("bookmark %s: %w", b.Key(), storage.ErrNotFound)
	}
	return nil
}

func (s *Store) HasBookmark(b models.Bookmark) (bool, error) {
	var n int
	err := s.db.Get(&n, "SELECT COUNT(*) FROM bookmarks WHERE surah = ? AND verse = ?", b.Surah, b.Verse)
	return n > 0, err
}

// GetBookmarks returns bookmarks newest first.
func (s *Store) GetBookmarks() ([]models.Bookmark, error) {
	var rows []bookmarkRow
	if err := s.db.Select(&rows, `
		SELECT kind, surah, verse, created_at FROM bookmarks
		ORDER BY created_at DESC, surah, verse`); err != nil {
		return nil, err
	}

	out := make([]models.Bookmark, 0, len(rows))
	for _, r := range rows {
		created, err := time.Parse(sortableTime, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for bookmark %d:%d: %w", r.Surah, r.Verse, err)
		}
		out = append(out, models.Bookmark{
			Kind:      models.BookmarkKind(r.Kind),
			Surah:     r.Surah,
			Verse:     r.Verse,
			CreatedAt: created,
		})
	}
	return out, nil
}
