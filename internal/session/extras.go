package session

import (
	"context"

	"github.com/julianstephens/waktu/internal/mirror"
	"github.com/julianstephens/waktu/internal/models"
)

// RandomDua fetches a supplication. Failures are logged and yield nil.
func (s *Session) RandomDua(ctx context.Context) *models.Dua {
	dua, _, err := s.provider.RandomDua(ctx)
	if err != nil {
		s.log.Warn("failed to fetch dua", "error", err)
		return nil
	}
	return dua
}

// History returns up to limit mirrored schedules for the selected city, or
// the last selected one, newest first.
func (s *Session) History(ctx context.Context, limit int) ([]mirror.Record, error) {
	city, ok := s.City()
	if !ok {
		last, err := s.store.GetLastCity()
		if err != nil {
			return nil, ErrNoCity
		}
		city = last
	}
	if limit <= 0 {
		limit = 7
	}
	return s.mirror.History(ctx, city.ID, limit)
}
