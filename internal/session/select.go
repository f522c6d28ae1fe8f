package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/mirror"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

// SelectCity fetches today's schedule for city and makes it current. On a
// fetch error nothing changes and the error is returned. When another
// selection starts before this one completes, the later one wins and this
// call returns ErrSuperseded.
func (s *Session) SelectCity(ctx context.Context, city models.City) (models.PrayerSchedule, error) {
	sched, _, err := s.selectCity(ctx, city)
	return sched, err
}

func (s *Session) selectCity(ctx context.Context, city models.City) (models.PrayerSchedule, uint64, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	loc := s.loc
	s.mu.Unlock()

	now := s.clock.Now().In(loc)
	sched, err := s.provider.Schedule(ctx, city.ID, now)
	if err != nil {
		s.log.Warn("schedule fetch failed", "city", city.Name, "error", err)
		return models.PrayerSchedule{}, gen, err
	}

	fetchedAt := s.clock.Now()
	if !s.commit(gen, city, sched, fetchedAt) {
		s.log.Debug("discarding superseded schedule", "city", city.Name)
		return models.PrayerSchedule{}, gen, ErrSuperseded
	}

	n := s.RescheduleNotifications(ctx)
	s.log.Info("city selected", "city", city.Name, "date", sched.Date, "notifications", n)

	s.mirrorSchedule(ctx, city, sched, fetchedAt)
	return sched, gen, nil
}

// commit applies sched and saves it as the last city and cached schedule.
// Both happen under one lock so a superseded selection never persists.
func (s *Session) commit(gen uint64, city models.City, sched models.PrayerSchedule, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.applyLocked(gen, city, sched) {
		return false
	}
	if err := s.store.SaveLastCity(city); err != nil {
		s.log.Warn("failed to save last city", "error", err)
	}
	if err := s.store.SaveSchedule(city, sched, at); err != nil {
		s.log.Warn("failed to cache schedule", "error", err)
	}
	return true
}

// apply makes sched current if gen is still the latest selection.
func (s *Session) apply(gen uint64, city models.City, sched models.PrayerSchedule) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(gen, city, sched)
}

func (s *Session) applyLocked(gen uint64, city models.City, sched models.PrayerSchedule) bool {
	if gen != s.generation {
		return false
	}
	c := city
	s.city = &c
	s.schedule = sched
	if _, err := s.tracker.SetSchedule(sched, s.clock.Now().In(s.loc)); err != nil {
		s.log.Warn("failed to resolve next prayer", "city", city.Name, "error", err)
	}
	return true
}

func (s *Session) mirrorSchedule(ctx context.Context, city models.City, sched models.PrayerSchedule, at time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.MirrorWriteTimeout)
	defer cancel()
	if err := s.mirror.Upsert(ctx, mirror.NewRecord(city, sched, at)); err != nil {
		s.log.Warn("failed to mirror schedule", "city", city.Name, "date", sched.Date, "error", err)
	}
}

// Restore reselects the last city. When the fetch fails the schedule cached
// for that city and today is used instead. It reports whether a city is now
// selected; with no last city it returns false and no error.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	city, err := s.store.GetLastCity()
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load last city: %w", err)
	}

	_, gen, fetchErr := s.selectCity(ctx, city)
	if fetchErr == nil {
		return true, nil
	}
	if errors.Is(fetchErr, ErrSuperseded) {
		return false, nil
	}

	today := s.Now().Format(constants.DateFormat)

	cached, err := s.store.GetSchedule(city.ID, today)
	if err != nil {
		return false, fetchErr
	}
	if !s.apply(gen, city, cached) {
		return false, nil
	}
	s.log.Info("using cached schedule", "city", city.Name, "date", today, "error", fetchErr)
	s.RescheduleNotifications(ctx)
	return true, nil
}

// Refresh refetches today's schedule for the selected city.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	city := s.city
	s.mu.Unlock()
	if city == nil {
		return ErrNoCity
	}
	_, err := s.SelectCity(ctx, *city)
	return err
}

// City returns the selected city, if any.
func (s *Session) City() (models.City, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.city == nil {
		return models.City{}, false
	}
	return *s.city, true
}

// Schedule returns the current schedule.
func (s *Session) Schedule() models.PrayerSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule
}
