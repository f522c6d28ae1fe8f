package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

// LoadCities returns the city list, from the local cache when it is younger
// than a day and from the provider otherwise. A fetch error is returned and
// leaves the cache untouched.
func (s *Session) LoadCities(ctx context.Context) ([]models.City, error) {
	cached, at, err := s.store.GetCachedCities()
	switch {
	case err == nil && len(cached) > 0 && s.clock.Now().Sub(at) < constants.CityCacheTTL:
		s.setCities(cached)
		return cached, nil
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		s.log.Warn("ignoring unreadable city cache", "error", err)
	}
	return s.RefreshCities(ctx)
}

// RefreshCities fetches the city list and stores it with the current time.
func (s *Session) RefreshCities(ctx context.Context) ([]models.City, error) {
	cities, err := s.provider.Cities(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveCachedCities(cities, s.clock.Now()); err != nil {
		s.log.Warn("failed to cache cities", "error", err)
	}
	s.setCities(cities)
	s.log.Debug("cities fetched", "count", len(cities))
	return cities, nil
}

func (s *Session) setCities(cities []models.City) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = cities
}

// Cities returns the last loaded city list.
func (s *Session) Cities() []models.City {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cities
}

// SearchCities returns up to ten cities whose name contains query, ignoring
// case, in list order. Surrounding spaces are part of the match. A blank
// query matches nothing.
func SearchCities(cities []models.City, query string) []models.City {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	out := make([]models.City, 0, constants.MaxCitySearchResults)
	for _, c := range cities {
		if !c.Matches(query) {
			continue
		}
		out = append(out, c)
		if len(out) == constants.MaxCitySearchResults {
			break
		}
	}
	return out
}

// FindCity resolves ref as an exact city id, then as a case-insensitive
// exact name, then as a unique substring match.
func FindCity(cities []models.City, ref string) (models.City, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.City{}, fmt.Errorf("city is required")
	}
	for _, c := range cities {
		if c.ID == ref {
			return c, nil
		}
	}
	for _, c := range cities {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}

	var matches []models.City
	for _, c := range cities {
		if c.Matches(ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return models.City{}, fmt.Errorf("no city matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, 0, 3)
		for _, c := range matches[:min(3, len(matches))] {
			names = append(names, c.Name)
		}
		return models.City{}, fmt.Errorf("%q matches %d cities (%s...); be more specific", ref, len(matches), strings.Join(names, ", "))
	}
}
