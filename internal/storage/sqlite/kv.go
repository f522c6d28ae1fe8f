package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.Get(&value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("key %q: %w", key, storage.ErrNotFound)
	}
	return value, err
}

func (s *Store) SetValue(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) DeleteValue(key string) error {
	_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key)
	return err
}

func (s *Store) getJSON(key string, v interface{}) error {
	raw, err := s.GetValue(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("corrupt value for %q: %w", key, err)
	}
	return nil
}

func (s *Store) setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.SetValue(key, string(data))
}

// GetCachedCities returns the cached city list and when it was stored. The
// timestamp is kept in epoch milliseconds.
func (s *Store) GetCachedCities() ([]models.City, time.Time, error) {
	var cities []models.City
	if err := s.getJSON(constants.KeyCachedCities, &cities); err != nil {
		return nil, time.Time{}, err
	}
	raw, err := s.GetValue(constants.KeyCitiesCacheTime)
	if err != nil {
		return nil, time.Time{}, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("corrupt value for %q: %w", constants.KeyCitiesCacheTime, err)
	}
	return cities, time.UnixMilli(ms), nil
}

func (s *Store) SaveCachedCities(cities []models.City, at time.Time) error {
	if err := s.setJSON(constants.KeyCachedCities, cities); err != nil {
		return err
	}
	return s.SetValue(constants.KeyCitiesCacheTime, strconv.FormatInt(at.UnixMilli(), 10))
}

func (s *Store) GetLastCity() (models.City, error) {
	var city models.City
	if err := s.getJSON(constants.KeyLastSelectedCity, &city); err != nil {
		return models.City{}, err
	}
	return city, nil
}

func (s *Store) SaveLastCity(city models.City) error {
	return s.setJSON(constants.KeyLastSelectedCity, city)
}

// GetRecentReadings returns an empty list when nothing was stored.
func (s *Store) GetRecentReadings() ([]models.RecentReading, error) {
	var recents []models.RecentReading
	err := s.getJSON(constants.KeyRecentReadings, &recents)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.RecentReading{}, nil
	}
	if err != nil {
		return nil, err
	}
	return recents, nil
}

func (s *Store) SaveRecentReadings(recents []models.RecentReading) error {
	return s.setJSON(constants.KeyRecentReadings, recents)
}
