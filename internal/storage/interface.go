package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/waktu/internal/models"
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// Provider is the local persistence layer. Values survive restarts; there is
// a single writer and the last write wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Key/value
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error

	// Cities
	GetCachedCities() ([]models.City, time.Time, error)
	SaveCachedCities(cities []models.City, at time.Time) error
	GetLastCity() (models.City, error)
	SaveLastCity(models.City) error

	// Schedules, keyed by city and date
	SaveSchedule(city models.City, s models.PrayerSchedule, fetchedAt time.Time) error
	GetSchedule(cityID, date string) (models.PrayerSchedule, error)
	PruneSchedules(before string) (int64, error)

	// Bookmarks
	AddBookmark(models.Bookmark) error
	RemoveBookmark(models.Bookmark) error
	HasBookmark(models.Bookmark) (bool, error)
	GetBookmarks() ([]models.Bookmark, error)

	// Recent readings, most recent first
	GetRecentReadings() ([]models.RecentReading, error)
	SaveRecentReadings([]models.RecentReading) error
}
