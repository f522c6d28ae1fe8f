package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/waktu/internal/utils"
)

// PrayerKey identifies one of the six daily schedule entries.
type PrayerKey string

const (
	PrayerImsak   PrayerKey = "imsak"
	PrayerSubuh   PrayerKey = "subuh"
	PrayerDzuhur  PrayerKey = "dzuhur"
	PrayerAshar   PrayerKey = "ashar"
	PrayerMaghrib PrayerKey = "maghrib"
	PrayerIsya    PrayerKey = "isya"
)

var prayerOrder = []PrayerKey{
	PrayerImsak,
	PrayerSubuh,
	PrayerDzuhur,
	PrayerAshar,
	PrayerMaghrib,
	PrayerIsya,
}

var prayerLabels = map[PrayerKey]struct {
	name  string
	emoji string
}{
	PrayerImsak:   {"Imsak", "🌅"},
	PrayerSubuh:   {"Subuh", "🌄"},
	PrayerDzuhur:  {"Dzuhur", "☀️"},
	PrayerAshar:   {"Ashar", "⛅"},
	PrayerMaghrib: {"Maghrib", "🌇"},
	PrayerIsya:    {"Isya", "🌙"},
}

// AllPrayerKeys returns the six keys in their fixed daily order.
func AllPrayerKeys() []PrayerKey {
	keys := make([]PrayerKey, len(prayerOrder))
	copy(keys, prayerOrder)
	return keys
}

// ParsePrayerKey parses a key case-insensitively.
func ParsePrayerKey(s string) (PrayerKey, error) {
	k := PrayerKey(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := prayerLabels[k]; !ok {
		return "", fmt.Errorf("unknown prayer: %q", s)
	}
	return k, nil
}

// Name returns the display label for the key.
func (k PrayerKey) Name() string {
	if l, ok := prayerLabels[k]; ok {
		return l.name
	}
	return string(k)
}

// Emoji returns the icon associated with the key.
func (k PrayerKey) Emoji() string {
	return prayerLabels[k].emoji
}

// PrayerSchedule is one day of prayer times for a city. Times are local
// wall-clock HH:MM in the city's zone.
type PrayerSchedule struct {
	Date    string `json:"date" db:"date"` // YYYY-MM-DD
	Tanggal string `json:"tanggal,omitempty" db:"-"`
	Imsak   string `json:"imsak" db:"imsak"`
	Subuh   string `json:"subuh" db:"subuh"`
	Dzuhur  string `json:"dzuhur" db:"dzuhur"`
	Ashar   string `json:"ashar" db:"ashar"`
	Maghrib string `json:"maghrib" db:"maghrib"`
	Isya    string `json:"isya" db:"isya"`
}

// UnmarshalJSON accepts the provider's shape, where `tanggal` is a display
// string and `date` may be missing.
func (s *PrayerSchedule) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date    string `json:"date"`
		Tanggal string `json:"tanggal"`
		Imsak   string `json:"imsak"`
		Subuh   string `json:"subuh"`
		Dzuhur  string `json:"dzuhur"`
		Ashar   string `json:"ashar"`
		Maghrib string `json:"maghrib"`
		Isya    string `json:"isya"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = PrayerSchedule{
		Date:    raw.Date,
		Tanggal: raw.Tanggal,
		Imsak:   raw.Imsak,
		Subuh:   raw.Subuh,
		Dzuhur:  raw.Dzuhur,
		Ashar:   raw.Ashar,
		Maghrib: raw.Maghrib,
		Isya:    raw.Isya,
	}
	if s.Date == "" {
		if _, err := time.Parse("2006-01-02", raw.Tanggal); err == nil {
			s.Date = raw.Tanggal
		}
	}
	return nil
}

// Time returns the HH:MM value for the given key.
func (s PrayerSchedule) Time(key PrayerKey) string {
	switch key {
	case PrayerImsak:
		return s.Imsak
	case PrayerSubuh:
		return s.Subuh
	case PrayerDzuhur:
		return s.Dzuhur
	case PrayerAshar:
		return s.Ashar
	case PrayerMaghrib:
		return s.Maghrib
	case PrayerIsya:
		return s.Isya
	default:
		return ""
	}
}

// IsZero reports whether no prayer time is set.
func (s PrayerSchedule) IsZero() bool {
	for _, k := range prayerOrder {
		if s.Time(k) != "" {
			return false
		}
	}
	return true
}

// Validate checks date and time formats and that the six times never go
// backwards in daily order. Blank times are allowed.
func (s PrayerSchedule) Validate() error {
	if s.Date != "" {
		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}

	prev := -1
	var prevKey PrayerKey
	for _, k := range prayerOrder {
		v := s.Time(k)
		if v == "" {
			continue
		}
		if !utils.ValidateTimeFormat(v) {
			return fmt.Errorf("invalid %s time %q (expected HH:MM)", k, v)
		}
		minutes, _ := utils.ParseTimeToMinutes(v)
		if minutes < prev {
			return fmt.Errorf("%s (%s) is earlier than %s", k, v, prevKey)
		}
		prev = minutes
		prevKey = k
	}
	return nil
}

// NextPrayer is the derived "what's next" view of a schedule.
type NextPrayer struct {
	Key      PrayerKey `json:"key"`
	Name     string    `json:"name"`
	Emoji    string    `json:"emoji"`
	Time     string    `json:"time"` // HH:MM
	At       time.Time `json:"at"`
	Tomorrow bool      `json:"tomorrow"`
}
