package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/waktu/internal/constants"
)

var fixedZones = map[string]struct {
	name   string
	offset int
}{
	constants.TimezoneWIB:  {"WIB", 7 * 60 * 60},
	constants.TimezoneWITA: {"WITA", 8 * 60 * 60},
	constants.TimezoneWIT:  {"WIT", 9 * 60 * 60},
}

// LoadLocation returns the fixed-offset zone for wib, wita or wit.
// An empty name means WIB.
func LoadLocation(timezone string) (*time.Location, error) {
	tz := strings.ToLower(strings.TrimSpace(timezone))
	if tz == "" {
		tz = constants.DefaultTimezone
	}
	z, ok := fixedZones[tz]
	if !ok {
		return nil, fmt.Errorf("unknown timezone %q (must be wib, wita, or wit)", timezone)
	}
	return time.FixedZone(z.name, z.offset), nil
}

// ZoneLabel returns the display abbreviation for a configured timezone.
func ZoneLabel(timezone string) string {
	if z, ok := fixedZones[strings.ToLower(timezone)]; ok {
		return z.name
	}
	return strings.ToUpper(timezone)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, strings.TrimSpace(timeStr))
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AtTimeOfDay returns the instant on day's calendar date (in loc) at the
// HH:MM wall-clock time, with zero seconds.
func AtTimeOfDay(day time.Time, timeStr string, loc *time.Location) (time.Time, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is one of wib, wita or wit.
// Unlike LoadLocation, an empty name is rejected.
func ValidateTimezone(timezone string) bool {
	if strings.TrimSpace(timezone) == "" {
		return false
	}
	_, err := LoadLocation(timezone)
	return err == nil
}
