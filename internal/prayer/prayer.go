// Package prayer derives the upcoming prayer and its countdown from a daily
// schedule.
package prayer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/utils"
)

// ErrEmptySchedule is returned when a schedule has no usable times.
var ErrEmptySchedule = errors.New("schedule has no prayer times")

// Next returns the first prayer whose instant today (in loc) is strictly
// after now. When every prayer has passed it wraps to tomorrow's subuh,
// reusing today's subuh time since tomorrow's schedule is not fetched yet.
func Next(s models.PrayerSchedule, now time.Time, loc *time.Location) (models.NextPrayer, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	for _, key := range models.AllPrayerKeys() {
		hhmm := s.Time(key)
		if hhmm == "" {
			continue
		}
		at, err := utils.AtTimeOfDay(now, hhmm, loc)
		if err != nil {
			return models.NextPrayer{}, fmt.Errorf("%s: %w", key, err)
		}
		if now.Before(at) {
			return nextPrayer(key, hhmm, at, false), nil
		}
	}

	hhmm := s.Time(models.PrayerSubuh)
	if hhmm == "" {
		return models.NextPrayer{}, ErrEmptySchedule
	}
	at, err := utils.AtTimeOfDay(now.AddDate(0, 0, 1), hhmm, loc)
	if err != nil {
		return models.NextPrayer{}, fmt.Errorf("%s: %w", models.PrayerSubuh, err)
	}
	return nextPrayer(models.PrayerSubuh, hhmm, at, true), nil
}

func nextPrayer(key models.PrayerKey, hhmm string, at time.Time, tomorrow bool) models.NextPrayer {
	return models.NextPrayer{
		Key:      key,
		Name:     key.Name(),
		Emoji:    key.Emoji(),
		Time:     hhmm,
		At:       at,
		Tomorrow: tomorrow,
	}
}

// FormatCountdown renders d as zero-padded HH:MM:SS. Negative durations
// render as 00:00:00; hours are not capped at 24.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// Tracker holds the current schedule and target prayer and refreshes the
// target once it has been reached.
type Tracker struct {
	mu       sync.Mutex
	loc      *time.Location
	schedule models.PrayerSchedule
	next     models.NextPrayer
	ok       bool
}

// NewTracker returns a tracker for times in loc.
func NewTracker(loc *time.Location) *Tracker {
	return &Tracker{loc: loc}
}

// SetSchedule replaces the schedule and recomputes the target from now.
func (t *Tracker) SetSchedule(s models.PrayerSchedule, now time.Time) (models.NextPrayer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	np, err := Next(s, now, t.loc)
	if err != nil {
		t.ok = false
		return models.NextPrayer{}, err
	}
	t.schedule = s
	t.next = np
	t.ok = true
	return np, nil
}

// Next returns the current target and whether one is set.
func (t *Tracker) Next() (models.NextPrayer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next, t.ok
}

// Tick returns the remaining time to the target as of now. When the target
// has been reached the next prayer is resolved first, so the result is
// never negative. The returned bool is true when the target changed.
func (t *Tracker) Tick(now time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ok {
		return 0, false
	}

	changed := false
	if t.next.At.Sub(now) <= 0 {
		np, err := Next(t.schedule, now, t.loc)
		if err != nil {
			return 0, false
		}
		changed = np.Key != t.next.Key || !np.At.Equal(t.next.At)
		t.next = np
	}

	d := t.next.At.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, changed
}
