// Package session holds the state of one running waktu instance: the
// selected city, its schedule, the next prayer and the pending notifications.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/mirror"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/notifier"
	"github.com/julianstephens/waktu/internal/prayer"
	"github.com/julianstephens/waktu/internal/scheduler"
	"github.com/julianstephens/waktu/internal/storage"
	"github.com/julianstephens/waktu/internal/utils"
)

// ErrSuperseded is returned by SelectCity when a later selection started
// before this one finished. Its result was discarded.
var ErrSuperseded = errors.New("selection superseded by a newer one")

// ErrNoCity is returned when an operation needs a selected city.
var ErrNoCity = errors.New("no city selected")

// ScheduleProvider is the remote source of cities, schedules and duas.
type ScheduleProvider interface {
	Cities(ctx context.Context) ([]models.City, error)
	Schedule(ctx context.Context, cityID string, day time.Time) (models.PrayerSchedule, error)
	RandomDua(ctx context.Context) (*models.Dua, json.RawMessage, error)
}

// Options are the collaborators of a Session. Mirror, Notifier and Clock
// are optional.
type Options struct {
	Provider ScheduleProvider
	Store    storage.Provider
	Mirror   mirror.Mirror
	Notifier notifier.Notifier
	Clock    clock.Clock
}

type Session struct {
	mu sync.Mutex

	provider ScheduleProvider
	store    storage.Provider
	mirror   mirror.Mirror
	notifier notifier.Notifier
	clock    clock.Clock
	log      *log.Logger

	settings   models.Settings
	loc        *time.Location
	tracker    *prayer.Tracker
	scheduler  *scheduler.Scheduler
	permission Permission

	city       *models.City
	schedule   models.PrayerSchedule
	cities     []models.City
	generation uint64
}

// New builds a session from the settings held in the store.
func New(opts Options) (*Session, error) {
	if opts.Provider == nil || opts.Store == nil {
		return nil, fmt.Errorf("session requires a schedule provider and a store")
	}
	if opts.Mirror == nil {
		opts.Mirror = mirror.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}

	settings, err := opts.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return nil, err
	}

	s := &Session{
		provider: opts.Provider,
		store:    opts.Store,
		mirror:   opts.Mirror,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		log:      logger.With("session"),
		settings: settings,
		loc:      loc,
		tracker:  prayer.NewTracker(loc),
	}
	var deliver notifier.Notifier = notifier.Multi{}
	if opts.Notifier == nil {
		s.permission = PermissionUnsupported
	} else {
		deliver = opts.Notifier
	}
	s.scheduler = scheduler.New(opts.Clock, deliver, loc)
	return s, nil
}

// Settings returns the active preferences.
func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Location returns the configured fixed zone.
func (s *Session) Location() *time.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loc
}

// Now returns the current time in the configured zone.
func (s *Session) Now() time.Time {
	return s.clock.Now().In(s.Location())
}

// UpdateSettings validates and stores settings, then applies them: the
// zone is switched and notifications are rescheduled or cancelled.
func (s *Session) UpdateSettings(settings models.Settings) error {
	models.ApplyDefaultSettings(&settings)
	if err := settings.Validate(); err != nil {
		return err
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}
	if err := s.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.mu.Lock()
	s.settings = settings
	s.loc = loc
	s.tracker = prayer.NewTracker(loc)
	s.scheduler.SetLocation(loc)
	hasSchedule := s.city != nil
	if hasSchedule {
		if _, err := s.tracker.SetSchedule(s.schedule, s.clock.Now().In(loc)); err != nil {
			s.log.Warn("failed to resolve next prayer", "error", err)
		}
	}
	s.mu.Unlock()

	if hasSchedule {
		s.RescheduleNotifications(context.Background())
	}
	return nil
}

// Snapshot is a copy of the session state for display.
type Snapshot struct {
	City       *models.City
	Schedule   models.PrayerSchedule
	Next       models.NextPrayer
	HasNext    bool
	Countdown  time.Duration
	Permission Permission
	Pending    int
	Settings   models.Settings
}

// State returns a snapshot taken at the current time.
func (s *Session) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Schedule:   s.schedule,
		Permission: s.permission,
		Pending:    len(s.scheduler.Pending()),
		Settings:   s.settings,
	}
	if s.city != nil {
		c := *s.city
		snap.City = &c
	}
	snap.Countdown, _ = s.tracker.Tick(s.clock.Now().In(s.loc))
	snap.Next, snap.HasNext = s.tracker.Next()
	return snap
}

// Tick advances the countdown. changed is true when the next prayer moved
// on to a new target.
func (s *Session) Tick() (countdown time.Duration, next models.NextPrayer, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	countdown, changed = s.tracker.Tick(s.clock.Now().In(s.loc))
	next, _ = s.tracker.Next()
	return countdown, next, changed
}

// Pending lists the notifications waiting to fire.
func (s *Session) Pending() []scheduler.Task {
	return s.scheduler.Pending()
}

// Close cancels pending notifications and the mirror connection.
func (s *Session) Close() error {
	n := s.scheduler.CancelAll()
	s.log.Debug("session closed", "cancelled", n)
	return s.mirror.Close()
}
