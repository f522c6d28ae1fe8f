// Package scheduler turns a day's prayer schedule into timed notifications
// and runs the daily refresh job.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/notifier"
	"github.com/julianstephens/waktu/internal/utils"
)

const deliveryTimeout = 30 * time.Second

// Task is a pending notification.
type Task struct {
	ID           uuid.UUID
	Prayer       models.PrayerKey
	Tag          string
	FireAt       time.Time
	Notification notifier.Notification

	timer clock.Timer
}

// Scheduler owns the set of pending notification timers.
type Scheduler struct {
	mu       sync.Mutex
	clock    clock.Clock
	notifier notifier.Notifier
	loc      *time.Location
	tasks    map[uuid.UUID]*Task
	log      *log.Logger

	// fired receives each task after delivery was attempted. Tests only.
	fired func(Task, error)
}

// New returns a scheduler that interprets schedule times in loc.
func New(c clock.Clock, n notifier.Notifier, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		clock:    c,
		notifier: n,
		loc:      loc,
		tasks:    make(map[uuid.UUID]*Task),
		log:      logger.With("scheduler"),
	}
}

// SetLocation changes the zone used by later Schedule calls.
func (s *Scheduler) SetLocation(loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loc = loc
}

// Schedule cancels every pending task, then registers a notification offset
// minutes before each prayer for every distinct positive offset, plus one at
// the prayer time. Only instants still in the future are registered. It
// returns the number of tasks registered.
func (s *Scheduler) Schedule(schedule models.PrayerSchedule, city string, offsets []int, lang string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAllLocked()

	now := s.clock.Now()
	offsets = distinctPositive(offsets)
	count := 0

	for _, key := range models.AllPrayerKeys() {
		hhmm := schedule.Time(key)
		if hhmm == "" {
			continue
		}
		at, err := utils.AtTimeOfDay(now, hhmm, s.loc)
		if err != nil {
			s.log.Warn("skipping prayer with invalid time", "prayer", key, "time", hhmm, "error", err)
			continue
		}

		for _, off := range offsets {
			fireAt := at.Add(-time.Duration(off) * time.Minute)
			if s.addLocked(now, key, fireAt, PreNotification(key, city, off, hhmm, lang)) {
				count++
			}
		}
		if s.addLocked(now, key, at, NowNotification(key, city, lang)) {
			count++
		}
	}

	s.log.Debug("scheduled notifications", "city", city, "count", count)
	return count
}

func (s *Scheduler) addLocked(now time.Time, key models.PrayerKey, fireAt time.Time, n notifier.Notification) bool {
	delay := fireAt.Sub(now)
	if delay <= 0 {
		return false
	}
	task := &Task{
		ID:           uuid.New(),
		Prayer:       key,
		Tag:          n.Tag,
		FireAt:       fireAt,
		Notification: n,
	}
	id := task.ID
	task.timer = s.clock.AfterFunc(delay, func() { s.fire(id) })
	s.tasks[id] = task
	return true
}

func (s *Scheduler) fire(id uuid.UUID) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	err := s.notifier.Notify(ctx, task.Notification)
	if err != nil {
		s.log.Warn("notification delivery failed", "tag", task.Tag, "error", err)
	} else {
		s.log.Info("notification delivered", "tag", task.Tag)
	}
	if s.fired != nil {
		s.fired(*task, err)
	}
}

// CancelAll stops every pending task and returns how many were stopped.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelAllLocked()
}

func (s *Scheduler) cancelAllLocked() int {
	n := 0
	for id, task := range s.tasks {
		if task.timer.Stop() {
			n++
		}
		delete(s.tasks, id)
	}
	return n
}

// Pending returns the pending tasks ordered by fire time.
func (s *Scheduler) Pending() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].Tag < out[j].Tag
		}
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

// distinctPositive drops non-positive and duplicate offsets, largest first.
func distinctPositive(offsets []int) []int {
	seen := make(map[int]bool, len(offsets))
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if o > 0 && !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
