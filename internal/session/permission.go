package session

import (
	"context"
	"errors"

	"github.com/julianstephens/waktu/internal/notifier"
)

// Permission is the notification permission state. It is requested at most
// once per session; Denied and Unsupported are final.
type Permission int

const (
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
	PermissionUnsupported
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUnsupported:
		return "unsupported"
	default:
		return "default"
	}
}

// Permission returns the current permission state.
func (s *Session) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

// requestPermission asks the notifier once and remembers the answer.
func (s *Session) requestPermission(ctx context.Context) Permission {
	s.mu.Lock()
	p := s.permission
	s.mu.Unlock()
	if p != PermissionDefault {
		return p
	}

	err := s.notifier.Available(ctx)
	switch {
	case err == nil:
		p = PermissionGranted
	case errors.Is(err, notifier.ErrDenied):
		p = PermissionDenied
	default:
		p = PermissionUnsupported
	}
	if err != nil {
		s.log.Warn("notifications unavailable", "permission", p, "error", err)
	}

	s.mu.Lock()
	if s.permission == PermissionDefault {
		s.permission = p
	}
	p = s.permission
	s.mu.Unlock()
	return p
}

// RescheduleNotifications replaces the pending notifications for the
// current schedule. It returns the number scheduled.
func (s *Session) RescheduleNotifications(ctx context.Context) int {
	s.mu.Lock()
	enabled := s.settings.NotificationsEnabled
	city := s.city
	schedule := s.schedule
	offsets := append([]int(nil), s.settings.NotifyOffsets...)
	lang := s.settings.Language
	s.mu.Unlock()

	if !enabled || city == nil {
		if n := s.scheduler.CancelAll(); n > 0 {
			s.log.Debug("cancelled notifications", "count", n)
		}
		return 0
	}
	if s.requestPermission(ctx) != PermissionGranted {
		s.scheduler.CancelAll()
		return 0
	}
	return s.scheduler.Schedule(schedule, city.Name, offsets, lang)
}
