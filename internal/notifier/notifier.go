// Package notifier delivers prayer notifications to the surfaces waktu
// supports: the desktop tray agent, an MQTT broker, and the terminal.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupported means the surface is not present on this system.
	ErrUnsupported = errors.New("notifications are not supported")
	// ErrDenied means the surface refused to deliver for this user.
	ErrDenied = errors.New("notification permission denied")
)

// Notification is a single message for a delivery surface. A later
// notification with the same Tag replaces the earlier one; Renotify asks
// the surface to alert again when that happens.
type Notification struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Icon     string `json:"icon,omitempty"`
	Tag      string `json:"tag"`
	Renotify bool   `json:"renotify"`
	URL      string `json:"url,omitempty"`
}

// Notifier delivers notifications. Available reports whether delivery can
// be attempted at all; callers ask once per session.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
	Available(ctx context.Context) error
}

// Multi fans a notification out to every member.
type Multi []Notifier

// Notify delivers to every member and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, member := range m {
		if err := member.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Available succeeds when at least one member is available.
func (m Multi) Available(ctx context.Context) error {
	if len(m) == 0 {
		return ErrUnsupported
	}
	var msgs []string
	var first error
	for _, member := range m {
		err := member.Available(ctx)
		if err == nil {
			return nil
		}
		if first == nil {
			first = err
		}
		msgs = append(msgs, err.Error())
	}
	if errors.Is(first, ErrDenied) {
		return fmt.Errorf("%w: %s", ErrDenied, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, strings.Join(msgs, "; "))
}
