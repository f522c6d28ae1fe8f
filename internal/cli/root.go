package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/waktu/internal/api/myquran"
	quranapi "github.com/julianstephens/waktu/internal/api/quran"
	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/config"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/keyring"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/mirror"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/notifier"
	"github.com/julianstephens/waktu/internal/quran"
	"github.com/julianstephens/waktu/internal/session"
	"github.com/julianstephens/waktu/internal/storage"
)

// QuranProvider is the Quran text source used by the commands and the TUI.
type QuranProvider interface {
	ListSurahs(ctx context.Context) ([]models.Surah, error)
	Surah(ctx context.Context, n int) (models.Surah, error)
	Ayah(ctx context.Context, n, ayah int) (models.Verse, error)
	Juz(ctx context.Context, n int) (models.Juz, error)
	RandomAyah(ctx context.Context) (models.Verse, error)
	SearchSurahs(ctx context.Context, query string) ([]models.Surah, error)
}

// Context is handed to every command's Run method.
type Context struct {
	Store  storage.Provider
	Config config.Config
	Out    io.Writer
	Clock  clock.Clock

	// Set to override the remote providers, as tests do.
	Schedules session.ScheduleProvider
	QuranAPI  QuranProvider
	Mirror    mirror.Mirror
}

// Stdout returns the command output writer.
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Now returns the current time from the context clock.
func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// ConfigDir is the directory holding the local database.
func (c *Context) ConfigDir() string {
	if c.Store == nil {
		return "."
	}
	return filepath.Dir(c.Store.GetConfigPath())
}

// ScheduleProvider returns the prayer schedule client.
func (c *Context) ScheduleProvider() session.ScheduleProvider {
	if c.Schedules == nil {
		c.Schedules = myquran.New(c.Config.ScheduleAPIBase, c.Config.HTTPTimeout)
	}
	return c.Schedules
}

// Quran returns the Quran text client.
func (c *Context) Quran() QuranProvider {
	if c.QuranAPI == nil {
		c.QuranAPI = quranapi.New(c.Config.QuranAPIBase, c.Config.HTTPTimeout)
	}
	return c.QuranAPI
}

// Library returns the bookmark and recent-reading library.
func (c *Context) Library() *quran.Library {
	return quran.NewLibrary(c.Quran(), c.Store, c.Clock)
}

// OpenMirror connects to the configured mirror backend. Secrets not given
// in the environment are read from the keyring.
func (c *Context) OpenMirror(ctx context.Context) (mirror.Mirror, error) {
	if c.Mirror != nil {
		return c.Mirror, nil
	}
	m, err := mirror.Open(ctx, mirror.Options{
		Backend:       c.Config.MirrorBackend,
		DSN:           keyring.Lookup(keyring.MirrorDSN, c.Config.MirrorDSN),
		RedisAddr:     c.Config.RedisAddr,
		RedisUsername: c.Config.RedisUsername,
		RedisPassword: keyring.Lookup(keyring.RedisPassword, c.Config.RedisPassword),
	})
	if err != nil {
		return nil, err
	}
	c.Mirror = m
	return m, nil
}

// BuildNotifier assembles the delivery surfaces named in surfaces, or the
// configured ones when surfaces is empty. The returned func releases them.
func (c *Context) BuildNotifier(surfaces []string) (notifier.Notifier, func(), error) {
	if len(surfaces) == 0 {
		surfaces = c.Config.NotifyVia
	}
	if len(surfaces) == 0 {
		surfaces = []string{constants.NotifyViaTray}
	}

	var multi notifier.Multi
	var closers []func()
	for _, s := range surfaces {
		switch s {
		case constants.NotifyViaTray:
			multi = append(multi, notifier.NewTray())
		case constants.NotifyViaConsole:
			multi = append(multi, notifier.NewConsole(c.Stdout()))
		case constants.NotifyViaMQTT:
			if c.Config.MQTTBroker == "" {
				return nil, nil, fmt.Errorf("%s needs WAKTU_MQTT_BROKER", s)
			}
			m := notifier.NewMQTT(notifier.MQTTConfig{
				Broker:   c.Config.MQTTBroker,
				ClientID: c.Config.MQTTClientID,
				Topic:    c.Config.MQTTTopic,
				Username: c.Config.MQTTUsername,
				Password: keyring.Lookup(keyring.MQTTPassword, c.Config.MQTTPassword),
			})
			multi = append(multi, m)
			closers = append(closers, m.Close)
		default:
			return nil, nil, fmt.Errorf("unknown notification surface %q", s)
		}
	}

	release := func() {
		for _, f := range closers {
			f()
		}
	}
	if len(multi) == 1 {
		return multi[0], release, nil
	}
	return multi, release, nil
}

// NewSession builds a session over the store. A mirror that cannot be
// opened is logged and replaced by a no-op one. n may be nil when the
// command does not deliver notifications.
func (c *Context) NewSession(ctx context.Context, n notifier.Notifier) (*session.Session, error) {
	m, err := c.OpenMirror(ctx)
	if err != nil {
		logger.Warn("mirror unavailable, continuing without it", "backend", c.Config.MirrorBackend, "error", err)
		m = mirror.Nop{}
	}
	return session.New(session.Options{
		Provider: c.ScheduleProvider(),
		Store:    c.Store,
		Mirror:   m,
		Notifier: n,
		Clock:    c.Clock,
	})
}
