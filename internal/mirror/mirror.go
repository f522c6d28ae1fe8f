// Package mirror copies fetched schedules to a hosted database so they can
// be inspected later. Mirroring is best effort: callers log failures and
// carry on.
package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
)

// Record is one mirrored schedule, keyed by city and date.
type Record struct {
	CityID    string    `db:"city_id" json:"city_id"`
	CityName  string    `db:"city_name" json:"city_name"`
	Date      string    `db:"date" json:"date"`
	Imsak     string    `db:"imsak" json:"imsak"`
	Subuh     string    `db:"subuh" json:"subuh"`
	Dzuhur    string    `db:"dzuhur" json:"dzuhur"`
	Ashar     string    `db:"ashar" json:"ashar"`
	Maghrib   string    `db:"maghrib" json:"maghrib"`
	Isya      string    `db:"isya" json:"isya"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewRecord builds the mirrored form of a schedule.
func NewRecord(city models.City, s models.PrayerSchedule, at time.Time) Record {
	return Record{
		CityID:    city.ID,
		CityName:  city.Name,
		Date:      s.Date,
		Imsak:     s.Imsak,
		Subuh:     s.Subuh,
		Dzuhur:    s.Dzuhur,
		Ashar:     s.Ashar,
		Maghrib:   s.Maghrib,
		Isya:      s.Isya,
		UpdatedAt: at.UTC(),
	}
}

// Schedule converts the record back to a schedule.
func (r Record) Schedule() models.PrayerSchedule {
	return models.PrayerSchedule{
		Date:    r.Date,
		Imsak:   r.Imsak,
		Subuh:   r.Subuh,
		Dzuhur:  r.Dzuhur,
		Ashar:   r.Ashar,
		Maghrib: r.Maghrib,
		Isya:    r.Isya,
	}
}

// Mirror is a remote schedule sink.
type Mirror interface {
	// Upsert inserts or replaces the record for (CityID, Date).
	Upsert(ctx context.Context, r Record) error
	// History returns up to limit records for cityID, newest date first.
	History(ctx context.Context, cityID string, limit int) ([]Record, error)
	Ping(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend       string
	DSN           string
	RedisAddr     string
	RedisUsername string
	RedisPassword string
}

// Open connects to the configured backend. Backend "none" or "" returns Nop.
func Open(ctx context.Context, opts Options) (Mirror, error) {
	switch opts.Backend {
	case "", constants.MirrorBackendNone:
		return Nop{}, nil
	case constants.MirrorBackendPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres mirror needs a connection string (set WAKTU_MIRROR_DSN or run '%s keyring set mirror-dsn')", constants.AppName)
		}
		return OpenPostgres(ctx, opts.DSN)
	case constants.MirrorBackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisUsername, opts.RedisPassword)
	default:
		return nil, fmt.Errorf("unknown mirror backend %q", opts.Backend)
	}
}

// Nop discards every record.
type Nop struct{}

func (Nop) Upsert(context.Context, Record) error { return nil }

func (Nop) History(context.Context, string, int) ([]Record, error) { return nil, nil }

func (Nop) Ping(context.Context) error { return nil }

func (Nop) Close() error { return nil }
