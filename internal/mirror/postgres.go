package mirror

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	pq "github.com/lib/pq"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/logger"
	"github.com/julianstephens/waktu/internal/migration"
	"github.com/julianstephens/waktu/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// Postgres mirrors schedules into the prayer_schedules table of the waktu
// schema.
type Postgres struct {
	db *sqlx.DB
}

// OpenPostgres connects, creates the schema if needed and applies the mirror
// migrations.
func OpenPostgres(ctx context.Context, connStr string) (*Postgres, error) {
	if _, err := ValidateConnString(connStr); err != nil {
		return nil, err
	}
	connStr = withSearchPath(connStr)

	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasParam(connStr, "sslmode") {
			return nil, fmt.Errorf("failed to connect to mirror: %w (hint: add sslmode=disable to the connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to mirror: %w", err)
	}
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	if _, err := migration.NewRunner(db, sub).Apply(func(msg string) { logger.Info(msg, "mirror", "postgres") }); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate mirror: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Upsert(ctx context.Context, r Record) error {
	_, err := p.db.NamedExecContext(ctx, `
		INSERT INTO prayer_schedules
			(city_id, city_name, date, imsak, subuh, dzuhur, ashar, maghrib, isya, updated_at)
		VALUES
			(:city_id, :city_name, :date, :imsak, :subuh, :dzuhur, :ashar, :maghrib, :isya, :updated_at)
		ON CONFLICT (city_id, date) DO UPDATE SET
			city_name = EXCLUDED.city_name,
			imsak = EXCLUDED.imsak,
			subuh = EXCLUDED.subuh,
			dzuhur = EXCLUDED.dzuhur,
			ashar = EXCLUDED.ashar,
			maghrib = EXCLUDED.maghrib,
			isya = EXCLUDED.isya,
			updated_at = EXCLUDED.updated_at`, r)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule %s/%s: %w", r.CityID, r.Date, err)
	}
	return nil
}

func (p *Postgres) History(ctx context.Context, cityID string, limit int) ([]Record, error) {
	var out []Record
	err := p.db.SelectContext(ctx, &out, `
		SELECT city_id, city_name, to_char(date, 'YYYY-MM-DD') AS date,
			imsak, subuh, dzuhur, ashar, maghrib, isya, updated_at
		FROM prayer_schedules
		WHERE city_id = $1
		ORDER BY date DESC
		LIMIT $2`, cityID, limit)
	return out, err
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// withSearchPath pins search_path to the waktu schema unless the connection
// string already sets one.
func withSearchPath(connStr string) string {
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if hasParam(connStr, "search_path") {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// hasParam reports whether a URL or key=value connection string sets key,
// ignoring case.
func hasParam(connStr, key string) bool {
	if isURL(connStr) {
		if u, err := url.Parse(connStr); err == nil {
			for k := range u.Query() {
				if strings.EqualFold(k, key) {
					return true
				}
			}
		}
		return false
	}
	for _, part := range strings.Fields(connStr) {
		k, _, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a URL or key=value PostgreSQL
// connection string without an embedded password. Passwords come from
// PGPASSWORD or ~/.pgpass.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return false, ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasParam(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}
