package system

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/config"
	"github.com/julianstephens/waktu/internal/mirror"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage/sqlite"
)

var wib = time.FixedZone("WIB", 7*60*60)

var jakarta = models.City{ID: "1301", Name: "KOTA JAKARTA"}

type stubSchedules struct {
	err error
}

func (s *stubSchedules) Cities(context.Context) ([]models.City, error) {
	return []models.City{jakarta}, s.err
}

func (s *stubSchedules) Schedule(_ context.Context, _ string, day time.Time) (models.PrayerSchedule, error) {
	if s.err != nil {
		return models.PrayerSchedule{}, s.err
	}
	return testSchedule(day.Format("2006-01-02")), nil
}

func (s *stubSchedules) RandomDua(context.Context) (*models.Dua, json.RawMessage, error) {
	return nil, nil, errors.New("no dua")
}

func testSchedule(date string) models.PrayerSchedule {
	return models.PrayerSchedule{
		Date:    date,
		Imsak:   "04:30",
		Subuh:   "04:40",
		Dzuhur:  "12:00",
		Ashar:   "15:15",
		Maghrib: "18:00",
		Isya:    "19:10",
	}
}

func setupTestCtx(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	ctx := &cli.Context{
		Store:     store,
		Config:    config.Default(),
		Out:       &out,
		Clock:     clock.NewFake(time.Date(2025, 3, 10, 17, 0, 0, 0, wib)),
		Schedules: &stubSchedules{},
		Mirror:    mirror.Nop{},
	}
	return ctx, &out
}
