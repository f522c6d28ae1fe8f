package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage"
)

type scheduleRow struct {
	CityID    string `db:"city_id"`
	CityName  string `db:"city_name"`
	Date      string `db:"date"`
	Tanggal   string `db:"tanggal"`
	Imsak     string `db:"imsak"`
	Subuh     string `db:"subuh"`
	Dzuhur    string `db:"dzuhur"`
	Ashar     string `db:"ashar"`
	Maghrib   string `db:"maghrib"`
	Isya      string `db:"isya"`
	FetchedAt string `db:"fetched_at"`
}

func (s *Store) SaveSchedule(city models.City, sched models.PrayerSchedule, fetchedAt time.Time) error {
	if sched.Date == "" {
		return fmt.Errorf("schedule for %s has no date", city.Name)
	}
	row := scheduleRow{
		CityID:    city.ID,
		CityName:  city.Name,
		Date:      sched.Date,
		Tanggal:   sched.Tanggal,
		Imsak:     sched.Imsak,
		Subuh:     sched.Subuh,
		Dzuhur:    sched.Dzuhur,
		Ashar:     sched.Ashar,
		Maghrib:   sched.Maghrib,
		Isya:      sched.Isya,
		FetchedAt: fetchedAt.UTC().Format(time.RFC3339),
	}
	_, err := s.db.NamedExec(`
		INSERT OR REPLACE INTO schedules
			(city_id, date, city_name, tanggal, imsak, subuh, dzuhur, ashar, maghrib, isya, fetched_at)
		VALUES
			(:city_id, :date, :city_name, :tanggal, :imsak, :subuh, :dzuhur, :ashar, :maghrib, :isya, :fetched_at)`,
		row)
	return err
}

func (s *Store) GetSchedule(cityID, date string) (models.PrayerSchedule, error) {
	var row scheduleRow
	err := s.db.Get(&row, `
		SELECT city_id, date, city_name, tanggal, imsak, subuh, dzuhur, ashar, maghrib, isya, fetched_at
		FROM schedules WHERE city_id = ? AND date = ?`, cityID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PrayerSchedule{}, fmt.Errorf("schedule for city %s on %s: %w", cityID, date, storage.ErrNotFound)
	}
	if err != nil {
		return models.PrayerSchedule{}, err
	}
	return models.PrayerSchedule{
		Date:    row.Date,
		Tanggal: row.Tanggal,
		Imsak:   row.Imsak,
		Subuh:   row.Subuh,
		Dzuhur:  row.Dzuhur,
		Ashar:   row.Ashar,
		Maghrib: row.Maghrib,
		Isya:    row.Isya,
	}, nil
}

// PruneSchedules deletes cached schedules dated before the given
// YYYY-MM-DD date.
func (s *Store) PruneSchedules(before string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM schedules WHERE date < ?", before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
