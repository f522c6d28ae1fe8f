// Package myquran is the client for the prayer schedule provider.
package myquran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/waktu/internal/api"
	"github.com/julianstephens/waktu/internal/constants"
	apperrors "github.com/julianstephens/waktu/internal/errors"
	"github.com/julianstephens/waktu/internal/models"
)

// ErrScheduleNotFound is returned when the provider answers without a
// schedule and gives no message of its own.
var ErrScheduleNotFound = errors.New("jadwal tidak ditemukan")

// envelope is the provider's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e envelope) hasData() bool {
	d := strings.TrimSpace(string(e.Data))
	return d != "" && d != "null"
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. An empty base uses the public endpoint.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultScheduleAPIBase
	}
	return &Client{baseURL: baseURL, http: api.NewHTTPClient(timeout)}
}

// Cities fetches every location the provider knows. A missing list decodes
// as empty.
func (c *Client) Cities(ctx context.Context) ([]models.City, error) {
	var env envelope
	if _, err := api.GetJSON(ctx, c.http, api.JoinURL(c.baseURL, "/sholat/kota/semua"), &env); err != nil {
		return nil, apperrors.Unavailable("fetch cities", err)
	}
	if !env.hasData() {
		return []models.City{}, nil
	}

	var cities []models.City
	if err := json.Unmarshal(env.Data, &cities); err != nil {
		return nil, apperrors.Unavailable("fetch cities", fmt.Errorf("unexpected city list: %w", err))
	}
	return cities, nil
}

// Schedule fetches the schedule for cityID on day's calendar date. The
// returned schedule always carries day's date as YYYY-MM-DD.
func (c *Client) Schedule(ctx context.Context, cityID string, day time.Time) (models.PrayerSchedule, error) {
	cityID = strings.TrimSpace(cityID)
	if cityID == "" {
		return models.PrayerSchedule{}, fmt.Errorf("city id is required")
	}

	path := fmt.Sprintf("/sholat/jadwal/%s/%04d/%02d/%02d", cityID, day.Year(), int(day.Month()), day.Day())
	var env envelope
	if _, err := api.GetJSON(ctx, c.http, api.JoinURL(c.baseURL, path), &env); err != nil {
		return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", err)
	}
	if !env.Status || !env.hasData() {
		if env.Message != "" {
			return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", errors.New(env.Message))
		}
		return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", ErrScheduleNotFound)
	}

	var data struct {
		Jadwal *models.PrayerSchedule `json:"jadwal"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", fmt.Errorf("unexpected schedule: %w", err))
	}
	if data.Jadwal == nil || data.Jadwal.IsZero() {
		return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", ErrScheduleNotFound)
	}

	s := *data.Jadwal
	s.Date = day.Format(constants.DateFormat)
	if err := s.Validate(); err != nil {
		return models.PrayerSchedule{}, apperrors.Unavailable("fetch schedule", err)
	}
	return s, nil
}

// RandomDua fetches a random supplication. The raw body is returned as well
// so callers can show responses the model does not understand.
func (c *Client) RandomDua(ctx context.Context) (*models.Dua, json.RawMessage, error) {
	var env envelope
	raw, err := api.GetJSON(ctx, c.http, api.JoinURL(c.baseURL, "/doa/acak"), &env)
	if err != nil {
		return nil, raw, fmt.Errorf("fetch dua: %w", err)
	}
	if !env.Status || !env.hasData() {
		return nil, raw, fmt.Errorf("fetch dua: no dua in response")
	}

	var dua models.Dua
	if err := json.Unmarshal(env.Data, &dua); err != nil {
		return nil, raw, fmt.Errorf("fetch dua: %w", err)
	}
	return &dua, raw, nil
}
