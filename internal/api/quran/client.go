// Package quran is the client for the Quran text provider.
package quran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/waktu/internal/api"
	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
)

// ErrEmptyResponse is returned when the provider answers without data.
var ErrEmptyResponse = errors.New("response has no data")

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. An empty base uses the public endpoint.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultQuranAPIBase
	}
	return &Client{baseURL: baseURL, http: api.NewHTTPClient(timeout)}
}

// ValidateSurah checks that n names one of the 114 surahs.
func ValidateSurah(n int) error {
	if n < 1 || n > constants.SurahCount {
		return fmt.Errorf("surah must be between 1 and %d, got %d", constants.SurahCount, n)
	}
	return nil
}

// ValidateJuz checks that n names one of the 30 juz.
func ValidateJuz(n int) error {
	if n < 1 || n > constants.JuzCount {
		return fmt.Errorf("juz must be between 1 and %d, got %d", constants.JuzCount, n)
	}
	return nil
}

// ListSurahs fetches the index of all surahs, without verses.
func (c *Client) ListSurahs(ctx context.Context) ([]models.Surah, error) {
	var surahs []models.Surah
	if err := c.get(ctx, "/surah", &surahs); err != nil {
		return nil, fmt.Errorf("list surahs: %w", err)
	}
	return surahs, nil
}

// Surah fetches surah n with its verses.
func (c *Client) Surah(ctx context.Context, n int) (models.Surah, error) {
	if err := ValidateSurah(n); err != nil {
		return models.Surah{}, err
	}
	var s models.Surah
	if err := c.get(ctx, "/surah/"+strconv.Itoa(n), &s); err != nil {
		return models.Surah{}, fmt.Errorf("fetch surah %d: %w", n, err)
	}
	if s.Number == 0 {
		s.Number = n
	}
	return s, nil
}

// Ayah fetches verse ayah of surah n.
func (c *Client) Ayah(ctx context.Context, n, ayah int) (models.Verse, error) {
	if err := ValidateSurah(n); err != nil {
		return models.Verse{}, err
	}
	if ayah < 1 {
		return models.Verse{}, fmt.Errorf("ayah must be at least 1, got %d", ayah)
	}
	var v models.Verse
	if err := c.get(ctx, fmt.Sprintf("/surah/%d/%d", n, ayah), &v); err != nil {
		return models.Verse{}, fmt.Errorf("fetch ayah %d:%d: %w", n, ayah, err)
	}
	if v.Number == 0 {
		v.Number = ayah
	}
	return v, nil
}

// Juz fetches juz n with all of its verses.
func (c *Client) Juz(ctx context.Context, n int) (models.Juz, error) {
	if err := ValidateJuz(n); err != nil {
		return models.Juz{}, err
	}
	var j models.Juz
	if err := c.get(ctx, "/juz/"+strconv.Itoa(n), &j); err != nil {
		return models.Juz{}, fmt.Errorf("fetch juz %d: %w", n, err)
	}
	if j.Number == 0 {
		j.Number = n
	}
	return j, nil
}

// RandomAyah fetches a random verse.
func (c *Client) RandomAyah(ctx context.Context) (models.Verse, error) {
	var v models.Verse
	if err := c.get(ctx, "/surah/random", &v); err != nil {
		return models.Verse{}, fmt.Errorf("fetch random ayah: %w", err)
	}
	return v, nil
}

// SearchSurahs asks the provider for surahs matching query, then keeps only
// those whose number, name, transliteration or translation contain it. An
// empty query returns nil.
func (c *Client) SearchSurahs(ctx context.Context, query string) ([]models.Surah, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	var surahs []models.Surah
	if err := c.get(ctx, "/surah?q="+url.QueryEscape(query), &surahs); err != nil {
		return nil, fmt.Errorf("search surahs: %w", err)
	}
	return FilterSurahs(surahs, query), nil
}

// FilterSurahs returns the surahs matching query, case-insensitively, in
// input order.
func FilterSurahs(surahs []models.Surah, query string) []models.Surah {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Surah
	for _, s := range surahs {
		if surahMatches(s, q) {
			out = append(out, s)
		}
	}
	return out
}

func surahMatches(s models.Surah, q string) bool {
	if strconv.Itoa(s.Number) == q {
		return true
	}
	fields := []string{s.Name, s.ShortName}
	for _, t := range []models.Text{s.Transliteration, s.Translation} {
		for _, v := range t {
			fields = append(fields, v)
		}
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	var env envelope
	if _, err := api.GetJSON(ctx, c.http, api.JoinURL(c.baseURL, path), &env); err != nil {
		return err
	}
	d := strings.TrimSpace(string(env.Data))
	if d == "" || d == "null" {
		if env.Message != "" {
			return fmt.Errorf("%w: %s", ErrEmptyResponse, env.Message)
		}
		return ErrEmptyResponse
	}
	return json.Unmarshal(env.Data, out)
}
