package quran

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/waktu/internal/cli"
	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/quran"
	"github.com/julianstephens/waktu/internal/storage/sqlite"
)

type stubQuran struct {
	surahs []models.Surah
	calls  int
}

func (s *stubQuran) ListSurahs(context.Context) ([]models.Surah, error) {
	return s.surahs, nil
}

func (s *stubQuran) Surah(_ context.Context, n int) (models.Surah, error) {
	s.calls++
	for _, sr := range s.surahs {
		if sr.Number == n {
			return sr, nil
		}
	}
	return models.Surah{}, fmt.Errorf("surah %d not found", n)
}

func (s *stubQuran) Ayah(_ context.Context, n, ayah int) (models.Verse, error) {
	sr, err := s.Surah(context.Background(), n)
	if err != nil {
		return models.Verse{}, err
	}
	for _, v := range sr.Verses {
		if v.Number == ayah {
			v.Surah = &sr
			return v, nil
		}
	}
	return models.Verse{}, errors.New("verse not found")
}

func (s *stubQuran) Juz(_ context.Context, n int) (models.Juz, error) {
	return models.Juz{Number: n, StartInfo: "al-fatihah/1", EndInfo: "al-baqarah/141", TotalVerses: 148}, nil
}

func (s *stubQuran) RandomAyah(context.Context) (models.Verse, error) {
	sr := s.surahs[0]
	v := sr.Verses[0]
	v.Surah = &sr
	return v, nil
}

func (s *stubQuran) SearchSurahs(_ context.Context, q string) ([]models.Surah, error) {
	var out []models.Surah
	for _, sr := range s.surahs {
		if strings.Contains(strings.ToLower(sr.Title()), strings.ToLower(q)) {
			out = append(out, sr)
		}
	}
	return out, nil
}

func testSurahs() []models.Surah {
	return []models.Surah{
		{
			Number:          1,
			Name:            "الفاتحة",
			Transliteration: models.Text{"en": "Al-Fatihah"},
			Translation:     models.Text{"en": "The Opening", "id": "Pembukaan"},
			Revelation:      models.Text{"en": "Meccan", "id": "Makkiyyah"},
			VersesCount:     2,
			Verses: []models.Verse{
				{Number: 1, Arabic: "بِسْمِ اللَّهِ", Translation: models.Text{"en": "In the name of Allah", "id": "Dengan nama Allah"}},
				{Number: 2, Arabic: "الْحَمْدُ لِلَّهِ", Translation: models.Text{"en": "All praise is for Allah", "id": "Segala puji bagi Allah"}},
			},
		},
		{
			Number:          112,
			Name:            "الإخلاص",
			Transliteration: models.Text{"en": "Al-Ikhlas"},
			Translation:     models.Text{"en": "Sincerity", "id": "Ikhlas"},
			Revelation:      models.Text{"en": "Meccan", "id": "Makkiyyah"},
			VersesCount:     1,
			Verses: []models.Verse{
				{Number: 1, Arabic: "قُلْ هُوَ اللَّهُ أَحَدٌ", Translation: models.Text{"en": "Say, He is Allah, the One", "id": "Katakanlah, Dialah Allah, Yang Maha Esa"}},
			},
		},
	}
}

func setupTestCtx(t *testing.T) (*cli.Context, *bytes.Buffer, *stubQuran) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	stub := &stubQuran{surahs: testSurahs()}
	var out bytes.Buffer
	ctx := &cli.Context{
		Store:    store,
		Out:      &out,
		Clock:    clock.NewFake(time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)),
		QuranAPI: stub,
	}
	return ctx, &out, stub
}

func TestSurahListCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	cmd := &SurahListCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Al-Fatihah") || !strings.Contains(got, "Al-Ikhlas") {
		t.Errorf("expected both surahs listed, got %q", got)
	}
	// Default language is Indonesian.
	if !strings.Contains(got, "Pembukaan") {
		t.Errorf("expected Indonesian translation, got %q", got)
	}
}

func TestSurahCmd_RecordsRecent(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	cmd := &SurahCmd{Number: 112}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Katakanlah") {
		t.Errorf("expected verse translation, got %q", out.String())
	}

	recent, err := ctx.Store.GetRecentReadings()
	if err != nil {
		t.Fatalf("GetRecentReadings failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Number != 112 {
		t.Fatalf("expected surah 112 in recent readings, got %+v", recent)
	}

	out.Reset()
	if err := (&RecentCmd{}).Run(ctx); err != nil {
		t.Fatalf("RecentCmd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Al-Ikhlas") || !strings.Contains(out.String(), "just now") {
		t.Errorf("unexpected recent output: %q", out.String())
	}
}

func TestSurahCmd_RawWithoutResponse(t *testing.T) {
	ctx, _, _ := setupTestCtx(t)

	cmd := &SurahCmd{Number: 1, Raw: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error when no raw response is available")
	}
}

func TestAyahCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	cmd := &AyahCmd{Surah: 1, Ayah: 2}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Al-Fatihah 1:2") {
		t.Errorf("expected verse reference, got %q", got)
	}
	if !strings.Contains(got, "Segala puji bagi Allah") {
		t.Errorf("expected translation, got %q", got)
	}
}

func TestAyahCmd_EnglishSetting(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	settings.Language = "en"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	if err := (&AyahCmd{Surah: 1, Ayah: 1}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "In the name of Allah") {
		t.Errorf("expected English translation, got %q", out.String())
	}
}

func TestJuzCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&JuzCmd{Number: 1}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Juz 1: al-fatihah/1 to al-baqarah/141 (148 verses)") {
		t.Errorf("unexpected juz header: %q", out.String())
	}
}

func TestRandomCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&RandomCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Al-Fatihah 1:1") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestSearchCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&SearchCmd{Term: "ikhlas"}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Al-Ikhlas") || strings.Contains(out.String(), "Al-Fatihah") {
		t.Errorf("unexpected matches: %q", out.String())
	}

	out.Reset()
	if err := (&SearchCmd{Term: "nothing"}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "No surahs match") {
		t.Errorf("expected no-match message, got %q", out.String())
	}
}

func TestSearchCmd_Number(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&SearchCmd{Term: "1"}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Al-Fatihah") {
		t.Errorf("expected surah 1, got %q", out.String())
	}

	err := (&SearchCmd{Term: "200"}).Run(ctx)
	if !errors.Is(err, quran.ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestBookmarkCommands(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&BookmarkAddCmd{Ref: "1:2"}).Run(ctx); err != nil {
		t.Fatalf("add verse bookmark failed: %v", err)
	}
	if err := (&BookmarkAddCmd{Ref: "112"}).Run(ctx); err != nil {
		t.Fatalf("add surah bookmark failed: %v", err)
	}

	out.Reset()
	if err := (&BookmarkListCmd{Text: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Surahs:") || !strings.Contains(got, "  112") {
		t.Errorf("expected surah bookmark section, got %q", got)
	}
	if !strings.Contains(got, "Al-Fatihah 1:2") || !strings.Contains(got, "Segala puji bagi Allah") {
		t.Errorf("expected resolved verse bookmark, got %q", got)
	}

	if err := (&BookmarkRemoveCmd{Ref: "1:2"}).Run(ctx); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	bookmarks, err := ctx.Store.GetBookmarks()
	if err != nil {
		t.Fatalf("GetBookmarks failed: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Key() != "112" {
		t.Errorf("expected only 112 left, got %+v", bookmarks)
	}
}

func TestBookmarkToggleCmd(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	cmd := &BookmarkToggleCmd{Ref: "2:255"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Bookmarked 2:255") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Removed bookmark 2:255") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBookmarkAddCmd_Invalid(t *testing.T) {
	ctx, _, _ := setupTestCtx(t)

	for _, ref := range []string{"0", "115", "2:0", "abc"} {
		if err := (&BookmarkAddCmd{Ref: ref}).Run(ctx); err == nil {
			t.Errorf("expected error for %q", ref)
		}
	}
}

func TestBookmarkListCmd_Empty(t *testing.T) {
	ctx, out, _ := setupTestCtx(t)

	if err := (&BookmarkListCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "No bookmarks yet.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
