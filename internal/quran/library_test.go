package quran

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/storage/sqlite"
)

type fakeSource struct {
	surahs  map[int]models.Surah
	calls   int
	search  []models.Surah
	queries []string
}

func (f *fakeSource) Surah(_ context.Context, n int) (models.Surah, error) {
	f.calls++
	s, ok := f.surahs[n]
	if !ok {
		return models.Surah{}, errors.New("not available")
	}
	return s, nil
}

func (f *fakeSource) SearchSurahs(_ context.Context, q string) ([]models.Surah, error) {
	f.queries = append(f.queries, q)
	return f.search, nil
}

func surah(n int, name string, verses ...int) models.Surah {
	s := models.Surah{
		Number:          n,
		Name:            name,
		Transliteration: models.Text{"en": name},
		VersesCount:     len(verses),
	}
	for _, v := range verses {
		s.Verses = append(s.Verses, models.Verse{Number: v, Arabic: "..."})
	}
	return s
}

func setupLibrary(t *testing.T) (*Library, *fakeSource, *clock.Fake) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "waktu.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	src := &fakeSource{surahs: map[int]models.Surah{
		1:   surah(1, "Al-Fatihah", 1, 2, 3, 4, 5, 6, 7),
		2:   surah(2, "Al-Baqarah", 1, 2, 255),
		112: surah(112, "Al-Ikhlas", 1, 2, 3, 4),
	}}
	fc := clock.NewFake(time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC))
	return NewLibrary(src, store, fc), src, fc
}

func TestPushRecent(t *testing.T) {
	r := func(n int) models.RecentReading { return models.RecentReading{Number: n} }

	tests := []struct {
		name string
		list []int
		push int
		want []int
	}{
		{"empty", nil, 1, []int{1}},
		{"new goes first", []int{2, 3}, 1, []int{1, 2, 3}},
		{"dedupe moves to front", []int{2, 1, 3}, 1, []int{1, 2, 3}},
		{"truncates to max", []int{2, 3, 4, 5, 6}, 1, []int{1, 2, 3, 4, 5}},
		{"dedupe at capacity", []int{2, 3, 4, 5, 6}, 6, []int{6, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list []models.RecentReading
			for _, n := range tt.list {
				list = append(list, r(n))
			}
			got := PushRecent(list, r(tt.push), 5)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d (%+v)", len(got), len(tt.want), got)
			}
			for i, n := range tt.want {
				if got[i].Number != n {
					t.Errorf("index %d = %d, want %d", i, got[i].Number, n)
				}
			}
		})
	}
}

func TestOpenSurahRecordsRecent(t *testing.T) {
	lib, _, fc := setupLibrary(t)
	ctx := context.Background()

	for _, n := range []int{1, 2, 112, 1} {
		if _, err := lib.OpenSurah(ctx, n); err != nil {
			t.Fatalf("OpenSurah(%d) error = %v", n, err)
		}
		fc.Advance(time.Minute)
	}

	recent, err := lib.Recent()
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	want := []int{1, 112, 2}
	if len(recent) != len(want) {
		t.Fatalf("recent = %+v", recent)
	}
	for i, n := range want {
		if recent[i].Number != n {
			t.Errorf("recent[%d] = %d, want %d", i, recent[i].Number, n)
		}
	}
	if recent[0].Transliteration != "Al-Fatihah" || recent[0].VersesCount != 7 {
		t.Errorf("unexpected recent entry %+v", recent[0])
	}
	if !recent[0].ReadAt.After(recent[1].ReadAt) {
		t.Errorf("expected most recent first: %v vs %v", recent[0].ReadAt, recent[1].ReadAt)
	}
}

func TestOpenSurahFailureLeavesRecentUntouched(t *testing.T) {
	lib, _, _ := setupLibrary(t)

	if _, err := lib.OpenSurah(context.Background(), 50); err == nil {
		t.Fatal("expected error")
	}
	recent, err := lib.Recent()
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 0 {
		t.Errorf("recent = %+v, want empty", recent)
	}
}

func TestToggleBookmark(t *testing.T) {
	lib, _, _ := setupLibrary(t)

	surahMark := models.SurahBookmark(2)
	verseMark := models.VerseBookmark(2, 255)

	on, err := lib.ToggleBookmark(surahMark)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v; want true", on, err)
	}
	on, err = lib.ToggleBookmark(verseMark)
	if err != nil || !on {
		t.Fatalf("verse toggle = %v, %v; want true", on, err)
	}

	all, err := lib.Bookmarks()
	if err != nil || len(all) != 2 {
		t.Fatalf("Bookmarks() = %+v, %v", all, err)
	}
	surahs, _ := lib.SurahBookmarks()
	verses, _ := lib.VerseBookmarks()
	if len(surahs) != 1 || len(verses) != 1 {
		t.Errorf("surah bookmarks = %+v, verse bookmarks = %+v", surahs, verses)
	}

	on, err = lib.ToggleBookmark(surahMark)
	if err != nil || on {
		t.Fatalf("second toggle = %v, %v; want false", on, err)
	}
	all, _ = lib.Bookmarks()
	if len(all) != 1 || all[0].Key() != "2:255" {
		t.Errorf("after removal = %+v", all)
	}
}

func TestToggleBookmarkValidates(t *testing.T) {
	lib, _, _ := setupLibrary(t)

	if _, err := lib.ToggleBookmark(models.SurahBookmark(115)); err == nil {
		t.Error("expected error for surah 115")
	}
	if _, err := lib.ToggleBookmark(models.VerseBookmark(1, 0)); err == nil {
		t.Error("expected error for verse 0")
	}
}

func TestResolveVerseBookmarks(t *testing.T) {
	lib, src, _ := setupLibrary(t)

	for _, b := range []models.Bookmark{
		models.VerseBookmark(2, 255),
		models.VerseBookmark(2, 1),
		models.VerseBookmark(1, 99),
		models.VerseBookmark(50, 1),
		models.SurahBookmark(112),
	} {
		if _, err := lib.ToggleBookmark(b); err != nil {
			t.Fatal(err)
		}
	}

	resolved, err := lib.ResolveVerseBookmarks(context.Background())
	if err != nil {
		t.Fatalf("ResolveVerseBookmarks() error = %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved = %+v, want two verses of surah 2", resolved)
	}
	for _, r := range resolved {
		if r.Bookmark.Surah != 2 || r.SurahTitle != "Al-Baqarah" {
			t.Errorf("unexpected resolved verse %+v", r)
		}
		if r.Verse.Number != r.Bookmark.Verse {
			t.Errorf("verse %d resolved for bookmark %s", r.Verse.Number, r.Bookmark.Key())
		}
	}
	// Surahs 1, 2 and 50 are each fetched once.
	if src.calls != 3 {
		t.Errorf("source calls = %d, want 3", src.calls)
	}
}

func TestLookup(t *testing.T) {
	lib, src, _ := setupLibrary(t)
	src.search = []models.Surah{surah(112, "Al-Ikhlas")}
	ctx := context.Background()

	res, err := lib.Lookup(ctx, " 112 ")
	if err != nil {
		t.Fatalf("Lookup(112) error = %v", err)
	}
	if res.Surah == nil || res.Surah.Number != 112 {
		t.Errorf("expected surah 112, got %+v", res)
	}

	for _, term := range []string{"0", "115", "-3"} {
		if _, err := lib.Lookup(ctx, term); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("Lookup(%q) error = %v, want ErrInvalidNumber", term, err)
		}
	}

	res, err = lib.Lookup(ctx, "ikhlas")
	if err != nil {
		t.Fatalf("Lookup(ikhlas) error = %v", err)
	}
	if res.Surah != nil || len(res.Matches) != 1 {
		t.Errorf("expected search matches, got %+v", res)
	}
	if len(src.queries) != 1 || src.queries[0] != "ikhlas" {
		t.Errorf("queries = %v", src.queries)
	}

	res, err = lib.Lookup(ctx, "  ")
	if err != nil || res.Surah != nil || res.Matches != nil {
		t.Errorf("blank lookup = %+v, %v", res, err)
	}
}

func TestReadAgo(t *testing.T) {
	now := time.Date(2024, 2, 5, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		r := models.RecentReading{ReadAt: now.Add(-tt.ago)}
		if got := ReadAgo(r, now); got != tt.want {
			t.Errorf("ReadAgo(%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
