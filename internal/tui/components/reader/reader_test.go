package reader

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/waktu/internal/models"
)

func testSurahs() []models.Surah {
	return []models.Surah{
		{Number: 1, Name: "الفاتحة", Transliteration: models.Text{"en": "Al-Fatihah"}, Translation: models.Text{"en": "The Opening"}, VersesCount: 7},
		{Number: 2, Name: "البقرة", Transliteration: models.Text{"en": "Al-Baqarah"}, Translation: models.Text{"en": "The Cow"}, VersesCount: 286},
		{Number: 112, Name: "الإخلاص", Transliteration: models.Text{"en": "Al-Ikhlas"}, Translation: models.Text{"en": "Sincerity"}, VersesCount: 4},
	}
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestLiveFilter(t *testing.T) {
	m := New()
	m.SetSurahs(testSurahs())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	if !m.Typing() {
		t.Fatal("expected search input focused")
	}
	m = typeText(m, "ikh")

	listed := m.Listed()
	if len(listed) != 1 || listed[0].Number != 112 {
		t.Fatalf("expected only Al-Ikhlas, got %+v", listed)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected lookup command")
	}
	msg, ok := cmd().(LookupMsg)
	if !ok || msg.Term != "ikh" {
		t.Errorf("expected LookupMsg{ikh}, got %#v", cmd())
	}
}

func TestEscClearsFilter(t *testing.T) {
	m := New()
	m.SetSurahs(testSurahs())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	m = typeText(m, "zzz")
	if len(m.Listed()) != 0 {
		t.Fatalf("expected no matches, got %d", len(m.Listed()))
	}
	if !strings.Contains(m.View(), "No surahs match") {
		t.Error("expected empty-result message")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Typing() {
		t.Error("expected input blurred")
	}
	if len(m.Listed()) != 3 {
		t.Errorf("expected full list after esc, got %d", len(m.Listed()))
	}
}

func TestOpenAndBookmarkFromList(t *testing.T) {
	m := New()
	m.SetSurahs(testSurahs())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if open, ok := cmd().(OpenSurahMsg); !ok || open.Number != 2 {
		t.Errorf("expected OpenSurahMsg{2}, got %#v", cmd())
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	toggle, ok := cmd().(ToggleBookmarkMsg)
	if !ok || toggle.Bookmark.Key() != "2" {
		t.Errorf("expected bookmark toggle for surah 2, got %#v", cmd())
	}
}

func TestBookmarkMarks(t *testing.T) {
	m := New()
	m.SetSurahs(testSurahs())
	m.SetBookmarks([]models.Bookmark{models.SurahBookmark(112)})

	var marked string
	for _, line := range strings.Split(m.View(), "\n") {
		if strings.Contains(line, "★") {
			marked = line
		}
	}
	if !strings.Contains(marked, "Al-Ikhlas") {
		t.Errorf("expected Al-Ikhlas marked, got %q", marked)
	}
}

func TestReadingMode(t *testing.T) {
	m := New()
	m.SetSize(80, 30)
	m.SetLanguage("en")
	m.SetReading(models.Surah{
		Number:          112,
		Name:            "الإخلاص",
		Transliteration: models.Text{"en": "Al-Ikhlas"},
		VersesCount:     1,
		Verses: []models.Verse{
			{Number: 1, Arabic: "قُلْ هُوَ اللَّهُ أَحَدٌ", Translation: models.Text{"en": "Say, He is Allah, One", "id": "Katakanlah"}},
		},
	})

	if !m.Reading() {
		t.Fatal("expected reading mode")
	}
	view := m.View()
	if !strings.Contains(view, "Al-Ikhlas") {
		t.Errorf("expected surah title, got:\n%s", view)
	}
	if !strings.Contains(view, "Say, He is Allah") {
		t.Errorf("expected english translation, got:\n%s", view)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if toggle, ok := cmd().(ToggleBookmarkMsg); !ok || toggle.Bookmark.Key() != "112" {
		t.Errorf("expected bookmark toggle for surah 112, got %#v", cmd())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Reading() {
		t.Error("expected esc to close the reader")
	}
}
