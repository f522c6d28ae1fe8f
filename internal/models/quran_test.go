package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTextUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		lang string
		want string
	}{
		{"plain string", `"Makkiyyah"`, "en", "Makkiyyah"},
		{"keyed object", `{"id":"Pembukaan","en":"The Opening"}`, "en", "The Opening"},
		{"fallback language", `{"id":"Pembukaan"}`, "en", "Pembukaan"},
		{"nested short", `{"id":{"short":"ringkas","long":"panjang"}}`, "id", "ringkas"},
		{"number ignored", `42`, "en", ""},
		{"null", `null`, "en", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txt Text
			if err := json.Unmarshal([]byte(tt.data), &txt); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got := txt.Get(tt.lang); got != tt.want {
				t.Errorf("Get(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestSurahUnmarshalObjectName(t *testing.T) {
	data := `{
		"number": 1,
		"sequence": 5,
		"numberOfVerses": 7,
		"name": {
			"short": "الفاتحة",
			"long": "سُورَةُ ٱلْفَاتِحَةِ",
			"transliteration": {"en": "Al-Faatiha", "id": "Al-Fatihah"},
			"translation": {"en": "The Opening", "id": "Pembukaan"}
		},
		"revelation": {"arab": "مكة", "en": "Meccan", "id": "Makkiyyah"},
		"verses": [
			{
				"number": {"inQuran": 1, "inSurah": 1},
				"meta": {"juz": 1, "page": 1, "ruku": 1},
				"text": {"arab": "بِسْمِ اللَّهِ", "transliteration": {"en": "bismillaahir"}},
				"translation": {"en": "In the name of Allah", "id": "Dengan nama Allah"},
				"audio": {"primary": "https://example.test/1.mp3"}
			}
		]
	}`

	var s Surah
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Number != 1 || s.VersesCount != 7 {
		t.Errorf("unexpected number/verses: %d/%d", s.Number, s.VersesCount)
	}
	if s.ShortName != "الفاتحة" {
		t.Errorf("unexpected short name %q", s.ShortName)
	}
	if s.Title() != "Al-Faatiha" {
		t.Errorf("unexpected title %q", s.Title())
	}
	if s.Revelation.Get("en") != "Meccan" {
		t.Errorf("unexpected revelation %q", s.Revelation.Get("en"))
	}
	if len(s.Verses) != 1 {
		t.Fatalf("expected 1 verse, got %d", len(s.Verses))
	}
	v := s.Verses[0]
	if v.Number != 1 || v.NumberInQuran != 1 || v.Juz != 1 {
		t.Errorf("unexpected verse numbering: %+v", v)
	}
	if v.Arabic != "بِسْمِ اللَّهِ" || v.Transliteration != "bismillaahir" {
		t.Errorf("unexpected verse text: %q / %q", v.Arabic, v.Transliteration)
	}
	if v.AudioURL != "https://example.test/1.mp3" {
		t.Errorf("unexpected audio %q", v.AudioURL)
	}
	if len(s.Raw) == 0 {
		t.Error("expected raw payload kept")
	}
}

func TestSurahUnmarshalPlainShape(t *testing.T) {
	data := `{
		"number": "112",
		"name": "الإخلاص",
		"numberOfAyah": 4,
		"transliteration": "Al-Ikhlas",
		"translation": "Sincerity",
		"revelation": "Makkiyyah"
	}`

	var s Surah
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Number != 112 || s.VersesCount != 4 {
		t.Errorf("unexpected number/verses: %d/%d", s.Number, s.VersesCount)
	}
	if s.Name != "الإخلاص" || s.Title() != "Al-Ikhlas" {
		t.Errorf("unexpected names: %q / %q", s.Name, s.Title())
	}
	if s.Translation.Get("en") != "Sincerity" {
		t.Errorf("unexpected translation %q", s.Translation.Get("en"))
	}
}

func TestSurahTitleFallback(t *testing.T) {
	if got := (Surah{Name: "الإخلاص"}).Title(); got != "الإخلاص" {
		t.Errorf("expected arabic name fallback, got %q", got)
	}
	if got := (Surah{}).Title(); got != "N/A" {
		t.Errorf("expected N/A, got %q", got)
	}
}

func TestJuzUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"juz field", `{"juz":30,"juzStartSurahNumber":78,"juzEndSurahNumber":114,"juzStartInfo":"An-Naba - 1","juzEndInfo":"An-Nas - 6","totalVerses":564}`, 30},
		{"number field", `{"number":1,"verses":[{"number":{"inSurah":1}}]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var j Juz
			if err := json.Unmarshal([]byte(tt.data), &j); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if j.Number != tt.want {
				t.Errorf("expected juz %d, got %d", tt.want, j.Number)
			}
			if j.TotalVerses == 0 {
				t.Error("expected total verses to be set")
			}
		})
	}
}

func TestRecentFromSurah(t *testing.T) {
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	r := RecentFromSurah(Surah{Number: 36}, at)
	if r.Number != 36 || !r.ReadAt.Equal(at) {
		t.Errorf("unexpected recent reading: %+v", r)
	}
	if r.Name != "N/A" || r.Translation != "N/A" || r.Revelation != "N/A" {
		t.Errorf("expected N/A placeholders, got %+v", r)
	}
}
