package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Text is a value the Quran provider sends either as a plain string or as an
// object keyed by language code. A plain string is stored under "".
type Text map[string]string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		(*t)[""] = s
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		// Numbers, arrays: nothing usable as text.
		return nil
	}
	for k, v := range obj {
		var str string
		if err := json.Unmarshal(v, &str); err == nil {
			(*t)[k] = str
			continue
		}
		// Nested {short, long} shapes such as verse tafsir.
		var nested struct {
			Short string `json:"short"`
			Long  string `json:"long"`
		}
		if err := json.Unmarshal(v, &nested); err == nil {
			if nested.Short != "" {
				(*t)[k] = nested.Short
			} else if nested.Long != "" {
				(*t)[k] = nested.Long
			}
		}
	}
	return nil
}

// Get returns the first non-empty value among langs, then the plain-string
// value, then any value at all.
func (t Text) Get(langs ...string) string {
	for _, l := range langs {
		if v := t[l]; v != "" {
			return v
		}
	}
	if v := t[""]; v != "" {
		return v
	}
	for _, v := range t {
		if v != "" {
			return v
		}
	}
	return ""
}

// Surah is a chapter, with verses when fetched individually.
type Surah struct {
	Number          int             `json:"number"`
	Name            string          `json:"name"`
	ShortName       string          `json:"short_name,omitempty"`
	Transliteration Text            `json:"transliteration"`
	Translation     Text            `json:"translation"`
	VersesCount     int             `json:"verses_count"`
	Revelation      Text            `json:"revelation"`
	Tafsir          Text            `json:"tafsir,omitempty"`
	Verses          []Verse         `json:"verses,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

func (s *Surah) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number          json.RawMessage `json:"number"`
		NumberOfVerses  int             `json:"numberOfVerses"`
		NumberOfAyah    int             `json:"numberOfAyah"`
		Name            json.RawMessage `json:"name"`
		Transliteration Text            `json:"transliteration"`
		Translation     Text            `json:"translation"`
		Revelation      Text            `json:"revelation"`
		Tafsir          Text            `json:"tafsir"`
		Verses          []Verse         `json:"verses"`
		Ayah            []Verse         `json:"ayah"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Surah{
		Number:          intFrom(raw.Number, "inQuran"),
		Transliteration: raw.Transliteration,
		Translation:     raw.Translation,
		VersesCount:     raw.NumberOfVerses,
		Revelation:      raw.Revelation,
		Tafsir:          raw.Tafsir,
		Verses:          raw.Verses,
		Raw:             append(json.RawMessage(nil), data...),
	}
	if s.VersesCount == 0 {
		s.VersesCount = raw.NumberOfAyah
	}
	if len(s.Verses) == 0 {
		s.Verses = raw.Ayah
	}

	var plain string
	if err := json.Unmarshal(raw.Name, &plain); err == nil {
		s.Name = plain
	} else {
		var name struct {
			Short           string `json:"short"`
			Long            string `json:"long"`
			Transliteration Text   `json:"transliteration"`
			Translation     Text   `json:"translation"`
		}
		if err := json.Unmarshal(raw.Name, &name); err == nil {
			s.Name = name.Long
			s.ShortName = name.Short
			if len(name.Transliteration) > 0 {
				s.Transliteration = name.Transliteration
			}
			if len(name.Translation) > 0 {
				s.Translation = name.Translation
			}
		}
	}

	if s.VersesCount == 0 && len(s.Verses) > 0 {
		s.VersesCount = len(s.Verses)
	}
	return nil
}

// Title returns the transliterated name, falling back to the Arabic name.
func (s Surah) Title() string {
	if t := s.Transliteration.Get("en", "id"); t != "" {
		return t
	}
	if s.Name != "" {
		return s.Name
	}
	return "N/A"
}

// Verse is a single ayah. Surah is set when the provider embeds it, as in
// single-verse and random responses.
type Verse struct {
	Number          int             `json:"number"`
	NumberInQuran   int             `json:"number_in_quran,omitempty"`
	Juz             int             `json:"juz,omitempty"`
	Page            int             `json:"page,omitempty"`
	Ruku            int             `json:"ruku,omitempty"`
	Arabic          string          `json:"arabic"`
	Transliteration string          `json:"transliteration,omitempty"`
	Translation     Text            `json:"translation"`
	AudioURL        string          `json:"audio_url,omitempty"`
	Surah           *Surah          `json:"surah,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

func (v *Verse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Number      json.RawMessage `json:"number"`
		VerseNumber json.RawMessage `json:"verse_number"`
		Meta        struct {
			Juz  int `json:"juz"`
			Page int `json:"page"`
			Ruku int `json:"ruku"`
		} `json:"meta"`
		Juz         int             `json:"juz"`
		Ruku        int             `json:"ruku"`
		Text        json.RawMessage `json:"text"`
		Arab        string          `json:"arab"`
		Translation Text            `json:"translation"`
		Audio       json.RawMessage `json:"audio"`
		Surah       *Surah          `json:"surah"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*v = Verse{
		Number:        intFrom(raw.Number, "inSurah"),
		NumberInQuran: intFrom(raw.Number, "inQuran"),
		Juz:           raw.Meta.Juz,
		Page:          raw.Meta.Page,
		Ruku:          raw.Meta.Ruku,
		Arabic:        raw.Arab,
		Translation:   raw.Translation,
		Surah:         raw.Surah,
		Raw:           append(json.RawMessage(nil), data...),
	}
	if v.Number == 0 {
		v.Number = intFrom(raw.VerseNumber)
	}
	if v.Juz == 0 {
		v.Juz = raw.Juz
	}
	if v.Ruku == 0 {
		v.Ruku = raw.Ruku
	}

	var plain string
	if err := json.Unmarshal(raw.Text, &plain); err == nil {
		if v.Arabic == "" {
			v.Arabic = plain
		}
	} else {
		var text struct {
			Arab            string `json:"arab"`
			Transliteration Text   `json:"transliteration"`
		}
		if err := json.Unmarshal(raw.Text, &text); err == nil {
			if v.Arabic == "" {
				v.Arabic = text.Arab
			}
			v.Transliteration = text.Transliteration.Get("en")
		}
	}

	var audio struct {
		Primary string `json:"primary"`
	}
	if err := json.Unmarshal(raw.Audio, &audio); err == nil {
		v.AudioURL = audio.Primary
	} else {
		_ = json.Unmarshal(raw.Audio, &v.AudioURL)
	}
	return nil
}

// Juz is one of the thirty reading divisions.
type Juz struct {
	Number      int             `json:"number"`
	StartSurah  int             `json:"start_surah"`
	EndSurah    int             `json:"end_surah"`
	StartInfo   string          `json:"start_info"`
	EndInfo     string          `json:"end_info"`
	TotalVerses int             `json:"total_verses"`
	Verses      []Verse         `json:"verses,omitempty"`
	Raw         json.RawMessage `json:"-"`
}

func (j *Juz) UnmarshalJSON(data []byte) error {
	var raw struct {
		Juz                 int     `json:"juz"`
		Number              int     `json:"number"`
		JuzStartSurahNumber int     `json:"juzStartSurahNumber"`
		JuzEndSurahNumber   int     `json:"juzEndSurahNumber"`
		JuzStartInfo        string  `json:"juzStartInfo"`
		JuzEndInfo          string  `json:"juzEndInfo"`
		TotalVerses         int     `json:"totalVerses"`
		Verses              []Verse `json:"verses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*j = Juz{
		Number:      raw.Juz,
		StartSurah:  raw.JuzStartSurahNumber,
		EndSurah:    raw.JuzEndSurahNumber,
		StartInfo:   raw.JuzStartInfo,
		EndInfo:     raw.JuzEndInfo,
		TotalVerses: raw.TotalVerses,
		Verses:      raw.Verses,
		Raw:         append(json.RawMessage(nil), data...),
	}
	if j.Number == 0 {
		j.Number = raw.Number
	}
	if j.TotalVerses == 0 {
		j.TotalVerses = len(j.Verses)
	}
	return nil
}

// RecentReading is a surah the user opened recently.
type RecentReading struct {
	Number          int       `json:"number"`
	Name            string    `json:"name"`
	Transliteration string    `json:"transliteration"`
	Translation     string    `json:"translation"`
	VersesCount     int       `json:"verses_count"`
	Revelation      string    `json:"revelation"`
	ReadAt          time.Time `json:"read_at"`
}

// RecentFromSurah builds a recent-reading entry for s.
func RecentFromSurah(s Surah, at time.Time) RecentReading {
	name := s.Name
	if name == "" {
		name = "N/A"
	}
	translation := s.Translation.Get("en", "id")
	if translation == "" {
		translation = "N/A"
	}
	revelation := s.Revelation.Get("en", "id")
	if revelation == "" {
		revelation = "N/A"
	}
	return RecentReading{
		Number:          s.Number,
		Name:            name,
		Transliteration: s.Title(),
		Translation:     translation,
		VersesCount:     s.VersesCount,
		Revelation:      revelation,
		ReadAt:          at,
	}
}

// intFrom reads an integer sent as a number, a numeric string, or an object
// holding the value under one of keys.
func intFrom(raw json.RawMessage, keys ...string) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
		return 0
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0
	}
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return intFrom(v)
		}
	}
	return 0
}
