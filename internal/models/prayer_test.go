package models

import (
	"encoding/json"
	"testing"
)

func TestParsePrayerKey(t *testing.T) {
	tests := []struct {
		input   string
		want    PrayerKey
		wantErr bool
	}{
		{"maghrib", PrayerMaghrib, false},
		{" Subuh ", PrayerSubuh, false},
		{"ISYA", PrayerIsya, false},
		{"fajr", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePrayerKey(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrayerKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrayerKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAllPrayerKeysOrder(t *testing.T) {
	keys := AllPrayerKeys()
	want := []PrayerKey{PrayerImsak, PrayerSubuh, PrayerDzuhur, PrayerAshar, PrayerMaghrib, PrayerIsya}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d: expected %s, got %s", i, want[i], keys[i])
		}
	}

	// Callers get a copy.
	keys[0] = "changed"
	if AllPrayerKeys()[0] != PrayerImsak {
		t.Error("AllPrayerKeys exposed its backing slice")
	}
}

func TestPrayerScheduleUnmarshal(t *testing.T) {
	data := `{"tanggal":"Senin, 10/03/2025","imsak":"04:30","subuh":"04:40","terbit":"05:55","dzuhur":"12:00","ashar":"15:15","maghrib":"18:00","isya":"19:10","date":"2025-03-10"}`

	var s PrayerSchedule
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Date != "2025-03-10" {
		t.Errorf("expected date 2025-03-10, got %q", s.Date)
	}
	if s.Tanggal != "Senin, 10/03/2025" {
		t.Errorf("expected display date kept, got %q", s.Tanggal)
	}
	if s.Time(PrayerMaghrib) != "18:00" {
		t.Errorf("expected maghrib 18:00, got %q", s.Time(PrayerMaghrib))
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid schedule, got %v", err)
	}
}

func TestPrayerScheduleDateFromTanggal(t *testing.T) {
	var s PrayerSchedule
	if err := json.Unmarshal([]byte(`{"tanggal":"2025-03-10","subuh":"04:40"}`), &s); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if s.Date != "2025-03-10" {
		t.Errorf("expected date taken from tanggal, got %q", s.Date)
	}
}

func TestPrayerScheduleValidate(t *testing.T) {
	base := PrayerSchedule{
		Date:    "2025-03-10",
		Imsak:   "04:30",
		Subuh:   "04:40",
		Dzuhur:  "12:00",
		Ashar:   "15:15",
		Maghrib: "18:00",
		Isya:    "19:10",
	}

	tests := []struct {
		name    string
		mutate  func(*PrayerSchedule)
		wantErr bool
	}{
		{"valid", func(*PrayerSchedule) {}, false},
		{"blank time allowed", func(s *PrayerSchedule) { s.Imsak = "" }, false},
		{"bad date", func(s *PrayerSchedule) { s.Date = "10-03-2025" }, true},
		{"bad time", func(s *PrayerSchedule) { s.Ashar = "3pm" }, true},
		{"hour out of range", func(s *PrayerSchedule) { s.Isya = "24:10" }, true},
		{"out of order", func(s *PrayerSchedule) { s.Isya = "17:00" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPrayerScheduleIsZero(t *testing.T) {
	if !(PrayerSchedule{Date: "2025-03-10"}).IsZero() {
		t.Error("expected schedule without times to be zero")
	}
	if (PrayerSchedule{Isya: "19:10"}).IsZero() {
		t.Error("expected schedule with a time to be non-zero")
	}
}
