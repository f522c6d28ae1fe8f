package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/waktu/internal/clock"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/notifier"
)

type recorder struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (r *recorder) Notify(_ context.Context, n notifier.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recorder) Available(context.Context) error { return nil }

var wib = time.FixedZone("WIB", 7*60*60)

func jakarta() models.PrayerSchedule {
	return models.PrayerSchedule{
		Date:    "2025-03-10",
		Imsak:   "04:30",
		Subuh:   "04:40",
		Dzuhur:  "12:00",
		Ashar:   "15:15",
		Maghrib: "18:00",
		Isya:    "19:10",
	}
}

func newTestScheduler(h, m int) (*Scheduler, *clock.Fake, *recorder) {
	c := clock.NewFake(time.Date(2025, 3, 10, h, m, 0, 0, wib))
	r := &recorder{}
	return New(c, r, wib), c, r
}

func TestScheduleTwoOffsetsEveryPrayer(t *testing.T) {
	s, _, _ := newTestScheduler(3, 0)

	got := s.Schedule(jakarta(), "KOTA JAKARTA", []int{5, 15}, "id")
	if got != 18 {
		t.Fatalf("Schedule() = %d, want 18", got)
	}

	perPrayer := map[models.PrayerKey]int{}
	for _, task := range s.Pending() {
		perPrayer[task.Prayer]++
	}
	for _, key := range models.AllPrayerKeys() {
		if perPrayer[key] != 3 {
			t.Errorf("%s has %d tasks, want 3", key, perPrayer[key])
		}
	}
}

func TestScheduleAllPast(t *testing.T) {
	s, _, _ := newTestScheduler(23, 0)
	if got := s.Schedule(jakarta(), "KOTA JAKARTA", []int{5, 15}, "id"); got != 0 {
		t.Errorf("Schedule() = %d, want 0", got)
	}
	if len(s.Pending()) != 0 {
		t.Errorf("Pending() = %d tasks", len(s.Pending()))
	}
}

func TestScheduleSkipsPastOffsetKeepsAtTime(t *testing.T) {
	s, _, _ := newTestScheduler(17, 55)

	got := s.Schedule(jakarta(), "KOTA JAKARTA", []int{10}, "id")
	if got != 3 {
		t.Fatalf("Schedule() = %d, want 3", got)
	}
	pending := s.Pending()
	wantTags := []string{"prayer-maghrib-now", "prayer-isya-10min", "prayer-isya-now"}
	for i, tag := range wantTags {
		if pending[i].Tag != tag {
			t.Errorf("pending[%d] = %s, want %s", i, pending[i].Tag, tag)
		}
	}
}

func TestScheduleIgnoresInvalidAndDuplicateOffsets(t *testing.T) {
	s, _, _ := newTestScheduler(3, 0)
	if got := s.Schedule(jakarta(), "KOTA JAKARTA", []int{10, 10, 0, -5}, "id"); got != 12 {
		t.Errorf("Schedule() = %d, want 12", got)
	}
	if got := s.Schedule(jakarta(), "KOTA JAKARTA", nil, "id"); got != 6 {
		t.Errorf("Schedule() without offsets = %d, want 6", got)
	}
}

func TestRescheduleCancelsPrevious(t *testing.T) {
	s, c, r := newTestScheduler(3, 0)

	s.Schedule(jakarta(), "KOTA JAKARTA", []int{10}, "id")
	surabaya := jakarta()
	surabaya.Maghrib = "17:30"
	s.Schedule(surabaya, "KOTA SURABAYA", []int{10}, "id")

	if got := len(s.Pending()); got != 12 {
		t.Fatalf("Pending() = %d, want 12", got)
	}
	if got := c.Waiting(); got != 12 {
		t.Errorf("clock has %d live timers, want 12", got)
	}

	c.Advance(24 * time.Hour)
	for _, n := range r.sent {
		if !strings.Contains(n.Body, "KOTA SURABAYA") {
			t.Errorf("notification from cancelled schedule delivered: %q", n.Body)
		}
	}
	if len(r.sent) != 12 {
		t.Errorf("delivered %d, want 12", len(r.sent))
	}
}

func TestFireDeliversAndRemoves(t *testing.T) {
	s, c, r := newTestScheduler(17, 0)
	if got := s.Schedule(jakarta(), "KOTA JAKARTA", []int{10}, "id"); got != 4 {
		t.Fatalf("Schedule() = %d, want 4", got)
	}

	c.Advance(50 * time.Minute)

	if len(r.sent) != 1 {
		t.Fatalf("delivered %d, want 1", len(r.sent))
	}
	n := r.sent[0]
	if n.Tag != "prayer-maghrib-10min" {
		t.Errorf("Tag = %q", n.Tag)
	}
	if n.Title != "🕌 Maghrib Akan Tiba" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Body != "Waktu Maghrib di KOTA JAKARTA 10 menit lagi (18:00)" {
		t.Errorf("Body = %q", n.Body)
	}
	if !n.Renotify {
		t.Error("Renotify = false")
	}
	if len(s.Pending()) != 3 {
		t.Errorf("Pending() = %d, want 3", len(s.Pending()))
	}
}

func TestCancelAll(t *testing.T) {
	s, c, r := newTestScheduler(3, 0)
	s.Schedule(jakarta(), "KOTA JAKARTA", []int{10}, "id")

	if got := s.CancelAll(); got != 12 {
		t.Errorf("CancelAll() = %d, want 12", got)
	}
	c.Advance(24 * time.Hour)
	if len(r.sent) != 0 {
		t.Errorf("delivered %d after CancelAll", len(r.sent))
	}
}

func TestNowNotificationLanguages(t *testing.T) {
	id := NowNotification(models.PrayerIsya, "KOTA BANDUNG", "id")
	if id.Title != "🕌 Waktu Isya" || id.Body != "Sudah masuk waktu Isya di KOTA BANDUNG" {
		t.Errorf("id = %+v", id)
	}
	en := NowNotification(models.PrayerIsya, "KOTA BANDUNG", "en")
	if en.Title != "🕌 Time for Isya" || en.Tag != "prayer-isya-now" {
		t.Errorf("en = %+v", en)
	}
}
