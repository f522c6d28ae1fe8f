package prayers

import (
	"fmt"
	"io"
	"time"

	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/prayer"
)

func printSchedule(w io.Writer, city models.City, s models.PrayerSchedule, zone string, next models.NextPrayer, hasNext bool) {
	fmt.Fprintf(w, "%s · %s (%s)\n", city.Name, s.Date, zone)
	if s.Tanggal != "" {
		fmt.Fprintf(w, "%s\n", s.Tanggal)
	}
	fmt.Fprintln(w)
	for _, k := range models.AllPrayerKeys() {
		t := s.Time(k)
		if t == "" {
			t = "--:--"
		}
		marker := "  "
		if hasNext && !next.Tomorrow && next.Key == k {
			marker = "▶ "
		}
		fmt.Fprintf(w, "%s%s %-8s %s\n", marker, k.Emoji(), k.Name(), t)
	}
}

func printNext(w io.Writer, next models.NextPrayer, countdown time.Duration) {
	when := next.Time
	if next.Tomorrow {
		when += " (tomorrow)"
	}
	fmt.Fprintf(w, "Next: %s %s %s in %s\n", next.Emoji, next.Name, when, prayer.FormatCountdown(countdown))
}
