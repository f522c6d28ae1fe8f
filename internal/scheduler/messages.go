package scheduler

import (
	"fmt"

	"github.com/julianstephens/waktu/internal/constants"
	"github.com/julianstephens/waktu/internal/models"
	"github.com/julianstephens/waktu/internal/notifier"
)

// PreTag is the tag of the notification sent offset minutes before key.
func PreTag(key models.PrayerKey, offset int) string {
	return fmt.Sprintf("prayer-%s-%dmin", key, offset)
}

// NowTag is the tag of the notification sent at key's time.
func NowTag(key models.PrayerKey) string {
	return fmt.Sprintf("prayer-%s-now", key)
}

// PreNotification announces that key is offset minutes away in city.
func PreNotification(key models.PrayerKey, city string, offset int, hhmm, lang string) notifier.Notification {
	n := notifier.Notification{
		Icon:     constants.NotificationIcon,
		Tag:      PreTag(key, offset),
		Renotify: true,
	}
	if lang == constants.LanguageEnglish {
		n.Title = fmt.Sprintf("🕌 %s Is Approaching", key.Name())
		n.Body = fmt.Sprintf("%s in %s in %d minutes (%s)", key.Name(), city, offset, hhmm)
		return n
	}
	n.Title = fmt.Sprintf("🕌 %s Akan Tiba", key.Name())
	n.Body = fmt.Sprintf("Waktu %s di %s %d menit lagi (%s)", key.Name(), city, offset, hhmm)
	return n
}

// NowNotification announces that key has started in city.
func NowNotification(key models.PrayerKey, city, lang string) notifier.Notification {
	n := notifier.Notification{
		Icon:     constants.NotificationIcon,
		Tag:      NowTag(key),
		Renotify: true,
	}
	if lang == constants.LanguageEnglish {
		n.Title = fmt.Sprintf("🕌 Time for %s", key.Name())
		n.Body = fmt.Sprintf("It is now time for %s in %s", key.Name(), city)
		return n
	}
	n.Title = fmt.Sprintf("🕌 Waktu %s", key.Name())
	n.Body = fmt.Sprintf("Sudah masuk waktu %s di %s", key.Name(), city)
	return n
}
