package models

// Settings represents the user's preferences
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether prayer notifications are scheduled
	NotifyOffsets        []int  `json:"notify_offsets"`        // minutes before each prayer, applied to all six
	Theme                string `json:"theme"`                 // "system", "light" or "dark"
	Language             string `json:"language"`              // "id" or "en"
	Timezone             string `json:"timezone"`              // fixed-offset zone: "wib", "wita" or "wit"
}
