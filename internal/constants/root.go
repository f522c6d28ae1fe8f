package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "waktu"
	DefaultConfigPath = "~/.config/waktu/waktu.db"
	Version           = "v0.1.0"

	// Provider endpoints
	DefaultScheduleAPIBase = "https://api.myquran.com/v2"
	DefaultQuranAPIBase    = "https://api.quran.gading.dev"
	DefaultHTTPTimeout     = 15 * time.Second

	// City cache
	CityCacheTTL         = 24 * time.Hour
	MaxCitySearchResults = 10

	// Quran library
	MaxRecentReadings = 5
	SurahCount        = 114
	JuzCount          = 30

	// Remote mirror
	MirrorBackendNone     = "none"
	MirrorBackendPostgres = "postgres"
	MirrorBackendRedis    = "redis"
	MirrorWriteTimeout    = 5 * time.Second
	RedisKeyPrefix        = "waktu:schedule"

	// Notify constants
	NotifierLockfileName   = "waktu-notifier.lock"
	NotificationDurationMs = 8000
	NotificationIcon       = "/favicon.ico"
	TrayAppIdentifier      = "com.julianstephens.waktu"
	TrayExecutablePrefix   = "waktu-tray"
	DefaultMQTTTopic       = "waktu/notifications"
	DefaultMQTTClientID    = "waktu-cli"
	DailyRefreshTime       = "00:05"

	// Notification delivery surfaces
	NotifyViaTray    = "tray"
	NotifyViaMQTT    = "mqtt"
	NotifyViaConsole = "console"
)

// Session states
const (
	StateNow SessionState = iota
	StateSchedule
	StateCities
	StateQuran
	StateSettings
	StateEditSettings
)
