package constants

const (
	// General Settings
	SettingNotificationsEnabled = "notifications_enabled"
	SettingNotifyOffsets        = "notify_offsets"
	SettingTheme                = "theme"
	SettingLanguage             = "language"
	SettingTimezone             = "timezone"

	// KV keys, mirroring the browser storage layout
	KeyCachedCities     = "cachedCities"
	KeyCitiesCacheTime  = "citiesCacheTime"
	KeyLastSelectedCity = "lastSelectedCity"
	KeyRecentReadings   = "recentReadings"

	// Theme values
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"

	// Language values
	LanguageIndonesian = "id"
	LanguageEnglish    = "en"

	// Timezone values (fixed offsets)
	TimezoneWIB  = "wib"
	TimezoneWITA = "wita"
	TimezoneWIT  = "wit"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultNotifyOffset         = 10
	DefaultTheme                = ThemeSystem
	DefaultLanguage             = LanguageIndonesian
	DefaultTimezone             = TimezoneWIB
)
