package constants

const (
	// Setting keys
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTimezone             = "timezone"
	SettingDefaultWindowDays    = "default_window_days"
	SettingBucketWindow         = "bucket_window"
	SettingSupportQuotes        = "support_quotes"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultWindowDays           = WeekWindowDays
	DefaultBucketWindow         = "inclusive"
)
