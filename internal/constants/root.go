package constants

import "time"

const (
	AppName            = "moodlit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/moodlit/moodlit.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ConnectionEnvVar holds a PostgreSQL connection string when set
	ConnectionEnvVar = "MOODLIT_DB_CONNECTION"

	// KeyringConfigValue selects the PostgreSQL connection string stored in the OS keyring
	KeyringConfigValue = "keyring"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "moodlit-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifyQueueSize        = 16
	NotifyShutdownTimeout  = 2 * time.Second
	NotifierLockfileName   = "moodlit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.moodlit"
	TrayExecutablePrefix   = "moodlit-tray"
	SupportTitle           = "Support for you"

	// Window sizes offered by the statistics views
	WeekWindowDays  = 7
	MonthWindowDays = 30
	// MaxWindowDays caps windows requested by users and HTTP clients
	MaxWindowDays = 366

	// Server defaults
	DefaultServerAddr = "127.0.0.1:8787"
)

// DefaultSupportQuotes are sent, one at a time, when a bad mood is recorded.
var DefaultSupportQuotes = []string{
	"After a dark stretch there is always a bright one. Hold on!",
	"Even the darkest night ends with a sunrise.",
	"Don't lose heart! Tomorrow is a new day with new chances.",
	"Hard times make us stronger. You will get through this!",
	"Smile! You are wonderful, and everything will work out 💙",
	"Mistakes and rough days are just experience. It gets better from here!",
	"Let yourself rest today. You deserve to be taken care of.",
}
