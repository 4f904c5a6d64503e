package constants

import "time"

const (
	AppName            = "quitwise"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/quitwise/quitwise.db"
	Version            = "v0.3.0"

	// StateKey is the fixed backing-store key holding the whole state document.
	StateKey = "quitwise_data"

	// SchemaVersion is the version stamped on exported and persisted documents.
	SchemaVersion = 1

	// DateFormat is the calendar-day key format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is used for every event, goal and unlock timestamp.
	TimestampFormat = time.RFC3339

	// QuoteSeedFormat renders the day used to pick the daily quote, e.g. "Wed Oct 14 2026".
	QuoteSeedFormat = "Mon Jan 02 2006"

	// Statistics
	StreakCapDays            = 365
	BaselineCigarettesPerDay = 20
	DefaultStatsWindowDays   = 30
	MaxStatsWindowDays       = 3650

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "quitwise-"
	BackupFileSuffix = ".json"

	// Notify constants
	NotifierLockfileName   = "quitwise-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.quitwise"
	TrayAppExecutable      = "quitwise-tray"
)
