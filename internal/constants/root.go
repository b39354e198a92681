package constants

import "time"

// RecurrenceType represents how often a task or routine recurs
type RecurrenceType string

const (
	AppName            = "routina"
	DefaultKeyringUser = "splitter-api-key"
	DefaultConfigPath  = "~/.config/routina/routina.db"
	Version            = "v0.3.0"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "routina-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.routina"

	// ReminderIDPrefix namespaces all trigger identifiers declared by this app.
	// Full identifiers take the form "routine_{routineID}_{dayLabel}".
	ReminderIDPrefix = "routine_"

	// Recurrence constants
	RecurrenceOnce    RecurrenceType = "once"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"

	// Splitter constants
	SplitterDefaultBaseURL = "https://api.routina.dev/v1/split"
	SplitterTimeout        = 30 * time.Second
)
