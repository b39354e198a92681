package models

// Settings represents application-wide settings
type Settings struct {
	Timezone             string `json:"timezone"`              // IANA timezone name, or "Local" for system timezone
	NotificationsEnabled bool   `json:"notifications_enabled"` // master switch for reminder delivery
	SplitterBaseURL      string `json:"splitter_base_url"`     // override for the task-splitting endpoint
}
