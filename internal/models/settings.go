package models

// Settings represents application-wide settings
type Settings struct {
	Timezone        string `json:"timezone"`          // IANA timezone name, or "Local" for system timezone
	DefaultBlockMin int    `json:"default_block_min"` // fallback minimum block size in minutes
	UrgencyStrategy string `json:"urgency_strategy"`  // "logarithmic" (default) or "linear"
	AutoSchedule    bool   `json:"auto_schedule"`     // default for newly created tasks
}
