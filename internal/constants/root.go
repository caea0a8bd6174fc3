package constants

const (
	AppName            = "timeblock"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/timeblock/timeblock.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"
)
