package constants

const (
	// DefaultMinBlockMin is the fallback minimum block size when a task does
	// not declare a split-up chunk size.
	DefaultMinBlockMin = 30

	// MaxWindowLookaheadDays bounds the day-by-day search for the next valid
	// window occurrence. A window set that covers zero days of the week must
	// fail closed instead of looping.
	MaxWindowLookaheadDays = 7

	// UrgencyMax is the ceiling of the urgency scale.
	UrgencyMax = 100.0

	// UrgentThreshold is the cached-urgency score above which a task is
	// treated as urgent for slot ranking.
	UrgentThreshold = 80.0

	// LongTaskMinutes is the estimated duration above which a task prefers
	// the largest available slots.
	LongTaskMinutes = 120

	// BellCurvePeakPercent is where the deadline-proximity preference peaks:
	// 75% of the way from now to the due date.
	BellCurvePeakPercent = 75.0
)
