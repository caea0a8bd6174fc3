package models

// ScheduleStatus classifies the outcome of a scheduling call. Failures are
// expected business outcomes, so they travel as statuses rather than errors.
type ScheduleStatus string

const (
	// StatusSuccess means every requested minute was placed.
	StatusSuccess ScheduleStatus = "success"
	// StatusInvalidInput means the task is missing a due date or a valid
	// estimated duration.
	StatusInvalidInput ScheduleStatus = "invalid-input"
	// StatusNoMatchingWindows means the task's allowed-window filter excludes
	// every configured window.
	StatusNoMatchingWindows ScheduleStatus = "no-matching-windows"
	// StatusOverdue means the due date passed before scheduling began.
	StatusOverdue ScheduleStatus = "overdue"
	// StatusPartiallyScheduled means some but not all minutes were placed.
	StatusPartiallyScheduled ScheduleStatus = "partially-scheduled"
)

// TaskScheduleResult is what a scheduling call hands back to the caller.
// Success is true only when all requested minutes were placed; a partial
// placement carries the exact remainder in UnscheduledMinutes.
type TaskScheduleResult struct {
	Success            bool            `json:"success"`
	Status             ScheduleStatus  `json:"status"`
	Message            string          `json:"message"`
	TimeBlocks         []TimeBlockInfo `json:"time_blocks"`
	Overdue            bool            `json:"overdue"`
	UnscheduledMinutes int             `json:"unscheduled_minutes"`
}
