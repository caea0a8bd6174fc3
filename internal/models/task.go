package models

import "time"

// TimeDefense describes how a task's placed blocks behave when another task
// wants the same time.
type TimeDefense string

const (
	// DefenseAlwaysBusy blocks resist displacement and may displace
	// always-free blocks when scheduled.
	DefenseAlwaysBusy TimeDefense = "always-busy"
	// DefenseAlwaysFree blocks yield to fixed requests.
	DefenseAlwaysFree TimeDefense = "always-free"
	// DefenseNone is the default: blocks are ordinary busy time.
	DefenseNone TimeDefense = ""
)

// Task is the engine's view of a work item. The engine consumes tasks, it
// does not own them; ScheduledBlocks holds block ids, never block objects.
type Task struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	DueDate              *time.Time  `json:"due_date,omitempty"`
	EstimatedDuration    int         `json:"estimated_duration"` // minutes
	CreationDate         time.Time   `json:"creation_date"`
	Priority             int         `json:"priority"`                 // 1 highest - 4 lowest
	SplitUpBlock         int         `json:"split_up_block,omitempty"` // minimum chunk size in minutes
	TimeDefense          TimeDefense `json:"time_defense,omitempty"`
	AllowedTimeWindows   []string    `json:"allowed_time_windows,omitempty"`   // hard filter, empty = all
	PreferredTimeWindows []string    `json:"preferred_time_windows,omitempty"` // soft preference for ranking
	Urgency              *float64    `json:"urgency,omitempty"` // cached score
	AutoSchedule         bool        `json:"auto_schedule"`
	ScheduledBlocks      []string    `json:"scheduled_blocks,omitempty"` // block ids
	DeletedAt            *string     `json:"deleted_at,omitempty"`       // RFC3339 timestamp
}

// MinBlockSize returns the smallest block the task accepts: the declared
// split-up chunk if set, otherwise the lesser of the default and the whole
// estimate.
func (t Task) MinBlockSize(defaultMin int) int {
	if t.SplitUpBlock > 0 {
		return t.SplitUpBlock
	}
	if t.EstimatedDuration < defaultMin {
		return t.EstimatedDuration
	}
	return defaultMin
}

// Overdue reports whether the task's due date has already passed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}
