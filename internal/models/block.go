package models

import (
	"fmt"
	"time"
)

// TimeBlockInfo is a concrete, dated placement of part of a task's work
// inside a time window. Blocks are created by the allocator and destroyed
// only by explicit removal (task deletion or reschedule). TaskID is a lookup
// reference, not ownership.
type TimeBlockInfo struct {
	ID           string    `json:"id"`
	TaskID       string    `json:"task_id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Duration     int       `json:"duration"` // minutes, equals End - Start
	TimeWindowID string    `json:"time_window_id"`
	IsCompleted  bool      `json:"is_completed"`
}

// BlockID derives the id of the nth block carved for a task.
func BlockID(taskID string, index int) string {
	return fmt.Sprintf("%s-block-%d", taskID, index)
}

// Overlaps reports whether two blocks overlap in time. Boundaries are
// half-open: a block ending exactly when another starts does not overlap it.
func (b TimeBlockInfo) Overlaps(other TimeBlockInfo) bool {
	return b.Start.Before(other.End) && other.Start.Before(b.End)
}

// Validate checks the block's internal invariants.
func (b TimeBlockInfo) Validate() error {
	if !b.Start.Before(b.End) {
		return fmt.Errorf("block %s: start must precede end", b.ID)
	}
	if b.Duration <= 0 {
		return fmt.Errorf("block %s: duration must be positive", b.ID)
	}
	if got := int(b.End.Sub(b.Start).Minutes()); got != b.Duration {
		return fmt.Errorf("block %s: duration %d does not match interval %d", b.ID, b.Duration, got)
	}
	return nil
}
