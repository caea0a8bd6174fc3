package urgency

import (
	"math"
	"sort"
	"time"

	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/models"
)

// IsUrgent reports whether a task should grab the earliest available time:
// top priority, a high cached urgency score, a deadline inside 24 hours, or
// a deadline closer than twice the time needed to finish.
func IsUrgent(task models.Task, now time.Time) bool {
	if task.Priority == 1 {
		return true
	}
	if task.Urgency != nil && *task.Urgency > constants.UrgentThreshold {
		return true
	}
	if task.DueDate == nil {
		return false
	}
	remaining := task.DueDate.Sub(now)
	if remaining <= 24*time.Hour {
		return true
	}
	needed := time.Duration(task.EstimatedDuration) * time.Minute
	return task.EstimatedDuration > 0 && remaining <= 2*needed
}

// IsLong reports whether a task is big enough to prefer the largest slots.
func IsLong(task models.Task) bool {
	return task.EstimatedDuration > constants.LongTaskMinutes
}

// RankSlots reorders candidate slots for a task. Urgent tasks take the
// earliest slots, long tasks the largest, and everything else follows a
// composite of slot quality and a deadline-proximity bell curve. Slots in a
// task's preferred windows are stably moved to the front afterwards.
// The input slice is not modified.
func RankSlots(task models.Task, slots []models.TimeSlot, now time.Time) []models.TimeSlot {
	ranked := make([]models.TimeSlot, len(slots))
	copy(ranked, slots)

	switch {
	case IsUrgent(task, now):
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Start.Before(ranked[j].Start)
		})
	case IsLong(task):
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Duration > ranked[j].Duration
		})
	default:
		sort.SliceStable(ranked, func(i, j int) bool {
			return compositeScore(task, ranked[i], now) > compositeScore(task, ranked[j], now)
		})
	}

	if len(task.PreferredTimeWindows) > 0 {
		preferred := make(map[string]bool, len(task.PreferredTimeWindows))
		for _, id := range task.PreferredTimeWindows {
			preferred[id] = true
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return preferred[ranked[i].TimeWindowID] && !preferred[ranked[j].TimeWindowID]
		})
	}

	return ranked
}

func compositeScore(task models.Task, slot models.TimeSlot, now time.Time) float64 {
	return float64(slot.Quality) + DeadlineProximityScore(slot.Start, now, task.DueDate)
}

// DeadlineProximityScore scores a slot start against a bell curve peaking at
// 75% of the way from now to the due date. Slots past the deadline score 0;
// without a due date every slot scores the same.
func DeadlineProximityScore(start, now time.Time, due *time.Time) float64 {
	if due == nil {
		return 0
	}
	if start.After(*due) {
		return 0
	}
	total := due.Sub(now)
	if total <= 0 {
		return 0
	}
	pct := float64(start.Sub(now)) / float64(total) * 100
	pct = math.Max(0, math.Min(100, pct))
	return 100 - math.Abs(pct-constants.BellCurvePeakPercent)
}
