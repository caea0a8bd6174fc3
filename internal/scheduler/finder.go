package scheduler

import (
	"sort"
	"time"

	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/utils"
)

// windowSegment is one contiguous stretch of a window on a concrete day.
type windowSegment struct {
	windowID string
	start    time.Time
	end      time.Time
}

// nextSegment finds the window segment covering t, or the earliest upcoming
// one. Windows must already be sorted by descending priority; when two
// windows cover the same instant the earlier-listed (higher priority) one
// wins. The search is bounded: if no window covers any time in the next
// seven days the lookup fails closed.
func nextSegment(t time.Time, windows []models.TimeWindow) (windowSegment, bool) {
	for dayOffset := 0; dayOffset <= constants.MaxWindowLookaheadDays; dayOffset++ {
		day := t.AddDate(0, 0, dayOffset)
		cursor := t
		if dayOffset > 0 {
			cursor = utils.AtMinutes(day, 0)
		}

		var best windowSegment
		found := false
		for _, w := range windows {
			for _, r := range w.RangesOn(day.Weekday()) {
				startMin, err := utils.ParseTimeToMinutes(r.Start)
				if err != nil {
					continue
				}
				endMin, err := utils.ParseTimeToMinutes(r.End)
				if err != nil || endMin <= startMin {
					continue
				}
				segStart := utils.AtMinutes(day, startMin)
				segEnd := utils.AtMinutes(day, endMin)
				if !cursor.Before(segEnd) {
					continue // range already over today
				}
				if segStart.Before(cursor) {
					segStart = cursor
				}
				// Strictly-earlier replacement keeps the higher-priority
				// window on exact ties.
				if !found || segStart.Before(best.start) {
					best = windowSegment{windowID: w.ID, start: segStart, end: segEnd}
					found = true
				}
			}
		}
		if found {
			return best, true
		}
	}
	return windowSegment{}, false
}

// findAvailableSlots walks forward from start, carving free slots out of the
// allowed windows until end. Already-placed blocks split or swallow
// segments; gaps shorter than minBlockSize are discarded. When
// isFixedRequest is true, blocks belonging to always-free tasks are ignored
// (they can be displaced). Slots come back unsorted by intent: ordering is
// the ranking rules' concern.
func (s *Scheduler) findAvailableSlots(start, end time.Time, minBlockSize int, allowed []models.TimeWindow, isFixedRequest bool) []models.TimeSlot {
	windows := make([]models.TimeWindow, len(allowed))
	copy(windows, allowed)
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Priority > windows[j].Priority
	})

	var slots []models.TimeSlot
	cursor := start
	for cursor.Before(end) {
		seg, ok := nextSegment(cursor, windows)
		if !ok {
			break // no window occurrence in the lookahead horizon
		}
		if !seg.start.Before(end) {
			break
		}
		segEnd := seg.end
		if segEnd.After(end) {
			segEnd = end
		}

		conflict, hasConflict := s.earliestConflict(seg.start, segEnd, isFixedRequest)
		if !hasConflict {
			if slot, ok := makeSlot(seg.start, segEnd, seg.windowID, minBlockSize); ok {
				slots = append(slots, slot)
			}
			cursor = seg.end
			continue
		}

		if conflict.Start.After(seg.start) {
			if slot, ok := makeSlot(seg.start, conflict.Start, seg.windowID, minBlockSize); ok {
				slots = append(slots, slot)
			}
		}
		// Resume after the conflicting block. Conflicts overlap the segment,
		// so this always moves the cursor forward.
		cursor = conflict.End
	}
	return slots
}

// earliestConflict returns the first cached block overlapping [start, end).
// Fixed requests see through always-free blocks.
func (s *Scheduler) earliestConflict(start, end time.Time, isFixedRequest bool) (models.TimeBlockInfo, bool) {
	var earliest models.TimeBlockInfo
	found := false
	for _, b := range s.cache.inRange(start, end) {
		if isFixedRequest && s.taskDefense(b.TaskID) == models.DefenseAlwaysFree {
			continue
		}
		if !found || b.Start.Before(earliest.Start) {
			earliest = b
			found = true
		}
	}
	return earliest, found
}

func (s *Scheduler) taskDefense(taskID string) models.TimeDefense {
	if t, ok := s.tasks[taskID]; ok {
		return t.TimeDefense
	}
	return models.DefenseNone
}

func makeSlot(start, end time.Time, windowID string, minBlockSize int) (models.TimeSlot, bool) {
	minutes := int(end.Sub(start).Minutes())
	if minutes < minBlockSize || minutes <= 0 {
		return models.TimeSlot{}, false
	}
	return models.TimeSlot{
		Start:        start,
		End:          end,
		Duration:     minutes,
		TimeWindowID: windowID,
		Quality:      slotQuality(minutes),
	}, true
}

// slotQuality favors roomier slots: a four-hour stretch (or better) scores
// 100, everything else scales down linearly to a floor of 50.
func slotQuality(minutes int) int {
	const fullScoreMinutes = 240
	if minutes >= fullScoreMinutes {
		return 100
	}
	return 50 + minutes*50/fullScoreMinutes
}
