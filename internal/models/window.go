package models

import "time"

// TimeRange is a wall-clock range within a single day, both ends in HH:MM
// 24-hour format. End is exclusive.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeWindow is a recurring weekly availability pattern. Schedule maps a
// weekday to the ordered ranges the window covers on that day; days with no
// entry (or an empty list) are unavailable. Priority breaks ties when two
// windows cover the same instant: higher wins.
//
// Windows are configuration. They are created at setup time and treated as
// immutable for the duration of a scheduling pass.
type TimeWindow struct {
	ID       string                       `json:"id"`
	Name     string                       `json:"name"`
	Schedule map[time.Weekday][]TimeRange `json:"schedule"`
	Priority int                          `json:"priority"`
}

// RangesOn returns the ranges the window covers on the given weekday.
func (w TimeWindow) RangesOn(day time.Weekday) []TimeRange {
	return w.Schedule[day]
}

// Empty reports whether the window covers no time at all in a week cycle.
func (w TimeWindow) Empty() bool {
	for _, ranges := range w.Schedule {
		if len(ranges) > 0 {
			return false
		}
	}
	return true
}
