package models

import "time"

// TimeSlot is a free stretch of time inside a window, produced by the
// availability finder and consumed by the allocator within one scheduling
// call. Quality is a 0-100 heuristic used by slot ranking.
type TimeSlot struct {
	Start        time.Time
	End          time.Time
	Duration     int // minutes
	TimeWindowID string
	Quality      int
}
