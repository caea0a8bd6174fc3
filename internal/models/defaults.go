package models

import "time"

// DefaultWindows returns the window set used when no configuration is
// supplied: weekday working hours, plus mornings, evenings, and weekends as
// lower-priority personal time.
func DefaultWindows() []TimeWindow {
	workday := []TimeRange{{Start: "09:00", End: "17:00"}}
	personalWeekday := []TimeRange{
		{Start: "06:00", End: "09:00"},
		{Start: "17:00", End: "22:00"},
	}
	weekend := []TimeRange{{Start: "08:00", End: "22:00"}}

	return []TimeWindow{
		{
			ID:   "work-hours",
			Name: "Work Hours",
			Schedule: map[time.Weekday][]TimeRange{
				time.Monday:    workday,
				time.Tuesday:   workday,
				time.Wednesday: workday,
				time.Thursday:  workday,
				time.Friday:    workday,
			},
			Priority: 10,
		},
		{
			ID:   "personal-time",
			Name: "Personal Time",
			Schedule: map[time.Weekday][]TimeRange{
				time.Sunday:    weekend,
				time.Monday:    personalWeekday,
				time.Tuesday:   personalWeekday,
				time.Wednesday: personalWeekday,
				time.Thursday:  personalWeekday,
				time.Friday:    personalWeekday,
				time.Saturday:  weekend,
			},
			Priority: 5,
		},
	}
}
