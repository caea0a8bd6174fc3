package models

import (
	"testing"
	"time"
)

func TestBlockID(t *testing.T) {
	if got := BlockID("task-a", 0); got != "task-a-block-0" {
		t.Errorf("BlockID = %q, want %q", got, "task-a-block-0")
	}
	if got := BlockID("task-a", 3); got != "task-a-block-3" {
		t.Errorf("BlockID = %q, want %q", got, "task-a-block-3")
	}
}

func TestTimeBlockInfo_Overlaps(t *testing.T) {
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	mk := func(startOffset, minutes int) TimeBlockInfo {
		start := base.Add(time.Duration(startOffset) * time.Minute)
		return TimeBlockInfo{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
	}

	tests := []struct {
		name string
		a, b TimeBlockInfo
		want bool
	}{
		{"identical", mk(0, 60), mk(0, 60), true},
		{"b starts inside a", mk(0, 60), mk(30, 60), true},
		{"b ends inside a", mk(0, 60), mk(-30, 60), true},
		{"b spans a", mk(0, 60), mk(-30, 120), true},
		{"a spans b", mk(-30, 120), mk(0, 60), true},
		{"adjacent before", mk(0, 60), mk(-60, 60), false},
		{"adjacent after", mk(0, 60), mk(60, 60), false},
		{"disjoint", mk(0, 60), mk(120, 60), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeBlockInfo_Validate(t *testing.T) {
	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	valid := TimeBlockInfo{ID: "b", Start: base, End: base.Add(time.Hour), Duration: 60}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid block rejected: %v", err)
	}

	inverted := TimeBlockInfo{ID: "b", Start: base.Add(time.Hour), End: base, Duration: 60}
	if err := inverted.Validate(); err == nil {
		t.Error("inverted block accepted")
	}

	mismatched := TimeBlockInfo{ID: "b", Start: base, End: base.Add(time.Hour), Duration: 45}
	if err := mismatched.Validate(); err == nil {
		t.Error("duration/interval mismatch accepted")
	}
}

func TestTask_MinBlockSize(t *testing.T) {
	tests := []struct {
		name       string
		task       Task
		defaultMin int
		want       int
	}{
		{"split declared", Task{SplitUpBlock: 45, EstimatedDuration: 300}, 30, 45},
		{"default applies", Task{EstimatedDuration: 300}, 30, 30},
		{"short task caps at estimate", Task{EstimatedDuration: 15}, 30, 15},
		{"estimate equals default", Task{EstimatedDuration: 30}, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.MinBlockSize(tt.defaultMin); got != tt.want {
				t.Errorf("MinBlockSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	if (Task{}).Overdue(now) {
		t.Error("task without due date reported overdue")
	}
	if !(Task{DueDate: &past}).Overdue(now) {
		t.Error("past due date not reported overdue")
	}
	if (Task{DueDate: &future}).Overdue(now) {
		t.Error("future due date reported overdue")
	}
	if (Task{DueDate: &now}).Overdue(now) {
		t.Error("due exactly now should not be overdue yet")
	}
}

func TestTimeWindow_Empty(t *testing.T) {
	if !(TimeWindow{ID: "w"}).Empty() {
		t.Error("window with nil schedule not empty")
	}
	withEmptyDay := TimeWindow{Schedule: map[time.Weekday][]TimeRange{time.Monday: {}}}
	if !withEmptyDay.Empty() {
		t.Error("window with only empty day lists not empty")
	}
	populated := TimeWindow{Schedule: map[time.Weekday][]TimeRange{
		time.Monday: {{Start: "09:00", End: "17:00"}},
	}}
	if populated.Empty() {
		t.Error("populated window reported empty")
	}
}

func TestDefaultWindows(t *testing.T) {
	windows := DefaultWindows()
	if len(windows) != 2 {
		t.Fatalf("expected 2 default windows, got %d", len(windows))
	}

	byID := make(map[string]TimeWindow, len(windows))
	for _, w := range windows {
		byID[w.ID] = w
	}

	work, ok := byID["work-hours"]
	if !ok {
		t.Fatal("work-hours window missing")
	}
	for day := time.Monday; day <= time.Friday; day++ {
		ranges := work.RangesOn(day)
		if len(ranges) != 1 || ranges[0].Start != "09:00" || ranges[0].End != "17:00" {
			t.Errorf("work-hours on %s = %v, want 09:00-17:00", day, ranges)
		}
	}
	if len(work.RangesOn(time.Saturday)) != 0 || len(work.RangesOn(time.Sunday)) != 0 {
		t.Error("work-hours should not cover weekends")
	}

	personal, ok := byID["personal-time"]
	if !ok {
		t.Fatal("personal-time window missing")
	}
	if personal.Priority >= work.Priority {
		t.Error("personal-time should rank below work-hours")
	}
}
