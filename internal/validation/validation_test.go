package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/timeblock-app/timeblock/internal/models"
)

func window(id string, day time.Weekday, start, end string) models.TimeWindow {
	return models.TimeWindow{
		ID:   id,
		Name: id,
		Schedule: map[time.Weekday][]models.TimeRange{
			day: {{Start: start, End: end}},
		},
	}
}

func conflictTypes(r Result) map[ConflictType]int {
	counts := make(map[ConflictType]int)
	for _, c := range r.Conflicts {
		counts[c.Type]++
	}
	return counts
}

func TestValidateWindows_CleanSetPasses(t *testing.T) {
	v := New()
	result := v.ValidateWindows(models.DefaultWindows())
	if result.HasConflicts() {
		t.Errorf("default windows flagged: %s", result.FormatReport())
	}
}

func TestValidateWindows_DetectsProblems(t *testing.T) {
	v := New()
	windows := []models.TimeWindow{
		window("dup", time.Monday, "09:00", "17:00"),
		window("dup", time.Tuesday, "09:00", "17:00"),
		window("inverted", time.Monday, "17:00", "09:00"),
		window("garbled", time.Monday, "nine", "17:00"),
		{ID: "hollow", Name: "hollow"},
	}

	result := v.ValidateWindows(windows)
	if !result.HasConflicts() {
		t.Fatal("broken window set passed validation")
	}

	got := conflictTypes(result)
	for _, want := range []ConflictType{
		ConflictDuplicateWindowID,
		ConflictInvertedRange,
		ConflictInvalidTimeFormat,
		ConflictEmptyWindow,
	} {
		if got[want] == 0 {
			t.Errorf("expected a %s conflict, report:\n%s", want, result.FormatReport())
		}
	}
}

func TestValidateWindows_ZeroLengthRangeIsInverted(t *testing.T) {
	v := New()
	result := v.ValidateWindows([]models.TimeWindow{
		window("point", time.Monday, "09:00", "09:00"),
	})
	if got := conflictTypes(result); got[ConflictInvertedRange] == 0 {
		t.Error("zero-length range not flagged")
	}
}

func TestValidateTask(t *testing.T) {
	v := New()
	windows := []models.TimeWindow{window("known", time.Monday, "09:00", "17:00")}

	tests := []struct {
		name string
		task models.Task
		want ConflictType
	}{
		{"zero duration", models.Task{ID: "t", Priority: 2}, ConflictInvalidDuration},
		{"priority too low", models.Task{ID: "t", Priority: 0, EstimatedDuration: 30}, ConflictInvalidPriority},
		{"priority too high", models.Task{ID: "t", Priority: 5, EstimatedDuration: 30}, ConflictInvalidPriority},
		{"negative split", models.Task{ID: "t", Priority: 2, EstimatedDuration: 30, SplitUpBlock: -10}, ConflictInvalidDuration},
		{
			"unknown allowed window",
			models.Task{ID: "t", Priority: 2, EstimatedDuration: 30, AllowedTimeWindows: []string{"ghost"}},
			ConflictUnknownWindowRef,
		},
		{
			"unknown preferred window",
			models.Task{ID: "t", Priority: 2, EstimatedDuration: 30, PreferredTimeWindows: []string{"ghost"}},
			ConflictUnknownWindowRef,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateTask(tt.task, windows)
			if got := conflictTypes(result); got[tt.want] == 0 {
				t.Errorf("expected a %s conflict, got: %s", tt.want, result.FormatReport())
			}
		})
	}

	clean := models.Task{ID: "t", Priority: 2, EstimatedDuration: 30, AllowedTimeWindows: []string{"known"}}
	if result := v.ValidateTask(clean, windows); result.HasConflicts() {
		t.Errorf("clean task flagged: %s", result.FormatReport())
	}
}

func TestResult_FormatReport(t *testing.T) {
	var empty Result
	if got := empty.FormatReport(); got != "No problems detected." {
		t.Errorf("empty report = %q", got)
	}

	r := Result{Conflicts: []Conflict{
		{Type: ConflictEmptyWindow, Description: "window \"x\" covers no time"},
	}}
	if got := r.FormatReport(); !strings.Contains(got, "window \"x\" covers no time") {
		t.Errorf("report missing description: %q", got)
	}
}
