// Package validation checks window and task configuration before it reaches
// the scheduling engine, reporting typed conflicts instead of failing deep
// inside a scheduling pass.
package validation

import (
	"fmt"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidTimeFormat ConflictType = "invalid_time_format"
	ConflictInvertedRange     ConflictType = "inverted_range"
	ConflictEmptyWindow       ConflictType = "empty_window"
	ConflictDuplicateWindowID ConflictType = "duplicate_window_id"
	ConflictUnknownWindowRef  ConflictType = "unknown_window_ref"
	ConflictInvalidDuration   ConflictType = "invalid_duration"
	ConflictInvalidPriority   ConflictType = "invalid_priority"
)

// Conflict represents a detected configuration problem
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // window/task ids involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No problems detected."
	}
	report := "Problems detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Validator validates windows and tasks
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateWindows checks a window set for malformed ranges, inverted ranges,
// fully empty weeks, and duplicate ids.
func (v *Validator) ValidateWindows(windows []models.TimeWindow) Result {
	var result Result
	seen := make(map[string]bool)

	for _, w := range windows {
		if seen[w.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateWindowID,
				Description: fmt.Sprintf("window id %q is used more than once", w.ID),
				Items:       []string{w.ID},
			})
		}
		seen[w.ID] = true

		if w.Empty() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyWindow,
				Description: fmt.Sprintf("window %q covers no time in a week cycle", w.ID),
				Items:       []string{w.ID},
			})
			continue
		}

		for day, ranges := range w.Schedule {
			for _, r := range ranges {
				startMin, startErr := utils.ParseTimeToMinutes(r.Start)
				endMin, endErr := utils.ParseTimeToMinutes(r.End)
				if startErr != nil || endErr != nil {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictInvalidTimeFormat,
						Description: fmt.Sprintf("window %q has an unparseable range %s-%s on %s", w.ID, r.Start, r.End, day),
						Items:       []string{w.ID},
					})
					continue
				}
				if endMin <= startMin {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type:        ConflictInvertedRange,
						Description: fmt.Sprintf("window %q range %s-%s on %s ends before it starts", w.ID, r.Start, r.End, day),
						Items:       []string{w.ID},
					})
				}
			}
		}
	}

	return result
}

// ValidateTask checks a task against the configured windows.
func (v *Validator) ValidateTask(task models.Task, windows []models.TimeWindow) Result {
	var result Result

	if task.EstimatedDuration <= 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDuration,
			Description: fmt.Sprintf("task %q has no positive estimated duration", task.ID),
			Items:       []string{task.ID},
		})
	}
	if task.Priority < 1 || task.Priority > 4 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidPriority,
			Description: fmt.Sprintf("task %q priority %d is outside 1-4", task.ID, task.Priority),
			Items:       []string{task.ID},
		})
	}
	if task.SplitUpBlock < 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDuration,
			Description: fmt.Sprintf("task %q has a negative split-up block size", task.ID),
			Items:       []string{task.ID},
		})
	}

	known := make(map[string]bool, len(windows))
	for _, w := range windows {
		known[w.ID] = true
	}
	for _, id := range append(append([]string{}, task.AllowedTimeWindows...), task.PreferredTimeWindows...) {
		if !known[id] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownWindowRef,
				Description: fmt.Sprintf("task %q references unknown window %q", task.ID, id),
				Items:       []string{task.ID, id},
			})
		}
	}

	return result
}
