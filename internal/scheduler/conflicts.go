package scheduler

import (
	"sort"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/urgency"
)

// HasConflicts reports whether any of the task's blocks overlaps a block
// belonging to a different task. A task with zero blocks never conflicts.
func (s *Scheduler) HasConflicts(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.taskHasConflictsLocked(taskID)
}

// TasksNeedingResolution lists registered tasks whose blocks collide with
// other tasks' blocks, ordered by ascending priority then descending
// urgency. Resolution itself (reschedule, keep, defer to the user) is the
// caller's business.
func (s *Scheduler) TasksNeedingResolution() []models.Task {
	s.mu.Lock()
	now := s.now()
	var conflicted []models.Task
	for id, task := range s.tasks {
		if s.taskHasConflictsLocked(id) {
			conflicted = append(conflicted, task)
		}
	}
	strategy := s.strategy
	s.mu.Unlock()

	sort.SliceStable(conflicted, func(i, j int) bool {
		if conflicted[i].Priority != conflicted[j].Priority {
			return conflicted[i].Priority < conflicted[j].Priority
		}
		return strategy(conflicted[i], now) > strategy(conflicted[j], now)
	})
	return conflicted
}

// UrgencyFor scores a registered or supplied task with the configured
// strategy.
func (s *Scheduler) UrgencyFor(task models.Task) urgency.Assessment {
	s.mu.Lock()
	strategy := s.strategy
	now := s.now()
	s.mu.Unlock()
	return urgency.Assess(strategy, task, now)
}

func (s *Scheduler) taskHasConflictsLocked(taskID string) bool {
	mine := s.cache.forTask(taskID)
	if len(mine) == 0 {
		return false
	}
	for _, other := range s.cache.all() {
		if other.TaskID == taskID {
			continue
		}
		for _, b := range mine {
			if b.Overlaps(other) {
				return true
			}
		}
	}
	return false
}
