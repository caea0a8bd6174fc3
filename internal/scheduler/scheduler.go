// Package scheduler decomposes deadline tasks into non-overlapping time
// blocks inside recurring weekly availability windows. The Scheduler owns
// the schedule cache; every mutation goes through its methods.
package scheduler

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/logger"
	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/urgency"
)

type Scheduler struct {
	mu sync.Mutex

	windows  []models.TimeWindow
	cache    *arena
	tasks    map[string]models.Task
	strategy urgency.Strategy

	defaultBlockMin int
	rankSlots       bool
	now             func() time.Time
}

type Option func(*Scheduler)

// WithStrategy selects the urgency formula used for ranking and resolution
// ordering.
func WithStrategy(strategy urgency.Strategy) Option {
	return func(s *Scheduler) { s.strategy = strategy }
}

// WithClock injects the time source. Tests pin "now" with this.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithDefaultBlockMin overrides the fallback minimum block size.
func WithDefaultBlockMin(minutes int) Option {
	return func(s *Scheduler) {
		if minutes > 0 {
			s.defaultBlockMin = minutes
		}
	}
}

// WithoutRanking disables the heuristic slot reordering, leaving the plain
// chronological greedy order.
func WithoutRanking() Option {
	return func(s *Scheduler) { s.rankSlots = false }
}

// New creates a Scheduler over the given window configuration. An empty
// window list falls back to the defaults.
func New(windows []models.TimeWindow, opts ...Option) *Scheduler {
	if len(windows) == 0 {
		windows = models.DefaultWindows()
	}
	s := &Scheduler{
		windows:         windows,
		cache:           newArena(),
		tasks:           make(map[string]models.Task),
		strategy:        urgency.Logarithmic,
		defaultBlockMin: constants.DefaultMinBlockMin,
		rankSlots:       true,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleTask places a task's estimated duration into the allowed windows
// before its due date. Every failure mode is a structured result; the method
// never panics on bad input.
func (s *Scheduler) ScheduleTask(task models.Task) models.TaskScheduleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if task.DueDate == nil {
		return failure(models.StatusInvalidInput, "task must have a due date")
	}
	if task.EstimatedDuration <= 0 {
		return failure(models.StatusInvalidInput, "task must have a valid estimated duration")
	}
	if task.DueDate.Before(now) {
		result := failure(models.StatusOverdue, fmt.Sprintf("task %q is already past due", task.ID))
		result.Overdue = true
		return result
	}

	minBlockSize := task.MinBlockSize(s.defaultBlockMin)

	allowed, err := s.resolveWindows(task)
	if err != nil {
		return failure(models.StatusNoMatchingWindows, err.Error())
	}
	sort.SliceStable(allowed, func(i, j int) bool {
		return allowed[i].Priority > allowed[j].Priority
	})

	// The task must be visible to later defense checks before any of its
	// blocks land in the cache.
	s.tasks[task.ID] = task

	searchStart := now
	if task.CreationDate.After(searchStart) {
		searchStart = task.CreationDate
	}

	isFixedRequest := task.TimeDefense == models.DefenseAlwaysBusy
	slots := s.findAvailableSlots(searchStart, *task.DueDate, minBlockSize, allowed, isFixedRequest)

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	if s.rankSlots {
		slots = urgency.RankSlots(task, slots, now)
	}

	// Blocks are destroyed only by explicit removal, so a repeat call must
	// not reuse earlier ids: the sequence continues from what is cached.
	next := s.cache.countForTask(task.ID)

	remaining := task.EstimatedDuration
	var blocks []models.TimeBlockInfo
	for _, slot := range slots {
		if remaining <= 0 {
			break
		}
		take := remaining
		if slot.Duration < take {
			take = slot.Duration
		}
		block := models.TimeBlockInfo{
			ID:           models.BlockID(task.ID, next+len(blocks)),
			TaskID:       task.ID,
			Start:        slot.Start,
			End:          slot.Start.Add(time.Duration(take) * time.Minute),
			Duration:     take,
			TimeWindowID: slot.TimeWindowID,
		}
		s.cache.add(block)
		blocks = append(blocks, block)
		remaining -= take
	}

	cached := s.cache.forTask(task.ID)
	ids := make([]string, len(cached))
	for i, b := range cached {
		ids[i] = b.ID
	}
	task.ScheduledBlocks = ids
	s.tasks[task.ID] = task

	if remaining > 0 {
		logger.Warn("Task only partially scheduled", "task", task.ID, "unscheduled_minutes", remaining)
		return models.TaskScheduleResult{
			Status:             models.StatusPartiallyScheduled,
			Message:            fmt.Sprintf("placed %d of %d minutes before the due date", task.EstimatedDuration-remaining, task.EstimatedDuration),
			TimeBlocks:         blocks,
			Overdue:            true,
			UnscheduledMinutes: remaining,
		}
	}

	logger.Debug("Task scheduled", "task", task.ID, "blocks", len(blocks))
	return models.TaskScheduleResult{
		Success:    true,
		Status:     models.StatusSuccess,
		Message:    fmt.Sprintf("scheduled %d minutes across %d block(s)", task.EstimatedDuration, len(blocks)),
		TimeBlocks: blocks,
	}
}

// resolveWindows returns the windows the task may use: all configured ones,
// or the named subset. A filter that matches nothing is an explicit failure,
// never an empty slot list silently treated as "no time needed".
func (s *Scheduler) resolveWindows(task models.Task) ([]models.TimeWindow, error) {
	if len(task.AllowedTimeWindows) == 0 {
		out := make([]models.TimeWindow, len(s.windows))
		copy(out, s.windows)
		return out, nil
	}

	wanted := make(map[string]bool, len(task.AllowedTimeWindows))
	for _, id := range task.AllowedTimeWindows {
		wanted[id] = true
	}
	var out []models.TimeWindow
	for _, w := range s.windows {
		if wanted[w.ID] {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("task %q allows no configured time window", task.ID)
	}
	return out, nil
}

// RegisterTask makes a task known to the scheduler without scheduling it.
// Used when rebuilding state from storage, so defense flags of previously
// scheduled tasks are honored.
func (s *Scheduler) RegisterTask(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = task
}

// LoadBlocks seeds the cache with previously persisted blocks.
func (s *Scheduler) LoadBlocks(blocks []models.TimeBlockInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range blocks {
		s.cache.add(b)
	}
}

// GetBlocksInTimeframe returns cached blocks overlapping [start, end),
// sorted chronologically.
func (s *Scheduler) GetBlocksInTimeframe(start, end time.Time) []models.TimeBlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.inRange(start, end)
}

// GetBlocksForTask returns the task's blocks sorted chronologically.
func (s *Scheduler) GetBlocksForTask(taskID string) []models.TimeBlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.forTask(taskID)
}

// AllBlocks returns every cached block sorted chronologically.
func (s *Scheduler) AllBlocks() []models.TimeBlockInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.all()
}

// MarkBlockCompleted flags a block as done. Completed blocks stay busy.
func (s *Scheduler) MarkBlockCompleted(blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cache.markCompleted(blockID) {
		return fmt.Errorf("block %q not found", blockID)
	}
	return nil
}

// RemoveBlocksForTask drops every block belonging to the task, returning how
// many were removed. This is the only bulk removal: blocks are destroyed on
// task deletion or reschedule, never expired.
func (s *Scheduler) RemoveBlocksForTask(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.cache.removeTask(taskID)
	if t, ok := s.tasks[taskID]; ok {
		t.ScheduledBlocks = nil
		s.tasks[taskID] = t
	}
	return removed
}

// Windows returns the configured window set.
func (s *Scheduler) Windows() []models.TimeWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TimeWindow, len(s.windows))
	copy(out, s.windows)
	return out
}

func failure(status models.ScheduleStatus, message string) models.TaskScheduleResult {
	return models.TaskScheduleResult{Status: status, Message: message}
}
