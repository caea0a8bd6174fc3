package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeblock-app/timeblock/internal/models"
)

// monday is a fixed reference instant: Monday 2026-01-05 08:00 UTC.
var monday = time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func workWindow() models.TimeWindow {
	sched := make(map[time.Weekday][]models.TimeRange)
	for day := time.Monday; day <= time.Friday; day++ {
		sched[day] = []models.TimeRange{{Start: "09:00", End: "17:00"}}
	}
	return models.TimeWindow{ID: "work-hours", Name: "Work Hours", Schedule: sched, Priority: 10}
}

func mondayOnly(ranges ...models.TimeRange) models.TimeWindow {
	return models.TimeWindow{
		ID:       "mon-only",
		Name:     "Monday Only",
		Schedule: map[time.Weekday][]models.TimeRange{time.Monday: ranges},
		Priority: 5,
	}
}

func due(t time.Time) *time.Time { return &t }

func TestScheduleTask_FullPlacementWithinWindow(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID:                "task-a",
		Title:             "Write report",
		Priority:          3,
		EstimatedDuration: 90,
		CreationDate:      monday.Add(-time.Hour),
		DueDate:           due(monday.Add(48 * time.Hour)),
	}

	result := s.ScheduleTask(task)
	require.True(t, result.Success)
	require.Equal(t, models.StatusSuccess, result.Status)
	require.NotEmpty(t, result.TimeBlocks)

	total := 0
	for _, b := range result.TimeBlocks {
		total += b.Duration
		require.NoError(t, b.Validate())
		assert.Equal(t, "work-hours", b.TimeWindowID)

		// Inside 09:00-17:00 on the block's own day.
		dayStart := time.Date(b.Start.Year(), b.Start.Month(), b.Start.Day(), 9, 0, 0, 0, time.UTC)
		dayEnd := time.Date(b.Start.Year(), b.Start.Month(), b.Start.Day(), 17, 0, 0, 0, time.UTC)
		assert.False(t, b.Start.Before(dayStart), "block starts before window opens")
		assert.False(t, b.End.After(dayEnd), "block ends after window closes")
	}
	assert.Equal(t, task.EstimatedDuration, total)
	assert.Zero(t, result.UnscheduledMinutes)
	assert.False(t, result.Overdue)
}

func TestScheduleTask_OverdueLeavesCacheUntouched(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID:                "task-late",
		Priority:          2,
		EstimatedDuration: 30,
		DueDate:           due(monday.Add(-time.Hour)),
	}

	result := s.ScheduleTask(task)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusOverdue, result.Status)
	assert.True(t, result.Overdue)
	assert.Empty(t, result.TimeBlocks)
	assert.Empty(t, s.AllBlocks(), "overdue scheduling must not mutate the cache")
}

func TestScheduleTask_InvalidInput(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	tests := []struct {
		name string
		task models.Task
	}{
		{"missing due date", models.Task{ID: "t1", EstimatedDuration: 30}},
		{"zero duration", models.Task{ID: "t2", DueDate: due(monday.Add(24 * time.Hour))}},
		{"negative duration", models.Task{ID: "t3", EstimatedDuration: -10, DueDate: due(monday.Add(24 * time.Hour))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.ScheduleTask(tt.task)
			assert.False(t, result.Success)
			assert.Equal(t, models.StatusInvalidInput, result.Status)
			assert.Empty(t, result.TimeBlocks)
		})
	}
	assert.Empty(t, s.AllBlocks())
}

func TestScheduleTask_NoMatchingWindows(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID:                 "task-filtered",
		Priority:           3,
		EstimatedDuration:  30,
		DueDate:            due(monday.Add(24 * time.Hour)),
		AllowedTimeWindows: []string{"does-not-exist"},
	}

	result := s.ScheduleTask(task)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusNoMatchingWindows, result.Status)
	assert.Empty(t, result.TimeBlocks)
}

func TestScheduleTask_SplitIntoMultipleBlocks(t *testing.T) {
	window := mondayOnly(
		models.TimeRange{Start: "09:00", End: "09:30"},
		models.TimeRange{Start: "10:00", End: "10:30"},
	)
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	task := models.Task{
		ID:                "task-split",
		Priority:          2,
		EstimatedDuration: 60,
		SplitUpBlock:      30,
		DueDate:           due(monday.Add(4 * time.Hour)), // Monday 12:00
	}

	result := s.ScheduleTask(task)
	require.True(t, result.Success)
	require.Len(t, result.TimeBlocks, 2)

	assert.Equal(t, models.BlockID("task-split", 0), result.TimeBlocks[0].ID)
	assert.Equal(t, models.BlockID("task-split", 1), result.TimeBlocks[1].ID)
	assert.Equal(t, 30, result.TimeBlocks[0].Duration)
	assert.Equal(t, 30, result.TimeBlocks[1].Duration)
	assert.False(t, result.TimeBlocks[0].Overlaps(result.TimeBlocks[1]))
}

func TestScheduleTask_GapSmallerThanMinBlockIsDiscarded(t *testing.T) {
	// A 20-minute window can never host a task whose minimum chunk is 30.
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "09:20"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	task := models.Task{
		ID:                "task-tight",
		Priority:          3,
		EstimatedDuration: 30,
		DueDate:           due(monday.Add(4 * time.Hour)),
	}

	result := s.ScheduleTask(task)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusPartiallyScheduled, result.Status)
	assert.Empty(t, result.TimeBlocks)
	assert.Equal(t, 30, result.UnscheduledMinutes)
	assert.True(t, result.Overdue)
}

func TestScheduleTask_SecondTaskNeverOverlapsFirst(t *testing.T) {
	// One 30-minute slot, two claimants.
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "09:30"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	first := models.Task{
		ID: "first", Priority: 2, EstimatedDuration: 30,
		DueDate: due(monday.Add(2 * time.Hour)),
	}
	second := models.Task{
		ID: "second", Priority: 2, EstimatedDuration: 30,
		DueDate: due(monday.Add(2 * time.Hour)),
	}

	res1 := s.ScheduleTask(first)
	require.True(t, res1.Success)
	require.Len(t, res1.TimeBlocks, 1)

	res2 := s.ScheduleTask(second)
	assert.False(t, res2.Success)
	assert.Equal(t, models.StatusPartiallyScheduled, res2.Status)
	assert.Empty(t, res2.TimeBlocks)
	assert.Equal(t, 30, res2.UnscheduledMinutes)

	for _, a := range s.GetBlocksForTask("first") {
		for _, b := range s.GetBlocksForTask("second") {
			assert.False(t, a.Overlaps(b))
		}
	}
}

func TestScheduleTask_RescheduleAvoidsOwnCachedBlocks(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID: "repeat", Priority: 3, EstimatedDuration: 60,
		DueDate: due(monday.Add(48 * time.Hour)),
	}

	res1 := s.ScheduleTask(task)
	require.True(t, res1.Success)

	res2 := s.ScheduleTask(task)
	require.True(t, res2.Success)

	for _, a := range res1.TimeBlocks {
		for _, b := range res2.TimeBlocks {
			assert.False(t, a.Overlaps(b), "second pass reused the first pass's slot")
		}
	}
}

func TestScheduleTask_RepeatKeepsEarlierBlocksCached(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID: "repeat", Priority: 3, EstimatedDuration: 60,
		DueDate: due(monday.Add(48 * time.Hour)),
	}

	res1 := s.ScheduleTask(task)
	require.True(t, res1.Success)
	require.Len(t, res1.TimeBlocks, 1)

	res2 := s.ScheduleTask(task)
	require.True(t, res2.Success)
	require.Len(t, res2.TimeBlocks, 1)

	// Blocks leave the cache only through explicit removal; the id sequence
	// continues instead of colliding with the first placement.
	assert.Equal(t, models.BlockID("repeat", 0), res1.TimeBlocks[0].ID)
	assert.Equal(t, models.BlockID("repeat", 1), res2.TimeBlocks[0].ID)

	all := s.AllBlocks()
	require.Len(t, all, 2, "earlier placement vanished from the cache")
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.False(t, all[0].Overlaps(all[1]))

	assert.Equal(t, 2, s.RemoveBlocksForTask("repeat"))
	assert.Empty(t, s.AllBlocks())
}

func TestScheduleTask_PartialWhenHorizonTooShort(t *testing.T) {
	// Eight window hours before the deadline, twelve hours of work.
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID: "too-big", Priority: 2, EstimatedDuration: 12 * 60,
		DueDate: due(monday.Add(10 * time.Hour)), // Monday 18:00
	}

	result := s.ScheduleTask(task)
	assert.False(t, result.Success)
	assert.Equal(t, models.StatusPartiallyScheduled, result.Status)
	assert.True(t, result.Overdue)
	require.Len(t, result.TimeBlocks, 1)
	assert.Equal(t, 8*60, result.TimeBlocks[0].Duration)
	assert.Equal(t, 4*60, result.UnscheduledMinutes)
}

func TestScheduleTask_EmptyWindowSetFailsClosed(t *testing.T) {
	// A window covering zero days must terminate the search, not spin.
	empty := models.TimeWindow{ID: "never", Name: "Never", Schedule: map[time.Weekday][]models.TimeRange{}}
	s := New([]models.TimeWindow{empty}, fixedClock(monday))

	task := models.Task{
		ID: "doomed", Priority: 3, EstimatedDuration: 60,
		DueDate: due(monday.AddDate(0, 1, 0)),
	}

	done := make(chan models.TaskScheduleResult, 1)
	go func() { done <- s.ScheduleTask(task) }()

	select {
	case result := <-done:
		assert.False(t, result.Success)
		assert.Equal(t, models.StatusPartiallyScheduled, result.Status)
		assert.Empty(t, result.TimeBlocks)
		assert.Equal(t, 60, result.UnscheduledMinutes)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduling against an empty window set did not terminate")
	}
}

func TestScheduleTask_FixedRequestDisplacesAlwaysFree(t *testing.T) {
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "10:00"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	free := models.Task{
		ID: "free", Priority: 3, EstimatedDuration: 60,
		TimeDefense: models.DefenseAlwaysFree,
		DueDate:     due(monday.Add(4 * time.Hour)),
	}
	require.True(t, s.ScheduleTask(free).Success)

	fixed := models.Task{
		ID: "fixed", Priority: 2, EstimatedDuration: 60,
		TimeDefense: models.DefenseAlwaysBusy,
		DueDate:     due(monday.Add(4 * time.Hour)),
	}
	result := s.ScheduleTask(fixed)
	require.True(t, result.Success, "fixed request should see through always-free blocks")
	require.Len(t, result.TimeBlocks, 1)

	// Both tasks now occupy the hour; that is a reportable conflict.
	assert.True(t, s.HasConflicts("free"))
	assert.True(t, s.HasConflicts("fixed"))
}

func TestScheduleTask_OrdinaryTaskCannotDisplaceAlwaysFree(t *testing.T) {
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "10:00"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	free := models.Task{
		ID: "free", Priority: 3, EstimatedDuration: 60,
		TimeDefense: models.DefenseAlwaysFree,
		DueDate:     due(monday.Add(4 * time.Hour)),
	}
	require.True(t, s.ScheduleTask(free).Success)

	plain := models.Task{
		ID: "plain", Priority: 3, EstimatedDuration: 60,
		DueDate: due(monday.Add(4 * time.Hour)),
	}
	result := s.ScheduleTask(plain)
	assert.False(t, result.Success)
	assert.Empty(t, result.TimeBlocks)
}

func TestScheduleTask_HigherPriorityWindowWinsTies(t *testing.T) {
	low := models.TimeWindow{
		ID:       "low",
		Schedule: map[time.Weekday][]models.TimeRange{time.Monday: {{Start: "09:00", End: "10:00"}}},
		Priority: 1,
	}
	high := models.TimeWindow{
		ID:       "high",
		Schedule: map[time.Weekday][]models.TimeRange{time.Monday: {{Start: "09:00", End: "10:00"}}},
		Priority: 9,
	}
	s := New([]models.TimeWindow{low, high}, fixedClock(monday))

	task := models.Task{
		ID: "tie", Priority: 2, EstimatedDuration: 60,
		DueDate: due(monday.Add(4 * time.Hour)),
	}
	result := s.ScheduleTask(task)
	require.True(t, result.Success)
	require.Len(t, result.TimeBlocks, 1)
	assert.Equal(t, "high", result.TimeBlocks[0].TimeWindowID)
}

func TestScheduleTask_SearchStartsAtCreationDate(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	// Created Tuesday: nothing may be placed on Monday even though the
	// window is open.
	creation := monday.Add(26 * time.Hour)
	task := models.Task{
		ID: "future", Priority: 3, EstimatedDuration: 60,
		CreationDate: creation,
		DueDate:      due(monday.Add(72 * time.Hour)),
	}

	result := s.ScheduleTask(task)
	require.True(t, result.Success)
	for _, b := range result.TimeBlocks {
		assert.False(t, b.Start.Before(creation), "block placed before the task existed")
	}
}

func TestBlockQueries(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID: "q", Priority: 3, EstimatedDuration: 120,
		DueDate: due(monday.Add(48 * time.Hour)),
	}
	require.True(t, s.ScheduleTask(task).Success)

	blocks := s.GetBlocksForTask("q")
	require.NotEmpty(t, blocks)
	for i := 1; i < len(blocks); i++ {
		assert.False(t, blocks[i].Start.Before(blocks[i-1].Start), "blocks not sorted by start")
	}

	inRange := s.GetBlocksInTimeframe(monday, monday.Add(72*time.Hour))
	assert.Equal(t, len(blocks), len(inRange))

	assert.Empty(t, s.GetBlocksInTimeframe(monday.AddDate(0, 0, 14), monday.AddDate(0, 0, 21)))
	assert.Empty(t, s.GetBlocksForTask("nobody"))
}

func TestMarkBlockCompleted(t *testing.T) {
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "10:00"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	task := models.Task{
		ID: "done-soon", Priority: 2, EstimatedDuration: 60,
		DueDate: due(monday.Add(4 * time.Hour)),
	}
	result := s.ScheduleTask(task)
	require.True(t, result.Success)

	id := result.TimeBlocks[0].ID
	require.NoError(t, s.MarkBlockCompleted(id))

	blocks := s.GetBlocksForTask("done-soon")
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].IsCompleted)

	assert.Error(t, s.MarkBlockCompleted("no-such-block"))
}

func TestRemoveBlocksForTask(t *testing.T) {
	s := New([]models.TimeWindow{workWindow()}, fixedClock(monday))

	task := models.Task{
		ID: "gone", Priority: 3, EstimatedDuration: 90,
		DueDate: due(monday.Add(48 * time.Hour)),
	}
	result := s.ScheduleTask(task)
	require.True(t, result.Success)

	removed := s.RemoveBlocksForTask("gone")
	assert.Equal(t, len(result.TimeBlocks), removed)
	assert.Empty(t, s.GetBlocksForTask("gone"))
	assert.Empty(t, s.AllBlocks())

	assert.Zero(t, s.RemoveBlocksForTask("gone"), "second removal finds nothing")
}

func TestLoadBlocks_SeedsCacheForConflictChecks(t *testing.T) {
	window := mondayOnly(models.TimeRange{Start: "09:00", End: "10:00"})
	s := New([]models.TimeWindow{window}, fixedClock(monday))

	persisted := models.TimeBlockInfo{
		ID:           "old-block-0",
		TaskID:       "old",
		Start:        monday.Add(time.Hour),     // 09:00
		End:          monday.Add(2 * time.Hour), // 10:00
		Duration:     60,
		TimeWindowID: "mon-only",
	}
	s.LoadBlocks([]models.TimeBlockInfo{persisted})

	task := models.Task{
		ID: "new", Priority: 3, EstimatedDuration: 60,
		DueDate: due(monday.Add(4 * time.Hour)),
	}
	result := s.ScheduleTask(task)
	assert.False(t, result.Success, "persisted block should occupy the only slot")
}

func TestNew_EmptyWindowListFallsBackToDefaults(t *testing.T) {
	s := New(nil, fixedClock(monday))
	windows := s.Windows()
	require.NotEmpty(t, windows)

	ids := make(map[string]bool)
	for _, w := range windows {
		ids[w.ID] = true
	}
	assert.True(t, ids["work-hours"])
	assert.True(t, ids["personal-time"])
}
