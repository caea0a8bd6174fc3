package cli

import (
	"fmt"
	"sort"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/scheduler"
)

type ScheduleCmd struct {
	Task string `arg:"" optional:"" help:"Task id to schedule."`
	All  bool   `help:"Schedule every auto-schedule task, most urgent first."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if (c.Task == "") == !c.All {
		return fmt.Errorf("provide a task id or --all")
	}

	sched, _, err := ctx.BuildScheduler()
	if err != nil {
		return err
	}

	if c.Task != "" {
		task, err := ctx.Store.GetTask(c.Task)
		if err != nil {
			return err
		}
		return c.scheduleOne(ctx, sched, task)
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	var candidates []models.Task
	for _, t := range tasks {
		if t.AutoSchedule && len(t.ScheduledBlocks) == 0 {
			candidates = append(candidates, t)
		}
	}
	// Most urgent first, so contention for scarce slots favors them.
	sort.SliceStable(candidates, func(i, j int) bool {
		return sched.UrgencyFor(candidates[i]).Score > sched.UrgencyFor(candidates[j]).Score
	})

	for _, t := range candidates {
		if err := c.scheduleOne(ctx, sched, t); err != nil {
			return err
		}
	}
	return nil
}

func (c *ScheduleCmd) scheduleOne(ctx *Context, sched *scheduler.Scheduler, task models.Task) error {
	// Rescheduling: drop the previous placement first so the task does not
	// collide with its own stale blocks.
	if len(task.ScheduledBlocks) > 0 {
		sched.RemoveBlocksForTask(task.ID)
		if err := ctx.Store.DeleteBlocksForTask(task.ID); err != nil {
			return err
		}
	}

	result := sched.ScheduleTask(task)

	switch result.Status {
	case models.StatusSuccess, models.StatusPartiallyScheduled:
		if err := ctx.Store.SaveBlocks(task.ID, result.TimeBlocks); err != nil {
			return err
		}
		assessment := sched.UrgencyFor(task)
		task.Urgency = &assessment.Score
		task.ScheduledBlocks = nil
		for _, b := range result.TimeBlocks {
			task.ScheduledBlocks = append(task.ScheduledBlocks, b.ID)
		}
		if err := ctx.Store.UpdateTask(task); err != nil {
			return err
		}
	}

	printResult(task, result)
	return nil
}

func printResult(task models.Task, result models.TaskScheduleResult) {
	label := fmt.Sprintf("%s (%s)", task.Title, task.ID)
	switch result.Status {
	case models.StatusSuccess:
		fmt.Printf("✓ %s: %s\n", label, result.Message)
		for _, b := range result.TimeBlocks {
			fmt.Printf("    %s  %s - %s  (%dm, window %s)\n",
				b.ID, b.Start.Format("Mon 2006-01-02 15:04"), b.End.Format("15:04"), b.Duration, b.TimeWindowID)
		}
	case models.StatusPartiallyScheduled:
		fmt.Printf("! %s: %s (%d minutes unplaced)\n", label, result.Message, result.UnscheduledMinutes)
	case models.StatusOverdue:
		fmt.Printf("✗ %s: already overdue\n", label)
	default:
		fmt.Printf("✗ %s: %s\n", label, result.Message)
	}
}
