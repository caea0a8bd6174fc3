package cli

import (
	"fmt"
	"sort"
)

type ConflictsCmd struct {
	Task string `arg:"" optional:"" help:"Check a single task instead of all."`
}

func (c *ConflictsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sched, _, err := ctx.BuildScheduler()
	if err != nil {
		return err
	}

	if c.Task != "" {
		if sched.HasConflicts(c.Task) {
			fmt.Printf("Task %s has conflicting blocks.\n", c.Task)
		} else {
			fmt.Printf("Task %s has no conflicts.\n", c.Task)
		}
		return nil
	}

	conflicted := sched.TasksNeedingResolution()
	if len(conflicted) == 0 {
		fmt.Println("No conflicts.")
		return nil
	}
	fmt.Println("Tasks needing resolution (highest priority first):")
	for _, t := range conflicted {
		assessment := sched.UrgencyFor(t)
		fmt.Printf("  %s  %-30s p%d  urgency %.0f\n", t.ID, t.Title, t.Priority, assessment.Score)
	}
	return nil
}

type UrgencyCmd struct{}

func (c *UrgencyCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sched, _, err := ctx.BuildScheduler()
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	type scored struct {
		id, title, explanation string
		score                  float64
	}
	var rows []scored
	for _, t := range tasks {
		a := sched.UrgencyFor(t)
		rows = append(rows, scored{id: t.ID, title: t.Title, explanation: a.Explanation, score: a.Score})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })
	for _, r := range rows {
		fmt.Printf("%5.1f  %-30s %s  (%s)\n", r.score, r.title, r.id, r.explanation)
	}
	return nil
}
