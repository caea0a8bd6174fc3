package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/validation"
)

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Due      string `short:"D" help:"Due date (YYYY-MM-DD or 'YYYY-MM-DD HH:MM')."`
	Duration int    `short:"d" help:"Estimated duration in minutes." required:""`
	Priority int    `short:"p" help:"Priority (1 highest - 4 lowest)." default:"3"`
	Split    int    `short:"s" help:"Minimum chunk size in minutes when splitting." default:"0"`
	Defense  string `help:"Time defense (always-busy|always-free)." default:""`
	Windows  string `short:"w" help:"Comma-separated allowed window ids."`
	Prefer   string `help:"Comma-separated preferred window ids."`
	NoAuto   bool   `help:"Exclude from schedule --all runs."`
}

func (c *TaskAddCmd) Validate() error {
	if c.Priority < 1 || c.Priority > 4 {
		return fmt.Errorf("priority must be between 1 and 4")
	}
	switch models.TimeDefense(c.Defense) {
	case models.DefenseNone, models.DefenseAlwaysBusy, models.DefenseAlwaysFree:
	default:
		return fmt.Errorf("defense must be always-busy or always-free")
	}
	return nil
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	var due *time.Time
	if c.Due != "" {
		parsed, err := parseDue(c.Due, settings.Timezone)
		if err != nil {
			return err
		}
		due = &parsed
	}

	task := models.Task{
		ID:                uuid.New().String(),
		Title:             c.Title,
		DueDate:           due,
		EstimatedDuration: c.Duration,
		CreationDate:      time.Now(),
		Priority:          c.Priority,
		SplitUpBlock:      c.Split,
		TimeDefense:       models.TimeDefense(c.Defense),
		AutoSchedule:      settings.AutoSchedule && !c.NoAuto,
	}
	if c.Windows != "" {
		task.AllowedTimeWindows = splitIDs(c.Windows)
	}
	if c.Prefer != "" {
		task.PreferredTimeWindows = splitIDs(c.Prefer)
	}

	windows, err := ctx.Store.GetAllWindows()
	if err != nil {
		return err
	}
	result := validation.New().ValidateTask(task, windows)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}
	fmt.Printf("Added task %q (%s)\n", c.Title, task.ID)
	return nil
}

type TaskListCmd struct{}

func (c *TaskListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
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
	for _, t := range tasks {
		due := "no due date"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s  %-30s p%d  %4dm  due %s  blocks:%d\n",
			t.ID, t.Title, t.Priority, t.EstimatedDuration, due, len(t.ScheduledBlocks))
	}
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task id to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	// Deleting a task destroys its blocks: the only sanctioned bulk removal.
	if err := ctx.Store.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s and its blocks\n", c.ID)
	return nil
}

func parseDue(value, timezone string) (time.Time, error) {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
		}
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or 'YYYY-MM-DD HH:MM'", value)
	}
	// A bare date means end of that day.
	return t.Add(24*time.Hour - time.Minute), nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
