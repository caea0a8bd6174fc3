package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/timeblock-app/timeblock/internal/config"
	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/utils"
	"github.com/timeblock-app/timeblock/internal/validation"
)

type WindowAddCmd struct {
	Name     string `arg:"" help:"Window display name."`
	Days     string `short:"d" help:"Comma-separated weekdays (e.g. mon,tue,wed)." required:""`
	Start    string `short:"s" help:"Daily start time (HH:MM)." required:""`
	End      string `short:"e" help:"Daily end time (HH:MM)." required:""`
	Priority int    `short:"p" help:"Tie-break priority, higher wins." default:"0"`
}

func (c *WindowAddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) || !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("start and end must be HH:MM times")
	}
	return nil
}

func (c *WindowAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	days, err := ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	w := models.TimeWindow{
		ID:       uuid.New().String(),
		Name:     c.Name,
		Priority: c.Priority,
		Schedule: make(map[time.Weekday][]models.TimeRange),
	}
	for _, day := range days {
		w.Schedule[day] = append(w.Schedule[day], models.TimeRange{Start: c.Start, End: c.End})
	}

	result := validation.New().ValidateWindows([]models.TimeWindow{w})
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.AddWindow(w); err != nil {
		return err
	}
	fmt.Printf("Added window %q (%s)\n", c.Name, w.ID)
	return nil
}

type WindowListCmd struct{}

func (c *WindowListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	windows, err := ctx.Store.GetAllWindows()
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		fmt.Println("No windows configured.")
		return nil
	}
	for _, w := range windows {
		fmt.Printf("%s  %-20s p%-3d %s\n", w.ID, w.Name, w.Priority, FormatSchedule(w))
	}
	return nil
}

type WindowDeleteCmd struct {
	ID string `arg:"" help:"Window id to delete."`
}

func (c *WindowDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.DeleteWindow(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted window %s\n", c.ID)
	return nil
}

type WindowImportCmd struct {
	File    string `arg:"" help:"YAML window configuration file." type:"existingfile"`
	Replace bool   `help:"Replace the whole window set instead of merging."`
}

func (c *WindowImportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	windows, err := config.LoadWindows(c.File)
	if err != nil {
		return err
	}
	result := validation.New().ValidateWindows(windows)
	if result.HasConflicts() {
		return fmt.Errorf("window config rejected:\n%s", result.FormatReport())
	}

	if c.Replace {
		if err := ctx.Store.ReplaceWindows(windows); err != nil {
			return err
		}
	} else {
		for _, w := range windows {
			if err := ctx.Store.AddWindow(w); err != nil {
				return err
			}
		}
	}
	fmt.Printf("Imported %d window(s) from %s\n", len(windows), c.File)
	return nil
}

type WindowExportCmd struct {
	File string `arg:"" help:"Destination YAML file."`
}

func (c *WindowExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	windows, err := ctx.Store.GetAllWindows()
	if err != nil {
		return err
	}
	if err := config.SaveWindows(c.File, windows); err != nil {
		return err
	}
	fmt.Printf("Exported %d window(s) to %s\n", len(windows), c.File)
	return nil
}
