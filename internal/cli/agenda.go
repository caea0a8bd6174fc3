package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/timeblock-app/timeblock/internal/models"
	"github.com/timeblock-app/timeblock/internal/utils"
)

var (
	agendaDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	agendaDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)
)

type AgendaCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
	Days int    `short:"n" help:"Number of days to show." default:"1"`
}

func (c *AgendaCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	sched, settings, err := ctx.BuildScheduler()
	if err != nil {
		return err
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	var day time.Time
	if c.Date == "today" {
		now := time.Now().In(loc)
		day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		day, err = utils.ParseDateInLocation(c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	titles := make(map[string]string, len(tasks))
	for _, t := range tasks {
		titles[t.ID] = t.Title
	}

	for i := 0; i < c.Days; i++ {
		current := day.AddDate(0, 0, i)
		blocks := sched.GetBlocksInTimeframe(current, current.AddDate(0, 0, 1))

		fmt.Println(agendaDayStyle.Render(current.Format("Monday, 2006-01-02")))
		if len(blocks) == 0 {
			fmt.Println("  nothing scheduled")
			continue
		}
		for _, b := range blocks {
			fmt.Println("  " + renderBlockLine(b, titles[b.TaskID]))
		}
	}
	return nil
}

func renderBlockLine(b models.TimeBlockInfo, title string) string {
	if title == "" {
		title = b.TaskID
	}
	line := fmt.Sprintf("%s - %s  %-30s %4dm  [%s]",
		b.Start.Format("15:04"), b.End.Format("15:04"), title, b.Duration, b.ID)
	if b.IsCompleted {
		return agendaDoneStyle.Render(line)
	}
	return line
}
