package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/timeblock-app/timeblock/internal/tui"
	"github.com/timeblock-app/timeblock/internal/utils"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
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
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	p := tea.NewProgram(tui.NewModel(ctx.Store, sched, today), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
