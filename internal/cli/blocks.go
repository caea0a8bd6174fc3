package cli

import (
	"fmt"

	"github.com/timeblock-app/timeblock/internal/utils"
)

type BlocksCmd struct {
	From string `help:"Start of range (YYYY-MM-DD)." required:""`
	To   string `help:"End of range, exclusive (YYYY-MM-DD)." required:""`
	Task string `short:"t" help:"Limit to one task id."`
}

func (c *BlocksCmd) Run(ctx *Context) error {
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

	from, err := utils.ParseDateInLocation(c.From, loc)
	if err != nil {
		return fmt.Errorf("invalid --from date: %w", err)
	}
	to, err := utils.ParseDateInLocation(c.To, loc)
	if err != nil {
		return fmt.Errorf("invalid --to date: %w", err)
	}

	blocks := sched.GetBlocksInTimeframe(from, to)
	if c.Task != "" {
		filtered := blocks[:0]
		for _, b := range blocks {
			if b.TaskID == c.Task {
				filtered = append(filtered, b)
			}
		}
		blocks = filtered
	}

	if len(blocks) == 0 {
		fmt.Println("No blocks in range.")
		return nil
	}
	for _, b := range blocks {
		status := " "
		if b.IsCompleted {
			status = "✓"
		}
		fmt.Printf("%s %s  %s - %s  %4dm  task:%s  window:%s\n",
			status, b.ID, b.Start.Format("2006-01-02 15:04"), b.End.Format("15:04"),
			b.Duration, b.TaskID, b.TimeWindowID)
	}
	return nil
}

type CompleteCmd struct {
	Block string `arg:"" help:"Block id to mark completed."`
}

func (c *CompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.MarkBlockCompleted(c.Block); err != nil {
		return err
	}
	fmt.Printf("Marked %s completed\n", c.Block)
	return nil
}
