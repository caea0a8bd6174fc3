package cli

import (
	"fmt"

	"github.com/timeblock-app/timeblock/internal/config"
	"github.com/timeblock-app/timeblock/internal/validation"
)

type InitCmd struct {
	Windows string `short:"w" help:"YAML file of time windows to seed instead of the defaults." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	if c.Windows != "" {
		windows, err := config.LoadWindows(c.Windows)
		if err != nil {
			return err
		}
		result := validation.New().ValidateWindows(windows)
		if result.HasConflicts() {
			return fmt.Errorf("window config rejected:\n%s", result.FormatReport())
		}
		if err := ctx.Store.ReplaceWindows(windows); err != nil {
			return err
		}
	}

	fmt.Printf("Initialized timeblock storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}
