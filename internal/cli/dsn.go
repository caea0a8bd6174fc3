package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/timeblock-app/timeblock/internal/keyring"
)

type DSNSetCmd struct {
	DSN string `arg:"" optional:"" help:"PostgreSQL connection string. Prompted for if omitted."`
}

func (c *DSNSetCmd) Run(ctx *Context) error {
	dsn := c.DSN
	if dsn == "" {
		// Prompt instead of requiring the secret on the command line, where
		// it would end up in shell history.
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("PostgreSQL connection string").
					EchoMode(huh.EchoModePassword).
					Value(&dsn),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}
	if err := keyring.SetConnectionString(dsn); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type DSNClearCmd struct{}

func (c *DSNClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Connection string removed from OS keyring.")
	return nil
}
