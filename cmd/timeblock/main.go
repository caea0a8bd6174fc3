package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/timeblock-app/timeblock/internal/cli"
	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/errors"
	"github.com/timeblock-app/timeblock/internal/keyring"
	"github.com/timeblock-app/timeblock/internal/logger"
	"github.com/timeblock-app/timeblock/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/timeblock/timeblock.db"`
	DSN     string `help:"PostgreSQL connection string (overrides keyring)."`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      cli.InitCmd      `cmd:"" help:"Initialize timeblock storage."`
	Schedule  cli.ScheduleCmd  `cmd:"" help:"Place a task's minutes into time blocks."`
	Agenda    cli.AgendaCmd    `cmd:"" help:"Show scheduled blocks for a day."`
	Blocks    cli.BlocksCmd    `cmd:"" help:"List blocks in a time range."`
	Complete  cli.CompleteCmd  `cmd:"" help:"Mark a block completed."`
	Conflicts cli.ConflictsCmd `cmd:"" help:"Find tasks with overlapping blocks."`
	Urgency   cli.UrgencyCmd   `cmd:"" help:"Rank tasks by urgency score."`
	Doctor    cli.DoctorCmd    `cmd:"" help:"Check storage and configuration health."`
	Tui       cli.TuiCmd       `cmd:"" help:"Launch the interactive agenda."`
	Window    struct {
		Add    cli.WindowAddCmd    `cmd:"" help:"Add a time window."`
		List   cli.WindowListCmd   `cmd:"" help:"List configured windows."`
		Delete cli.WindowDeleteCmd `cmd:"" help:"Delete a window."`
		Import cli.WindowImportCmd `cmd:"" help:"Import windows from YAML."`
		Export cli.WindowExportCmd `cmd:"" help:"Export windows to YAML."`
	} `cmd:"" help:"Manage availability windows."`
	Task struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a task."`
		List   cli.TaskListCmd   `cmd:"" help:"List tasks."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task and its blocks."`
	} `cmd:"" help:"Manage tasks."`
	DSNCmd struct {
		Set   cli.DSNSetCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Clear cli.DSNClearCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" name:"dsn" help:"Manage database credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Deadline-task to time-block scheduler."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatal(err)
	}

	// Backend resolution: explicit DSN flag, then keyring, then local file.
	configPath := CLI.Config
	if CLI.DSN != "" {
		configPath = CLI.DSN
	} else if dsn, err := keyring.GetConnectionString(); err == nil && dsn != "" {
		configPath = dsn
	}

	appCtx := &cli.Context{
		Store: storage.NewProvider(configPath),
	}
	defer func() {
		if err := appCtx.Store.Close(); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
