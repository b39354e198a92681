package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/cli/routines"
	"github.com/julianstephens/routina/internal/cli/settings"
	"github.com/julianstephens/routina/internal/cli/system"
	"github.com/julianstephens/routina/internal/cli/tasks"
	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/logger"
	"github.com/julianstephens/routina/internal/notify"
	"github.com/julianstephens/routina/internal/reminder"
	"github.com/julianstephens/routina/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json extension selects the JSON store, anything else SQLite." type:"string" default:"~/.config/routina/routina.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize routina storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive today view." default:"1"`
	Today  cli.TodayCmd     `cmd:"" help:"Show today's pending and completed tasks."`
	Streak cli.StreakCmd    `cmd:"" help:"Show streaks for recurring tasks."`
	Task   struct {
		Add    tasks.TaskAddCmd    `cmd:"" help:"Add a new task."`
		List   tasks.TaskListCmd   `cmd:"" help:"List all tasks."`
		Edit   tasks.TaskEditCmd   `cmd:"" help:"Edit an existing task."`
		Toggle tasks.TaskToggleCmd `cmd:"" help:"Toggle a task's completion for a day."`
		Split  tasks.TaskSplitCmd  `cmd:"" help:"Split a description into a task with subtasks."`
		Delete tasks.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`
	Routine struct {
		Add      routines.RoutineAddCmd      `cmd:"" help:"Add a new routine."`
		List     routines.RoutineListCmd     `cmd:"" help:"List all routines."`
		Edit     routines.RoutineEditCmd     `cmd:"" help:"Edit an existing routine."`
		Check    routines.RoutineCheckCmd    `cmd:"" help:"Show or toggle a routine's checklist."`
		Reminder routines.RoutineReminderCmd `cmd:"" help:"Show or change a routine's reminder."`
		Delete   routines.RoutineDeleteCmd   `cmd:"" help:"Delete a routine."`
	} `cmd:"" help:"Manage routines."`
	Restore struct {
		Task    tasks.TaskRestoreCmd       `cmd:"" help:"Restore a deleted task."`
		Routine routines.RoutineRestoreCmd `cmd:"" help:"Restore a deleted routine."`
	} `cmd:"" help:"Restore deleted items."`
	Remind struct {
		Sync  system.RemindSyncCmd  `cmd:"" help:"Push reminder triggers to the tray agent."`
		List  system.RemindListCmd  `cmd:"" help:"List declared reminder triggers."`
		Serve system.RemindServeCmd `cmd:"" help:"Run an in-process reminder dispatcher."`
	} `cmd:"" help:"Manage reminder notifications."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the splitter API key in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the splitter API key from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the splitter API key."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Schedule a test notification."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal task and routine planner with streaks and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}

	var store storage.Provider
	if strings.HasSuffix(configPath, ".json") {
		store = storage.NewJSONStore(configPath)
	} else {
		store = storage.NewSQLiteStore(configPath)
	}

	tray := notify.NewTrayScheduler()
	appCtx := &cli.Context{
		Store:     store,
		Notify:    tray,
		Reminders: reminder.New(tray),
	}

	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer store.Close()

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
