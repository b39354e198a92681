package system

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/logger"
	"github.com/julianstephens/routina/internal/notify"
	"github.com/julianstephens/routina/internal/reminder"
)

// RemindSyncCmd pushes every routine's reminder triggers to the tray agent.
// Safe to run repeatedly; unchanged routines are skipped.
type RemindSyncCmd struct{}

func (c *RemindSyncCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return err
	}

	synced := 0
	for _, routine := range routines {
		triggers, err := ctx.Reminders.Reschedule(routine)
		if err != nil {
			return fmt.Errorf("failed to sync %q: %w", routine.Name, err)
		}
		if routine.Reminder.Enabled {
			synced += len(triggers)
		}
	}

	fmt.Printf("Synced %d trigger(s) across %d routine(s)\n", synced, len(routines))
	return nil
}

// RemindListCmd shows the triggers currently declared with the scheduler.
type RemindListCmd struct{}

func (c *RemindListCmd) Run(ctx *cli.Context) error {
	triggers, err := ctx.Notify.ListDeclared()
	if err != nil {
		return err
	}

	if len(triggers) == 0 {
		fmt.Println("No triggers declared.")
		return nil
	}
	for _, t := range triggers {
		fmt.Printf("%s  %02d:%02d  %s\n", t.Identifier, t.Hour, t.Minute, t.Title)
	}
	return nil
}

// RemindServeCmd runs an in-process reminder dispatcher for setups without
// the tray agent. It loads every enabled routine, registers its triggers
// with a cron runner, and blocks until interrupted.
type RemindServeCmd struct{}

func (c *RemindServeCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return err
	}

	mem := notify.NewMemoryScheduler()
	declared := 0
	for _, routine := range routines {
		triggers, err := reminder.BuildTriggers(routine)
		if err != nil {
			return fmt.Errorf("failed to build triggers for %q: %w", routine.Name, err)
		}
		for _, t := range triggers {
			if err := mem.Declare(t); err != nil {
				return err
			}
			declared++
		}
	}

	if declared == 0 {
		fmt.Println("No enabled reminders. Nothing to serve.")
		return nil
	}

	send := func(title, body string) error {
		fmt.Printf("\a[reminder] %s: %s\n", title, body)
		logger.Info("Reminder fired", "title", title)
		return nil
	}

	dispatcher := notify.NewDispatcher(mem, send, ctx.Location())

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving %d reminder(s), press Ctrl+C to stop\n", declared)
	return dispatcher.Start(runCtx)
}
