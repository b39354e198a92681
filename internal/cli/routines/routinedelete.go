package routines

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/logger"
)

type RoutineDeleteCmd struct {
	Ref string `arg:"" help:"Routine ID or name."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	routine, err := cli.FindRoutine(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteRoutine(routine.ID); err != nil {
		return err
	}

	if err := ctx.Reminders.Cancel(routine.ID); err != nil {
		logger.Warn("Failed to cancel reminders for deleted routine", "routine", routine.Name, "error", err)
		fmt.Printf("Warning: reminders for %q could not be cancelled: %v\n", routine.Name, err)
	}

	fmt.Printf("Deleted routine: %s (restore with 'routina restore routine %s')\n", routine.Name, routine.ID)
	return nil
}

type RoutineRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted routine."`
}

func (c *RoutineRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreRoutine(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored routine: %s\n", c.ID)

	routine, err := ctx.Store.GetRoutine(c.ID)
	if err == nil && routine.Reminder.Enabled {
		ctx.SyncReminder(routine)
	}
	return nil
}
