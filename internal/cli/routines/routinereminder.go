package routines

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/utils"
)

type RoutineReminderCmd struct {
	Ref     string `arg:"" help:"Routine ID or name."`
	At      string `help:"Reminder time (HH:MM)."`
	Disable bool   `help:"Disable reminders for this routine."`
}

func (c *RoutineReminderCmd) Validate() error {
	if c.At != "" && c.Disable {
		return fmt.Errorf("--at and --disable are mutually exclusive")
	}
	if c.At != "" && !utils.ValidateTimeFormat(c.At) {
		return fmt.Errorf("invalid reminder time (expected HH:MM): %s", c.At)
	}
	return nil
}

func (c *RoutineReminderCmd) Run(ctx *cli.Context) error {
	routine, err := cli.FindRoutine(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	switch {
	case c.Disable:
		routine.Reminder.Enabled = false
	case c.At != "":
		routine.Reminder.Enabled = true
		routine.Reminder.Time = c.At
	default:
		if routine.Reminder.Enabled {
			fmt.Printf("%s reminds at %s on %s\n", routine.Name, routine.Reminder.Time, cli.FormatDays(routine.Days))
		} else {
			fmt.Printf("%s has no reminder. Set one with --at HH:MM\n", routine.Name)
		}
		return nil
	}

	if err := ctx.Store.UpdateRoutine(routine); err != nil {
		return err
	}
	ctx.SyncReminder(routine)

	if routine.Reminder.Enabled {
		fmt.Printf("%s will remind at %s on %s\n", routine.Name, routine.Reminder.Time, cli.FormatDays(routine.Days))
	} else {
		fmt.Printf("Reminders disabled for %s\n", routine.Name)
	}
	return nil
}
