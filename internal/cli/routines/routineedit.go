package routines

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
)

type RoutineEditCmd struct {
	Ref   string   `arg:"" help:"Routine ID or name."`
	Name  *string  `help:"New name."`
	Days  *string  `short:"d" help:"New comma-separated weekday list."`
	Tasks []string `short:"t" help:"Replace the checklist with these 'title:minutes' items."`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	routine, err := cli.FindRoutine(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	updated := false
	if c.Name != nil {
		routine.Name = *c.Name
		updated = true
	}
	if c.Days != nil {
		days, err := cli.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		routine.Days = days
		updated = true
	}
	if len(c.Tasks) > 0 {
		items, err := parseChecklistItems(c.Tasks)
		if err != nil {
			return err
		}
		routine.Tasks = items
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := routine.Validate(); err != nil {
		return fmt.Errorf("invalid routine: %w", err)
	}
	if err := ctx.Store.UpdateRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Updated routine: %s\n", routine.Name)

	// The day set feeds the reminder triggers, so a day change must
	// propagate even when the time did not change.
	if routine.Reminder.Enabled {
		ctx.SyncReminder(routine)
	}
	return nil
}
