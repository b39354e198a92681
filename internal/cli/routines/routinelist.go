package routines

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
)

type RoutineListCmd struct {
	Long bool `short:"l" help:"Show full IDs and checklist items."`
}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return err
	}

	if len(routines) == 0 {
		fmt.Println("No routines yet. Add one with 'routina routine add'.")
		return nil
	}

	for _, routine := range routines {
		id := routine.ID
		if !c.Long && len(id) > 8 {
			id = id[:8]
		}

		reminder := "no reminder"
		if routine.Reminder.Enabled {
			reminder = "reminds at " + routine.Reminder.Time
		}
		fmt.Printf("%s  %s  on %s, %s\n", id, routine.Name, cli.FormatDays(routine.Days), reminder)

		if c.Long {
			for _, item := range routine.Tasks {
				mark := " "
				if item.Done {
					mark = "x"
				}
				fmt.Printf("    [%s] %s (%dm)\n", mark, item.Title, item.DurationMin)
			}
		}
	}

	return nil
}
