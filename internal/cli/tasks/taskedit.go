package tasks

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/models"
)

type TaskEditCmd struct {
	Ref        string  `arg:"" help:"Task ID or title."`
	Title      *string `help:"New title."`
	Emoji      *string `help:"New emoji."`
	Recurrence *string `short:"r" help:"New recurrence type (once|daily|weekly|monthly)."`
	Weekdays   *string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	task, err := cli.FindTask(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	updated := false
	if c.Title != nil {
		task.Title = *c.Title
		updated = true
	}
	if c.Emoji != nil {
		task.Emoji = *c.Emoji
		updated = true
	}

	if c.Recurrence != nil || c.Weekdays != nil {
		rec := task.Recurrence
		if c.Recurrence != nil {
			rec = models.Recurrence{Type: constants.RecurrenceType(*c.Recurrence)}
		}
		if c.Weekdays != nil {
			wds, err := cli.ParseWeekdays(*c.Weekdays)
			if err != nil {
				return err
			}
			rec.WeekdayMask = wds
		}
		// Changing representation clears completion state that the new
		// recurrence kind cannot express.
		task.SetRecurrence(rec)
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified.")
		return nil
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.UpdateTask(task); err != nil {
		return err
	}

	fmt.Printf("Updated task: %s\n", task.Title)
	return nil
}
