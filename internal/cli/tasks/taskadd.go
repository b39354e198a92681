package tasks

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/models"
)

type TaskAddCmd struct {
	Title      string `arg:"" help:"Task title."`
	Emoji      string `short:"e" help:"Emoji shown next to the task."`
	Recurrence string `short:"r" help:"Recurrence type (once|daily|weekly|monthly)." default:"once"`
	Weekdays   string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
}

func (c *TaskAddCmd) Validate() error {
	switch c.Recurrence {
	case "once", "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("invalid recurrence type: %s", c.Recurrence)
	}

	if c.Recurrence == "weekly" && c.Weekdays == "" {
		return fmt.Errorf("weekdays must be specified for weekly recurrence")
	}
	if c.Recurrence != "weekly" && c.Weekdays != "" {
		return fmt.Errorf("--weekdays only applies to weekly recurrence")
	}

	return nil
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	rec := models.Recurrence{Type: constants.RecurrenceType(c.Recurrence)}
	if c.Recurrence == "weekly" {
		wds, err := cli.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		rec.WeekdayMask = wds
	}

	task := models.Task{
		ID:         uuid.New().String(),
		Title:      c.Title,
		Emoji:      c.Emoji,
		Recurrence: rec,
		CreatedAt:  time.Now(),
	}

	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}

	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", c.Title, task.ID)
	return nil
}
