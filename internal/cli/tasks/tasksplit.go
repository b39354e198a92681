package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/splitter"
)

type TaskSplitCmd struct {
	Description string `arg:"" help:"Free-form description of the task to split."`
	Recurrence  string `short:"r" help:"Recurrence type for the created task (once|daily|weekly|monthly)." default:"once"`
	Weekdays    string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	Yes         bool   `short:"y" help:"Accept the suggestion without the confirmation prompt."`
}

func (c *TaskSplitCmd) Validate() error {
	switch c.Recurrence {
	case "once", "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("invalid recurrence type: %s", c.Recurrence)
	}
	if c.Recurrence == "weekly" && c.Weekdays == "" {
		return fmt.Errorf("weekdays must be specified for weekly recurrence")
	}
	return nil
}

func (c *TaskSplitCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	client, err := splitter.NewClientFromKeyring(settings.SplitterBaseURL)
	if err != nil {
		return err
	}

	fmt.Println("Splitting task...")
	result, err := client.Split(context.Background(), c.Description)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s %s\n", result.Emoji, result.Title)
	for _, sub := range result.Tasks {
		fmt.Printf("  - %s (%dm)\n", sub.Title, sub.DurationMin)
	}
	fmt.Println()

	if !c.Yes {
		accept := true
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Save this task?").
					Value(&accept),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		if !accept {
			fmt.Println("Discarded.")
			return nil
		}
	}

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
		Title:      result.Title,
		Emoji:      result.Emoji,
		Subtasks:   result.Tasks,
		Recurrence: rec,
		CreatedAt:  time.Now(),
	}
	if err := task.Validate(); err != nil {
		return fmt.Errorf("invalid task: %w", err)
	}
	if err := ctx.Store.AddTask(task); err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}
