package routines

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/utils"
)

type RoutineAddCmd struct {
	Name  string   `arg:"" help:"Routine name."`
	Days  string   `short:"d" help:"Comma-separated weekdays the routine runs on." required:""`
	Tasks []string `short:"t" help:"Checklist item as 'title:minutes', repeatable."`
	At    string   `help:"Reminder time (HH:MM). Enables reminders for the routine."`
}

func (c *RoutineAddCmd) Validate() error {
	if c.At != "" && !utils.ValidateTimeFormat(c.At) {
		return fmt.Errorf("invalid reminder time (expected HH:MM): %s", c.At)
	}
	return nil
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	items, err := parseChecklistItems(c.Tasks)
	if err != nil {
		return err
	}

	routine := models.Routine{
		ID:        uuid.New().String(),
		Name:      c.Name,
		Days:      days,
		Tasks:     items,
		CreatedAt: time.Now(),
	}
	if c.At != "" {
		routine.Reminder = models.Reminder{Enabled: true, Time: c.At}
	}

	if err := routine.Validate(); err != nil {
		return fmt.Errorf("invalid routine: %w", err)
	}
	if err := ctx.Store.AddRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Added routine: %s (ID: %s)\n", c.Name, routine.ID)

	if routine.Reminder.Enabled {
		ctx.SyncReminder(routine)
	}
	return nil
}

// parseChecklistItems accepts "title:minutes" pairs; minutes defaults to 0
// when omitted.
func parseChecklistItems(raw []string) ([]models.RoutineTask, error) {
	var items []models.RoutineTask
	for _, entry := range raw {
		title := entry
		duration := 0

		if idx := strings.LastIndex(entry, ":"); idx > 0 {
			if parsed, err := strconv.Atoi(strings.TrimSpace(entry[idx+1:])); err == nil {
				title = strings.TrimSpace(entry[:idx])
				duration = parsed
			}
		}

		title = strings.TrimSpace(title)
		if title == "" {
			return nil, fmt.Errorf("checklist item has an empty title: %q", entry)
		}
		if duration < 0 {
			return nil, fmt.Errorf("checklist item %q has a negative duration", title)
		}

		items = append(items, models.RoutineTask{
			ID:          uuid.New().String(),
			Title:       title,
			DurationMin: duration,
		})
	}
	return items, nil
}
