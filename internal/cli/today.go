package cli

import (
	"fmt"

	"github.com/julianstephens/routina/internal/planner"
	"github.com/julianstephens/routina/internal/streak"
	"github.com/julianstephens/routina/internal/utils"
)

type TodayCmd struct {
	Date string `short:"d" help:"Show the plan for a specific day (YYYY-MM-DD) instead of today."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	today := ctx.Today()
	if c.Date != "" {
		normalized, err := normalizeDayArg(c.Date, ctx)
		if err != nil {
			return err
		}
		today = normalized
	}

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}
	part, err := planner.PartitionTasks(tasks, today)
	if err != nil {
		return err
	}

	fmt.Printf("Plan for %s\n\n", today)

	fmt.Printf("Pending (%d):\n", len(part.Pending))
	if len(part.Pending) == 0 {
		fmt.Println("  nothing left, nice work")
	}
	for _, task := range part.Pending {
		fmt.Printf("  [ ] %s %s (%s)\n", task.Emoji, task.Title, FormatRecurrence(task.Recurrence))
	}

	fmt.Printf("\nCompleted (%d):\n", len(part.Completed))
	for _, task := range part.Completed {
		fmt.Printf("  [x] %s %s\n", task.Emoji, task.Title)
	}

	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return err
	}
	var printed bool
	for _, routine := range routines {
		scheduled, err := planner.RoutineScheduledOn(routine, today)
		if err != nil || !scheduled {
			continue
		}
		if !printed {
			fmt.Println("\nRoutines:")
			printed = true
		}
		rolled, _, err := planner.RollCycle(routine, today)
		if err != nil {
			return err
		}
		done := 0
		for _, item := range rolled.Tasks {
			if item.Done {
				done++
			}
		}
		fmt.Printf("  %s (%d/%d)\n", rolled.Name, done, len(rolled.Tasks))
		for _, item := range rolled.Tasks {
			mark := " "
			if item.Done {
				mark = "x"
			}
			fmt.Printf("    [%s] %s (%dm)\n", mark, item.Title, item.DurationMin)
		}
	}

	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	today := ctx.Today()

	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	var printed bool
	for _, task := range tasks {
		if !task.Recurrence.IsRecurring() {
			continue
		}
		printed = true

		length, err := streak.Length(task.CompletedDates, today)
		if err != nil {
			return fmt.Errorf("streak for %q: %w", task.Title, err)
		}
		alive, err := streak.IsAlive(task.LastCompletionKey(), today)
		if err != nil {
			return fmt.Errorf("streak for %q: %w", task.Title, err)
		}

		state := "broken"
		if alive {
			state = "alive"
			if streak.HasCountedToday(task.LastCompletionKey(), today) {
				state = "counted today"
			}
		}
		if length == 0 {
			state = "not started"
		}
		fmt.Printf("  %s %s: %d day(s), %s\n", task.Emoji, task.Title, length, state)
	}

	if !printed {
		fmt.Println("No recurring tasks yet.")
	}
	return nil
}

func normalizeDayArg(raw string, ctx *Context) (string, error) {
	normalized, err := utils.Normalize(raw, ctx.Location())
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return normalized, nil
}
