package tasks

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/planner"
)

type TaskListCmd struct {
	Long bool `short:"l" help:"Show full IDs and subtasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet. Add one with 'routina task add'.")
		return nil
	}

	today := ctx.Today()
	for _, task := range tasks {
		status, err := planner.Evaluate(task, today)
		if err != nil {
			return err
		}

		id := task.ID
		if !c.Long && len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("%s  %s %s  [%s]  %s\n", id, task.Emoji, task.Title, status, cli.FormatRecurrence(task.Recurrence))

		if c.Long {
			for _, sub := range task.Subtasks {
				fmt.Printf("    - %s (%dm)\n", sub.Title, sub.DurationMin)
			}
		}
	}

	return nil
}
