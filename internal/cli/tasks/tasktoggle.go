package tasks

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/planner"
)

type TaskToggleCmd struct {
	Ref  string `arg:"" help:"Task ID or title."`
	Date string `short:"d" help:"Toggle for a specific day (YYYY-MM-DD) instead of today."`
}

func (c *TaskToggleCmd) Run(ctx *cli.Context) error {
	task, err := cli.FindTask(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	day := ctx.Today()
	if c.Date != "" {
		day = c.Date
	}

	toggled, err := planner.Toggle(task, day)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateTask(toggled); err != nil {
		return err
	}

	status, err := planner.Evaluate(toggled, day)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now %s for %s\n", toggled.Title, status, day)
	return nil
}
