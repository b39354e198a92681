package tasks

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
)

type TaskDeleteCmd struct {
	Ref string `arg:"" help:"Task ID or title."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := cli.FindTask(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteTask(task.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted task: %s (restore with 'routina restore task %s')\n", task.Title, task.ID)
	return nil
}
