package tasks

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
)

type TaskRestoreCmd struct {
	ID string `arg:"" help:"ID of the deleted task."`
}

func (c *TaskRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RestoreTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Restored task: %s\n", c.ID)
	return nil
}
