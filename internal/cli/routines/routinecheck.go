package routines

import (
	"fmt"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/planner"
)

type RoutineCheckCmd struct {
	Ref  string `arg:"" help:"Routine ID or name."`
	Item string `arg:"" optional:"" help:"Checklist item ID or title. Omit to show the checklist."`
}

func (c *RoutineCheckCmd) Run(ctx *cli.Context) error {
	routine, err := cli.FindRoutine(ctx.Store, c.Ref)
	if err != nil {
		return err
	}

	today := ctx.Today()

	if c.Item == "" {
		rolled, changed, err := planner.RollCycle(routine, today)
		if err != nil {
			return err
		}
		if changed {
			if err := ctx.Store.UpdateRoutine(rolled); err != nil {
				return err
			}
		}
		printChecklist(rolled)
		return nil
	}

	itemID, err := resolveItem(routine, c.Item)
	if err != nil {
		return err
	}

	toggled, err := planner.ToggleRoutineTask(routine, itemID, today)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateRoutine(toggled); err != nil {
		return err
	}

	printChecklist(toggled)
	if toggled.AllDone() {
		fmt.Printf("\n%s is all done for today!\n", toggled.Name)
	}
	return nil
}

func resolveItem(routine models.Routine, ref string) (string, error) {
	var matches []string
	for _, item := range routine.Tasks {
		if item.ID == ref {
			return item.ID, nil
		}
		if item.Title == ref {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no checklist item matching %q in %s", ref, routine.Name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("multiple checklist items titled %q, use an ID", ref)
	}
}

func printChecklist(r models.Routine) {
	done := 0
	for _, item := range r.Tasks {
		if item.Done {
			done++
		}
	}
	fmt.Printf("%s (%d/%d)\n", r.Name, done, len(r.Tasks))
	for _, item := range r.Tasks {
		mark := " "
		if item.Done {
			mark = "x"
		}
		id := item.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  [%s] %s (%dm)  %s\n", mark, item.Title, item.DurationMin, id)
	}
}
