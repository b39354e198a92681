package planner

import (
	"fmt"

	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/utils"
)

// RoutineScheduledOn reports whether the routine runs on the day identified
// by the given key.
func RoutineScheduledOn(r models.Routine, today string) (bool, error) {
	wd, err := utils.WeekdayOf(today)
	if err != nil {
		return false, err
	}
	return r.ScheduledOn(wd), nil
}

// RollCycle advances the routine's checklist cycle to `today` if today is a
// scheduled day later than the recorded cycle day, clearing every per-task
// Done flag. It returns the (possibly updated) routine and whether a reset
// happened. Calling it on an off-day or on the same cycle day is a no-op, so
// it is safe to apply before every read or mutation.
func RollCycle(r models.Routine, today string) (models.Routine, bool, error) {
	scheduled, err := RoutineScheduledOn(r, today)
	if err != nil {
		return r, false, err
	}
	if !scheduled {
		return r, false, nil
	}
	// Day keys compare chronologically as strings.
	if r.LastCycleDay >= today {
		return r, false, nil
	}

	tasks := make([]models.RoutineTask, len(r.Tasks))
	copy(tasks, r.Tasks)
	for i := range tasks {
		tasks[i].Done = false
	}
	r.Tasks = tasks
	r.LastCycleDay = today
	return r, true, nil
}

// ToggleRoutineTask flips one checklist item for today's cycle, rolling the
// cycle first so a stale checklist from the previous scheduled day never
// absorbs today's toggle.
func ToggleRoutineTask(r models.Routine, taskID, today string) (models.Routine, error) {
	r, _, err := RollCycle(r, today)
	if err != nil {
		return r, err
	}

	tasks := make([]models.RoutineTask, len(r.Tasks))
	copy(tasks, r.Tasks)
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Done = !tasks[i].Done
			r.Tasks = tasks
			return r, nil
		}
	}
	return r, fmt.Errorf("routine task not found: %s", taskID)
}
