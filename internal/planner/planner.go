// Package planner evaluates pending/completed status for tasks and routines
// against a single day key. All functions are pure: they never touch storage
// and only fail on malformed day keys. Callers must pass the same `today` key
// to the due-check and the toggle of one user action, so a toggle spanning
// local midnight cannot write to the wrong day.
package planner

import (
	"fmt"

	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/utils"
)

// Status classifies a task for a given day. Every task lands in exactly one
// class; NotScheduled tasks are omitted from both visible lists.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	StatusNotScheduled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	case StatusNotScheduled:
		return "not-scheduled-today"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Evaluate classifies a task for the given day key.
//
// Once tasks are always relevant: pending until their boolean flips. Daily and
// monthly tasks are pending unless today's key is in the completion set.
// Weekly tasks are only scheduled on masked weekdays; on other days they are
// NotScheduled so a Tuesday-only task never clutters Wednesday's lists. A
// weekly task with an empty mask is never due.
func Evaluate(t models.Task, today string) (Status, error) {
	switch t.Recurrence.Type {
	case constants.RecurrenceOnce:
		if t.Completed {
			return StatusCompleted, nil
		}
		return StatusPending, nil
	case constants.RecurrenceDaily, constants.RecurrenceMonthly:
		if t.HasCompletedOn(today) {
			return StatusCompleted, nil
		}
		return StatusPending, nil
	case constants.RecurrenceWeekly:
		wd, err := utils.WeekdayOf(today)
		if err != nil {
			return StatusNotScheduled, err
		}
		if !t.Recurrence.ContainsWeekday(wd) {
			return StatusNotScheduled, nil
		}
		if t.HasCompletedOn(today) {
			return StatusCompleted, nil
		}
		return StatusPending, nil
	default:
		// Unknown types are treated as never scheduled to stay total.
		return StatusNotScheduled, nil
	}
}

// IsDueToday reports whether the task is pending for the given day key.
func IsDueToday(t models.Task, today string) (bool, error) {
	status, err := Evaluate(t, today)
	if err != nil {
		return false, err
	}
	return status == StatusPending, nil
}

// Toggle flips the task's completion state for the given day key and returns
// the updated task. For once tasks this flips the boolean; for recurring
// tasks it flips set membership of today's key, so toggling twice in the same
// day is a round trip back to the original state.
func Toggle(t models.Task, today string) (models.Task, error) {
	if !t.Recurrence.IsRecurring() {
		t.Completed = !t.Completed
		return t, nil
	}

	if _, err := utils.ParseKey(today); err != nil {
		return t, err
	}

	if t.HasCompletedOn(today) {
		dates := make([]string, 0, len(t.CompletedDates)-1)
		for _, d := range t.CompletedDates {
			if d != today {
				dates = append(dates, d)
			}
		}
		t.CompletedDates = dates
		return t, nil
	}

	t.CompletedDates = append(append([]string(nil), t.CompletedDates...), today)
	t.SortCompletedDates()
	return t, nil
}

// Partition holds the two visible lists for a day. Tasks not scheduled today
// appear in neither.
type Partition struct {
	Pending   []models.Task
	Completed []models.Task
}

// PartitionTasks classifies every task for the given day key.
func PartitionTasks(tasks []models.Task, today string) (Partition, error) {
	var p Partition
	for _, t := range tasks {
		status, err := Evaluate(t, today)
		if err != nil {
			return Partition{}, err
		}
		switch status {
		case StatusPending:
			p.Pending = append(p.Pending, t)
		case StatusCompleted:
			p.Completed = append(p.Completed, t)
		}
	}
	return p, nil
}
