package models

import (
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/routina/internal/constants"
)

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid once task",
			task: Task{Title: "Pay rent", Recurrence: Recurrence{Type: constants.RecurrenceOnce}},
		},
		{
			name: "valid weekly task",
			task: Task{Title: "Gym", Recurrence: Recurrence{Type: constants.RecurrenceWeekly, WeekdayMask: []time.Weekday{time.Monday}}},
		},
		{
			name:    "empty title",
			task:    Task{Title: "   ", Recurrence: Recurrence{Type: constants.RecurrenceDaily}},
			wantErr: true,
		},
		{
			name:    "unknown recurrence type",
			task:    Task{Title: "Read", Recurrence: Recurrence{Type: "fortnightly"}},
			wantErr: true,
		},
		{
			name:    "out of range weekday",
			task:    Task{Title: "Read", Recurrence: Recurrence{Type: constants.RecurrenceWeekly, WeekdayMask: []time.Weekday{7}}},
			wantErr: true,
		},
		{
			name:    "subtask with empty title",
			task:    Task{Title: "Clean", Recurrence: Recurrence{Type: constants.RecurrenceOnce}, Subtasks: []Subtask{{Title: ""}}},
			wantErr: true,
		},
		{
			name:    "subtask with negative duration",
			task:    Task{Title: "Clean", Recurrence: Recurrence{Type: constants.RecurrenceOnce}, Subtasks: []Subtask{{Title: "Wipe", DurationMin: -5}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLastCompletionKey(t *testing.T) {
	task := Task{CompletedDates: []string{"2026-01-26", "2026-01-24", "2026-01-25"}}
	if got := task.LastCompletionKey(); got != "2026-01-26" {
		t.Errorf("LastCompletionKey() = %q, want 2026-01-26", got)
	}

	empty := Task{}
	if got := empty.LastCompletionKey(); got != "" {
		t.Errorf("LastCompletionKey() = %q for empty set", got)
	}
}

func TestHasCompletedOn(t *testing.T) {
	task := Task{CompletedDates: []string{"2026-01-26"}}
	if !task.HasCompletedOn("2026-01-26") {
		t.Error("HasCompletedOn() = false for present key")
	}
	if task.HasCompletedOn("2026-01-27") {
		t.Error("HasCompletedOn() = true for absent key")
	}
}

func TestSetRecurrenceClearsStaleState(t *testing.T) {
	task := Task{
		Title:      "Read",
		Recurrence: Recurrence{Type: constants.RecurrenceOnce},
		Completed:  true,
	}

	task.SetRecurrence(Recurrence{Type: constants.RecurrenceDaily})
	if task.Completed {
		t.Error("SetRecurrence() to recurring should clear the boolean flag")
	}

	task.CompletedDates = []string{"2026-01-26"}
	task.SetRecurrence(Recurrence{Type: constants.RecurrenceOnce})
	if task.CompletedDates != nil {
		t.Error("SetRecurrence() to once should clear the completion set")
	}
}

func TestSortCompletedDates(t *testing.T) {
	task := Task{CompletedDates: []string{"2026-02-01", "2026-01-26", "2026-01-31"}}
	task.SortCompletedDates()
	want := []string{"2026-01-26", "2026-01-31", "2026-02-01"}
	if !reflect.DeepEqual(task.CompletedDates, want) {
		t.Errorf("SortCompletedDates() = %v, want %v", task.CompletedDates, want)
	}
}
