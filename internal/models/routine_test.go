package models

import (
	"testing"
	"time"
)

func TestRoutineValidate(t *testing.T) {
	tests := []struct {
		name    string
		routine Routine
		wantErr bool
	}{
		{
			name:    "valid routine",
			routine: Routine{Name: "Morning", Days: []time.Weekday{time.Monday}},
		},
		{
			name:    "valid with reminder",
			routine: Routine{Name: "Evening", Days: []time.Weekday{time.Friday}, Reminder: Reminder{Enabled: true, Time: "21:00"}},
		},
		{
			name:    "empty name",
			routine: Routine{Name: " "},
			wantErr: true,
		},
		{
			name:    "bad weekday",
			routine: Routine{Name: "Morning", Days: []time.Weekday{8}},
			wantErr: true,
		},
		{
			name:    "enabled reminder with bad time",
			routine: Routine{Name: "Morning", Days: []time.Weekday{time.Monday}, Reminder: Reminder{Enabled: true, Time: "9pm"}},
			wantErr: true,
		},
		{
			name:    "disabled reminder time not checked",
			routine: Routine{Name: "Morning", Days: []time.Weekday{time.Monday}, Reminder: Reminder{Enabled: false, Time: "bogus"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.routine.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAllDone(t *testing.T) {
	empty := Routine{}
	if empty.AllDone() {
		t.Error("AllDone() = true for routine with no tasks")
	}

	partial := Routine{Tasks: []RoutineTask{{Done: true}, {Done: false}}}
	if partial.AllDone() {
		t.Error("AllDone() = true with an undone item")
	}

	full := Routine{Tasks: []RoutineTask{{Done: true}, {Done: true}}}
	if !full.AllDone() {
		t.Error("AllDone() = false with all items done")
	}
}

func TestDayLabel(t *testing.T) {
	if got := DayLabel(time.Wednesday); got != "wednesday" {
		t.Errorf("DayLabel() = %q, want wednesday", got)
	}
}
