package planner

import (
	"testing"
	"time"

	"github.com/julianstephens/routina/internal/models"
)

func morningRoutine() models.Routine {
	return models.Routine{
		ID:   "r-morning",
		Name: "Morning",
		Days: []time.Weekday{time.Monday, time.Wednesday},
		Tasks: []models.RoutineTask{
			{ID: "rt-1", Title: "Make bed", Done: true},
			{ID: "rt-2", Title: "Meditate", Done: true},
		},
		LastCycleDay: monday,
	}
}

func TestRollCycle(t *testing.T) {
	tests := []struct {
		name      string
		today     string
		wantReset bool
	}{
		{name: "same cycle day is a no-op", today: monday, wantReset: false},
		{name: "off day is a no-op", today: tuesday, wantReset: false},
		{name: "next scheduled day resets", today: wednesday, wantReset: true},
		{name: "a later week resets", today: nextMonday, wantReset: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, reset, err := RollCycle(morningRoutine(), tt.today)
			if err != nil {
				t.Fatalf("RollCycle() error = %v", err)
			}
			if reset != tt.wantReset {
				t.Fatalf("RollCycle() reset = %v, want %v", reset, tt.wantReset)
			}
			if tt.wantReset {
				if r.LastCycleDay != tt.today {
					t.Errorf("LastCycleDay = %q, want %q", r.LastCycleDay, tt.today)
				}
				for _, task := range r.Tasks {
					if task.Done {
						t.Errorf("task %s still done after reset", task.ID)
					}
				}
			} else {
				if r.LastCycleDay != monday {
					t.Errorf("LastCycleDay = %q, want unchanged %q", r.LastCycleDay, monday)
				}
				if !r.Tasks[0].Done {
					t.Error("no-op roll must not clear checklist")
				}
			}
		})
	}
}

func TestRollCycle_DoesNotMutateInput(t *testing.T) {
	r := morningRoutine()
	if _, _, err := RollCycle(r, wednesday); err != nil {
		t.Fatalf("RollCycle() error = %v", err)
	}
	if !r.Tasks[0].Done {
		t.Error("RollCycle() mutated its input's checklist")
	}
}

func TestToggleRoutineTask(t *testing.T) {
	r := morningRoutine()

	// Toggling on the next scheduled day first resets the stale checklist,
	// then flips the requested item.
	got, err := ToggleRoutineTask(r, "rt-1", wednesday)
	if err != nil {
		t.Fatalf("ToggleRoutineTask() error = %v", err)
	}
	if !got.Tasks[0].Done {
		t.Error("rt-1 should be done after toggle")
	}
	if got.Tasks[1].Done {
		t.Error("rt-2 should have been reset by the new cycle")
	}
	if got.LastCycleDay != wednesday {
		t.Errorf("LastCycleDay = %q, want %q", got.LastCycleDay, wednesday)
	}

	// Same-day double toggle is a round trip.
	got, err = ToggleRoutineTask(got, "rt-1", wednesday)
	if err != nil {
		t.Fatalf("ToggleRoutineTask() error = %v", err)
	}
	if got.Tasks[0].Done {
		t.Error("double toggle should leave rt-1 unchecked")
	}
}

func TestToggleRoutineTask_UnknownID(t *testing.T) {
	if _, err := ToggleRoutineTask(morningRoutine(), "missing", monday); err == nil {
		t.Error("ToggleRoutineTask() with unknown id should fail")
	}
}

func TestRoutineScheduledOn(t *testing.T) {
	r := morningRoutine()

	on, err := RoutineScheduledOn(r, monday)
	if err != nil || !on {
		t.Errorf("RoutineScheduledOn(monday) = %v, %v; want true", on, err)
	}
	on, err = RoutineScheduledOn(r, tuesday)
	if err != nil || on {
		t.Errorf("RoutineScheduledOn(tuesday) = %v, %v; want false", on, err)
	}
}
