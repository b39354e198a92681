package reminder

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/notify"
)

func eveningRoutine() models.Routine {
	return models.Routine{
		ID:   "ev1",
		Name: "Evening winddown",
		Days: []time.Weekday{time.Tuesday, time.Thursday},
		Reminder: models.Reminder{
			Enabled: true,
			Time:    "08:00",
		},
	}
}

func TestIdentifier(t *testing.T) {
	got := Identifier("ev1", time.Tuesday)
	want := "routine_ev1_tuesday"
	if got != want {
		t.Errorf("Identifier() = %q, want %q", got, want)
	}
}

func TestBuildTriggers(t *testing.T) {
	triggers, err := BuildTriggers(eveningRoutine())
	if err != nil {
		t.Fatalf("BuildTriggers() error = %v", err)
	}
	if len(triggers) != 2 {
		t.Fatalf("BuildTriggers() returned %d triggers, want 2", len(triggers))
	}

	wantIDs := []string{"routine_ev1_tuesday", "routine_ev1_thursday"}
	for i, tr := range triggers {
		if tr.Identifier != wantIDs[i] {
			t.Errorf("trigger %d identifier = %q, want %q", i, tr.Identifier, wantIDs[i])
		}
		if tr.Hour != 8 || tr.Minute != 0 {
			t.Errorf("trigger %d time = %02d:%02d, want 08:00", i, tr.Hour, tr.Minute)
		}
		if tr.Body == "" {
			t.Errorf("trigger %d has empty body", i)
		}
		if tr.Title != "Evening winddown" {
			t.Errorf("trigger %d title = %q", i, tr.Title)
		}
	}

	// wire weekdays: Tuesday=3, Thursday=5 in the 1..7 (1=Sunday) convention
	if triggers[0].Weekday != 3 || triggers[1].Weekday != 5 {
		t.Errorf("wire weekdays = %d,%d; want 3,5", triggers[0].Weekday, triggers[1].Weekday)
	}
}

func TestBuildTriggers_Disabled(t *testing.T) {
	r := eveningRoutine()
	r.Reminder.Enabled = false

	triggers, err := BuildTriggers(r)
	if err != nil {
		t.Fatalf("BuildTriggers() error = %v", err)
	}
	if len(triggers) != 0 {
		t.Errorf("disabled reminder built %d triggers, want 0", len(triggers))
	}
}

func TestBuildTriggers_BadTime(t *testing.T) {
	r := eveningRoutine()
	r.Reminder.Time = "8 o'clock"
	if _, err := BuildTriggers(r); err == nil {
		t.Error("BuildTriggers() with bad time should fail")
	}
}

func TestReschedule_Idempotent(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	s := New(mem)
	r := eveningRoutine()

	first, err := s.Reschedule(r)
	if err != nil {
		t.Fatalf("first Reschedule() error = %v", err)
	}
	declared1, _ := mem.ListDeclared()

	second, err := s.Reschedule(r)
	if err != nil {
		t.Fatalf("second Reschedule() error = %v", err)
	}
	declared2, _ := mem.ListDeclared()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("returned sets differ between calls:\n%v\n%v", first, second)
	}
	if !reflect.DeepEqual(declared1, declared2) {
		t.Errorf("declared sets differ between calls:\n%v\n%v", declared1, declared2)
	}
	if len(declared1) != 2 {
		t.Errorf("declared %d triggers, want 2", len(declared1))
	}
}

func TestReschedule_RemovedDayCancelsTrigger(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	s := New(mem)
	r := eveningRoutine()

	if _, err := s.Reschedule(r); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	r.Days = []time.Weekday{time.Tuesday}
	if _, err := s.Reschedule(r); err != nil {
		t.Fatalf("Reschedule() after day removal error = %v", err)
	}

	declared, err := mem.ListDeclared()
	if err != nil {
		t.Fatalf("ListDeclared() error = %v", err)
	}
	if len(declared) != 1 {
		t.Fatalf("declared %d triggers, want 1", len(declared))
	}
	if declared[0].Identifier != "routine_ev1_tuesday" {
		t.Errorf("remaining trigger = %q, want routine_ev1_tuesday", declared[0].Identifier)
	}
}

func TestReschedule_DisableCancelsAll(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	s := New(mem)
	r := eveningRoutine()

	if _, err := s.Reschedule(r); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	r.Reminder.Enabled = false
	triggers, err := s.Reschedule(r)
	if err != nil {
		t.Fatalf("Reschedule() with disabled reminder error = %v", err)
	}
	if len(triggers) != 0 {
		t.Errorf("disabled reschedule returned %d triggers, want 0", len(triggers))
	}

	declared, _ := mem.ListDeclared()
	if len(declared) != 0 {
		t.Errorf("%d triggers still declared after disable, want 0", len(declared))
	}
}

func TestReschedule_TimeChangeRedeclares(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	s := New(mem)
	r := eveningRoutine()

	if _, err := s.Reschedule(r); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	r.Reminder.Time = "21:30"
	if _, err := s.Reschedule(r); err != nil {
		t.Fatalf("Reschedule() after time change error = %v", err)
	}

	declared, _ := mem.ListDeclared()
	for _, tr := range declared {
		if tr.Hour != 21 || tr.Minute != 30 {
			t.Errorf("trigger %s time = %02d:%02d, want 21:30", tr.Identifier, tr.Hour, tr.Minute)
		}
	}
}

func TestReschedule_PermissionDenied(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	mem.DenyPermission(true)
	s := New(mem)
	r := eveningRoutine()

	_, err := s.Reschedule(r)
	if !errors.Is(err, notify.ErrPermissionDenied) {
		t.Fatalf("Reschedule() error = %v, want ErrPermissionDenied", err)
	}
	if r.Reminder.Enabled != true {
		t.Error("reminder flag must not be mutated on permission failure")
	}
	if Retryable(err) {
		t.Error("permission failures should not be classified retryable")
	}

	// once permission is granted, the same call succeeds in full
	mem.DenyPermission(false)
	triggers, err := s.Reschedule(r)
	if err != nil {
		t.Fatalf("Reschedule() after grant error = %v", err)
	}
	if len(triggers) != 2 {
		t.Errorf("declared %d triggers after grant, want 2", len(triggers))
	}
}

func TestCancel(t *testing.T) {
	mem := notify.NewMemoryScheduler()
	s := New(mem)

	if _, err := s.Reschedule(eveningRoutine()); err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	if err := s.Cancel("ev1"); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	declared, _ := mem.ListDeclared()
	if len(declared) != 0 {
		t.Errorf("%d triggers declared after Cancel, want 0", len(declared))
	}

	// a fresh reschedule after cancel re-declares in full
	if _, err := s.Reschedule(eveningRoutine()); err != nil {
		t.Fatalf("Reschedule() after Cancel error = %v", err)
	}
	declared, _ = mem.ListDeclared()
	if len(declared) != 2 {
		t.Errorf("declared %d triggers after re-schedule, want 2", len(declared))
	}
}
