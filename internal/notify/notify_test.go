package notify

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func validTrigger(id string) Trigger {
	return Trigger{
		Identifier: id,
		Title:      "routina",
		Body:       "Time for your routine",
		Weekday:    2,
		Hour:       7,
		Minute:     30,
	}
}

func TestTriggerValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trigger)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Trigger) {}},
		{name: "empty identifier", mutate: func(tr *Trigger) { tr.Identifier = "" }, wantErr: true},
		{name: "empty body", mutate: func(tr *Trigger) { tr.Body = "" }, wantErr: true},
		{name: "weekday zero", mutate: func(tr *Trigger) { tr.Weekday = 0 }, wantErr: true},
		{name: "weekday eight", mutate: func(tr *Trigger) { tr.Weekday = 8 }, wantErr: true},
		{name: "hour out of range", mutate: func(tr *Trigger) { tr.Hour = 24 }, wantErr: true},
		{name: "minute out of range", mutate: func(tr *Trigger) { tr.Minute = 60 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger := validTrigger("routine_x_monday")
			tt.mutate(&trigger)
			err := trigger.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWireWeekday(t *testing.T) {
	if got := WireWeekday(time.Sunday); got != 1 {
		t.Errorf("WireWeekday(Sunday) = %d, want 1", got)
	}
	if got := WireWeekday(time.Saturday); got != 7 {
		t.Errorf("WireWeekday(Saturday) = %d, want 7", got)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(nil); got != ResultOK {
		t.Errorf("Classify(nil) = %v", got)
	}
	wrapped := fmt.Errorf("declare failed: %w", ErrPermissionDenied)
	if got := Classify(wrapped); got != ResultPermanent {
		t.Errorf("Classify(permission) = %v", got)
	}
	if got := Classify(errors.New("connection refused")); got != ResultRetryable {
		t.Errorf("Classify(network) = %v", got)
	}
}

func TestMemorySchedulerDeclareOverwrites(t *testing.T) {
	s := NewMemoryScheduler()

	first := validTrigger("routine_a_monday")
	if err := s.Declare(first); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	second := first
	second.Hour = 9
	if err := s.Declare(second); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}

	declared, err := s.ListDeclared()
	if err != nil {
		t.Fatalf("ListDeclared() error = %v", err)
	}
	if len(declared) != 1 {
		t.Fatalf("ListDeclared() = %d triggers, want 1", len(declared))
	}
	if declared[0].Hour != 9 {
		t.Errorf("redeclared trigger hour = %d, want 9", declared[0].Hour)
	}
}

func TestMemorySchedulerCancelByPrefix(t *testing.T) {
	s := NewMemoryScheduler()
	for _, id := range []string{"routine_a_monday", "routine_a_friday", "routine_b_monday"} {
		if err := s.Declare(validTrigger(id)); err != nil {
			t.Fatalf("Declare(%s) error = %v", id, err)
		}
	}

	if err := s.CancelByPrefix("routine_a_"); err != nil {
		t.Fatalf("CancelByPrefix() error = %v", err)
	}

	declared, _ := s.ListDeclared()
	if len(declared) != 1 || declared[0].Identifier != "routine_b_monday" {
		t.Errorf("ListDeclared() = %+v, want only routine_b_monday", declared)
	}

	// Cancelling unknown identifiers is not an error
	if err := s.CancelByIdentifier("routine_missing"); err != nil {
		t.Errorf("CancelByIdentifier(unknown) error = %v", err)
	}
}

func TestMemorySchedulerPermissionDenied(t *testing.T) {
	s := NewMemoryScheduler()
	s.DenyPermission(true)

	err := s.Declare(validTrigger("routine_a_monday"))
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("Declare() error = %v, want ErrPermissionDenied", err)
	}

	s.DenyPermission(false)
	if err := s.Declare(validTrigger("routine_a_monday")); err != nil {
		t.Errorf("Declare() after grant error = %v", err)
	}
}
