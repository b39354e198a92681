package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/routina/internal/constants"
)

// Reminder is a routine's time-of-day reminder configuration.
type Reminder struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time,omitempty"` // HH:MM format
}

// RoutineTask is one checklist item inside a routine. Done is scoped to the
// routine's current cycle; see Routine.LastCycleDay.
type RoutineTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DurationMin int    `json:"duration_min,omitempty"`
	Done        bool   `json:"done"`
}

// Routine is a named checklist that recurs on selected weekdays, optionally
// with a reminder. LastCycleDay records the day key the current checklist
// cycle belongs to: when a scheduled day later than it is observed, the
// per-task Done flags reset and LastCycleDay advances.
type Routine struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Days         []time.Weekday `json:"days"`
	Tasks        []RoutineTask  `json:"tasks,omitempty"`
	Reminder     Reminder       `json:"reminder"`
	LastCycleDay string         `json:"last_cycle_day,omitempty"` // YYYY-MM-DD
	CreatedAt    time.Time      `json:"created_at"`
	DeletedAt    *string        `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("routine name cannot be empty")
	}
	for _, wd := range r.Days {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday: %d", wd)
		}
	}
	if r.Reminder.Enabled {
		if _, err := time.Parse(constants.TimeFormat, r.Reminder.Time); err != nil {
			return fmt.Errorf("invalid reminder time format (expected HH:MM): %w", err)
		}
	}
	return nil
}

// ScheduledOn reports whether the routine runs on the given weekday.
func (r Routine) ScheduledOn(wd time.Weekday) bool {
	for _, d := range r.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// AllDone reports whether every checklist item in the current cycle is done.
// A routine with no tasks is never considered done.
func (r Routine) AllDone() bool {
	if len(r.Tasks) == 0 {
		return false
	}
	for _, t := range r.Tasks {
		if !t.Done {
			return false
		}
	}
	return true
}

// DayLabel returns the lowercase label used in trigger identifiers, e.g.
// "monday". The label is stable across locales because it comes from
// time.Weekday's English name.
func DayLabel(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}
