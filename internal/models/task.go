package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/routina/internal/constants"
)

// Recurrence is a tagged descriptor of how often a task recurs. WeekdayMask is
// only meaningful for weekly recurrence; a weekly task with an empty mask is
// never due rather than an error, to keep evaluation total.
type Recurrence struct {
	Type        constants.RecurrenceType `json:"type"`
	WeekdayMask []time.Weekday           `json:"weekday_mask,omitempty"`
}

func (r Recurrence) Validate() error {
	switch r.Type {
	case constants.RecurrenceOnce, constants.RecurrenceDaily, constants.RecurrenceWeekly, constants.RecurrenceMonthly:
	default:
		return fmt.Errorf("invalid recurrence type: %q", r.Type)
	}
	for _, wd := range r.WeekdayMask {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid weekday in mask: %d", wd)
		}
	}
	return nil
}

// IsRecurring reports whether completion is tracked per day rather than as a
// single boolean.
func (r Recurrence) IsRecurring() bool {
	return r.Type != constants.RecurrenceOnce
}

// ContainsWeekday reports whether the weekday is in the mask.
func (r Recurrence) ContainsWeekday(wd time.Weekday) bool {
	for _, d := range r.WeekdayMask {
		if d == wd {
			return true
		}
	}
	return false
}

// Subtask is a single AI-proposed (or hand-entered) step of a task.
type Subtask struct {
	Title       string `json:"title"`
	DurationMin int    `json:"duration_min"`
}

// Task is a user-captured unit of work. Exactly one completion representation
// is authoritative at a time: Completed for once tasks, CompletedDates (a set
// of day keys) for recurring ones. Which applies is determined solely by the
// recurrence type, never by a separate flag.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Emoji          string     `json:"emoji,omitempty"`
	Subtasks       []Subtask  `json:"subtasks,omitempty"`
	Recurrence     Recurrence `json:"recurrence"`
	Completed      bool       `json:"completed,omitempty"`
	CompletedDates []string   `json:"completed_dates,omitempty"` // YYYY-MM-DD, sorted, unique
	CreatedAt      time.Time  `json:"created_at"`
	DeletedAt      *string    `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if err := t.Recurrence.Validate(); err != nil {
		return err
	}
	for _, st := range t.Subtasks {
		if strings.TrimSpace(st.Title) == "" {
			return fmt.Errorf("subtask title cannot be empty")
		}
		if st.DurationMin < 0 {
			return fmt.Errorf("subtask duration cannot be negative")
		}
	}
	return nil
}

// HasCompletedOn reports whether the given day key is in the completion set.
// Always false for once tasks, whose completion is the boolean.
func (t Task) HasCompletedOn(key string) bool {
	for _, d := range t.CompletedDates {
		if d == key {
			return true
		}
	}
	return false
}

// LastCompletionKey returns the most recent day key in the completion set, or
// "" when nothing has been completed. Used by the streak validator.
func (t Task) LastCompletionKey() string {
	last := ""
	for _, d := range t.CompletedDates {
		if d > last {
			last = d
		}
	}
	return last
}

// SetRecurrence switches the recurrence descriptor and drops whichever
// completion representation is no longer authoritative. A once task that was
// completed must not resurrect as "completed every day" after switching to a
// recurring type, and vice versa.
func (t *Task) SetRecurrence(rec Recurrence) {
	t.Recurrence = rec
	if rec.IsRecurring() {
		t.Completed = false
	} else {
		t.CompletedDates = nil
	}
}

// SortCompletedDates orders the completion set ascending. Day keys sort
// chronologically as strings.
func (t *Task) SortCompletedDates() {
	sort.Strings(t.CompletedDates)
}
