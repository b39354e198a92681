package validation

import (
	"fmt"

	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTaskTitle  ConflictType = "duplicate_task_title"
	ConflictDuplicateRoutine    ConflictType = "duplicate_routine_name"
	ConflictInvalidDayKey       ConflictType = "invalid_day_key"
	ConflictInvalidReminderTime ConflictType = "invalid_reminder_time"
	ConflictNeverScheduled      ConflictType = "never_scheduled"
	ConflictPhantomCompletion   ConflictType = "phantom_completion"
	ConflictInvalidTimezone     ConflictType = "invalid_timezone"
)

// Conflict represents a detected problem in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Entity names involved
	IDs         []string // Entity IDs involved (for auto-fixing)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	report := "Problems detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored entities for data problems that the normal write
// paths should prevent but imports or older builds may have produced.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateTasks checks tasks for duplicate titles, malformed completion day
// keys, completion state stored under the wrong representation, and weekly
// tasks that can never come due.
func (v *Validator) ValidateTasks(tasks []models.Task) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	titleCount := make(map[string][]string)
	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}
		if task.Title == "" {
			continue
		}
		titleCount[task.Title] = append(titleCount[task.Title], task.ID)
	}

	for title, ids := range titleCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateTaskTitle,
				Description: fmt.Sprintf("Duplicate task title: %q (IDs: %v)", title, ids),
				Items:       []string{title},
				IDs:         ids,
			})
		}
	}

	for _, task := range tasks {
		if task.DeletedAt != nil {
			continue
		}

		for _, day := range task.CompletedDates {
			if !utils.IsValidKey(day) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidDayKey,
					Description: fmt.Sprintf("Task %q has a malformed completion day: %s", task.Title, day),
					Items:       []string{task.Title},
					IDs:         []string{task.ID},
				})
			}
		}

		// Each recurrence kind has exactly one completion representation.
		// State under the other one is unreachable by the evaluator and
		// indicates a corrupted or hand-edited store.
		if task.Recurrence.IsRecurring() && task.Completed {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictPhantomCompletion,
				Description: fmt.Sprintf("Recurring task %q carries a one-time completion flag", task.Title),
				Items:       []string{task.Title},
				IDs:         []string{task.ID},
			})
		}
		if !task.Recurrence.IsRecurring() && len(task.CompletedDates) > 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictPhantomCompletion,
				Description: fmt.Sprintf("One-time task %q carries completion days", task.Title),
				Items:       []string{task.Title},
				IDs:         []string{task.ID},
			})
		}

		if task.Recurrence.Type == constants.RecurrenceWeekly && len(task.Recurrence.WeekdayMask) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNeverScheduled,
				Description: fmt.Sprintf("Weekly task %q has no weekdays selected and will never come due", task.Title),
				Items:       []string{task.Title},
				IDs:         []string{task.ID},
			})
		}
	}

	return result
}

// ValidateRoutines checks routines for duplicate names, empty day sets,
// malformed reminder times, and malformed cycle markers.
func (v *Validator) ValidateRoutines(routines []models.Routine) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string][]string)
	for _, routine := range routines {
		if routine.DeletedAt != nil {
			continue
		}
		if routine.Name == "" {
			continue
		}
		nameCount[routine.Name] = append(nameCount[routine.Name], routine.ID)
	}

	for name, ids := range nameCount {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateRoutine,
				Description: fmt.Sprintf("Duplicate routine name: %q (IDs: %v)", name, ids),
				Items:       []string{name},
				IDs:         ids,
			})
		}
	}

	for _, routine := range routines {
		if routine.DeletedAt != nil {
			continue
		}

		if len(routine.Days) == 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNeverScheduled,
				Description: fmt.Sprintf("Routine %q has no days selected and will never appear", routine.Name),
				Items:       []string{routine.Name},
				IDs:         []string{routine.ID},
			})
		}

		if routine.Reminder.Enabled && !utils.ValidateTimeFormat(routine.Reminder.Time) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidReminderTime,
				Description: fmt.Sprintf("Routine %q has an invalid reminder time: %s", routine.Name, routine.Reminder.Time),
				Items:       []string{routine.Name},
				IDs:         []string{routine.ID},
			})
		}

		if routine.LastCycleDay != "" && !utils.IsValidKey(routine.LastCycleDay) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDayKey,
				Description: fmt.Sprintf("Routine %q has a malformed cycle day: %s", routine.Name, routine.LastCycleDay),
				Items:       []string{routine.Name},
				IDs:         []string{routine.ID},
			})
		}
	}

	return result
}

// ValidateSettings checks the settings blob.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if settings.Timezone != "" {
		if !utils.ValidateTimezone(settings.Timezone) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimezone,
				Description: fmt.Sprintf("Invalid timezone: %s", settings.Timezone),
			})
		}
	}

	return result
}
