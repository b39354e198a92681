package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/logger"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/notify"
	"github.com/julianstephens/routina/internal/reminder"
	"github.com/julianstephens/routina/internal/storage"
	"github.com/julianstephens/routina/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Notify    notify.Scheduler
	Reminders *reminder.Scheduler
}

// Location resolves the configured timezone, falling back to the system
// local zone when settings are unreadable or empty.
func (c *Context) Location() *time.Location {
	settings, err := c.Store.GetSettings()
	if err != nil || settings.Timezone == "" || settings.Timezone == "Local" {
		return time.Local
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Configured timezone is invalid, using local time", "timezone", settings.Timezone)
		return time.Local
	}
	return loc
}

// Today returns the current calendar day key in the configured timezone.
func (c *Context) Today() string {
	return utils.TodayKey(c.Location())
}

// SyncReminder reschedules a routine's notification triggers, logging rather
// than failing the surrounding command when the tray agent is unreachable.
func (c *Context) SyncReminder(r models.Routine) {
	if _, err := c.Reminders.Reschedule(r); err != nil {
		logger.Warn("Failed to sync reminders", "routine", r.Name, "error", err)
		fmt.Printf("Warning: reminders for %q could not be synced: %v\n", r.Name, err)
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday
	seen := make(map[time.Weekday]bool)

	for _, part := range parts {
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}

	return weekdays, nil
}

// ParseWeekday parses a single weekday name or number (0=Sunday, 6=Saturday)
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// FormatRecurrence formats a recurrence rule into a human-readable string
func FormatRecurrence(rec models.Recurrence) string {
	switch rec.Type {
	case constants.RecurrenceOnce:
		return "once"
	case constants.RecurrenceDaily:
		return "daily"
	case constants.RecurrenceWeekly:
		if len(rec.WeekdayMask) > 0 {
			return fmt.Sprintf("weekly on %s", FormatDays(rec.WeekdayMask))
		}
		return "weekly (no days)"
	case constants.RecurrenceMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// FormatDays formats a weekday list as short names
func FormatDays(days []time.Weekday) string {
	var names []string
	for _, wd := range days {
		names = append(names, wd.String()[:3])
	}
	return strings.Join(names, ",")
}

// FindTask resolves a task by exact ID, then by exact title. Ambiguous
// titles are an error so a toggle never lands on the wrong task.
func FindTask(store storage.Provider, ref string) (models.Task, error) {
	if task, err := store.GetTask(ref); err == nil {
		return task, nil
	}

	tasks, err := store.GetAllTasks()
	if err != nil {
		return models.Task{}, err
	}

	var matches []models.Task
	for _, task := range tasks {
		if task.Title == ref {
			matches = append(matches, task)
		}
	}
	switch len(matches) {
	case 0:
		return models.Task{}, fmt.Errorf("no task matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Task{}, fmt.Errorf("multiple tasks titled %q, use an ID", ref)
	}
}

// FindRoutine resolves a routine by exact ID, then by exact name.
func FindRoutine(store storage.Provider, ref string) (models.Routine, error) {
	if routine, err := store.GetRoutine(ref); err == nil {
		return routine, nil
	}

	routines, err := store.GetAllRoutines()
	if err != nil {
		return models.Routine{}, err
	}

	var matches []models.Routine
	for _, routine := range routines {
		if routine.Name == ref {
			matches = append(matches, routine)
		}
	}
	switch len(matches) {
	case 0:
		return models.Routine{}, fmt.Errorf("no routine matching %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Routine{}, fmt.Errorf("multiple routines named %q, use an ID", ref)
	}
}
