// Package reminder derives recurring trigger declarations from a routine's
// day/time configuration and keeps the external notification scheduler in
// sync with it. Rescheduling is cancel-then-recreate under a per-routine
// identifier namespace, which makes it idempotent by construction: removing a
// day from the selection removes its trigger because the whole namespace is
// cancelled first, never leaking stale entries the way a plain upsert would.
package reminder

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/routina/internal/constants"
	"github.com/julianstephens/routina/internal/logger"
	"github.com/julianstephens/routina/internal/models"
	"github.com/julianstephens/routina/internal/notify"
	"github.com/julianstephens/routina/internal/utils"
)

// Identifier returns the deterministic trigger identifier for one routine
// day, e.g. "routine_9b2f_monday". Re-declaring for the same routine+day
// overwrites rather than duplicates.
func Identifier(routineID string, wd time.Weekday) string {
	return fmt.Sprintf("%s%s_%s", constants.ReminderIDPrefix, routineID, models.DayLabel(wd))
}

// Prefix returns the identifier namespace shared by all of one routine's
// triggers.
func Prefix(routineID string) string {
	return fmt.Sprintf("%s%s_", constants.ReminderIDPrefix, routineID)
}

// BuildTriggers is the pure declaration-building step: one weekly trigger per
// selected day at the routine's reminder time. A disabled reminder builds
// nothing. The motivational body rotates deterministically over a fixed pool
// so rebuilding an unchanged routine yields an identical set.
func BuildTriggers(r models.Routine) ([]notify.Trigger, error) {
	if !r.Reminder.Enabled {
		return nil, nil
	}

	at, err := utils.ParseTime(r.Reminder.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid reminder time %q: %w", r.Reminder.Time, err)
	}

	days := append([]time.Weekday(nil), r.Days...)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	triggers := make([]notify.Trigger, 0, len(days))
	for _, wd := range days {
		id := Identifier(r.ID, wd)
		triggers = append(triggers, notify.Trigger{
			Identifier: id,
			Title:      r.Name,
			Body:       pickMessage(id),
			Weekday:    notify.WireWeekday(wd),
			Hour:       at.Hour(),
			Minute:     at.Minute(),
		})
	}
	return triggers, nil
}

func pickMessage(identifier string) string {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return constants.ReminderMessages[int(h.Sum32())%len(constants.ReminderMessages)]
}

// Scheduler keeps declared triggers in sync with routine configuration. It
// memoizes a hash of each routine's reminder-relevant fields so repeat calls
// with an unchanged routine skip the external round trip; observable state is
// identical either way.
type Scheduler struct {
	notify notify.Scheduler
	synced map[string]uint64 // routineID -> config hash of last successful sync
}

func New(n notify.Scheduler) *Scheduler {
	return &Scheduler{
		notify: n,
		synced: make(map[string]uint64),
	}
}

type reminderConfig struct {
	Enabled bool
	Time    string
	Days    []time.Weekday
}

// Reschedule recomputes and re-declares the routine's triggers. It returns
// the declared set (empty when the reminder is disabled). On
// ErrPermissionDenied the routine's stored reminder flag is untouched and
// nothing is memoized, so the next call retries in full; the same holds for
// scheduler failures, which are safe to retry wholesale because the whole
// operation is idempotent.
func (s *Scheduler) Reschedule(r models.Routine) ([]notify.Trigger, error) {
	triggers, err := BuildTriggers(r)
	if err != nil {
		return nil, err
	}

	days := append([]time.Weekday(nil), r.Days...)
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	hash, err := hashstructure.Hash(reminderConfig{
		Enabled: r.Reminder.Enabled,
		Time:    r.Reminder.Time,
		Days:    days,
	}, hashstructure.FormatV2, nil)
	if err == nil {
		if prev, ok := s.synced[r.ID]; ok && prev == hash {
			logger.Debug("Reminder config unchanged, skipping reschedule", "routine", r.ID)
			return triggers, nil
		}
	}

	if err := s.notify.CancelByPrefix(Prefix(r.ID)); err != nil {
		return nil, fmt.Errorf("cancelling triggers for routine %s: %w", r.ID, err)
	}

	for _, t := range triggers {
		if err := s.notify.Declare(t); err != nil {
			return nil, fmt.Errorf("declaring trigger %s: %w", t.Identifier, err)
		}
	}

	s.synced[r.ID] = hash
	logger.Info("Reminders rescheduled", "routine", r.ID, "triggers", len(triggers))
	return triggers, nil
}

// Cancel removes every trigger declared for the routine, used on routine
// delete.
func (s *Scheduler) Cancel(routineID string) error {
	if err := s.notify.CancelByPrefix(Prefix(routineID)); err != nil {
		return fmt.Errorf("cancelling triggers for routine %s: %w", routineID, err)
	}
	delete(s.synced, routineID)
	return nil
}

// Retryable reports whether a Reschedule error is worth retrying on next app
// open. Permission problems need user action first.
func Retryable(err error) bool {
	return notify.Classify(err) == notify.ResultRetryable
}
