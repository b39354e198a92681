// Package notify talks to the external recurring-notification scheduler. The
// scheduler guarantees at most one delivery per identifier, so idempotence is
// achieved purely through deterministic identifiers plus prefix cancellation.
package notify

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/routina/internal/errors"
)

// ErrPermissionDenied mirrors the app-wide sentinel so callers holding only a
// Scheduler can classify permission failures without importing errors.
var ErrPermissionDenied = apperrors.ErrPermissionDenied

// Trigger is a recurring-reminder declaration handed to the scheduler. The
// weekday is in the scheduler's 1..7 convention (1 = Sunday), matching what
// the delivery side expects on the wire.
type Trigger struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Weekday    int    `json:"weekday"` // 1..7, 1=Sunday
	Hour       int    `json:"hour"`
	Minute     int    `json:"minute"`
}

func (t Trigger) Validate() error {
	if t.Identifier == "" {
		return errors.New("trigger identifier cannot be empty")
	}
	if t.Body == "" {
		return errors.New("trigger body cannot be empty")
	}
	if t.Weekday < 1 || t.Weekday > 7 {
		return fmt.Errorf("trigger weekday %d outside 1..7", t.Weekday)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("trigger time %02d:%02d out of range", t.Hour, t.Minute)
	}
	return nil
}

// WireWeekday converts a time.Weekday to the scheduler's 1..7 convention.
func WireWeekday(wd time.Weekday) int {
	return int(wd) + 1
}

// Scheduler is the external recurring-notification collaborator. Declaring a
// trigger with an existing identifier overwrites it; cancelling an unknown
// identifier is not an error.
type Scheduler interface {
	Declare(t Trigger) error
	CancelByIdentifier(identifier string) error
	CancelByPrefix(prefix string) error
	// ListDeclared is for diagnostics only.
	ListDeclared() ([]Trigger, error)
}

// Result classifies a scheduler call outcome so callers can decide whether a
// retry on next launch is worthwhile.
type Result int

const (
	ResultOK Result = iota
	ResultRetryable
	ResultPermanent
)

// Classify maps a scheduler error to a Result. Permission problems are
// permanent until the user grants permission; everything else (network,
// scheduler hiccups) is worth retrying wholesale since rescheduling is
// idempotent.
func Classify(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrPermissionDenied):
		return ResultPermanent
	default:
		return ResultRetryable
	}
}
