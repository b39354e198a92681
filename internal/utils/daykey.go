package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/routina/internal/constants"
	apperrors "github.com/julianstephens/routina/internal/errors"
)

// A day key is a YYYY-MM-DD string identifying a calendar day in the
// observer's local timezone. It is the only representation of "day" that is
// ever stored, compared, or diffed; raw timestamps are converted at the
// boundary and discarded. Two instants share a key iff they fall on the same
// local wall-clock date.

// TodayKey returns the day key for the current instant in the given timezone.
func TodayKey(loc *time.Location) string {
	return KeyOf(time.Now(), loc)
}

// KeyOf converts an arbitrary instant into a day key for the given timezone.
func KeyOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ParseKey parses a day key and returns midnight of that day in UTC.
// The UTC anchor keeps day arithmetic immune to DST transitions; callers that
// need a local-midnight instant should combine the key with a location via
// CombineDateAndTime.
func ParseKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDateFormat, key)
	}
	return t, nil
}

// IsValidKey reports whether the string is a well-formed day key.
func IsValidKey(key string) bool {
	_, err := ParseKey(key)
	return err == nil
}

// Normalize accepts either an already-normalized day key or a full RFC3339
// timestamp. Timestamps are parsed as instants and converted via KeyOf in the
// given timezone, never by slicing the string, which would lose the local day
// near midnight for UTC-offset observers. Malformed input is an error, not
// "today": coercing would fabricate completions and streaks.
func Normalize(raw string, loc *time.Location) (string, error) {
	if IsValidKey(raw) {
		return raw, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return KeyOf(t, loc), nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidDateFormat, raw)
}

// DaysBetween returns the absolute number of calendar days between two day
// keys. Both keys are anchored to midnight of a fixed-offset zone before
// subtracting so the count stays exact across DST shifts.
func DaysBetween(keyA, keyB string) (int, error) {
	a, err := ParseKey(keyA)
	if err != nil {
		return 0, err
	}
	b, err := ParseKey(keyB)
	if err != nil {
		return 0, err
	}
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days, nil
}

// YesterdayKey returns the day key of the calendar day before the given key.
func YesterdayKey(key string) (string, error) {
	t, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(constants.DateFormat), nil
}

// NextDayKey returns the day key of the calendar day after the given key.
func NextDayKey(key string) (string, error) {
	t, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(constants.DateFormat), nil
}

// WeekdayOf returns the weekday of the given day key.
func WeekdayOf(key string) (time.Weekday, error) {
	t, err := ParseKey(key)
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}
