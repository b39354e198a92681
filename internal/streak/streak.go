// Package streak derives streak state from completion day keys. Nothing here
// is stored: the completion set is the system of record, so a streak
// can never drift out of sync with the history that justifies it.
package streak

import (
	"sort"

	"github.com/julianstephens/routina/internal/utils"
)

// IsAlive reports whether an ongoing streak is intact for the given day.
// A streak survives until a full day elapses without action: completing
// yesterday keeps it alive all of today, so midnight passing while the user
// sleeps never fires "streak broken". An empty lastCompletionKey means no
// streak has started.
func IsAlive(lastCompletionKey, today string) (bool, error) {
	if lastCompletionKey == "" {
		return false, nil
	}
	if lastCompletionKey == today {
		return true, nil
	}
	yesterday, err := utils.YesterdayKey(today)
	if err != nil {
		return false, err
	}
	return lastCompletionKey == yesterday, nil
}

// HasCountedToday reports whether the streak was already extended today.
// Strict equality only; used to avoid double-incrementing a counter when the
// user toggles twice in one day.
func HasCountedToday(lastCompletionKey, today string) bool {
	return lastCompletionKey != "" && lastCompletionKey == today
}

// Length returns the current streak length: the number of consecutive
// calendar days with a completion, counting back from today or yesterday.
// A history whose most recent key is older than yesterday yields zero.
func Length(completionKeys []string, today string) (int, error) {
	if len(completionKeys) == 0 {
		return 0, nil
	}

	keys := append([]string(nil), completionKeys...)
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	alive, err := IsAlive(keys[0], today)
	if err != nil {
		return 0, err
	}
	if !alive {
		return 0, nil
	}

	count := 1
	for i := 1; i < len(keys); i++ {
		if keys[i] == keys[i-1] {
			continue
		}
		gap, err := utils.DaysBetween(keys[i], keys[i-1])
		if err != nil {
			return 0, err
		}
		if gap != 1 {
			break
		}
		count++
	}
	return count, nil
}
