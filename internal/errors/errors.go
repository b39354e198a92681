package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/routina/internal/logger"
)

// Sentinel errors for the collaborator boundaries. Pure evaluator code never
// returns these; they originate at the store, the splitter, or the
// notification scheduler and are wrapped with %w so callers can errors.Is them.
var (
	// ErrInvalidDateFormat is returned when a date string cannot be parsed.
	// It is never silently coerced to "today".
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrPersistenceFailure is returned when a store read or write fails.
	ErrPersistenceFailure = errors.New("persistence failure")

	// ErrRemoteSplit is returned when the task-splitting call fails or
	// returns an unusable shape. No partial subtask list is ever accepted.
	ErrRemoteSplit = errors.New("remote split failed")

	// ErrPermissionDenied is returned when notification permission has not
	// been granted. The routine's reminder flag is left untouched.
	ErrPermissionDenied = errors.New("notification permission denied")

	// ErrSchedulerFailure is returned when a trigger declare/cancel call
	// fails. Rescheduling is idempotent, so callers may retry wholesale.
	ErrSchedulerFailure = errors.New("notification scheduler failure")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
