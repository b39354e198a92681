package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/routina/internal/cli"
	"github.com/julianstephens/routina/internal/notify"
)

// NotifyCmd declares a short-lived test trigger so the user can confirm the
// tray agent delivers notifications.
type NotifyCmd struct {
	Clear bool `help:"Remove any test triggers instead of creating one."`
}

const testIdentifier = "routina_test_notification"

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		if err := ctx.Notify.CancelByPrefix(testIdentifier); err != nil {
			return err
		}
		fmt.Println("Test triggers removed.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err == nil && !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	fireAt := time.Now().In(ctx.Location()).Add(time.Minute)
	trigger := notify.Trigger{
		Identifier: testIdentifier,
		Title:      "routina",
		Body:       "Notifications are working!",
		Weekday:    notify.WireWeekday(fireAt.Weekday()),
		Hour:       fireAt.Hour(),
		Minute:     fireAt.Minute(),
	}

	if err := ctx.Notify.Declare(trigger); err != nil {
		if errors.Is(err, notify.ErrPermissionDenied) {
			return fmt.Errorf("notification permission denied, enable notifications for the tray app: %w", err)
		}
		return err
	}

	fmt.Printf("Test notification scheduled for %02d:%02d. Run with --clear afterwards.\n", trigger.Hour, trigger.Minute)
	return nil
}
