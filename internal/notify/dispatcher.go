package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/routina/internal/logger"
)

// SendFunc delivers one reminder to the user. `routina remind serve` wires
// this to the tray webhook or plain terminal output.
type SendFunc func(title, body string) error

// Dispatcher fires declared triggers at their weekly times using an
// in-process cron, for setups without a tray agent. Triggers are re-read from
// the scheduler on every Start so a restart always reflects the latest
// declarations.
type Dispatcher struct {
	scheduler Scheduler
	send      SendFunc
	loc       *time.Location
	cron      *cron.Cron
}

func NewDispatcher(scheduler Scheduler, send SendFunc, loc *time.Location) *Dispatcher {
	return &Dispatcher{
		scheduler: scheduler,
		send:      send,
		loc:       loc,
	}
}

// Start registers every declared trigger as a weekly cron entry and blocks
// until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) error {
	triggers, err := d.scheduler.ListDeclared()
	if err != nil {
		return fmt.Errorf("listing declared triggers: %w", err)
	}

	d.cron = cron.New(cron.WithLocation(d.loc))
	for _, t := range triggers {
		t := t
		// cron weekdays are 0..6 with 0=Sunday; triggers carry 1..7.
		spec := fmt.Sprintf("%d %d * * %d", t.Minute, t.Hour, t.Weekday-1)
		if _, err := d.cron.AddFunc(spec, func() { d.fire(t) }); err != nil {
			return fmt.Errorf("adding trigger %s: %w", t.Identifier, err)
		}
	}

	d.cron.Start()
	logger.Info("Reminder dispatcher started", "triggers", len(triggers), "timezone", d.loc.String())

	<-ctx.Done()
	stopCtx := d.cron.Stop()
	<-stopCtx.Done()
	logger.Info("Reminder dispatcher stopped")
	return nil
}

func (d *Dispatcher) fire(t Trigger) {
	if err := d.send(t.Title, t.Body); err != nil {
		logger.Error("Reminder delivery failed", "identifier", t.Identifier, "error", err)
		return
	}
	logger.Debug("Reminder delivered", "identifier", t.Identifier)
}
