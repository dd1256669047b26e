package notify

import (
	"context"
	"log/slog"
)

// Dispatcher queues confirmations for a background worker. Dispatch never
// blocks the registration path; a full queue drops the confirmation.
type Dispatcher struct {
	mailer Mailer
	inbox  chan Confirmation
	logger *slog.Logger
}

func NewDispatcher(mailer Mailer, buffer int, logger *slog.Logger) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Dispatcher{
		mailer: mailer,
		inbox:  make(chan Confirmation, buffer),
		logger: logger,
	}
}

// Dispatch enqueues a confirmation. Donors without an email address are
// skipped, as is everything when no mailer is configured.
func (d *Dispatcher) Dispatch(c Confirmation) {
	if d.mailer == nil {
		return
	}
	if c.Email == "" {
		d.logger.Debug("skipping confirmation, donor has no email", "donor", c.DonorName)
		return
	}
	select {
	case d.inbox <- c:
	default:
		d.logger.Warn("confirmation queue full, dropping", "email", c.Email)
	}
}

// Run consumes the queue until ctx is cancelled. Send failures are logged
// and swallowed.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-d.inbox:
			if err := d.mailer.Send(c); err != nil {
				d.logger.Error("confirmation send failed", "email", c.Email, "error", err)
			}
		}
	}
}
