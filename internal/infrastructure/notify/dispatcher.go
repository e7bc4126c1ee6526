// Package notify fans newly discovered items out to the configured
// notification channels.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

// Dispatcher attempts every configured channel for each batch. A failing
// channel is logged and recorded in the audit history; it never blocks the
// other channels and never causes an item to be re-surfaced.
type Dispatcher struct {
	channels []ports.NotificationChannel
	history  ports.NotificationLog
	logger   *slog.Logger
	now      func() time.Time
}

var _ ports.Notifier = (*Dispatcher)(nil)

// NewDispatcher wires the enabled channels and the audit log. history may be
// nil when auditing is not wanted.
func NewDispatcher(channels []ports.NotificationChannel, history ports.NotificationLog, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		channels: channels,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// Dispatch delivers the batch on every channel.
func (d *Dispatcher) Dispatch(ctx context.Context, items []domain.SeenItem) {
	if len(items) == 0 {
		return
	}

	for _, channel := range d.channels {
		err := channel.Send(ctx, items)
		if err != nil {
			notifyErr := &domain.NotificationError{Channel: channel.Name(), Err: err}
			d.logger.Warn("notification channel failed", "channel", channel.Name(), "error", notifyErr)
		} else {
			d.logger.Info("notification sent", "channel", channel.Name(), "items", len(items))
		}
		d.record(ctx, items, channel.Name(), err)
	}
}

// SendTest pushes a synthetic item through the fan-out. It fails only when
// no channel is configured or every configured channel fails.
func (d *Dispatcher) SendTest(ctx context.Context) error {
	if len(d.channels) == 0 {
		return fmt.Errorf("no notification channels configured")
	}

	item := domain.SeenItem{
		Fingerprint: "test-notification",
		SourceType:  domain.SourceDirect,
		SourceName:  "AI Updates Monitor",
		Title:       "Test notification",
		Snippet:     "If you can read this, notifications are working.",
		FirstSeenAt: d.now(),
	}

	delivered := 0
	var lastErr error
	for _, channel := range d.channels {
		if err := channel.Send(ctx, []domain.SeenItem{item}); err != nil {
			lastErr = &domain.NotificationError{Channel: channel.Name(), Err: err}
			d.logger.Warn("test notification failed", "channel", channel.Name(), "error", err)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return lastErr
	}
	return nil
}

func (d *Dispatcher) record(ctx context.Context, items []domain.SeenItem, channel string, sendErr error) {
	if d.history == nil {
		return
	}

	errMsg := ""
	if sendErr != nil {
		errMsg = sendErr.Error()
	}

	for _, item := range items {
		rec := domain.NotificationRecord{
			Fingerprint:  item.Fingerprint,
			Channel:      channel,
			SentAt:       d.now(),
			Success:      sendErr == nil,
			ErrorMessage: errMsg,
		}
		if err := d.history.RecordNotification(ctx, rec); err != nil {
			d.logger.Warn("cannot record notification history", "channel", channel, "error", err)
		}
	}
}
