package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

// Desktop popups have little room; show a few titles and summarize the rest.
const desktopTitleLimit = 3

// DesktopChannel raises a system notification for each batch.
type DesktopChannel struct {
	notify func(title, message, icon string) error
}

var _ ports.NotificationChannel = (*DesktopChannel)(nil)

// NewDesktopChannel builds the channel against the system notifier.
func NewDesktopChannel() *DesktopChannel {
	return &DesktopChannel{notify: func(title, message, icon string) error {
		return beeep.Notify(title, message, icon)
	}}
}

// Name identifies the channel in logs and the audit history.
func (c *DesktopChannel) Name() string { return "desktop" }

// Send raises one popup summarizing the batch.
func (c *DesktopChannel) Send(ctx context.Context, items []domain.SeenItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := fmt.Sprintf("AI Updates Monitor: %d new update(s)", len(items))

	var lines []string
	for i, item := range items {
		if i >= desktopTitleLimit {
			lines = append(lines, fmt.Sprintf("...and %d more", len(items)-desktopTitleLimit))
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", item.SourceName, item.Title))
	}

	if err := c.notify(title, strings.Join(lines, "\n"), ""); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}
	return nil
}
