package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

// ConsoleChannel prints the digest to a writer, stdout by default.
type ConsoleChannel struct {
	out io.Writer
}

var _ ports.NotificationChannel = (*ConsoleChannel)(nil)

// NewConsoleChannel writes digests to stdout.
func NewConsoleChannel() *ConsoleChannel {
	return &ConsoleChannel{out: os.Stdout}
}

// NewConsoleChannelTo writes digests to the given writer.
func NewConsoleChannelTo(out io.Writer) *ConsoleChannel {
	return &ConsoleChannel{out: out}
}

// Name identifies the channel in logs and the audit history.
func (c *ConsoleChannel) Name() string { return "console" }

// Send prints the text digest.
func (c *ConsoleChannel) Send(ctx context.Context, items []domain.SeenItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := fmt.Fprint(c.out, textDigest(items)); err != nil {
		return fmt.Errorf("write digest: %w", err)
	}
	return nil
}
