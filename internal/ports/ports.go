package ports

import (
	"context"
	"time"

	"AIUpdatesMonitor/internal/domain"
)

// ItemRepository is the durable seen-set. Insert is the sole authority for
// "this has been notified"; it must be atomic and reject fingerprint reuse
// with domain.ErrDuplicateItem. All other failures surface as
// *domain.StorageError and abort the current pass.
type ItemRepository interface {
	Exists(ctx context.Context, fingerprint string) (bool, error)
	Insert(ctx context.Context, item domain.SeenItem) error
	Recent(ctx context.Context, since time.Time) ([]domain.SeenItem, error)
	Purge(ctx context.Context, olderThan time.Time) (int64, error)
}

// NotificationLog records per-channel delivery attempts for audit.
type NotificationLog interface {
	RecordNotification(ctx context.Context, rec domain.NotificationRecord) error
}

// NotificationChannel delivers a batch of newly seen items over one medium.
type NotificationChannel interface {
	Name() string
	Send(ctx context.Context, items []domain.SeenItem) error
}

// Notifier fans a batch out to all configured channels. Dispatch is
// fire-and-forget relative to the store: items are already durably marked
// seen, so a failed delivery is never retried by re-surfacing the item.
type Notifier interface {
	Dispatch(ctx context.Context, items []domain.SeenItem)
	SendTest(ctx context.Context) error
}

// Scheduler drives recurring named jobs until the context is cancelled.
type Scheduler interface {
	Add(name string, interval time.Duration, job func(context.Context))
	Run(ctx context.Context)
}
