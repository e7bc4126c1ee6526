package domain

import (
	"errors"
	"fmt"
)

// ErrDuplicateItem is returned by the store when an insert collides with an
// existing fingerprint. The pass treats it as a warning, not corruption.
var ErrDuplicateItem = errors.New("item already recorded")

// FetchError marks a per-source network or parse failure. It is recovered
// locally: the source is skipped for the current pass and the pass continues.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageError marks an item-store I/O failure. It is fatal to the current
// pass: the pass aborts without sending any notification.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotificationError marks a per-channel delivery failure. Other channels are
// still attempted and the items are never re-surfaced.
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify via %s: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }
