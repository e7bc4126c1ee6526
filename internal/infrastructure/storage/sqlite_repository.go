package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"AIUpdatesMonitor/internal/domain"
	"AIUpdatesMonitor/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS seen_items (
	fingerprint   TEXT PRIMARY KEY,
	source_type   TEXT NOT NULL,
	source_name   TEXT NOT NULL,
	title         TEXT NOT NULL,
	url           TEXT NOT NULL DEFAULT '',
	snippet       TEXT NOT NULL DEFAULT '',
	published_at  TIMESTAMP,
	first_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_seen_first_seen ON seen_items(first_seen_at DESC);

CREATE TABLE IF NOT EXISTS notification_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	fingerprint   TEXT NOT NULL REFERENCES seen_items(fingerprint) ON DELETE CASCADE,
	channel       TEXT NOT NULL,
	sent_at       TIMESTAMP NOT NULL,
	success       INTEGER NOT NULL DEFAULT 1,
	error_message TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_history_fingerprint ON notification_history(fingerprint);
`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// SQLiteRepository persists seen items and notification history in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ ports.ItemRepository  = (*SQLiteRepository)(nil)
	_ ports.NotificationLog = (*SQLiteRepository)(nil)
)

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Err: err}
	}

	for _, pragma := range []string{"PRAGMA foreign_keys = ON", "PRAGMA journal_mode = WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, &domain.StorageError{Op: "open", Err: err}
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &domain.StorageError{Op: "init schema", Err: err}
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the underlying database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Exists reports whether a fingerprint is already recorded.
func (r *SQLiteRepository) Exists(ctx context.Context, fingerprint string) (bool, error) {
	query, args, err := qb.Select("1").
		From("seen_items").
		Where(sq.Eq{"fingerprint": fingerprint}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, &domain.StorageError{Op: "exists", Err: err}
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &domain.StorageError{Op: "exists", Err: err}
	}
	return true, nil
}

// Insert records a seen item. The row either commits fully or not at all;
// a fingerprint collision is rejected with domain.ErrDuplicateItem.
func (r *SQLiteRepository) Insert(ctx context.Context, item domain.SeenItem) error {
	query, args, err := qb.Insert("seen_items").
		Columns("fingerprint", "source_type", "source_name", "title", "url", "snippet", "published_at", "first_seen_at").
		Values(
			item.Fingerprint,
			string(item.SourceType),
			item.SourceName,
			item.Title,
			item.URL,
			item.Snippet,
			nullableTime(item.PublishedAt),
			item.FirstSeenAt.UTC(),
		).
		ToSql()
	if err != nil {
		return &domain.StorageError{Op: "insert", Err: err}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.Fingerprint)
		}
		return &domain.StorageError{Op: "insert", Err: err}
	}
	return nil
}

// Recent returns items first seen at or after since, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, since time.Time) ([]domain.SeenItem, error) {
	query, args, err := qb.Select("fingerprint", "source_type", "source_name", "title", "url", "snippet", "published_at", "first_seen_at").
		From("seen_items").
		Where(sq.GtOrEq{"first_seen_at": since.UTC()}).
		OrderBy("first_seen_at DESC").
		ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "recent", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "recent", Err: err}
	}
	defer rows.Close()

	var items []domain.SeenItem
	for rows.Next() {
		var (
			item        domain.SeenItem
			sourceType  string
			publishedAt sql.NullTime
		)
		err := rows.Scan(
			&item.Fingerprint,
			&sourceType,
			&item.SourceName,
			&item.Title,
			&item.URL,
			&item.Snippet,
			&publishedAt,
			&item.FirstSeenAt,
		)
		if err != nil {
			return nil, &domain.StorageError{Op: "recent", Err: err}
		}
		item.SourceType = domain.SourceType(sourceType)
		if publishedAt.Valid {
			item.PublishedAt = publishedAt.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "recent", Err: err}
	}

	return items, nil
}

// Purge deletes items first seen strictly before olderThan and returns the
// count removed. Notification history rows follow via ON DELETE CASCADE.
func (r *SQLiteRepository) Purge(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := qb.Delete("seen_items").
		Where(sq.Lt{"first_seen_at": olderThan.UTC()}).
		ToSql()
	if err != nil {
		return 0, &domain.StorageError{Op: "purge", Err: err}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, &domain.StorageError{Op: "purge", Err: err}
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, &domain.StorageError{Op: "purge", Err: err}
	}
	return purged, nil
}

// RecordNotification appends a delivery-attempt audit row.
func (r *SQLiteRepository) RecordNotification(ctx context.Context, rec domain.NotificationRecord) error {
	query, args, err := qb.Insert("notification_history").
		Columns("fingerprint", "channel", "sent_at", "success", "error_message").
		Values(rec.Fingerprint, rec.Channel, rec.SentAt.UTC(), rec.Success, rec.ErrorMessage).
		ToSql()
	if err != nil {
		return &domain.StorageError{Op: "record notification", Err: err}
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return &domain.StorageError{Op: "record notification", Err: err}
	}
	return nil
}

// Notifications returns the delivery attempts recorded for a fingerprint,
// oldest first.
func (r *SQLiteRepository) Notifications(ctx context.Context, fingerprint string) ([]domain.NotificationRecord, error) {
	query, args, err := qb.Select("fingerprint", "channel", "sent_at", "success", "error_message").
		From("notification_history").
		Where(sq.Eq{"fingerprint": fingerprint}).
		OrderBy("sent_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, &domain.StorageError{Op: "notifications", Err: err}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "notifications", Err: err}
	}
	defer rows.Close()

	var records []domain.NotificationRecord
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(&rec.Fingerprint, &rec.Channel, &rec.SentAt, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, &domain.StorageError{Op: "notifications", Err: err}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "notifications", Err: err}
	}

	return records, nil
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
