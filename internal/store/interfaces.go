package store

import (
	"context"

	"github.com/pkalugin/ironlog/models"
)

// RecordStore is the durable local key-value space every higher layer sits
// on. It never returns errors: reads degrade to (nil, false), writes and
// removals to false. Callers must treat a false result as "try again later".
// There is no locking here; higher layers serialize writes to the same key
// through the data service facade and the queue repository.
type RecordStore interface {
	// GetRaw returns the raw JSON stored under key, or (nil, false) when
	// the key is absent or the read fails.
	GetRaw(ctx context.Context, key string) ([]byte, bool)
	// SetRaw durably stores raw JSON under key.
	SetRaw(ctx context.Context, key string, value []byte) bool
	// Remove deletes key. Removing an absent key is a successful no-op.
	Remove(ctx context.Context, key string) bool
	// ClearAll wipes every key under the application prefix.
	ClearAll(ctx context.Context) bool
}

// QueueRepository is the durable FIFO of pending replication operations,
// itself persisted in the record store under a single key.
type QueueRepository interface {
	// Append adds item to the tail of the queue.
	Append(ctx context.Context, item models.QueueItem) error
	// Snapshot returns the current queue contents in FIFO order.
	Snapshot(ctx context.Context) ([]models.QueueItem, error)
	// Remove deletes the item with the given id, if present.
	Remove(ctx context.Context, id string) error
	// SetRetryCount persists a new retry count for the item with the
	// given id.
	SetRetryCount(ctx context.Context, id string, count int) error
	// Len returns the number of queued items.
	Len(ctx context.Context) (int, error)
}

// WatermarkRepository persists the last successful sync timestamp used to
// bound download queries.
type WatermarkRepository interface {
	// LastSyncedAt returns the watermark in epoch milliseconds, zero when
	// no sync has completed yet.
	LastSyncedAt(ctx context.Context) int64
	// SetLastSyncedAt advances the watermark.
	SetLastSyncedAt(ctx context.Context, ts int64) bool
}
