// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import (
	"context"
	"sync"

	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/models"
)

type queueRepository struct {
	rs     RecordStore
	logger *logger.Logger

	// mu serializes the read-modify-write cycles on the queue slot. The
	// data service appends while the sync engine removes and bumps retry
	// counts, so the queue key has two writers.
	mu sync.Mutex
}

// NewQueueRepository returns the [QueueRepository] persisted in rs under
// [KeySyncQueue].
func NewQueueRepository(rs RecordStore, logger *logger.Logger) QueueRepository {
	return &queueRepository{rs: rs, logger: logger}
}

func (q *queueRepository) Append(ctx context.Context, item models.QueueItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, _ := Get[[]models.QueueItem](ctx, q.rs, KeySyncQueue)
	items = append(items, item)

	if !Set(ctx, q.rs, KeySyncQueue, items) {
		return ErrQueueWriteFailed
	}

	q.logger.Debug().Str("func", "queueRepository.Append").
		Str("id", item.ID).
		Str("collection", string(item.Collection)).
		Str("action", string(item.Action)).
		Int("queue_len", len(items)).
		Msg("queued replication operation")

	return nil
}

func (q *queueRepository) Snapshot(ctx context.Context) ([]models.QueueItem, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, ok := Get[[]models.QueueItem](ctx, q.rs, KeySyncQueue)
	if !ok {
		// absent slot means an empty queue; a read failure is
		// indistinguishable and also yields empty — safe either way,
		// items stay durable until removed explicitly
		return nil, nil
	}

	out := make([]models.QueueItem, len(items))
	copy(out, items)
	return out, nil
}

func (q *queueRepository) Remove(ctx context.Context, id string) error {
	return q.mutate(ctx, func(items []models.QueueItem) []models.QueueItem {
		out := items[:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})
}

func (q *queueRepository) SetRetryCount(ctx context.Context, id string, count int) error {
	return q.mutate(ctx, func(items []models.QueueItem) []models.QueueItem {
		for i := range items {
			if items[i].ID == id {
				items[i].RetryCount = count
			}
		}
		return items
	})
}

func (q *queueRepository) Len(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, _ := Get[[]models.QueueItem](ctx, q.rs, KeySyncQueue)
	return len(items), nil
}

func (q *queueRepository) mutate(ctx context.Context, fn func([]models.QueueItem) []models.QueueItem) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	items, _ := Get[[]models.QueueItem](ctx, q.rs, KeySyncQueue)
	items = fn(items)

	if !Set(ctx, q.rs, KeySyncQueue, items) {
		return ErrQueueWriteFailed
	}
	return nil
}
