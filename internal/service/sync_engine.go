// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pkalugin/ironlog/internal/adapter"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/store"
	"github.com/pkalugin/ironlog/models"
)

const (
	// maxRetryCount is the ceiling after which a queue item is dropped and
	// surfaced as a non-retryable error instead of being retried forever.
	maxRetryCount = 5

	// uploadAttempts and uploadBackoffBase shape the in-cycle backoff for
	// a single remote call; failures beyond these attempts count as one
	// cycle-level failure against the item's retry budget.
	uploadAttempts    = 3
	uploadBackoffBase = 200 * time.Millisecond
)

// SyncEngineConfig carries the collaborators and the replication gate into
// [NewSyncEngine].
type SyncEngineConfig struct {
	Documents    adapter.DocumentClient
	Credentials  adapter.CredentialSource
	Connectivity adapter.ConnectivityProbe
	// Configured is false when the remote-store settings are incomplete;
	// the engine then no-ops every cycle (permanent local-only mode).
	Configured bool
}

type syncEngine struct {
	records   store.RecordStore
	queue     store.QueueRepository
	watermark store.WatermarkRepository
	cfg       SyncEngineConfig
	logger    *logger.Logger

	now func() int64

	// cycleMu is the re-entrancy latch: at most one cycle runs at a time
	// even if a cycle's network work outlives the timer interval.
	cycleMu sync.Mutex

	mu          sync.Mutex
	status      models.SyncStatus
	subscribers map[int]func(models.SyncStatus)
	nextSubID   int
	lastResult  *models.SyncResult
}

// NewSyncEngine builds the [SyncEngine] over the client storages and the
// injected external collaborators. Initial status is idle.
func NewSyncEngine(storages *store.ClientStorages, cfg SyncEngineConfig, log *logger.Logger) SyncEngine {
	return &syncEngine{
		records:     storages.Records,
		queue:       storages.Queue,
		watermark:   storages.Watermark,
		cfg:         cfg,
		logger:      log,
		now:         func() int64 { return time.Now().UnixMilli() },
		status:      models.StatusIdle,
		subscribers: make(map[int]func(models.SyncStatus)),
	}
}

func (e *syncEngine) Status() models.SyncStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

func (e *syncEngine) Subscribe(fn func(models.SyncStatus)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

func (e *syncEngine) LastResult() (models.SyncResult, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastResult == nil {
		return models.SyncResult{}, false
	}
	return *e.lastResult, true
}

// setStatus records a transition and fans it out to subscribers, once per
// transition. Setting the current status again is a no-op.
func (e *syncEngine) setStatus(s models.SyncStatus) {
	e.mu.Lock()
	if e.status == s {
		e.mu.Unlock()
		return
	}
	e.status = s
	fns := make([]func(models.SyncStatus), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (e *syncEngine) storeResult(res models.SyncResult) models.SyncResult {
	e.mu.Lock()
	e.lastResult = &res
	e.mu.Unlock()
	return res
}

func (e *syncEngine) PerformSync(ctx context.Context) (result models.SyncResult) {
	if !e.cycleMu.TryLock() {
		e.logger.Debug().Str("func", "syncEngine.PerformSync").
			Msg("cycle already in flight, skipping")
		return models.SyncResult{Success: true}
	}
	defer e.cycleMu.Unlock()

	log := e.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("func", "syncEngine.PerformSync").
				Any("panic", r).
				Msg("sync cycle failed wholesale")
			e.setStatus(models.StatusError)
			result = e.storeResult(models.SyncResult{
				Success: false,
				Errors:  []models.SyncError{{Message: fmt.Sprintf("sync cycle panic: %v", r), Retryable: true}},
			})
		}
	}()

	// preflight gate: a skipped cycle is not an error
	if !e.cfg.Configured {
		log.Debug().Msg("remote replication not configured, skipping cycle")
		return e.storeResult(models.SyncResult{Success: true, Errors: []models.SyncError{}})
	}

	profile, ok := store.Get[models.UserProfile](ctx, e.records, store.KeyUserProfile)
	if !ok || profile.UserID == "" {
		log.Debug().Msg("no signed-in user, skipping cycle")
		return e.storeResult(models.SyncResult{Success: true, Errors: []models.SyncError{}})
	}

	if !e.cfg.Connectivity.Online(ctx) {
		log.Debug().Msg("no connectivity, skipping cycle")
		e.setStatus(models.StatusOffline)
		return e.storeResult(models.SyncResult{Success: true, Errors: []models.SyncError{}})
	}

	if _, ok := e.cfg.Credentials.Credential(ctx); !ok {
		log.Debug().Msg("no remote credential, skipping cycle")
		e.setStatus(models.StatusIdle)
		return e.storeResult(models.SyncResult{Success: true, Errors: []models.SyncError{}})
	}

	e.setStatus(models.StatusSyncing)

	res := models.SyncResult{Success: true, Errors: []models.SyncError{}}

	e.uploadPhase(ctx, profile.UserID, &res)
	e.downloadPhase(ctx, profile.UserID, &res)

	// the watermark advances even when individual items failed, so one
	// persistently failing document cannot stall the rest of the corpus
	e.watermark.SetLastSyncedAt(ctx, e.now())

	e.setStatus(models.StatusIdle)

	log.Info().Str("func", "syncEngine.PerformSync").
		Int("uploaded", res.ItemsUploaded).
		Int("downloaded", res.ItemsDownloaded).
		Int("errors", len(res.Errors)).
		Msg("sync cycle finished")

	return e.storeResult(res)
}

// ── upload phase ─────────────────────────────────────────────────────────────

func (e *syncEngine) uploadPhase(ctx context.Context, userID string, res *models.SyncResult) {
	log := logger.FromContext(ctx)

	items, err := e.queue.Snapshot(ctx)
	if err != nil {
		res.Errors = append(res.Errors, models.SyncError{
			Message:   fmt.Sprintf("read sync queue: %v", err),
			Retryable: true,
		})
		return
	}

	for _, item := range items {
		if err := e.uploadItem(ctx, userID, item); err != nil {
			newCount := item.RetryCount + 1
			if newCount >= maxRetryCount {
				// poison item: drop it so the queue cannot grow
				// without bound, surface the drop for observability
				if rmErr := e.queue.Remove(ctx, item.ID); rmErr != nil {
					log.Err(rmErr).Str("id", item.ID).Msg("failed to drop poison queue item")
				}
				res.Errors = append(res.Errors, models.SyncError{
					Collection: item.Collection,
					DocumentID: item.DocumentID,
					Message:    fmt.Sprintf("upload failed after %d attempts: %v", newCount, err),
					Retryable:  false,
				})
				log.Warn().Str("id", item.ID).
					Str("collection", string(item.Collection)).
					Str("document_id", item.DocumentID).
					Msg("queue item dropped at retry ceiling")
				continue
			}

			if setErr := e.queue.SetRetryCount(ctx, item.ID, newCount); setErr != nil {
				log.Err(setErr).Str("id", item.ID).Msg("failed to persist retry count")
			}
			res.Errors = append(res.Errors, models.SyncError{
				Collection: item.Collection,
				DocumentID: item.DocumentID,
				Message:    err.Error(),
				Retryable:  true,
			})
			continue
		}

		if err := e.queue.Remove(ctx, item.ID); err != nil {
			log.Err(err).Str("id", item.ID).Msg("failed to remove uploaded queue item")
			continue
		}
		res.ItemsUploaded++
		e.markSlotSynced(ctx, item.Collection)
	}
}

// uploadItem replicates a single queue item, retrying transport failures
// with a short exponential backoff before giving up for this cycle.
func (e *syncEngine) uploadItem(ctx context.Context, userID string, item models.QueueItem) error {
	backoff := retry.WithMaxRetries(uploadAttempts-1, retry.NewExponential(uploadBackoffBase))

	switch item.Action {
	case models.ActionUpsert:
		doc := models.Document{}
		if len(item.Data) > 0 {
			if err := json.Unmarshal(item.Data, &doc); err != nil {
				return fmt.Errorf("decode queued payload: %w", err)
			}
		}
		doc[models.FieldSyncedAt] = e.now()
		doc[models.FieldLastModified] = item.CreatedAt

		return retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := e.cfg.Documents.Upsert(ctx, userID, item.Collection, item.DocumentID, doc); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})

	case models.ActionDelete:
		return retry.Do(ctx, backoff, func(ctx context.Context) error {
			if err := e.cfg.Documents.Delete(ctx, userID, item.Collection, item.DocumentID); err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})

	default:
		return fmt.Errorf("unknown queue action %q", item.Action)
	}
}

// markSlotSynced stamps the collection slot's syncedAt after a confirmed
// remote write. The slot is manipulated as raw JSON so one helper serves
// every wrapped slot type.
func (e *syncEngine) markSlotSynced(ctx context.Context, collection models.Collection) {
	key := store.CollectionKey(collection)
	if key == "" {
		return
	}

	raw, ok := e.records.GetRaw(ctx, key)
	if !ok {
		return
	}

	var slot map[string]json.RawMessage
	if err := json.Unmarshal(raw, &slot); err != nil {
		return
	}
	if _, wrapped := slot["lastModified"]; !wrapped {
		return
	}

	ts, err := json.Marshal(e.now())
	if err != nil {
		return
	}
	slot["syncedAt"] = ts

	if updated, err := json.Marshal(slot); err == nil {
		e.records.SetRaw(ctx, key, updated)
	}
}

// ── download phase ───────────────────────────────────────────────────────────

func (e *syncEngine) downloadPhase(ctx context.Context, userID string, res *models.SyncResult) {
	log := logger.FromContext(ctx)
	since := e.watermark.LastSyncedAt(ctx)

	for _, collection := range models.SyncableCollections {
		docs, err := e.cfg.Documents.QueryNewer(ctx, userID, collection, since)
		if err != nil {
			// one failing collection must not halt the others
			res.Errors = append(res.Errors, models.SyncError{
				Collection: collection,
				Message:    fmt.Sprintf("download query: %v", err),
				Retryable:  true,
			})
			log.Warn().Err(err).Str("collection", string(collection)).
				Msg("download query failed, continuing with next collection")
			continue
		}

		for _, doc := range docs {
			if e.insertIfAbsent(ctx, collection, doc.StripSyncFields()) {
				res.ItemsDownloaded++
			}
		}
	}
}

// insertIfAbsent merges a pulled document into the local collection only if
// no record with its ID exists yet. Existing local records are never
// overwritten: local data is authoritative under the single-active-device
// assumption.
func (e *syncEngine) insertIfAbsent(ctx context.Context, collection models.Collection, doc models.Document) bool {
	now := e.now()

	switch collection {
	case models.CollectionPreferences:
		if _, exists := e.records.GetRaw(ctx, store.KeyPreferences); exists {
			return false
		}
		prefs, err := documentAs[models.Preferences](doc)
		if err != nil {
			return false
		}
		wrapped := models.NewSynced(prefs, now)
		wrapped.SyncedAt = &now
		return store.Set(ctx, e.records, store.KeyPreferences, wrapped)

	case models.CollectionTemplates:
		return insertListItem(ctx, e.records, store.KeyTemplates, doc, now,
			func(t models.WorkoutTemplate) string { return t.ID })

	case models.CollectionSessions:
		return insertListItem(ctx, e.records, store.KeySessions, doc, now,
			func(s models.WorkoutSession) string { return s.ID })
	}

	return false
}

// insertListItem appends a pulled document to a list-valued slot unless an
// element with the same ID is already there.
func insertListItem[T any](ctx context.Context, rs store.RecordStore, key string, doc models.Document, now int64, idOf func(T) string) bool {
	item, err := documentAs[T](doc)
	if err != nil {
		return false
	}
	id := idOf(item)
	if id == "" {
		return false
	}

	wrapped, _ := store.Get[models.Synced[[]T]](ctx, rs, key)
	for _, existing := range wrapped.Data {
		if idOf(existing) == id {
			return false
		}
	}

	wrapped.Data = append(wrapped.Data, item)
	wrapped.LastModified = now
	wrapped.SyncedAt = &now

	return store.Set(ctx, rs, key, wrapped)
}

// documentAs decodes a wire document into its local representation.
func documentAs[T any](doc models.Document) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
