// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package models

import "encoding/json"

// Collection identifies one of the logical groupings of replicated documents.
// The value is used both as the local record-store slot discriminator and as
// the path segment of the remote document address
// (users/{userId}/{collection}/{documentId}).
type Collection string

const (
	CollectionPreferences Collection = "preferences"
	CollectionTemplates   Collection = "templates"
	CollectionSessions    Collection = "sessions"
)

// SyncableCollections lists every collection the download phase queries,
// in the order it queries them.
var SyncableCollections = []Collection{
	CollectionPreferences,
	CollectionTemplates,
	CollectionSessions,
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case CollectionPreferences, CollectionTemplates, CollectionSessions:
		return true
	}
	return false
}

// QueueAction is the replication intent carried by a queue item.
type QueueAction string

const (
	ActionUpsert QueueAction = "upsert"
	ActionDelete QueueAction = "delete"
)

// QueueItem is a single pending replication operation. Items are appended by
// the data service on every mutating call and consumed FIFO by the sync
// engine. An item leaves the queue only on confirmed remote success or after
// its retry count reaches the ceiling, in which case the drop is surfaced as
// a non-retryable SyncError.
type QueueItem struct {
	ID         string          `json:"id"`
	Collection Collection      `json:"collection"`
	DocumentID string          `json:"documentId"`
	Action     QueueAction     `json:"action"`
	Data       json.RawMessage `json:"data,omitempty"`
	CreatedAt  int64           `json:"createdAt"`
	RetryCount int             `json:"retryCount"`
}

// SyncStatus is the process-wide observable state of the sync engine.
type SyncStatus string

const (
	StatusIdle    SyncStatus = "idle"
	StatusSyncing SyncStatus = "syncing"
	StatusError   SyncStatus = "error"
	StatusOffline SyncStatus = "offline"
)

// SyncError describes a single failed replication operation observed during
// a cycle. Retryable errors keep their item queued for the next cycle;
// non-retryable errors accompany an item dropped at the retry ceiling or a
// failed download query.
type SyncError struct {
	Collection Collection `json:"collection"`
	DocumentID string     `json:"documentId,omitempty"`
	Message    string     `json:"message"`
	Retryable  bool       `json:"retryable"`
}

// SyncResult summarises one completed sync cycle. Success is false only when
// the cycle itself failed wholesale; per-item failures are reported in Errors
// with Success still true.
type SyncResult struct {
	Success         bool        `json:"success"`
	ItemsUploaded   int         `json:"itemsUploaded"`
	ItemsDownloaded int         `json:"itemsDownloaded"`
	Errors          []SyncError `json:"errors"`
}
