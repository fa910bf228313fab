// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package models

// Synced wraps a locally persisted value with its replication bookkeeping.
// LastModified is advanced on every local write of the slot; SyncedAt is set
// only by the sync engine after a confirmed remote write and stays nil until
// then. Both are epoch milliseconds.
type Synced[T any] struct {
	Data         T      `json:"data"`
	LastModified int64  `json:"lastModified"`
	SyncedAt     *int64 `json:"syncedAt"`
}

// NewSynced wraps data as a freshly modified, not-yet-replicated value.
func NewSynced[T any](data T, now int64) Synced[T] {
	return Synced[T]{Data: data, LastModified: now}
}
