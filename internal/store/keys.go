// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import "github.com/pkalugin/ironlog/models"

// KeyPrefix namespaces every persisted key so the records table can be
// shared with unrelated data without collisions.
const KeyPrefix = "ironlog:"

// Logical record-store slots, one per collection plus engine bookkeeping.
const (
	KeyUserProfile    = KeyPrefix + "user_profile"
	KeyPreferences    = KeyPrefix + "preferences"
	KeyTemplates      = KeyPrefix + "templates"
	KeySessions       = KeyPrefix + "sessions"
	KeyCurrentSession = KeyPrefix + "current_session"
	KeySyncQueue      = KeyPrefix + "sync_queue"
	KeyLastSyncedAt   = KeyPrefix + "last_synced_at"
)

// CollectionKey maps a syncable collection to its local slot.
func CollectionKey(c models.Collection) string {
	switch c {
	case models.CollectionPreferences:
		return KeyPreferences
	case models.CollectionTemplates:
		return KeyTemplates
	case models.CollectionSessions:
		return KeySessions
	}
	return ""
}
