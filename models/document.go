// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package models

// Remote documents carry two bookkeeping fields the local representation
// does not have. FieldSyncedAt is the time the engine wrote the document;
// FieldLastModified is the client-assigned modification time used as the
// download-phase watermark.
const (
	FieldSyncedAt     = "_syncedAt"
	FieldLastModified = "_lastModified"
)

// SingletonPreferencesID is the fixed document id of the per-user
// preferences document; preferences never use arbitrary ids.
const SingletonPreferencesID = "preferences"

// Document is the wire representation of one remote document: the flattened
// JSON object stored at users/{userId}/{collection}/{documentId}.
type Document map[string]any

// ID returns the document's "id" field, or "" when absent.
func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// StripSyncFields returns a copy of d without the engine bookkeeping fields.
// Pulled documents must be stripped before they enter the local store.
func (d Document) StripSyncFields() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == FieldSyncedAt || k == FieldLastModified {
			continue
		}
		out[k] = v
	}
	return out
}
