// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import (
	"fmt"
	"sync"

	"dario.cat/mergo"

	"github.com/pkalugin/ironlog/models"
)

// DocumentStore is the in-memory document backend of the dev server. It
// implements the three remote operations the sync engine relies on:
// merge-write, delete, and range query by the _lastModified field.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]models.Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]models.Document)}
}

func docKey(userID string, collection models.Collection, documentID string) string {
	return fmt.Sprintf("%s/%s/%s", userID, collection, documentID)
}

// Merge upserts doc at the given address. Fields present in doc override the
// stored ones; stored fields absent from doc survive, which is what makes
// replayed upserts idempotent and concurrent remote fields safe.
func (s *DocumentStore) Merge(userID string, collection models.Collection, documentID string, doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := docKey(userID, collection, documentID)
	existing, ok := s.docs[key]
	if !ok {
		existing = models.Document{}
	}

	merged := models.Document{}
	for k, v := range existing {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, doc, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge document %s: %w", key, err)
	}

	s.docs[key] = merged
	return nil
}

// Delete removes the document; deleting an absent document is a no-op.
func (s *DocumentStore) Delete(userID string, collection models.Collection, documentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, docKey(userID, collection, documentID))
}

// Get returns the stored document, if any.
func (s *DocumentStore) Get(userID string, collection models.Collection, documentID string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docKey(userID, collection, documentID)]
	if !ok {
		return nil, false
	}
	return copyDoc(doc), true
}

// QueryNewer returns every document of the user's collection whose
// _lastModified exceeds since.
func (s *DocumentStore) QueryNewer(userID string, collection models.Collection, since int64) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := fmt.Sprintf("%s/%s/", userID, collection)
	out := make([]models.Document, 0)
	for key, doc := range s.docs {
		if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
			continue
		}
		if lastModified(doc) > since {
			out = append(out, copyDoc(doc))
		}
	}
	return out
}

func lastModified(doc models.Document) int64 {
	switch v := doc[models.FieldLastModified].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func copyDoc(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
