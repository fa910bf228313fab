// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/store"
	"github.com/pkalugin/ironlog/internal/utils"
	"github.com/pkalugin/ironlog/models"
)

type dataService struct {
	records store.RecordStore
	queue   store.QueueRepository
	ids     *utils.UUIDGenerator
	logger  *logger.Logger

	now func() int64
}

// NewDataService builds the [DataService] facade over the client storages.
func NewDataService(storages *store.ClientStorages, log *logger.Logger) DataService {
	return &dataService{
		records: storages.Records,
		queue:   storages.Queue,
		ids:     utils.NewUUIDGenerator(),
		logger:  log,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// ── user identity ────────────────────────────────────────────────────────────

func (s *dataService) GetUserProfile(ctx context.Context) (models.UserProfile, bool) {
	return store.Get[models.UserProfile](ctx, s.records, store.KeyUserProfile)
}

func (s *dataService) SetUserProfile(ctx context.Context, profile models.UserProfile) bool {
	return store.Set(ctx, s.records, store.KeyUserProfile, profile)
}

// ── preferences ──────────────────────────────────────────────────────────────

func (s *dataService) GetPreferences(ctx context.Context) (models.Preferences, bool) {
	wrapped, ok := store.Get[models.Synced[models.Preferences]](ctx, s.records, store.KeyPreferences)
	if !ok {
		return models.Preferences{}, false
	}
	return wrapped.Data, true
}

func (s *dataService) SavePreferences(ctx context.Context, prefs models.Preferences) bool {
	if !store.Set(ctx, s.records, store.KeyPreferences, models.NewSynced(prefs, s.now())) {
		return false
	}

	s.enqueue(ctx, models.CollectionPreferences, models.SingletonPreferencesID, models.ActionUpsert,
		preferencesDocument(prefs))
	return true
}

func (s *dataService) DeletePreferences(ctx context.Context) bool {
	if !s.records.Remove(ctx, store.KeyPreferences) {
		return false
	}

	s.enqueue(ctx, models.CollectionPreferences, models.SingletonPreferencesID, models.ActionDelete, nil)
	return true
}

// ── templates ────────────────────────────────────────────────────────────────

func (s *dataService) GetTemplates(ctx context.Context) ([]models.WorkoutTemplate, bool) {
	wrapped, ok := store.Get[models.Synced[[]models.WorkoutTemplate]](ctx, s.records, store.KeyTemplates)
	if !ok {
		return nil, false
	}
	return wrapped.Data, true
}

func (s *dataService) SaveTemplate(ctx context.Context, tpl models.WorkoutTemplate) (models.WorkoutTemplate, bool) {
	now := s.now()
	if tpl.ID == "" {
		tpl.ID = s.ids.Generate()
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	templates, _ := s.GetTemplates(ctx)
	replaced := false
	for i := range templates {
		if templates[i].ID == tpl.ID {
			templates[i] = tpl
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, tpl)
	}

	if !store.Set(ctx, s.records, store.KeyTemplates, models.NewSynced(templates, now)) {
		return models.WorkoutTemplate{}, false
	}

	s.enqueue(ctx, models.CollectionTemplates, tpl.ID, models.ActionUpsert, tpl)
	return tpl, true
}

func (s *dataService) DeleteTemplate(ctx context.Context, id string) bool {
	templates, _ := s.GetTemplates(ctx)
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if !store.Set(ctx, s.records, store.KeyTemplates, models.NewSynced(kept, s.now())) {
		return false
	}

	s.enqueue(ctx, models.CollectionTemplates, id, models.ActionDelete, nil)
	return true
}

// ── session history ──────────────────────────────────────────────────────────

func (s *dataService) GetSessions(ctx context.Context) ([]models.WorkoutSession, bool) {
	wrapped, ok := store.Get[models.Synced[[]models.WorkoutSession]](ctx, s.records, store.KeySessions)
	if !ok {
		return nil, false
	}
	return wrapped.Data, true
}

func (s *dataService) GetSessionByID(ctx context.Context, id string) (models.WorkoutSession, bool) {
	sessions, ok := s.GetSessions(ctx)
	if !ok {
		return models.WorkoutSession{}, false
	}
	for _, sess := range sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return models.WorkoutSession{}, false
}

// ── current session ──────────────────────────────────────────────────────────

func (s *dataService) StartSession(ctx context.Context, session models.WorkoutSession) (models.WorkoutSession, bool) {
	if session.ID == "" {
		session.ID = s.ids.Generate()
	}
	if session.StartedAt == 0 {
		session.StartedAt = s.now()
	}
	session.CompletedAt = nil

	if !store.Set(ctx, s.records, store.KeyCurrentSession, session) {
		return models.WorkoutSession{}, false
	}
	return session, true
}

func (s *dataService) GetCurrentSession(ctx context.Context) (models.WorkoutSession, bool) {
	return store.Get[models.WorkoutSession](ctx, s.records, store.KeyCurrentSession)
}

func (s *dataService) UpdateCurrentSession(ctx context.Context, session models.WorkoutSession) bool {
	current, ok := s.GetCurrentSession(ctx)
	if !ok {
		s.logger.Warn().Str("func", "dataService.UpdateCurrentSession").
			Msg("no session in progress")
		return false
	}

	session.ID = current.ID
	session.StartedAt = current.StartedAt
	session.CompletedAt = nil

	return store.Set(ctx, s.records, store.KeyCurrentSession, session)
}

func (s *dataService) CompleteSession(ctx context.Context) (models.WorkoutSession, bool) {
	current, ok := s.GetCurrentSession(ctx)
	if !ok {
		s.logger.Warn().Str("func", "dataService.CompleteSession").
			Msg("no session in progress")
		return models.WorkoutSession{}, false
	}

	now := s.now()
	current.CompletedAt = &now

	sessions, _ := s.GetSessions(ctx)
	sessions = append([]models.WorkoutSession{current}, sessions...)

	// history first, then the slot: if the history write fails the session
	// stays current and the whole call fails; if the slot removal fails we
	// roll the history entry back so neither effect happens without the
	// other
	if !store.Set(ctx, s.records, store.KeySessions, models.NewSynced(sessions, now)) {
		return models.WorkoutSession{}, false
	}
	if !s.records.Remove(ctx, store.KeyCurrentSession) {
		store.Set(ctx, s.records, store.KeySessions, models.NewSynced(sessions[1:], now))
		return models.WorkoutSession{}, false
	}

	s.enqueue(ctx, models.CollectionSessions, current.ID, models.ActionUpsert, current)
	return current, true
}

func (s *dataService) DiscardSession(ctx context.Context) bool {
	return s.records.Remove(ctx, store.KeyCurrentSession)
}

// ── housekeeping ─────────────────────────────────────────────────────────────

func (s *dataService) ClearAll(ctx context.Context) bool {
	return s.records.ClearAll(ctx)
}

// enqueue appends a replication intent for an already-committed local write.
// A failed append is logged but does not fail the caller: the local commit
// is the source of truth and replication is best-effort.
func (s *dataService) enqueue(ctx context.Context, collection models.Collection, documentID string, action models.QueueAction, payload any) {
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			s.logger.Err(err).Str("func", "dataService.enqueue").
				Str("collection", string(collection)).
				Str("document_id", documentID).
				Msg("failed to encode replication payload")
			return
		}
		data = raw
	}

	item := models.QueueItem{
		ID:         s.ids.Generate(),
		Collection: collection,
		DocumentID: documentID,
		Action:     action,
		Data:       data,
		CreatedAt:  s.now(),
	}

	if err := s.queue.Append(ctx, item); err != nil {
		s.logger.Err(err).Str("func", "dataService.enqueue").
			Str("collection", string(collection)).
			Str("document_id", documentID).
			Msg("failed to queue replication operation")
	}
}

// preferencesDocument shapes the singleton preferences payload as a remote
// document, carrying its fixed id like every other document.
func preferencesDocument(prefs models.Preferences) map[string]any {
	return map[string]any{
		"id":               models.SingletonPreferencesID,
		"weightUnit":       prefs.WeightUnit,
		"restTimerSeconds": prefs.RestTimerSeconds,
		"firstWeekday":     prefs.FirstWeekday,
		"keepScreenOn":     prefs.KeepScreenOn,
	}
}
