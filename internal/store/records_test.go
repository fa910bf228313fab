// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/models"
)

// newTestDB opens an in-memory SQLite database with migrations applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return db
}

func newTestRecordStore(t *testing.T) RecordStore {
	t.Helper()
	return NewRecordStore(newTestDB(t), logger.Nop())
}

// ── raw access ───────────────────────────────────────────────────────────────

func TestRecordStore_SetGetRoundtrip(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	ok := rs.SetRaw(ctx, KeyPreferences, []byte(`{"weightUnit":"kg"}`))
	require.True(t, ok)

	raw, ok := rs.GetRaw(ctx, KeyPreferences)
	require.True(t, ok)
	assert.JSONEq(t, `{"weightUnit":"kg"}`, string(raw))
}

func TestRecordStore_GetRaw_MissingKey(t *testing.T) {
	rs := newTestRecordStore(t)

	raw, ok := rs.GetRaw(context.Background(), KeyPreferences)
	assert.False(t, ok)
	assert.Nil(t, raw)
}

func TestRecordStore_SetRaw_Overwrites(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.True(t, rs.SetRaw(ctx, KeySessions, []byte(`"first"`)))
	require.True(t, rs.SetRaw(ctx, KeySessions, []byte(`"second"`)))

	raw, ok := rs.GetRaw(ctx, KeySessions)
	require.True(t, ok)
	assert.Equal(t, `"second"`, string(raw))
}

func TestRecordStore_Remove(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.True(t, rs.SetRaw(ctx, KeyCurrentSession, []byte(`{}`)))
	require.True(t, rs.Remove(ctx, KeyCurrentSession))

	_, ok := rs.GetRaw(ctx, KeyCurrentSession)
	assert.False(t, ok)

	// removing an absent key is still a success
	assert.True(t, rs.Remove(ctx, KeyCurrentSession))
}

func TestRecordStore_ClearAll_ScopedToPrefix(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.True(t, rs.SetRaw(ctx, KeyPreferences, []byte(`{}`)))
	require.True(t, rs.SetRaw(ctx, KeySyncQueue, []byte(`[]`)))
	require.True(t, rs.SetRaw(ctx, "other:unrelated", []byte(`"keep me"`)))

	require.True(t, rs.ClearAll(ctx))

	_, ok := rs.GetRaw(ctx, KeyPreferences)
	assert.False(t, ok)
	_, ok = rs.GetRaw(ctx, KeySyncQueue)
	assert.False(t, ok)

	raw, ok := rs.GetRaw(ctx, "other:unrelated")
	require.True(t, ok)
	assert.Equal(t, `"keep me"`, string(raw))
}

// ── typed access ─────────────────────────────────────────────────────────────

func TestTypedGetSet_Roundtrip(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	prefs := models.Preferences{WeightUnit: "kg", RestTimerSeconds: 90, FirstWeekday: 1, KeepScreenOn: true}
	require.True(t, Set(ctx, rs, KeyPreferences, prefs))

	got, ok := Get[models.Preferences](ctx, rs, KeyPreferences)
	require.True(t, ok)
	assert.Equal(t, prefs, got)
}

func TestTypedGet_MissingKey(t *testing.T) {
	rs := newTestRecordStore(t)

	got, ok := Get[models.Preferences](context.Background(), rs, KeyPreferences)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestTypedGet_MalformedValueDegradesToMiss(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	require.True(t, rs.SetRaw(ctx, KeyPreferences, []byte(`{not json`)))

	got, ok := Get[models.Preferences](ctx, rs, KeyPreferences)
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestTypedGet_WrappedSlot(t *testing.T) {
	rs := newTestRecordStore(t)
	ctx := context.Background()

	wrapped := models.NewSynced([]models.WorkoutTemplate{{ID: "t1", Name: "Push Day"}}, 1700000000000)
	require.True(t, Set(ctx, rs, KeyTemplates, wrapped))

	got, ok := Get[models.Synced[[]models.WorkoutTemplate]](ctx, rs, KeyTemplates)
	require.True(t, ok)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Push Day", got.Data[0].Name)
	assert.Equal(t, int64(1700000000000), got.LastModified)
	assert.Nil(t, got.SyncedAt)
}

// ── key mapping ──────────────────────────────────────────────────────────────

func TestCollectionKey(t *testing.T) {
	assert.Equal(t, KeyPreferences, CollectionKey(models.CollectionPreferences))
	assert.Equal(t, KeyTemplates, CollectionKey(models.CollectionTemplates))
	assert.Equal(t, KeySessions, CollectionKey(models.CollectionSessions))
	assert.Equal(t, "", CollectionKey(models.Collection("bogus")))
}
