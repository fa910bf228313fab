// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkalugin/ironlog/models"
)

func authedRequest(method, target, credential string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+credential)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func serve(router *chi.Mux, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// ── upsert ───────────────────────────────────────────────────────────────────

func TestUpsertDocument_StoresAndStampsSyncedAt(t *testing.T) {
	router, h := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/templates/t1", credential,
		`{"id":"t1","name":"Push Day","_lastModified":150}`))
	require.Equal(t, http.StatusNoContent, rec.Code)

	doc, ok := h.documents.Get("u1", models.CollectionTemplates, "t1")
	require.True(t, ok)
	assert.Equal(t, "Push Day", doc["name"])

	// the server assigns its own write time, whatever the client sent
	syncedAt, isInt := doc[models.FieldSyncedAt].(int64)
	require.True(t, isInt)
	assert.Positive(t, syncedAt)
}

func TestUpsertDocument_MergePreservesAbsentFields(t *testing.T) {
	router, h := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/templates/t1", credential,
		`{"id":"t1","name":"Push Day","notes":"heavy week"}`))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/templates/t1", credential,
		`{"name":"Pull Day"}`))
	require.Equal(t, http.StatusNoContent, rec.Code)

	doc, ok := h.documents.Get("u1", models.CollectionTemplates, "t1")
	require.True(t, ok)
	assert.Equal(t, "Pull Day", doc["name"])
	assert.Equal(t, "heavy week", doc["notes"])
}

func TestUpsertDocument_InvalidJSON(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/templates/t1", credential,
		`{broken`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsertDocument_UnknownCollection(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/bogus/t1", credential,
		`{"id":"t1"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ── delete ───────────────────────────────────────────────────────────────────

func TestDeleteDocument(t *testing.T) {
	router, h := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/sessions/s1", credential,
		`{"id":"s1"}`))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, authedRequest(http.MethodDelete, "/api/v1/users/u1/sessions/s1", credential, ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := h.documents.Get("u1", models.CollectionSessions, "s1")
	assert.False(t, ok)
}

func TestDeleteDocument_AbsentIsNoContent(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodDelete, "/api/v1/users/u1/sessions/never", credential, ""))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// ── query ────────────────────────────────────────────────────────────────────

func TestQueryDocuments_FiltersBySince(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/sessions/old", credential,
		`{"id":"old","_lastModified":100}`))
	serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/sessions/new", credential,
		`{"id":"new","_lastModified":200}`))

	rec := serve(router, authedRequest(http.MethodGet, "/api/v1/users/u1/sessions?since=100", credential, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var docs []models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "new", docs[0].ID())
}

func TestQueryDocuments_DefaultSinceIsZero(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	serve(router, authedRequest(http.MethodPatch, "/api/v1/users/u1/sessions/s1", credential,
		`{"id":"s1","_lastModified":100}`))

	rec := serve(router, authedRequest(http.MethodGet, "/api/v1/users/u1/sessions", credential, ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var docs []models.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &docs))
	assert.Len(t, docs, 1)
}

func TestQueryDocuments_EmptyCollection(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodGet, "/api/v1/users/u1/templates", credential, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestQueryDocuments_InvalidSince(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	rec := serve(router, authedRequest(http.MethodGet, "/api/v1/users/u1/sessions?since=soon", credential, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
