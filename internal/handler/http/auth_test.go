// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/store"
	"github.com/pkalugin/ironlog/internal/utils"
	"github.com/pkalugin/ironlog/models"
)

const (
	testSignKey = "test-sign-key"
	testIssuer  = "ironlog-dev"
)

func newTestRouter(t *testing.T) (*chi.Mux, *Handler) {
	t.Helper()

	cfg := &config.ServerConfig{
		HTTPAddress:  "localhost:0",
		TokenSignKey: testSignKey,
		TokenIssuer:  testIssuer,
	}
	h := NewHandler(cfg, store.NewDocumentStore(), logger.Nop())
	return h.Init(), h
}

func mintSessionToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := utils.GenerateSessionToken(testIssuer, userID, time.Hour, testSignKey)
	require.NoError(t, err)
	return token
}

// exchangeCredential walks the full token-exchange path and returns the
// issued remote credential.
func exchangeCredential(t *testing.T, router *chi.Mux, userID string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.Header.Set("Authorization", "Bearer "+mintSessionToken(t, userID))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TokenExchangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.RemoteCredential)
	return resp.RemoteCredential
}

// ── token exchange ───────────────────────────────────────────────────────────

func TestExchangeToken_IssuesCredential(t *testing.T) {
	router, h := newTestRouter(t)

	credential := exchangeCredential(t, router, "u1")

	owner, ok := h.credentialOwner(credential)
	require.True(t, ok)
	assert.Equal(t, "u1", owner)
}

func TestExchangeToken_MissingAuthorization(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExchangeToken_InvalidToken(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExchangeToken_WrongSignKey(t *testing.T) {
	router, _ := newTestRouter(t)

	forged, err := utils.GenerateSessionToken(testIssuer, "u1", time.Hour, "other-key")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ── credential guard on the document API ─────────────────────────────────────

func TestDocumentAPI_RequiresCredential(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/templates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDocumentAPI_RejectsUnknownCredential(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/templates", nil)
	req.Header.Set("Authorization", "Bearer never-issued")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDocumentAPI_RejectsForeignUserPath(t *testing.T) {
	router, _ := newTestRouter(t)
	credential := exchangeCredential(t, router, "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/u2/templates", nil)
	req.Header.Set("Authorization", "Bearer "+credential)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = bearerToken("bearer abc")
	assert.True(t, ok, "scheme comparison is case-insensitive")
	assert.Equal(t, "abc", token)

	_, ok = bearerToken("")
	assert.False(t, ok)
	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)
}
