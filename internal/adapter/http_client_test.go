// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkalugin/ironlog/models"
)

// stubCreds is a fixed CredentialSource for transport tests.
type stubCreds struct {
	cred string
	ok   bool
}

func (s stubCreds) Credential(context.Context) (string, bool) { return s.cred, s.ok }

type capturedRequest struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

// newCaptureServer records the last request and answers with the given
// status and body.
func newCaptureServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		captured.header = r.Header.Clone()
		reqBody, _ := io.ReadAll(r.Body)
		captured.body = reqBody
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, captured
}

func newTestClient(t *testing.T, baseURL string, creds CredentialSource) DocumentClient {
	t.Helper()
	return NewHTTPDocumentClient(HTTPClientConfig{
		BaseURL:   baseURL,
		APIKey:    "key-1",
		ProjectID: "proj-1",
		AppID:     "app-1",
		Timeout:   2 * time.Second,
	}, creds)
}

// ── Upsert ───────────────────────────────────────────────────────────────────

func TestHTTPDocumentClient_Upsert(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusNoContent, "")
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	err := cli.Upsert(context.Background(), "u1", models.CollectionTemplates, "t1",
		models.Document{"id": "t1", "name": "Push Day"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, captured.method)
	assert.Equal(t, "/api/v1/users/u1/templates/t1", captured.path)
	assert.Equal(t, "key-1", captured.header.Get("X-Api-Key"))
	assert.Equal(t, "proj-1", captured.header.Get("X-Project-Id"))
	assert.Equal(t, "app-1", captured.header.Get("X-App-Id"))
	assert.Equal(t, "Bearer cred-1", captured.header.Get("Authorization"))
	assert.Contains(t, captured.header.Get("Content-Type"), "application/json")
	assert.Contains(t, string(captured.body), "Push Day")
}

func TestHTTPDocumentClient_Upsert_Unauthorized(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusUnauthorized, "")
	cli := newTestClient(t, srv.URL, stubCreds{cred: "stale", ok: true})

	err := cli.Upsert(context.Background(), "u1", models.CollectionTemplates, "t1", models.Document{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHTTPDocumentClient_Upsert_ServerErrorIncludesBody(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusInternalServerError, "merge failed")
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	err := cli.Upsert(context.Background(), "u1", models.CollectionTemplates, "t1", models.Document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "merge failed")
}

func TestHTTPDocumentClient_NoCredentialOmitsAuthorization(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusNoContent, "")
	cli := newTestClient(t, srv.URL, stubCreds{})

	err := cli.Upsert(context.Background(), "u1", models.CollectionTemplates, "t1", models.Document{})
	require.NoError(t, err)
	assert.Empty(t, captured.header.Get("Authorization"))
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestHTTPDocumentClient_Delete(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusNoContent, "")
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	err := cli.Delete(context.Background(), "u1", models.CollectionSessions, "s1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, captured.method)
	assert.Equal(t, "/api/v1/users/u1/sessions/s1", captured.path)
}

// ── QueryNewer ───────────────────────────────────────────────────────────────

func TestHTTPDocumentClient_QueryNewer(t *testing.T) {
	srv, captured := newCaptureServer(t, http.StatusOK,
		`[{"id":"s1","name":"Evening","_lastModified":150}]`)
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	docs, err := cli.QueryNewer(context.Background(), "u1", models.CollectionSessions, 100)
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, captured.method)
	assert.Equal(t, "/api/v1/users/u1/sessions", captured.path)
	assert.Equal(t, "since=100", captured.query)

	require.Len(t, docs, 1)
	assert.Equal(t, "s1", docs[0].ID())
	assert.Equal(t, "Evening", docs[0]["name"])
}

func TestHTTPDocumentClient_QueryNewer_EmptyResult(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `[]`)
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	docs, err := cli.QueryNewer(context.Background(), "u1", models.CollectionSessions, 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestHTTPDocumentClient_QueryNewer_MalformedBody(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusOK, `{not json`)
	cli := newTestClient(t, srv.URL, stubCreds{cred: "cred-1", ok: true})

	_, err := cli.QueryNewer(context.Background(), "u1", models.CollectionSessions, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode query response")
}

func TestHTTPDocumentClient_QueryNewer_Unauthorized(t *testing.T) {
	srv, _ := newCaptureServer(t, http.StatusUnauthorized, "")
	cli := newTestClient(t, srv.URL, stubCreds{cred: "stale", ok: true})

	_, err := cli.QueryNewer(context.Background(), "u1", models.CollectionSessions, 0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
