package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_CapturesStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	lw := &responseWriter{ResponseWriter: rec}

	lw.WriteHeader(http.StatusTeapot)
	n, err := lw.Write([]byte("short and stout"))

	assert.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, http.StatusTeapot, lw.status)
	assert.Equal(t, 15, lw.size)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	lw := &responseWriter{ResponseWriter: rec}

	_, err := lw.Write([]byte("ok"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, lw.status)
}

func TestWithLogging_PassesThrough(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// the middleware chain must not swallow the response
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
