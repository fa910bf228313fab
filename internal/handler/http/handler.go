// Package http implements the development remote backend: the token
// exchange endpoint consumed by the client's auth bridge and the document
// API consumed by its sync engine.
package http

import (
	"sync"

	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/store"
)

type Handler struct {
	cfg       *config.ServerConfig
	documents *store.DocumentStore
	logger    *logger.Logger

	// credentials maps issued remote credentials to user IDs; the dev
	// server keeps them in memory for the process lifetime.
	mu          sync.RWMutex
	credentials map[string]string
}

func NewHandler(cfg *config.ServerConfig, documents *store.DocumentStore, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		cfg:         cfg,
		documents:   documents,
		logger:      logger,
		credentials: make(map[string]string),
	}
}

func (h *Handler) storeCredential(credential, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.credentials[credential] = userID
}

func (h *Handler) credentialOwner(credential string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	userID, ok := h.credentials[credential]
	return userID, ok
}
