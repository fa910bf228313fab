// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/utils"
	"github.com/pkalugin/ironlog/models"
)

// upsertDocument merge-writes the request body at the addressed path. The
// server stamps _syncedAt with its own observed write time, overriding
// whatever the client sent.
func (h *Handler) upsertDocument(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, collection, ok := h.pathAddress(w, r)
	if !ok {
		return
	}
	documentID := chi.URLParam(r, "documentID")

	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.upsertDocument").Msg("invalid JSON was passed")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	doc[models.FieldSyncedAt] = time.Now().UnixMilli()

	if err := h.documents.Merge(userID, collection, documentID, doc); err != nil {
		log.Err(err).Str("func", "*Handler.upsertDocument").Msg("error merging document")
		http.Error(w, "error merging document", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, collection, ok := h.pathAddress(w, r)
	if !ok {
		return
	}

	h.documents.Delete(userID, collection, chi.URLParam(r, "documentID"))
	w.WriteHeader(http.StatusNoContent)
}

// queryDocuments returns every document of the collection whose
// _lastModified exceeds the "since" query parameter (epoch milliseconds,
// defaults to zero).
func (h *Handler) queryDocuments(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, collection, ok := h.pathAddress(w, r)
	if !ok {
		return
	}

	since := int64(0)
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Warn().Str("func", "*Handler.queryDocuments").Str("since", raw).
				Msg("invalid since parameter")
			http.Error(w, "invalid since parameter", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	docs := h.documents.QueryNewer(userID, collection, since)
	utils.WriteJSON(w, docs, http.StatusOK)
}

// pathAddress validates the {userID} and {collection} path segments and
// checks the credential owner matches the addressed user.
func (h *Handler) pathAddress(w http.ResponseWriter, r *http.Request) (string, models.Collection, bool) {
	userID := chi.URLParam(r, "userID")
	collection := models.Collection(chi.URLParam(r, "collection"))

	if !collection.Valid() {
		http.Error(w, "unknown collection", http.StatusBadRequest)
		return "", "", false
	}

	owner, ok := userIDFromContext(r.Context())
	if !ok || owner != userID {
		http.Error(w, "credential does not match user", http.StatusForbidden)
		return "", "", false
	}

	return userID, collection, true
}
