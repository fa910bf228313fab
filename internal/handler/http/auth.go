// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/utils"
	"github.com/pkalugin/ironlog/models"
)

type contextKey string

const userIDCtxKey contextKey = "userID"

// exchangeToken implements the auth-bridge contract: a valid session token
// in the Authorization header yields a remote credential, anything else a
// 401 (invalid/expired/missing token) or 500 (verification failure).
func (h *Handler) exchangeToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sessionToken, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	userID, err := utils.ValidateSessionToken(sessionToken, h.cfg.TokenSignKey, h.cfg.TokenIssuer)
	if err != nil {
		log.Warn().Err(err).Str("func", "*Handler.exchangeToken").Msg("session token rejected")
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	credential := utils.NewUUIDGenerator().Generate()
	h.storeCredential(credential, userID)

	log.Info().Str("func", "*Handler.exchangeToken").Str("user_id", userID).
		Msg("remote credential issued")

	utils.WriteJSON(w, models.TokenExchangeResponse{RemoteCredential: credential}, http.StatusOK)
}

// withCredential guards the document API: the bearer value must be a
// credential previously issued by exchangeToken, and its owner must match
// the {userID} path segment.
func (h *Handler) withCredential(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		credential, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			http.Error(w, "missing bearer credential", http.StatusUnauthorized)
			return
		}

		userID, ok := h.credentialOwner(credential)
		if !ok {
			http.Error(w, "unknown credential", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func userIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	return userID, ok
}
