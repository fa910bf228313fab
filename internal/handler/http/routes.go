package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withLogging)

	// token exchange requires a session token, not a remote credential
	router.Post("/api/auth/token", h.exchangeToken)

	// document API requires a previously exchanged remote credential
	router.Group(func(r chi.Router) {
		r.Use(h.withCredential)
		r.Get("/api/v1/users/{userID}/{collection}", h.queryDocuments)
		r.Patch("/api/v1/users/{userID}/{collection}/{documentID}", h.upsertDocument)
		r.Delete("/api/v1/users/{userID}/{collection}/{documentID}", h.deleteDocument)
	})

	return router
}
