// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/handlers"
	"github.com/danielhkuo/quickly-meet/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg)
	participantHandler := handlers.NewParticipantHandler(db, cfg)
	availabilityHandler := handlers.NewAvailabilityHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll lifecycle
	mux.HandleFunc("POST /api/polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /api/polls/{pollId}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PATCH /api/polls/{pollId}", middleware.WithLogging(pollHandler.UpdatePoll))

	// Participant registration (token-gated)
	mux.HandleFunc("POST /api/polls/{pollId}/participants", middleware.WithLogging(participantHandler.JoinPoll))

	// Availability ledger (token-gated)
	mux.HandleFunc("POST /api/polls/{pollId}/availability", middleware.WithLogging(availabilityHandler.Submit))
	mux.HandleFunc("DELETE /api/polls/{pollId}/availability/{availabilityId}", middleware.WithLogging(availabilityHandler.DeleteBlock))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-meet API v1"))
	})

	return mux
}
