// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Logging

	mux.HandleFunc("POST /api/polls", middleware.WithLogging(handler.CreatePoll))

Logs request start and completion with method, path, and duration via slog.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusCreated, resp)
	middleware.ErrorResponse(w, http.StatusForbidden, "Invalid or inactive token")
	middleware.ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)
	err := middleware.ParseJSONBody(r, &req)

Error responses always use the {error, details?} envelope from models.

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

Allows cross-origin requests from browser clients and answers OPTIONS
preflights directly.
*/
package middleware
