// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
)

type ParticipantHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewParticipantHandler(db *sql.DB, cfg cliparse.Config) *ParticipantHandler {
	return &ParticipantHandler{db: db, cfg: cfg}
}

// JoinPoll handles POST /api/polls/{pollId}/participants
// Registers a respondent on a poll. Requires a valid link token; there is no
// dedup against existing participants, so the same person may join twice.
func (h *ParticipantHandler) JoinPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing poll id")
		return
	}
	token := r.URL.Query().Get("t")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing token")
		return
	}

	if _, err := auth.Authorize(h.db, pollID, token); err != nil {
		if err == auth.ErrNotAuthorized {
			middleware.ErrorResponse(w, http.StatusForbidden, "Invalid or inactive token")
			return
		}
		slog.Error("failed to authorize token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req models.JoinPollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var issues []models.FieldIssue
	if strings.TrimSpace(req.Name) == "" {
		issues = append(issues, models.FieldIssue{Field: "name", Message: "name is required"})
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			issues = append(issues, models.FieldIssue{Field: "email", Message: "email must be a valid address"})
		}
	}
	if len(issues) > 0 {
		middleware.ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)
		return
	}

	tz := req.Tz
	if tz == "" {
		tz = "UTC"
	}
	var email *string
	if req.Email != "" {
		email = &req.Email
	}

	participant := models.Participant{
		ID:        auth.NewID(),
		PollID:    pollID,
		Name:      req.Name,
		Email:     email,
		Tz:        tz,
		InvitedAt: time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO participants (id, poll_id, name, email, tz, invited_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, participant.ID, participant.PollID, participant.Name, participant.Email,
		participant.Tz, participant.InvitedAt)

	if err != nil {
		slog.Error("failed to insert participant", "error", err, "poll_id", pollID)
		middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to create participant", err.Error())
		return
	}

	slog.Info("participant joined", "poll_id", pollID, "participant_id", participant.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinPollResponse{Participant: participant})
}
