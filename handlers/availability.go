// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
)

type AvailabilityHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAvailabilityHandler(db *sql.DB, cfg cliparse.Config) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, cfg: cfg}
}

// Submit handles POST /api/polls/{pollId}/availability
//
// The whole batch is parsed and validated before anything is written; a
// single bad block rejects the submission. With replace=true (the default)
// every existing block for the participant is deleted first, so the new set
// is a full overwrite. With replace=false the blocks are appended with no
// dedup or overlap check.
//
// The delete and the inserts are not wrapped in a transaction: concurrent
// replace submissions from the same participant race last-writer-wins, and
// an insert failure after the delete leaves the set cleared (reported as a
// 500, never hidden). Acceptable for human-paced submission volume.
func (h *AvailabilityHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	var req models.SubmitAvailabilityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var issues []models.FieldIssue
	if req.ParticipantID == "" {
		issues = append(issues, models.FieldIssue{Field: "participant_id", Message: "participant_id is required"})
	} else if _, err := uuid.Parse(req.ParticipantID); err != nil {
		issues = append(issues, models.FieldIssue{Field: "participant_id", Message: "participant_id must be a UUID"})
	}
	if len(req.Blocks) == 0 {
		issues = append(issues, models.FieldIssue{Field: "blocks", Message: "blocks must contain at least one entry"})
	}

	// Normalize and validate times. Any failure rejects the whole batch.
	type span struct {
		start, end time.Time
	}
	spans := make([]span, 0, len(req.Blocks))
	for i, b := range req.Blocks {
		start, startErr := time.Parse(time.RFC3339, b.Start)
		if startErr != nil {
			issues = append(issues, models.FieldIssue{
				Field:   fmt.Sprintf("blocks[%d].start", i),
				Message: "start must be an RFC 3339 date-time",
			})
		}
		end, endErr := time.Parse(time.RFC3339, b.End)
		if endErr != nil {
			issues = append(issues, models.FieldIssue{
				Field:   fmt.Sprintf("blocks[%d].end", i),
				Message: "end must be an RFC 3339 date-time",
			})
		}
		if startErr == nil && endErr == nil && !end.After(start) {
			issues = append(issues, models.FieldIssue{
				Field:   fmt.Sprintf("blocks[%d]", i),
				Message: "end must be after start",
			})
		}
		spans = append(spans, span{start: start.UTC(), end: end.UTC()})
	}

	if len(issues) > 0 {
		middleware.ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)
		return
	}

	// Scoping: the participant must belong to the poll named in the path
	var participantID string
	err := h.db.QueryRow(`
		SELECT id FROM participants WHERE id = $1 AND poll_id = $2
	`, req.ParticipantID, pollID).Scan(&participantID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusForbidden, "Participant does not belong to poll")
		return
	}
	if err != nil {
		slog.Error("failed to verify participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	replace := true
	if req.Replace != nil {
		replace = *req.Replace
	}

	if replace {
		_, err := h.db.Exec(`
			DELETE FROM availabilities WHERE poll_id = $1 AND participant_id = $2
		`, pollID, participantID)
		if err != nil {
			slog.Error("failed to clear availability", "error", err, "participant_id", participantID)
			middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to clear existing availability", err.Error())
			return
		}
	}

	for _, s := range spans {
		_, err := h.db.Exec(`
			INSERT INTO availabilities (id, poll_id, participant_id, start_ts, end_ts)
			VALUES ($1, $2, $3, $4, $5)
		`, auth.NewID(), pollID, participantID, s.start, s.end)
		if err != nil {
			slog.Error("failed to insert availability", "error", err, "participant_id", participantID)
			middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to save availability", err.Error())
			return
		}
	}

	slog.Info("availability submitted",
		"poll_id", pollID,
		"participant_id", participantID,
		"blocks", len(spans),
		"replace", replace,
	)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAvailabilityResponse{
		OK:       true,
		Inserted: len(spans),
	})
}

// DeleteBlock handles DELETE /api/polls/{pollId}/availability/{availabilityId}
//
// Ownership is checked against the caller-asserted pid query parameter, not
// against anything token-derived: the token grants poll access, and the pid
// is trusted to name the participant. Anyone holding the poll token can
// therefore delete any block whose ids they know. Known trust boundary.
func (h *AvailabilityHandler) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	availabilityID := r.PathValue("availabilityId")
	if pollID == "" || availabilityID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing poll or availability id")
		return
	}
	token := r.URL.Query().Get("t")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing token")
		return
	}
	participantID := r.URL.Query().Get("pid")
	if participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing participant id (pid)")
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

	var block models.AvailabilityBlock
	err := h.db.QueryRow(`
		SELECT id, poll_id, participant_id FROM availabilities WHERE id = $1
	`, availabilityID).Scan(&block.ID, &block.PollID, &block.ParticipantID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Availability not found")
		return
	}
	if err != nil {
		slog.Error("failed to query availability", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if block.PollID != pollID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Mismatched poll")
		return
	}
	if block.ParticipantID != participantID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not allowed to delete this block")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM availabilities WHERE id = $1`, availabilityID); err != nil {
		slog.Error("failed to delete availability", "error", err, "availability_id", availabilityID)
		middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to delete availability", err.Error())
		return
	}

	slog.Info("availability deleted", "poll_id", pollID, "availability_id", availabilityID)

	w.WriteHeader(http.StatusNoContent)
}
