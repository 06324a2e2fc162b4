// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/middleware"
	"github.com/danielhkuo/quickly-meet/models"
)

// dateRE matches the YYYY-MM-DD calendar date format used for poll windows.
var dateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validTimezoneMode(mode string) bool {
	return mode == models.TimezoneModeLocal ||
		mode == models.TimezoneModeOrganizer ||
		mode == models.TimezoneModeUTC
}

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /api/polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input, collecting per-field issues
	var issues []models.FieldIssue

	if req.DurationMinutes == nil {
		issues = append(issues, models.FieldIssue{Field: "durationMinutes", Message: "durationMinutes is required"})
	} else if *req.DurationMinutes < models.MinDurationMinutes || *req.DurationMinutes > models.MaxDurationMinutes {
		issues = append(issues, models.FieldIssue{
			Field:   "durationMinutes",
			Message: fmt.Sprintf("durationMinutes must be between %d and %d", models.MinDurationMinutes, models.MaxDurationMinutes),
		})
	}

	timezoneMode := req.TimezoneMode
	if timezoneMode == "" {
		timezoneMode = models.TimezoneModeLocal
	} else if !validTimezoneMode(timezoneMode) {
		issues = append(issues, models.FieldIssue{Field: "timezoneMode", Message: "timezoneMode must be local, organizer, or utc"})
	}

	quietStart := models.DefaultQuietStart
	quietEnd := models.DefaultQuietEnd
	if req.QuietHours != nil {
		if req.QuietHours.Start == nil || *req.QuietHours.Start < 0 || *req.QuietHours.Start > 23 {
			issues = append(issues, models.FieldIssue{Field: "quietHours.start", Message: "quiet hours start must be an hour between 0 and 23"})
		} else {
			quietStart = *req.QuietHours.Start
		}
		if req.QuietHours.End == nil || *req.QuietHours.End < 0 || *req.QuietHours.End > 23 {
			issues = append(issues, models.FieldIssue{Field: "quietHours.end", Message: "quiet hours end must be an hour between 0 and 23"})
		} else {
			quietEnd = *req.QuietHours.End
		}
	}

	if len(issues) > 0 {
		middleware.ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)
		return
	}

	// Default poll window: today .. +7 days (UTC dates)
	now := time.Now().UTC()
	startDate := now.Format("2006-01-02")
	endDate := now.AddDate(0, 0, 7).Format("2006-01-02")

	pollID := auth.NewID()
	_, err := h.db.Exec(`
		INSERT INTO polls (id, title, duration_minutes, start_date, end_date, timezone_mode, fairness_mode, quiet_start, quiet_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, pollID, strings.TrimSpace(req.Title), *req.DurationMinutes, startDate, endDate,
		timezoneMode, req.FairnessMode, quietStart, quietEnd, now, now)

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to create poll", err.Error())
		return
	}

	token, err := auth.IssueLinkToken(h.db, pollID)
	if err != nil {
		slog.Error("failed to create link token", "error", err, "poll_id", pollID)
		middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to create link token", err.Error())
		return
	}

	slog.Info("poll created", "poll_id", pollID, "duration_minutes", *req.DurationMinutes)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		ID:    pollID,
		Token: token,
		Link:  h.cfg.BaseURL + "/p/" + pollID + "?t=" + token,
	})
}

// GetPoll handles GET /api/polls/{pollId}
// Returns the poll snapshot: configuration plus all participants and
// availability blocks. Requires a valid link token.
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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

	var poll models.Poll
	err := h.db.QueryRow(`
		SELECT id, title, description, duration_minutes, start_date, end_date,
		       timezone_mode, fairness_mode, quiet_start, quiet_end, created_at, updated_at
		FROM polls
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.DurationMinutes,
		&poll.StartDate, &poll.EndDate, &poll.TimezoneMode, &poll.FairnessMode,
		&poll.QuietStart, &poll.QuietEnd, &poll.CreatedAt, &poll.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, poll_id, name, email, tz, quiet_start, quiet_end, invited_at, responded_at
		FROM participants
		WHERE poll_id = $1
		ORDER BY invited_at
	`, pollID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.PollID, &p.Name, &p.Email, &p.Tz,
			&p.QuietStart, &p.QuietEnd, &p.InvitedAt, &p.RespondedAt); err != nil {
			slog.Error("failed to scan participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		participants = append(participants, p)
	}

	blockRows, err := h.db.Query(`
		SELECT id, poll_id, participant_id, start_ts, end_ts
		FROM availabilities
		WHERE poll_id = $1
		ORDER BY start_ts
	`, pollID)
	if err != nil {
		slog.Error("failed to query availabilities", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer blockRows.Close()

	availabilities := []models.AvailabilityBlock{}
	for blockRows.Next() {
		var b models.AvailabilityBlock
		if err := blockRows.Scan(&b.ID, &b.PollID, &b.ParticipantID, &b.StartTs, &b.EndTs); err != nil {
			slog.Error("failed to scan availability", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		availabilities = append(availabilities, b)
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollSnapshotResponse{
		Poll:           poll,
		Participants:   participants,
		Availabilities: availabilities,
	})
}

// UpdatePoll handles PATCH /api/polls/{pollId}
// Overlays only the supplied fields onto the poll. Field-level validation is
// re-applied to whatever is present; cross-field invariants (start <= end)
// are not re-checked when only one side of the window is patched.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("pollId")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing poll id")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var issues []models.FieldIssue
	if req.DurationMinutes != nil &&
		(*req.DurationMinutes < models.MinDurationMinutes || *req.DurationMinutes > models.MaxDurationMinutes) {
		issues = append(issues, models.FieldIssue{
			Field:   "durationMinutes",
			Message: fmt.Sprintf("durationMinutes must be between %d and %d", models.MinDurationMinutes, models.MaxDurationMinutes),
		})
	}
	if req.StartDate != nil && !dateRE.MatchString(*req.StartDate) {
		issues = append(issues, models.FieldIssue{Field: "startDate", Message: "startDate must be YYYY-MM-DD"})
	}
	if req.EndDate != nil && !dateRE.MatchString(*req.EndDate) {
		issues = append(issues, models.FieldIssue{Field: "endDate", Message: "endDate must be YYYY-MM-DD"})
	}
	if req.TimezoneMode != nil && !validTimezoneMode(*req.TimezoneMode) {
		issues = append(issues, models.FieldIssue{Field: "timezoneMode", Message: "timezoneMode must be local, organizer, or utc"})
	}
	if len(issues) > 0 {
		middleware.ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)
		return
	}

	// Build the SET clause from supplied fields only
	var sets []string
	var args []any
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		addSet("title", strings.TrimSpace(*req.Title))
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.DurationMinutes != nil {
		addSet("duration_minutes", *req.DurationMinutes)
	}
	if req.StartDate != nil {
		addSet("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		addSet("end_date", *req.EndDate)
	}
	if req.TimezoneMode != nil {
		addSet("timezone_mode", *req.TimezoneMode)
	}
	if req.FairnessMode != nil {
		addSet("fairness_mode", *req.FairnessMode)
	}

	if len(sets) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No fields to update")
		return
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, pollID)

	query := fmt.Sprintf("UPDATE polls SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	result, err := h.db.Exec(query, args...)
	if err != nil {
		slog.Error("failed to update poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponseDetails(w, http.StatusInternalServerError, "Failed to update poll", err.Error())
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to read update result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	var poll models.Poll
	err = h.db.QueryRow(`
		SELECT id, title, description, duration_minutes, start_date, end_date,
		       timezone_mode, fairness_mode, quiet_start, quiet_end, created_at, updated_at
		FROM polls
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &poll.DurationMinutes,
		&poll.StartDate, &poll.EndDate, &poll.TimezoneMode, &poll.FairnessMode,
		&poll.QuietStart, &poll.QuietEnd, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		slog.Error("failed to re-read poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	middleware.JSONResponse(w, http.StatusOK, models.UpdatePollResponse{Poll: poll})
}
