// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Timezone handling modes
const (
	TimezoneModeLocal     = "local"
	TimezoneModeOrganizer = "organizer"
	TimezoneModeUTC       = "utc"
)

// Poll duration bounds in minutes
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
)

// Default quiet hours (10pm - 7am)
const (
	DefaultQuietStart = 22
	DefaultQuietEnd   = 7
)

// Request types

type QuietHours struct {
	Start *int `json:"start"`
	End   *int `json:"end"`
}

type CreatePollRequest struct {
	Title           string      `json:"title"`
	DurationMinutes *int        `json:"durationMinutes"`
	TimezoneMode    string      `json:"timezoneMode"`
	FairnessMode    bool        `json:"fairnessMode"`
	QuietHours      *QuietHours `json:"quietHours"`
}

// UpdatePollRequest carries a partial poll update. Nil fields are left
// untouched; only supplied fields are validated and written.
type UpdatePollRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"durationMinutes"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
	TimezoneMode    *string `json:"timezoneMode"`
	FairnessMode    *bool   `json:"fairnessMode"`
}

type JoinPollRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Tz    string `json:"tz"`
}

type AvailabilityBlockInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SubmitAvailabilityRequest struct {
	ParticipantID string                   `json:"participant_id"`
	Blocks        []AvailabilityBlockInput `json:"blocks"`
	Replace       *bool                    `json:"replace"`
}

// Response types

type CreatePollResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Link  string `json:"link"`
}

type PollSnapshotResponse struct {
	Poll           Poll                `json:"poll"`
	Participants   []Participant       `json:"participants"`
	Availabilities []AvailabilityBlock `json:"availabilities"`
}

type UpdatePollResponse struct {
	Poll Poll `json:"poll"`
}

type JoinPollResponse struct {
	Participant Participant `json:"participant"`
}

type SubmitAvailabilityResponse struct {
	OK       bool `json:"ok"`
	Inserted int  `json:"inserted"`
}

// Domain types

type Poll struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TimezoneMode    string    `json:"timezone_mode"`
	FairnessMode    bool      `json:"fairness_mode"`
	QuietStart      int       `json:"quiet_start"`
	QuietEnd        int       `json:"quiet_end"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LinkToken struct {
	ID        string    `json:"id"`
	PollID    string    `json:"poll_id"`
	Token     string    `json:"-"` // Never expose in JSON
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type Participant struct {
	ID          string     `json:"id"`
	PollID      string     `json:"poll_id"`
	Name        string     `json:"name"`
	Email       *string    `json:"email"`
	Tz          string     `json:"tz"`
	QuietStart  *int       `json:"quiet_start"`
	QuietEnd    *int       `json:"quiet_end"`
	InvitedAt   time.Time  `json:"invited_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type AvailabilityBlock struct {
	ID            string    `json:"id"`
	PollID        string    `json:"poll_id"`
	ParticipantID string    `json:"participant_id"`
	StartTs       time.Time `json:"start_ts"`
	EndTs         time.Time `json:"end_ts"`
}

// Error response

// FieldIssue is a structured per-field validation problem, surfaced in the
// details of a 400 response.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}
