// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-meet/auth"
	"github.com/danielhkuo/quickly-meet/cliparse"
	"github.com/danielhkuo/quickly-meet/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. MaxOpenConns is pinned to 1 so every query shares the single
// in-memory connection.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbConn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	dbConn.SetMaxOpenConns(1)

	if err := db.CreateSchema(dbConn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return dbConn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3321,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
	}
}

// CreateTestPoll inserts a poll with a 7-day window and an active link
// token, returning both ids the way the create endpoint would.
func CreateTestPoll(t *testing.T, dbConn *sql.DB, durationMinutes int) (pollID, token string) {
	t.Helper()

	pollID = auth.NewID()
	now := time.Now().UTC()

	_, err := dbConn.Exec(`
		INSERT INTO polls (id, title, duration_minutes, start_date, end_date, timezone_mode, fairness_mode, quiet_start, quiet_end, created_at, updated_at)
		VALUES ($1, 'Test Poll', $2, $3, $4, 'local', FALSE, 22, 7, $5, $6)
	`, pollID, durationMinutes, now.Format("2006-01-02"), now.AddDate(0, 0, 7).Format("2006-01-02"), now, now)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	token, err = auth.IssueLinkToken(dbConn, pollID)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return pollID, token
}

// SetTokenActive flips the active flag on a link token
func SetTokenActive(t *testing.T, dbConn *sql.DB, token string, active bool) {
	t.Helper()

	_, err := dbConn.Exec(`UPDATE poll_link_tokens SET active = $1 WHERE token = $2`, active, token)
	if err != nil {
		t.Fatalf("Failed to set token active=%v: %v", active, err)
	}
}

// CreateTestParticipant inserts a participant on a poll and returns its ID
func CreateTestParticipant(t *testing.T, dbConn *sql.DB, pollID, name string) string {
	t.Helper()

	participantID := auth.NewID()
	_, err := dbConn.Exec(`
		INSERT INTO participants (id, poll_id, name, tz, invited_at)
		VALUES ($1, $2, $3, 'UTC', $4)
	`, participantID, pollID, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID
}

// AddTestBlock inserts an availability block and returns its ID
func AddTestBlock(t *testing.T, dbConn *sql.DB, pollID, participantID string, start, end time.Time) string {
	t.Helper()

	blockID := auth.NewID()
	_, err := dbConn.Exec(`
		INSERT INTO availabilities (id, poll_id, participant_id, start_ts, end_ts)
		VALUES ($1, $2, $3, $4, $5)
	`, blockID, pollID, participantID, start.UTC(), end.UTC())
	if err != nil {
		t.Fatalf("Failed to create test block: %v", err)
	}

	return blockID
}

// CountBlocks returns the number of availability blocks for a participant
func CountBlocks(t *testing.T, dbConn *sql.DB, pollID, participantID string) int {
	t.Helper()

	var count int
	err := dbConn.QueryRow(`
		SELECT COUNT(*) FROM availabilities WHERE poll_id = $1 AND participant_id = $2
	`, pollID, participantID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count blocks: %v", err)
	}

	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
