// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-meet/models"
	"github.com/danielhkuo/quickly-meet/testutil"
)

func TestJoinPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewParticipantHandler(db, cfg)

	pollID, token := testutil.CreateTestPoll(t, db, 60)

	tests := []struct {
		name           string
		token          string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.JoinPollResponse)
	}{
		{
			name:           "valid join",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "Alice", Tz: "Europe/Berlin"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.JoinPollResponse) {
				if resp.Participant.ID == "" {
					t.Error("Expected non-empty participant id")
				}
				if resp.Participant.PollID != pollID {
					t.Errorf("Expected poll %s, got %s", pollID, resp.Participant.PollID)
				}
				if resp.Participant.Tz != "Europe/Berlin" {
					t.Errorf("Expected tz Europe/Berlin, got %s", resp.Participant.Tz)
				}
				if resp.Participant.InvitedAt.IsZero() {
					t.Error("Expected invited_at to be set")
				}
			},
		},
		{
			name:           "tz defaults to UTC",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "Bob"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.JoinPollResponse) {
				if resp.Participant.Tz != "UTC" {
					t.Errorf("Expected tz UTC, got %s", resp.Participant.Tz)
				}
				if resp.Participant.Email != nil {
					t.Errorf("Expected nil email, got %v", *resp.Participant.Email)
				}
			},
		},
		{
			name:           "valid email stored",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "Carol", Email: "carol@example.com"},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.JoinPollResponse) {
				if resp.Participant.Email == nil || *resp.Participant.Email != "carol@example.com" {
					t.Error("Expected email to round-trip")
				}
			},
		},
		{
			name:           "duplicate names allowed",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "Alice"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty name rejected",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "   "},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email rejected",
			token:          token,
			requestBody:    models.JoinPollRequest{Name: "Dave", Email: "not-an-address"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid token",
			token:          "ffffffffffffffffffffffffffffffffffffffffffffffff",
			requestBody:    models.JoinPollRequest{Name: "Eve"},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/participants?t="+tc.token, tc.requestBody)
			req.SetPathValue("pollId", pollID)
			w := httptest.NewRecorder()
			handler.JoinPoll(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)

			if tc.checkResponse != nil {
				var resp models.JoinPollResponse
				testutil.AssertJSON(t, w, &resp)
				tc.checkResponse(t, &resp)
			}
		})
	}

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/api/polls/"+pollID+"/participants", models.JoinPollRequest{Name: "Frank"})
		req.SetPathValue("pollId", pollID)
		w := httptest.NewRecorder()
		handler.JoinPoll(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
