// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-meet/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusCreated, map[string]string{"id": "abc"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("Expected id abc, got %s", body["id"])
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusForbidden, "Invalid or inactive token")

	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "Invalid or inactive token" {
		t.Errorf("Unexpected error message: %s", resp.Error)
	}
	if resp.Details != nil {
		t.Errorf("Expected no details, got %v", resp.Details)
	}
}

func TestErrorResponseDetails(t *testing.T) {
	w := httptest.NewRecorder()

	issues := []models.FieldIssue{{Field: "durationMinutes", Message: "durationMinutes is required"}}
	ErrorResponseDetails(w, http.StatusBadRequest, "Invalid input", issues)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	body := w.Body.String()
	if !strings.Contains(body, "durationMinutes") {
		t.Errorf("Expected details to name the field, got %s", body)
	}
	if !strings.Contains(body, "Invalid input") {
		t.Errorf("Expected error message in body, got %s", body)
	}
}

func TestParseJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid JSON", `{"name": "Tester"}`, false},
		{"invalid JSON", `{"name": `, true},
		{"empty body", ``, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(tc.body)))
			var v map[string]any
			err := ParseJSONBody(req, &v)
			if tc.wantErr && err == nil {
				t.Error("Expected parse error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Unexpected parse error: %v", err)
			}
		})
	}
}

func TestWithLogging_CallsNext(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("DELETE", "/api/polls/p1/availability/a1", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if !called {
		t.Error("Expected wrapped handler to be called")
	}
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
}

func TestCORS_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight should not reach the handler")
	})
	handler := CORS(next)

	req := httptest.NewRequest("OPTIONS", "/api/polls", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for preflight, got %d", w.Code)
	}
	if origin := w.Header().Get("Access-Control-Allow-Origin"); origin != "http://localhost:5173" {
		t.Errorf("Expected origin echoed back, got %s", origin)
	}
	if methods := w.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "PATCH") {
		t.Errorf("Expected PATCH in allowed methods, got %s", methods)
	}
}

func TestCORS_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS(next)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("Expected handler status to pass through, got %d", w.Code)
	}
}
