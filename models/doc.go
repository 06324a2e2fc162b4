// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the request, response, and domain types for the
Quickly Meet API.

# Domain Types

Four record sets back the API, related by id fields:

  - Poll: the root scheduling entity (time window, duration, constraints)
  - LinkToken: opaque capability token granting access to one poll
  - Participant: a named respondent scoped to one poll
  - AvailabilityBlock: a time range a participant marks as available,
    scoped to (poll, participant)

The LinkToken's Token field is never serialized; the string is only returned
once, in the poll creation response.

# Error Envelope

All error responses share one shape:

	{"error": "Invalid input", "details": [{"field": "durationMinutes", "message": "..."}]}

Details is optional and, for validation failures, holds a list of FieldIssue.
*/
package models
