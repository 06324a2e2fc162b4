// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Meet API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PollHandler: poll creation, snapshot retrieval, partial update
  - ParticipantHandler: joining a poll
  - AvailabilityHandler: availability submission and block deletion

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

# Access Model

Every participant-facing operation runs the same gate: extract the poll id
from the path and the link token from the t query parameter, authorize the
pair through the auth package, then validate the body and touch the store.
A bad token is a 403 that never reveals whether the poll exists.

	POST   /api/polls                                       → CreatePoll (mints the token)
	GET    /api/polls/{pollId}?t=...                        → GetPoll (snapshot)
	PATCH  /api/polls/{pollId}                              → UpdatePoll (organizer edit)
	POST   /api/polls/{pollId}/participants?t=...           → JoinPoll
	POST   /api/polls/{pollId}/availability?t=...           → Submit
	DELETE /api/polls/{pollId}/availability/{id}?t=...&pid= → DeleteBlock

# Availability Semantics

Submit validates the whole batch before writing anything, verifies the
participant belongs to the poll, then either overwrites the participant's
block set (replace=true, the default) or appends to it. Blocks may overlap;
no merging is performed. DeleteBlock checks the block against the path poll
and the caller-asserted pid before deleting.

# Consistency

Each store statement is atomic; multi-statement sequences are not. The
replace flow's delete+insert can interleave with a concurrent submission
(last writer wins), and an insert failure after the delete is surfaced as a
500 with the set already cleared. The caller retries the whole submission.
*/
package handlers
