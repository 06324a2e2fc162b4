// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db creates the database schema.

# Tables

  - polls: scheduling poll configuration (window, duration, constraints)
  - poll_link_tokens: opaque capability tokens, one minted per poll
  - participants: respondents scoped to a poll
  - availabilities: time-range blocks scoped to (poll, participant)

# Dialects

The same DDL runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite).
Timestamps are assigned by the handlers rather than by column defaults, and
all queries in the codebase use $N placeholders, which both drivers bind.

	if err := db.CreateSchema(dbConn); err != nil { ... }

CreateSchema is idempotent (IF NOT EXISTS) and runs at every startup.
*/
package db
