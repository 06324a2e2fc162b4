// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is kept dialect-neutral between PostgreSQL and SQLite: no
// server-side defaults for timestamps (handlers assign them in Go) and
// TEXT/INTEGER/BOOLEAN column types both engines accept.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS polls (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    description TEXT,
    duration_minutes INTEGER NOT NULL CHECK (duration_minutes BETWEEN 15 AND 480),
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    timezone_mode TEXT NOT NULL DEFAULT 'local' CHECK (timezone_mode IN ('local', 'organizer', 'utc')),
    fairness_mode BOOLEAN NOT NULL DEFAULT FALSE,
    quiet_start INTEGER NOT NULL DEFAULT 22 CHECK (quiet_start BETWEEN 0 AND 23),
    quiet_end INTEGER NOT NULL DEFAULT 7 CHECK (quiet_end BETWEEN 0 AND 23),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

-- Link tokens (opaque capability strings, one per poll at creation)
CREATE TABLE IF NOT EXISTS poll_link_tokens (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    token TEXT NOT NULL UNIQUE,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_link_tokens_poll_token ON poll_link_tokens(poll_id, token);

-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    email TEXT,
    tz TEXT NOT NULL DEFAULT 'UTC',
    quiet_start INTEGER CHECK (quiet_start BETWEEN 0 AND 23),
    quiet_end INTEGER CHECK (quiet_end BETWEEN 0 AND 23),
    invited_at TIMESTAMP NOT NULL,
    responded_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_participants_poll_id ON participants(poll_id);

-- Availability blocks
CREATE TABLE IF NOT EXISTS availabilities (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
    participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    start_ts TIMESTAMP NOT NULL,
    end_ts TIMESTAMP NOT NULL,
    CHECK (end_ts > start_ts)
);

CREATE INDEX IF NOT EXISTS idx_availabilities_poll_id ON availabilities(poll_id);
CREATE INDEX IF NOT EXISTS idx_availabilities_participant ON availabilities(poll_id, participant_id);
`
