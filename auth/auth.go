// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-meet/models"
)

// ErrNotAuthorized is returned when a token is missing, unknown, bound to a
// different poll, or deactivated. Callers must not distinguish these cases
// to the outside world.
var ErrNotAuthorized = errors.New("invalid or inactive token")

// tokenBytes is the entropy of a link token: 24 random bytes, hex-encoded
// to a 48-character string.
const tokenBytes = 24

// NewID returns a fresh UUID string for a database record.
func NewID() string {
	return uuid.NewString()
}

// GenerateToken creates a random 48-hex-char link token
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate link token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// IssueLinkToken mints a link token for a poll and persists it with
// active=true. The token string is the only credential a participant ever
// holds; collisions across 192 bits of entropy are treated as negligible
// and not re-checked.
func IssueLinkToken(db *sql.DB, pollID string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", err
	}

	_, err = db.Exec(`
		INSERT INTO poll_link_tokens (id, poll_id, token, active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, NewID(), pollID, token, true, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert link token: %w", err)
	}

	return token, nil
}

// Authorize looks up the (poll_id, token) pair. Access is granted only if a
// matching row exists and is active. A pure read; returns ErrNotAuthorized
// whether the poll is unknown, the token is unknown, or the token was
// revoked, so callers can't probe which.
func Authorize(db *sql.DB, pollID, token string) (models.LinkToken, error) {
	var link models.LinkToken
	err := db.QueryRow(`
		SELECT id, poll_id, token, active, created_at
		FROM poll_link_tokens
		WHERE poll_id = $1 AND token = $2
	`, pollID, token).Scan(&link.ID, &link.PollID, &link.Token, &link.Active, &link.CreatedAt)

	if err == sql.ErrNoRows {
		return models.LinkToken{}, ErrNotAuthorized
	}
	if err != nil {
		return models.LinkToken{}, fmt.Errorf("failed to look up link token: %w", err)
	}
	if !link.Active {
		return models.LinkToken{}, ErrNotAuthorized
	}

	return link, nil
}
