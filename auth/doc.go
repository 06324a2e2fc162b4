// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth is the token authority: it mints and validates the opaque
capability tokens that gate all poll access.

# Link Tokens

A link token is 24 bytes (192 bits) of cryptographically secure randomness,
hex-encoded to 48 characters:

	token, err := auth.IssueLinkToken(db, pollID)

Exactly one token is minted at poll creation. The token is stored server-side
with an active flag, so revocation is a single UPDATE; no hard delete needed.

# Authorization

	link, err := auth.Authorize(db, pollID, token)

Authorization succeeds only if the (poll_id, token) pair exists and is
active. The error is deliberately opaque: a missing poll, an unknown token,
and a revoked token all surface as ErrNotAuthorized, which resists token
enumeration. Lookup is by exact match against a store index; constant-time
comparison is not required.

There are no accounts, sessions, or roles. Possession of the token string is
the entire access model.

# ID Generation

Database records use UUID primary keys:

	id := auth.NewID()
*/
package auth
