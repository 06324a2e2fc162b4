// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Meet API server.

Quickly Meet is an anonymous scheduling-poll service: an organizer creates a
poll with a time window and constraints, then shares an opaque link through
which participants register and submit availability as time blocks. There
are no accounts; possession of the link token is the entire access model.

# Starting the Server

The server requires a database connection string via environment variables,
a .env file, or CLI flags:

	DATABASE_URL=polls.db go run main.go

Or with flags:

	go run main.go -p 3321 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string (SQLite path or PostgreSQL URL)

Optional settings:

  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - PORT (-p): server port (default: 3321)
  - BASE_URL (-base-url): absolute prefix for generated share links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, participants, availability)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Link-token minting and authorization
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
