// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method routing.

	mux := router.NewRouter(db, cfg)

All API routes live under /api and are wrapped with request logging. The
poll id and availability id are path parameters; the link token travels in
the t query parameter on token-gated routes.
*/
package router
