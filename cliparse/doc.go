// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses server configuration from CLI flags and environment
variables. Flags win over environment variables; defaults apply last.

# Settings

  - PORT (-p): server port (default: 3321)
  - DATABASE_URL (-d): connection string, required. A PostgreSQL URL or a
    SQLite path/DSN depending on DATABASE_TYPE.
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (-base-url): optional absolute prefix for generated share links

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	db, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
*/
package cliparse
