// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the fieldwork API server.

fieldwork is a backend for research projects: owners plan how many
participants they need with a sample size estimator, publish
questionnaires (instruments) through share links, and track collected
responses against the planned target.

# Starting the Server

The server requires environment variables, a .env file, or CLI flags:

	DATABASE_URL=fieldwork.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - PROJECT_KEY_SALT (--project-salt): Secret for project key HMAC
  - SLUG_SALT (--slug-salt): Secret for share slugs and IP hashing

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BASE_URL (--base-url): Prefix for share links (default: http://localhost:PORT)

# Architecture

  - sampling: Sample size estimation (Cochran's formula, finite population correction)
  - handlers: HTTP request handlers (projects, sample definitions, instruments, collection)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Project keys, share slugs, IP hashing
  - db: sqlx repository and goose migrations
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
