// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - BaseURL: Public base URL for share links (default: http://localhost:<port>)
  - ProjectKeySalt: Secret for project key HMAC (required)
  - SlugSalt: Secret for share slugs and IP hashing (required)

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	--base-url      Public base URL
	--project-salt  Project key salt
	--slug-salt     Share slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	BASE_URL         → --base-url
	PROJECT_KEY_SALT → --project-salt
	SLUG_SALT        → --slug-salt

A .env file in the working directory is loaded first if present. Variables
already set in the environment win over the file, and CLI flags win over both.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - PROJECT_KEY_SALT is missing
  - SLUG_SALT is missing
*/
package cliparse
