// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the storage layer: connection setup, migrations and the
Repository used by the HTTP handlers.

# Connecting

Open connects with either driver and applies pending migrations:

	conn, err := db.Open(db.TypeSQLite, "fieldwork.db")
	conn, err := db.Open(db.TypePostgres, "postgres://...")
	repo := db.NewRepository(conn)

SQLite connections are limited to a single open connection and have foreign
keys enabled. Migrations live in the migrations package and are registered
with goose; Open is safe to call on an already migrated database.

# Tables

	project            research projects
	instrument         questionnaires (draft → open → closed), items as JSON
	response           participant submissions, answers as JSON
	sample_definition  stored sample size estimates

Deleting a project cascades to its instruments, responses and sample
definitions.

# Queries

Queries are written with ? placeholders and passed through Rebind, so the
same SQL runs on both SQLite and PostgreSQL.

# Errors

	ErrNotFound        no row matched the identifier
	ErrStatusConflict  a lifecycle transition was attempted from the wrong state
*/
package db
