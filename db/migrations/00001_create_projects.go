package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateProjects, downCreateProjects)
}

func upCreateProjects(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS project (
		    id TEXT PRIMARY KEY,
		    title TEXT NOT NULL,
		    description TEXT NOT NULL DEFAULT '',
		    owner_name TEXT NOT NULL,
		    methodology TEXT NOT NULL DEFAULT 'quantitative'
		        CHECK (methodology IN ('quantitative', 'qualitative', 'mixed')),
		    created_at TIMESTAMP NOT NULL,
		    updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS instrument (
		    id TEXT PRIMARY KEY,
		    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		    title TEXT NOT NULL,
		    items TEXT NOT NULL,
		    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
		    share_slug TEXT UNIQUE,
		    closed_at TIMESTAMP,
		    created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_instrument_project_id ON instrument(project_id);
		CREATE INDEX IF NOT EXISTS idx_instrument_share_slug ON instrument(share_slug);

		CREATE TABLE IF NOT EXISTS response (
		    id TEXT PRIMARY KEY,
		    instrument_id TEXT NOT NULL REFERENCES instrument(id) ON DELETE CASCADE,
		    answers TEXT NOT NULL,
		    ip_hash TEXT,
		    user_agent TEXT,
		    submitted_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_response_instrument_id ON response(instrument_id);
	`)
	if err != nil {
		return fmt.Errorf("creating project tables: %w", err)
	}
	return nil
}

func downCreateProjects(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS response;
		DROP TABLE IF EXISTS instrument;
		DROP TABLE IF EXISTS project;
	`)
	if err != nil {
		return fmt.Errorf("dropping project tables: %w", err)
	}
	return nil
}
