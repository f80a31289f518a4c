package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateSampleDefinitions, downCreateSampleDefinitions)
}

func upCreateSampleDefinitions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sample_definition (
		    id TEXT PRIMARY KEY,
		    project_id TEXT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		    population_size BIGINT CHECK (population_size > 0),
		    confidence_level INTEGER NOT NULL CHECK (confidence_level IN (90, 95, 99)),
		    margin_of_error DOUBLE PRECISION NOT NULL CHECK (margin_of_error > 0 AND margin_of_error <= 100),
		    attrition_rate DOUBLE PRECISION CHECK (attrition_rate >= 0 AND attrition_rate < 1),
		    required_sample_size BIGINT NOT NULL,
		    target_sample_size BIGINT NOT NULL,
		    interpretation TEXT NOT NULL,
		    notes TEXT NOT NULL DEFAULT '',
		    created_at TIMESTAMP NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sample_definition_project_id ON sample_definition(project_id);
	`)
	if err != nil {
		return fmt.Errorf("creating sample_definition table: %w", err)
	}
	return nil
}

func downCreateSampleDefinitions(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS sample_definition;`)
	if err != nil {
		return fmt.Errorf("dropping sample_definition table: %w", err)
	}
	return nil
}
