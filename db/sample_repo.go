// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/models"
)

type dbSampleDefinition struct {
	ID                 uuid.UUID       `db:"id"`
	ProjectID          uuid.UUID       `db:"project_id"`
	PopulationSize     sql.NullInt64   `db:"population_size"`
	ConfidenceLevel    int             `db:"confidence_level"`
	MarginOfError      float64         `db:"margin_of_error"`
	AttritionRate      sql.NullFloat64 `db:"attrition_rate"`
	RequiredSampleSize int64           `db:"required_sample_size"`
	TargetSampleSize   int64           `db:"target_sample_size"`
	Interpretation     string          `db:"interpretation"`
	Notes              string          `db:"notes"`
	CreatedAt          time.Time       `db:"created_at"`
}

const sampleDefinitionColumns = `id, project_id, population_size, confidence_level, margin_of_error,
	attrition_rate, required_sample_size, target_sample_size, interpretation, notes, created_at`

func toDomainSampleDefinition(d *dbSampleDefinition) *models.SampleDefinition {
	def := &models.SampleDefinition{
		ID:                 d.ID,
		ProjectID:          d.ProjectID,
		ConfidenceLevel:    d.ConfidenceLevel,
		MarginOfError:      d.MarginOfError,
		RequiredSampleSize: d.RequiredSampleSize,
		TargetSampleSize:   d.TargetSampleSize,
		Interpretation:     d.Interpretation,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
	}
	if d.PopulationSize.Valid {
		def.PopulationSize = &d.PopulationSize.Int64
	}
	if d.AttritionRate.Valid {
		def.AttritionRate = &d.AttritionRate.Float64
	}
	return def
}

// CreateSampleDefinition stores a computed estimate. ID and CreatedAt are assigned here.
func (repo *Repository) CreateSampleDefinition(ctx context.Context, def *models.SampleDefinition) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating uuid: %w", err)
	}
	def.ID = id
	def.CreatedAt = now()

	query := repo.dbConn.Rebind(`
		INSERT INTO sample_definition (` + sampleDefinitionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = repo.dbConn.ExecContext(ctx, query,
		def.ID, def.ProjectID, def.PopulationSize, def.ConfidenceLevel, def.MarginOfError,
		def.AttritionRate, def.RequiredSampleSize, def.TargetSampleSize,
		def.Interpretation, def.Notes, def.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating sample definition for project %s: %w", def.ProjectID, err)
	}
	return nil
}

// ListSampleDefinitions returns a project's definitions, newest first
func (repo *Repository) ListSampleDefinitions(ctx context.Context, projectID uuid.UUID) ([]*models.SampleDefinition, error) {
	var rows []*dbSampleDefinition
	query := repo.dbConn.Rebind(`SELECT ` + sampleDefinitionColumns + `
		FROM sample_definition WHERE project_id = ?
		ORDER BY created_at DESC, id DESC`)

	if err := repo.dbConn.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, fmt.Errorf("listing sample definitions: %w", err)
	}

	defs := make([]*models.SampleDefinition, len(rows))
	for i, row := range rows {
		defs[i] = toDomainSampleDefinition(row)
	}
	return defs, nil
}

// LatestSampleDefinition returns the most recent definition of a project,
// or ErrNotFound if none has been stored.
func (repo *Repository) LatestSampleDefinition(ctx context.Context, projectID uuid.UUID) (*models.SampleDefinition, error) {
	var row dbSampleDefinition
	query := repo.dbConn.Rebind(`SELECT ` + sampleDefinitionColumns + `
		FROM sample_definition WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`)

	err := repo.dbConn.GetContext(ctx, &row, query, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest sample definition: %w", err)
	}
	return toDomainSampleDefinition(&row), nil
}
