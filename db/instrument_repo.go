// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/models"
)

// dbInstrument represents an instrument as stored in the database.
// Items are kept as a JSON array in a text column.
type dbInstrument struct {
	ID        uuid.UUID      `db:"id"`
	ProjectID uuid.UUID      `db:"project_id"`
	Title     string         `db:"title"`
	Items     string         `db:"items"`
	Status    string         `db:"status"`
	ShareSlug sql.NullString `db:"share_slug"`
	ClosedAt  sql.NullTime   `db:"closed_at"`
	CreatedAt time.Time      `db:"created_at"`
}

const instrumentColumns = `id, project_id, title, items, status, share_slug, closed_at, created_at`

func toDomainInstrument(i *dbInstrument) (*models.Instrument, error) {
	inst := &models.Instrument{
		ID:        i.ID,
		ProjectID: i.ProjectID,
		Title:     i.Title,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
	if err := json.Unmarshal([]byte(i.Items), &inst.Items); err != nil {
		return nil, fmt.Errorf("decoding items for instrument %s: %w", i.ID, err)
	}
	if i.ShareSlug.Valid {
		inst.ShareSlug = &i.ShareSlug.String
	}
	if i.ClosedAt.Valid {
		inst.ClosedAt = &i.ClosedAt.Time
	}
	return inst, nil
}

// CreateInstrument inserts a draft instrument for a project
func (repo *Repository) CreateInstrument(ctx context.Context, projectID uuid.UUID, title string, items []string) (*models.Instrument, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating uuid: %w", err)
	}

	if items == nil {
		items = []string{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}

	inst := &models.Instrument{
		ID:        id,
		ProjectID: projectID,
		Title:     title,
		Items:     items,
		Status:    models.StatusDraft,
		CreatedAt: now(),
	}

	query := repo.dbConn.Rebind(`
		INSERT INTO instrument (id, project_id, title, items, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err = repo.dbConn.ExecContext(ctx, query,
		inst.ID, inst.ProjectID, inst.Title, string(encoded), inst.Status, inst.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating instrument %q: %w", title, err)
	}

	return inst, nil
}

// GetInstrument retrieves an instrument that belongs to the given project
func (repo *Repository) GetInstrument(ctx context.Context, projectID, instrumentID uuid.UUID) (*models.Instrument, error) {
	var row dbInstrument
	query := repo.dbConn.Rebind(`SELECT ` + instrumentColumns + `
		FROM instrument WHERE id = ? AND project_id = ?`)

	err := repo.dbConn.GetContext(ctx, &row, query, instrumentID, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting instrument %s: %w", instrumentID, err)
	}

	return toDomainInstrument(&row)
}

// GetInstrumentBySlug retrieves a published instrument by its share slug
func (repo *Repository) GetInstrumentBySlug(ctx context.Context, slug string) (*models.Instrument, error) {
	var row dbInstrument
	query := repo.dbConn.Rebind(`SELECT ` + instrumentColumns + `
		FROM instrument WHERE share_slug = ?`)

	err := repo.dbConn.GetContext(ctx, &row, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting instrument by slug %q: %w", slug, err)
	}

	return toDomainInstrument(&row)
}

// ListInstruments returns all instruments of a project, oldest first
func (repo *Repository) ListInstruments(ctx context.Context, projectID uuid.UUID) ([]*models.Instrument, error) {
	var rows []*dbInstrument
	query := repo.dbConn.Rebind(`SELECT ` + instrumentColumns + `
		FROM instrument WHERE project_id = ?
		ORDER BY created_at, id`)

	if err := repo.dbConn.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, fmt.Errorf("listing instruments: %w", err)
	}

	instruments := make([]*models.Instrument, 0, len(rows))
	for _, row := range rows {
		inst, err := toDomainInstrument(row)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, inst)
	}
	return instruments, nil
}

// PublishInstrument moves a draft instrument to open and assigns its share slug.
// Returns ErrStatusConflict if the instrument is no longer a draft.
func (repo *Repository) PublishInstrument(ctx context.Context, instrumentID uuid.UUID, slug string) error {
	query := repo.dbConn.Rebind(`
		UPDATE instrument SET status = ?, share_slug = ?
		WHERE id = ? AND status = ?`)

	res, err := repo.dbConn.ExecContext(ctx, query, models.StatusOpen, slug, instrumentID, models.StatusDraft)
	if err != nil {
		return fmt.Errorf("publishing instrument %s: %w", instrumentID, err)
	}
	return checkAffected(res, ErrStatusConflict)
}

// CloseInstrument moves an open instrument to closed.
// Returns ErrStatusConflict if the instrument is not open.
func (repo *Repository) CloseInstrument(ctx context.Context, instrumentID uuid.UUID) (time.Time, error) {
	closedAt := now()
	query := repo.dbConn.Rebind(`
		UPDATE instrument SET status = ?, closed_at = ?
		WHERE id = ? AND status = ?`)

	res, err := repo.dbConn.ExecContext(ctx, query, models.StatusClosed, closedAt, instrumentID, models.StatusOpen)
	if err != nil {
		return time.Time{}, fmt.Errorf("closing instrument %s: %w", instrumentID, err)
	}
	if err := checkAffected(res, ErrStatusConflict); err != nil {
		return time.Time{}, err
	}
	return closedAt, nil
}

// DeleteInstrument removes an instrument and its responses
func (repo *Repository) DeleteInstrument(ctx context.Context, projectID, instrumentID uuid.UUID) error {
	query := repo.dbConn.Rebind(`DELETE FROM instrument WHERE id = ? AND project_id = ?`)

	res, err := repo.dbConn.ExecContext(ctx, query, instrumentID, projectID)
	if err != nil {
		return fmt.Errorf("deleting instrument %s: %w", instrumentID, err)
	}
	return checkAffected(res, ErrNotFound)
}
