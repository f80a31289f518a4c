// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/models"
)

type dbResponse struct {
	ID           uuid.UUID      `db:"id"`
	InstrumentID uuid.UUID      `db:"instrument_id"`
	Answers      string         `db:"answers"`
	IPHash       sql.NullString `db:"ip_hash"`
	UserAgent    sql.NullString `db:"user_agent"`
	SubmittedAt  time.Time      `db:"submitted_at"`
}

func toDomainResponse(r *dbResponse) (*models.Response, error) {
	resp := &models.Response{
		ID:           r.ID,
		InstrumentID: r.InstrumentID,
		SubmittedAt:  r.SubmittedAt,
	}
	if err := json.Unmarshal([]byte(r.Answers), &resp.Answers); err != nil {
		return nil, fmt.Errorf("decoding answers for response %s: %w", r.ID, err)
	}
	if r.IPHash.Valid {
		resp.IPHash = &r.IPHash.String
	}
	if r.UserAgent.Valid {
		resp.UserAgent = &r.UserAgent.String
	}
	return resp, nil
}

// CreateResponse stores a participant submission. ID and SubmittedAt are assigned here.
// Returns ErrStatusConflict unless the instrument is open when the row is written.
func (repo *Repository) CreateResponse(ctx context.Context, resp *models.Response) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating uuid: %w", err)
	}

	if resp.Answers == nil {
		resp.Answers = map[string]string{}
	}
	encoded, err := json.Marshal(resp.Answers)
	if err != nil {
		return fmt.Errorf("encoding answers: %w", err)
	}

	tx, err := repo.dbConn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// The no-op update locks the instrument row until commit, so a
	// concurrent CloseInstrument waits for this response instead of
	// racing past it.
	lock := tx.Rebind(`UPDATE instrument SET status = status WHERE id = ? AND status = ?`)
	res, err := tx.ExecContext(ctx, lock, resp.InstrumentID, models.StatusOpen)
	if err != nil {
		return fmt.Errorf("locking instrument %s: %w", resp.InstrumentID, err)
	}
	if err := checkAffected(res, ErrStatusConflict); err != nil {
		return err
	}

	submittedAt := now()
	insert := tx.Rebind(`
		INSERT INTO response (id, instrument_id, answers, ip_hash, user_agent, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err = tx.ExecContext(ctx, insert,
		id, resp.InstrumentID, string(encoded), resp.IPHash, resp.UserAgent, submittedAt)
	if err != nil {
		return fmt.Errorf("creating response for instrument %s: %w", resp.InstrumentID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing response: %w", err)
	}

	resp.ID = id
	resp.SubmittedAt = submittedAt
	return nil
}

// ListResponses returns all responses of an instrument in submission order
func (repo *Repository) ListResponses(ctx context.Context, instrumentID uuid.UUID) ([]*models.Response, error) {
	var rows []*dbResponse
	query := repo.dbConn.Rebind(`
		SELECT id, instrument_id, answers, ip_hash, user_agent, submitted_at
		FROM response WHERE instrument_id = ?
		ORDER BY submitted_at, id`)

	if err := repo.dbConn.SelectContext(ctx, &rows, query, instrumentID); err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}

	responses := make([]*models.Response, 0, len(rows))
	for _, row := range rows {
		resp, err := toDomainResponse(row)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// CountProjectResponses counts responses across every instrument of a project
func (repo *Repository) CountProjectResponses(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	query := repo.dbConn.Rebind(`
		SELECT COUNT(r.id)
		FROM response r
		JOIN instrument i ON r.instrument_id = i.id
		WHERE i.project_id = ?`)

	if err := repo.dbConn.GetContext(ctx, &count, query, projectID); err != nil {
		return 0, fmt.Errorf("counting responses for project %s: %w", projectID, err)
	}
	return count, nil
}
