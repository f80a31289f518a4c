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

// dbProject represents a project as stored in the database
type dbProject struct {
	ID          uuid.UUID `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	OwnerName   string    `db:"owner_name"`
	Methodology string    `db:"methodology"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func toDomainProject(p *dbProject) *models.Project {
	return &models.Project{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		OwnerName:   p.OwnerName,
		Methodology: p.Methodology,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateProject inserts a new project and returns it with its ID and timestamps set
func (repo *Repository) CreateProject(ctx context.Context, p models.Project) (*models.Project, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating uuid: %w", err)
	}

	now := now()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	query := repo.dbConn.Rebind(`
		INSERT INTO project (id, title, description, owner_name, methodology, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err = repo.dbConn.ExecContext(ctx, query,
		p.ID, p.Title, p.Description, p.OwnerName, p.Methodology, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating project %q: %w", p.Title, err)
	}

	return &p, nil
}

// GetProject retrieves a project by ID
func (repo *Repository) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var row dbProject
	query := repo.dbConn.Rebind(`
		SELECT id, title, description, owner_name, methodology, created_at, updated_at
		FROM project WHERE id = ?`)

	err := repo.dbConn.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}

	return toDomainProject(&row), nil
}

// UpdateProject changes the non-empty fields and bumps updated_at
func (repo *Repository) UpdateProject(ctx context.Context, id uuid.UUID, title, description, methodology string) (*models.Project, error) {
	query := repo.dbConn.Rebind(`
		UPDATE project
		SET title = COALESCE(NULLIF(?, ''), title),
		    description = COALESCE(NULLIF(?, ''), description),
		    methodology = COALESCE(NULLIF(?, ''), methodology),
		    updated_at = ?
		WHERE id = ?`)

	res, err := repo.dbConn.ExecContext(ctx, query, title, description, methodology, now(), id)
	if err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	if err := checkAffected(res, ErrNotFound); err != nil {
		return nil, err
	}

	return repo.GetProject(ctx, id)
}

// DeleteProject removes a project and everything it owns
func (repo *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	query := repo.dbConn.Rebind(`DELETE FROM project WHERE id = ?`)

	res, err := repo.dbConn.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}

	return checkAffected(res, ErrNotFound)
}

// now is truncated to microseconds so values round-trip through PostgreSQL
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
