// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/middleware"
	"github.com/danielhkuo/fieldwork/models"
)

type ProjectStore interface {
	CreateProject(ctx context.Context, p models.Project) (*models.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, title, description, methodology string) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

type InstrumentStore interface {
	CreateInstrument(ctx context.Context, projectID uuid.UUID, title string, items []string) (*models.Instrument, error)
	GetInstrument(ctx context.Context, projectID, instrumentID uuid.UUID) (*models.Instrument, error)
	GetInstrumentBySlug(ctx context.Context, slug string) (*models.Instrument, error)
	ListInstruments(ctx context.Context, projectID uuid.UUID) ([]*models.Instrument, error)
	PublishInstrument(ctx context.Context, instrumentID uuid.UUID, slug string) error
	CloseInstrument(ctx context.Context, instrumentID uuid.UUID) (time.Time, error)
	DeleteInstrument(ctx context.Context, projectID, instrumentID uuid.UUID) error
}

type ResponseStore interface {
	CreateResponse(ctx context.Context, resp *models.Response) error
	ListResponses(ctx context.Context, instrumentID uuid.UUID) ([]*models.Response, error)
	CountProjectResponses(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type SampleStore interface {
	CreateSampleDefinition(ctx context.Context, def *models.SampleDefinition) error
	ListSampleDefinitions(ctx context.Context, projectID uuid.UUID) ([]*models.SampleDefinition, error)
	LatestSampleDefinition(ctx context.Context, projectID uuid.UUID) (*models.SampleDefinition, error)
}

// Store is everything the handlers need from persistence.
// *db.Repository implements it.
type Store interface {
	ProjectStore
	InstrumentStore
	ResponseStore
	SampleStore
}

// authorizeProject parses the {id} path value, checks the project key and
// loads the project. On failure it writes the error response and returns nil.
func authorizeProject(w http.ResponseWriter, r *http.Request, projects ProjectStore, salt string) *models.Project {
	projectID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid project id")
		return nil
	}

	key := r.Header.Get(auth.HeaderProjectKey)
	if err := auth.ValidateProjectKey(projectID.String(), key, salt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid project key")
		return nil
	}

	project, err := projects.GetProject(r.Context(), projectID)
	if err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
			return nil
		}
		slog.Error("failed to query project", "project_id", projectID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}

	return project
}
