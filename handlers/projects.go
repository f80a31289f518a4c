// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/middleware"
	"github.com/danielhkuo/fieldwork/models"
)

type ProjectHandler struct {
	store Store
	cfg   cliparse.Config
}

func NewProjectHandler(store Store, cfg cliparse.Config) *ProjectHandler {
	return &ProjectHandler{store: store, cfg: cfg}
}

// CreateProject handles POST /projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.OwnerName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "owner_name is required")
		return
	}
	if req.Methodology == "" {
		req.Methodology = models.MethodologyQuantitative
	}
	if !models.ValidMethodology(req.Methodology) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "methodology must be quantitative, qualitative or mixed")
		return
	}

	project, err := h.store.CreateProject(r.Context(), models.Project{
		Title:       req.Title,
		Description: req.Description,
		OwnerName:   req.OwnerName,
		Methodology: req.Methodology,
	})
	if err != nil {
		slog.Error("failed to insert project", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create project")
		return
	}

	projectKey := auth.GenerateProjectKey(project.ID.String(), h.cfg.ProjectKeySalt)

	slog.Info("project created", "project_id", project.ID, "owner", req.OwnerName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateProjectResponse{
		Project:    *project,
		ProjectKey: projectKey,
	})
}

// GetProject handles GET /projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

// UpdateProject handles PATCH /projects/{id}
// Empty fields keep their current value
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	var req models.UpdateProjectRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	if req.Methodology != "" && !models.ValidMethodology(req.Methodology) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "methodology must be quantitative, qualitative or mixed")
		return
	}

	updated, err := h.store.UpdateProject(r.Context(), project.ID, req.Title, req.Description, req.Methodology)
	if err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("failed to update project", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update project")
		return
	}

	slog.Info("project updated", "project_id", project.ID)

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// DeleteProject handles DELETE /projects/{id}
// Cascades to instruments, responses and sample definitions
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	if err := h.store.DeleteProject(r.Context(), project.ID); err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
			return
		}
		slog.Error("failed to delete project", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	slog.Info("project deleted", "project_id", project.ID)

	w.WriteHeader(http.StatusNoContent)
}

// GetProgress handles GET /projects/{id}/progress
// Compares collected responses to the latest sample definition's target
func (h *ProjectHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	count, err := h.store.CountProjectResponses(r.Context(), project.ID)
	if err != nil {
		slog.Error("failed to count responses", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	progress := models.ProgressResponse{
		ProjectID:     project.ID,
		ResponseCount: count,
	}

	def, err := h.store.LatestSampleDefinition(r.Context(), project.ID)
	switch {
	case err == nil:
		progress.SampleDefinitionID = &def.ID
		progress.TargetSampleSize = def.TargetSampleSize
	case isNotFound(err):
		// No target yet; report the count alone
	default:
		slog.Error("failed to query sample definition", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if progress.TargetSampleSize > 0 {
		progress.Remaining = max(progress.TargetSampleSize-count, 0)
		progress.PercentComplete = min(float64(count)/float64(progress.TargetSampleSize)*100, 100)
	}

	middleware.JSONResponse(w, http.StatusOK, progress)
}
