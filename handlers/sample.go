// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/middleware"
	"github.com/danielhkuo/fieldwork/models"
	"github.com/danielhkuo/fieldwork/sampling"
)

type SampleHandler struct {
	store Store
	cfg   cliparse.Config
}

func NewSampleHandler(store Store, cfg cliparse.Config) *SampleHandler {
	return &SampleHandler{store: store, cfg: cfg}
}

func toSamplingRequest(req models.SampleSizeRequest) sampling.Request {
	return sampling.Request{
		PopulationSize:  req.PopulationSize,
		ConfidenceLevel: sampling.ConfidenceLevel(req.ConfidenceLevel),
		MarginOfError:   req.MarginOfError,
	}
}

// writeSamplingError maps estimator errors to 400 and anything else to 500
func writeSamplingError(w http.ResponseWriter, err error) {
	var cfgErr *sampling.InvalidConfigurationError
	if errors.As(err, &cfgErr) {
		middleware.ErrorResponse(w, http.StatusBadRequest, cfgErr.Error())
		return
	}
	slog.Error("sample size computation failed", "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute sample size")
}

// Estimate handles POST /sample-size
// Stateless: nothing is stored
func (h *SampleHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req models.SampleSizeRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	res, err := sampling.Compute(toSamplingRequest(req))
	if err != nil {
		writeSamplingError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SampleSizeResponse{
		RequiredSampleSize: res.RequiredSampleSize,
		Interpretation:     res.Interpretation,
	})
}

// CreateDefinition handles POST /projects/{id}/sample-definitions
func (h *SampleHandler) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	var req models.CreateSampleDefinitionRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	res, err := sampling.Compute(toSamplingRequest(req.SampleSizeRequest))
	if err != nil {
		writeSamplingError(w, err)
		return
	}

	target := res.RequiredSampleSize
	if req.AttritionRate != nil {
		target, err = sampling.AdjustForAttrition(res.RequiredSampleSize, *req.AttritionRate)
		if err != nil {
			writeSamplingError(w, err)
			return
		}
	}

	def := &models.SampleDefinition{
		ProjectID:          project.ID,
		PopulationSize:     req.PopulationSize,
		ConfidenceLevel:    req.ConfidenceLevel,
		MarginOfError:      req.MarginOfError,
		AttritionRate:      req.AttritionRate,
		RequiredSampleSize: res.RequiredSampleSize,
		TargetSampleSize:   target,
		Interpretation:     res.Interpretation,
		Notes:              req.Notes,
	}
	if err := h.store.CreateSampleDefinition(r.Context(), def); err != nil {
		slog.Error("failed to insert sample definition", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save sample definition")
		return
	}

	slog.Info("sample definition created",
		"project_id", project.ID,
		"definition_id", def.ID,
		"required", def.RequiredSampleSize,
		"target", def.TargetSampleSize,
	)

	middleware.JSONResponse(w, http.StatusCreated, def)
}

// ListDefinitions handles GET /projects/{id}/sample-definitions
// Newest first
func (h *SampleHandler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	defs, err := h.store.ListSampleDefinitions(r.Context(), project.ID)
	if err != nil {
		slog.Error("failed to list sample definitions", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, defs)
}
