// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/middleware"
	"github.com/danielhkuo/fieldwork/models"
)

type InstrumentHandler struct {
	store Store
	cfg   cliparse.Config
}

func NewInstrumentHandler(store Store, cfg cliparse.Config) *InstrumentHandler {
	return &InstrumentHandler{store: store, cfg: cfg}
}

// loadInstrument resolves {instrumentID} within an authorized project.
// On failure it writes the error response and returns nil.
func (h *InstrumentHandler) loadInstrument(w http.ResponseWriter, r *http.Request) (*models.Project, *models.Instrument) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return nil, nil
	}

	instrumentID, err := uuid.Parse(r.PathValue("instrumentID"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid instrument id")
		return nil, nil
	}

	inst, err := h.store.GetInstrument(r.Context(), project.ID, instrumentID)
	if err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Instrument not found")
			return nil, nil
		}
		slog.Error("failed to query instrument", "instrument_id", instrumentID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil, nil
	}

	return project, inst
}

// CreateInstrument handles POST /projects/{id}/instruments
func (h *InstrumentHandler) CreateInstrument(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	var req models.CreateInstrumentRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Items) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one item is required")
		return
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "items must not be empty")
			return
		}
	}

	inst, err := h.store.CreateInstrument(r.Context(), project.ID, req.Title, req.Items)
	if err != nil {
		slog.Error("failed to insert instrument", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create instrument")
		return
	}

	slog.Info("instrument created", "project_id", project.ID, "instrument_id", inst.ID, "items", len(inst.Items))

	middleware.JSONResponse(w, http.StatusCreated, inst)
}

// ListInstruments handles GET /projects/{id}/instruments
func (h *InstrumentHandler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	project := authorizeProject(w, r, h.store, h.cfg.ProjectKeySalt)
	if project == nil {
		return
	}

	instruments, err := h.store.ListInstruments(r.Context(), project.ID)
	if err != nil {
		slog.Error("failed to list instruments", "project_id", project.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, instruments)
}

// PublishInstrument handles POST /projects/{id}/instruments/{instrumentID}/publish
func (h *InstrumentHandler) PublishInstrument(w http.ResponseWriter, r *http.Request) {
	_, inst := h.loadInstrument(w, r)
	if inst == nil {
		return
	}

	if inst.Status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not in draft status")
		return
	}
	if len(inst.Items) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Instrument must have at least 1 item")
		return
	}

	shareSlug := auth.GenerateShareSlug(inst.ID.String(), h.cfg.SlugSalt)

	if err := h.store.PublishInstrument(r.Context(), inst.ID, shareSlug); err != nil {
		if isStatusConflict(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not in draft status")
			return
		}
		slog.Error("failed to publish instrument", "instrument_id", inst.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish instrument")
		return
	}

	slog.Info("instrument published", "instrument_id", inst.ID, "share_slug", shareSlug)

	middleware.JSONResponse(w, http.StatusOK, models.PublishInstrumentResponse{
		ShareSlug: shareSlug,
		ShareURL:  strings.TrimRight(h.cfg.BaseURL, "/") + "/collect/" + shareSlug,
	})
}

// CloseInstrument handles POST /projects/{id}/instruments/{instrumentID}/close
// Returns the closed instrument
func (h *InstrumentHandler) CloseInstrument(w http.ResponseWriter, r *http.Request) {
	_, inst := h.loadInstrument(w, r)
	if inst == nil {
		return
	}

	if inst.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not open")
		return
	}

	closedAt, err := h.store.CloseInstrument(r.Context(), inst.ID)
	if err != nil {
		if isStatusConflict(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not open")
			return
		}
		slog.Error("failed to close instrument", "instrument_id", inst.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close instrument")
		return
	}

	inst.Status = models.StatusClosed
	inst.ClosedAt = &closedAt

	slog.Info("instrument closed", "instrument_id", inst.ID)

	middleware.JSONResponse(w, http.StatusOK, inst)
}

// DeleteInstrument handles DELETE /projects/{id}/instruments/{instrumentID}
func (h *InstrumentHandler) DeleteInstrument(w http.ResponseWriter, r *http.Request) {
	project, inst := h.loadInstrument(w, r)
	if inst == nil {
		return
	}

	if err := h.store.DeleteInstrument(r.Context(), project.ID, inst.ID); err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Instrument not found")
			return
		}
		slog.Error("failed to delete instrument", "instrument_id", inst.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete instrument")
		return
	}

	slog.Info("instrument deleted", "instrument_id", inst.ID)

	w.WriteHeader(http.StatusNoContent)
}

// ListResponses handles GET /projects/{id}/instruments/{instrumentID}/responses
func (h *InstrumentHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	_, inst := h.loadInstrument(w, r)
	if inst == nil {
		return
	}

	responses, err := h.store.ListResponses(r.Context(), inst.ID)
	if err != nil {
		slog.Error("failed to list responses", "instrument_id", inst.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}
