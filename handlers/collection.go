// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/middleware"
	"github.com/danielhkuo/fieldwork/models"
)

// CollectionHandler serves participants. No project key is involved;
// the share slug is the only handle.
type CollectionHandler struct {
	store Store
	cfg   cliparse.Config
}

func NewCollectionHandler(store Store, cfg cliparse.Config) *CollectionHandler {
	return &CollectionHandler{store: store, cfg: cfg}
}

func (h *CollectionHandler) instrumentBySlug(w http.ResponseWriter, r *http.Request) *models.Instrument {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return nil
	}

	inst, err := h.store.GetInstrumentBySlug(r.Context(), shareSlug)
	if err != nil {
		if isNotFound(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Instrument not found")
			return nil
		}
		slog.Error("failed to query instrument", "share_slug", shareSlug, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	return inst
}

// GetInstrument handles GET /collect/{slug}
func (h *CollectionHandler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	inst := h.instrumentBySlug(w, r)
	if inst == nil {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PublicInstrument{
		Title:  inst.Title,
		Items:  inst.Items,
		Status: inst.Status,
	})
}

// SubmitResponse handles POST /collect/{slug}/responses
// Answer keys are item indices ("0", "1", ...)
func (h *CollectionHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	inst := h.instrumentBySlug(w, r)
	if inst == nil {
		return
	}

	if inst.Status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not accepting responses")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

	if len(req.Answers) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answers are required")
		return
	}
	for key := range req.Answers {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(inst.Items) || strconv.Itoa(idx) != key {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid item index: "+key)
			return
		}
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.SlugSalt)
	userAgent := r.UserAgent()

	resp := &models.Response{
		InstrumentID: inst.ID,
		Answers:      req.Answers,
		IPHash:       &ipHash,
		UserAgent:    &userAgent,
	}
	if err := h.store.CreateResponse(r.Context(), resp); err != nil {
		// Closed between the lookup above and the insert
		if isStatusConflict(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Instrument is not accepting responses")
			return
		}
		slog.Error("failed to insert response", "instrument_id", inst.ID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	slog.Info("response submitted", "instrument_id", inst.ID, "response_id", resp.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitResponseResponse{
		ResponseID: resp.ID,
		Message:    "Response recorded",
	})
}
