// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/db"
	"github.com/danielhkuo/fieldwork/handlers"
	"github.com/danielhkuo/fieldwork/middleware"
)

var _ handlers.Store = (*db.Repository)(nil)

func NewRouter(store handlers.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sampleHandler := handlers.NewSampleHandler(store, cfg)
	projectHandler := handlers.NewProjectHandler(store, cfg)
	instrumentHandler := handlers.NewInstrumentHandler(store, cfg)
	collectionHandler := handlers.NewCollectionHandler(store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Stateless estimator
	mux.HandleFunc("POST /sample-size", middleware.WithLogging(sampleHandler.Estimate))

	// Project management (owner operations)
	mux.HandleFunc("POST /projects", middleware.WithLogging(projectHandler.CreateProject))
	mux.HandleFunc("GET /projects/{id}", middleware.WithLogging(projectHandler.GetProject))
	mux.HandleFunc("PATCH /projects/{id}", middleware.WithLogging(projectHandler.UpdateProject))
	mux.HandleFunc("DELETE /projects/{id}", middleware.WithLogging(projectHandler.DeleteProject))
	mux.HandleFunc("GET /projects/{id}/progress", middleware.WithLogging(projectHandler.GetProgress))

	mux.HandleFunc("POST /projects/{id}/sample-definitions", middleware.WithLogging(sampleHandler.CreateDefinition))
	mux.HandleFunc("GET /projects/{id}/sample-definitions", middleware.WithLogging(sampleHandler.ListDefinitions))

	mux.HandleFunc("POST /projects/{id}/instruments", middleware.WithLogging(instrumentHandler.CreateInstrument))
	mux.HandleFunc("GET /projects/{id}/instruments", middleware.WithLogging(instrumentHandler.ListInstruments))
	mux.HandleFunc("POST /projects/{id}/instruments/{instrumentID}/publish", middleware.WithLogging(instrumentHandler.PublishInstrument))
	mux.HandleFunc("POST /projects/{id}/instruments/{instrumentID}/close", middleware.WithLogging(instrumentHandler.CloseInstrument))
	mux.HandleFunc("DELETE /projects/{id}/instruments/{instrumentID}", middleware.WithLogging(instrumentHandler.DeleteInstrument))
	mux.HandleFunc("GET /projects/{id}/instruments/{instrumentID}/responses", middleware.WithLogging(instrumentHandler.ListResponses))

	// Data collection (public, uses share slug)
	mux.HandleFunc("GET /collect/{slug}", middleware.WithLogging(collectionHandler.GetInstrument))
	mux.HandleFunc("POST /collect/{slug}/responses", middleware.WithLogging(collectionHandler.SubmitResponse))

	// Root endpoint; {$} keeps it from matching every other GET
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fieldwork API v1"))
	})

	return mux
}
