// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the fieldwork API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(repo, cfg)

# Endpoints

Health:

	GET /health

Estimator (public, stateless):

	POST /sample-size

Project management (owner, requires X-Project-Key):

	POST   /projects                     - Create project (returns project_key)
	GET    /projects/{id}                - Get project
	PATCH  /projects/{id}                - Update project
	DELETE /projects/{id}                - Delete project and everything under it
	GET    /projects/{id}/progress       - Responses collected vs. target
	POST   /projects/{id}/sample-definitions - Compute and store a sample size
	GET    /projects/{id}/sample-definitions - List, newest first

Instruments (owner, requires X-Project-Key):

	POST   /projects/{id}/instruments
	GET    /projects/{id}/instruments
	POST   /projects/{id}/instruments/{instrumentID}/publish
	POST   /projects/{id}/instruments/{instrumentID}/close
	DELETE /projects/{id}/instruments/{instrumentID}
	GET    /projects/{id}/instruments/{instrumentID}/responses

Collection (public, uses share slug):

	GET  /collect/{slug}           - Instrument title and items
	POST /collect/{slug}/responses - Submit answers
*/
package router
