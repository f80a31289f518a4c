// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the fieldwork API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SampleHandler: Sample size estimates and persisted sample definitions
  - ProjectHandler: Project CRUD and collection progress
  - InstrumentHandler: Instrument lifecycle and response listing
  - CollectionHandler: Public instrument view and response submission

Handlers are created via constructor functions that accept a Store and Config:

	projectHandler := handlers.NewProjectHandler(repo, cfg)

Store is satisfied by *db.Repository.

# Sample Size

	POST /sample-size                     → Estimate (stateless)
	POST /projects/{id}/sample-definitions → CreateDefinition (optional attrition_rate)

Invalid estimator input is reported as 400 with the offending parameter
named in the message.

# Instrument Lifecycle

Instruments progress through three states: draft → open → closed

	POST /projects/{id}/instruments                         → CreateInstrument
	POST /projects/{id}/instruments/{instrumentID}/publish → PublishInstrument (generates share_slug)
	POST /projects/{id}/instruments/{instrumentID}/close   → CloseInstrument

Owner operations require the X-Project-Key header returned by CreateProject.

# Collection

Participants interact via the share slug:

	GET  /collect/{slug}           → GetInstrument
	POST /collect/{slug}/responses → SubmitResponse (open instruments only)

GetProgress compares the response count against the latest sample
definition's attrition-adjusted target.
*/
package handlers
