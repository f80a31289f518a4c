// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SampleSizeRequest: population_size, confidence_level, margin_of_error
  - CreateSampleDefinitionRequest: SampleSizeRequest plus attrition_rate, notes
  - CreateProjectRequest: title, description, owner_name, methodology
  - UpdateProjectRequest: title, description, methodology (partial)
  - CreateInstrumentRequest: title, items
  - SubmitResponseRequest: answers (map[string]string)

# Response Types

Types for JSON responses:

  - SampleSizeResponse: required_sample_size, interpretation
  - CreateProjectResponse: project, project_key
  - PublishInstrumentResponse: share_slug, share_url
  - SubmitResponseResponse: response_id, message
  - ProgressResponse: target vs collected responses
  - ErrorResponse: error, message

# Domain Types

  - Project: research project metadata
  - Instrument: questionnaire with lifecycle state
  - PublicInstrument: participant view of an instrument
  - Response: one participant submission
  - SampleDefinition: stored sample size estimate for a project

# Constants

Instrument status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Methodologies:

	MethodologyQuantitative = "quantitative"
	MethodologyQualitative  = "qualitative"
	MethodologyMixed        = "mixed"
*/
package models
