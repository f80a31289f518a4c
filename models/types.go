package models

import (
	"time"

	"github.com/google/uuid"
)

// Instrument status constants
const (
	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Methodology constants
const (
	MethodologyQuantitative = "quantitative"
	MethodologyQualitative  = "qualitative"
	MethodologyMixed        = "mixed"
)

// ValidMethodology reports whether m is a known methodology
func ValidMethodology(m string) bool {
	switch m {
	case MethodologyQuantitative, MethodologyQualitative, MethodologyMixed:
		return true
	}
	return false
}

// Request types

type SampleSizeRequest struct {
	PopulationSize  *int64  `json:"population_size,omitempty"`
	ConfidenceLevel int     `json:"confidence_level"`
	MarginOfError   float64 `json:"margin_of_error"`
}

type CreateSampleDefinitionRequest struct {
	SampleSizeRequest
	AttritionRate *float64 `json:"attrition_rate,omitempty"` // 0.0 to <1.0
	Notes         string   `json:"notes"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerName   string `json:"owner_name"`
	Methodology string `json:"methodology"`
}

// Empty fields keep their current value
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Methodology string `json:"methodology"`
}

type CreateInstrumentRequest struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// item index (as string) -> answer
type SubmitResponseRequest struct {
	Answers map[string]string `json:"answers"`
}

// Response types

type SampleSizeResponse struct {
	RequiredSampleSize int64  `json:"required_sample_size"`
	Interpretation     string `json:"interpretation"`
}

type CreateProjectResponse struct {
	Project    Project `json:"project"`
	ProjectKey string  `json:"project_key"`
}

type PublishInstrumentResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type SubmitResponseResponse struct {
	ResponseID uuid.UUID `json:"response_id"`
	Message    string    `json:"message"`
}

type ProgressResponse struct {
	ProjectID          uuid.UUID  `json:"project_id"`
	TargetSampleSize   int64      `json:"target_sample_size"`
	ResponseCount      int64      `json:"response_count"`
	Remaining          int64      `json:"remaining"`
	PercentComplete    float64    `json:"percent_complete"`
	SampleDefinitionID *uuid.UUID `json:"sample_definition_id,omitempty"`
}

// Domain types

type Project struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerName   string    `json:"owner_name"`
	Methodology string    `json:"methodology"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Instrument struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Title     string     `json:"title"`
	Items     []string   `json:"items"`
	Status    string     `json:"status"`
	ShareSlug *string    `json:"share_slug,omitempty"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// PublicInstrument is what participants see through a share slug
type PublicInstrument struct {
	Title  string   `json:"title"`
	Items  []string `json:"items"`
	Status string   `json:"status"`
}

type Response struct {
	ID           uuid.UUID         `json:"id"`
	InstrumentID uuid.UUID         `json:"instrument_id"`
	Answers      map[string]string `json:"answers"`
	IPHash       *string           `json:"-"` // Never expose in JSON
	UserAgent    *string           `json:"-"` // Never expose in JSON
	SubmittedAt  time.Time         `json:"submitted_at"`
}

type SampleDefinition struct {
	ID                 uuid.UUID `json:"id"`
	ProjectID          uuid.UUID `json:"project_id"`
	PopulationSize     *int64    `json:"population_size,omitempty"`
	ConfidenceLevel    int       `json:"confidence_level"`
	MarginOfError      float64   `json:"margin_of_error"`
	AttritionRate      *float64  `json:"attrition_rate,omitempty"`
	RequiredSampleSize int64     `json:"required_sample_size"`
	TargetSampleSize   int64     `json:"target_sample_size"` // after attrition adjustment
	Interpretation     string    `json:"interpretation"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
