// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/db"
	"github.com/danielhkuo/fieldwork/models"
	"github.com/danielhkuo/fieldwork/testutil"
)

func TestCreateProject(t *testing.T) {
	repo := testutil.SetupTestDB(t)
	defer repo.Close()

	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(repo, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.CreateProjectResponse)
	}{
		{
			name: "valid project creation",
			requestBody: models.CreateProjectRequest{
				Title:       "Commuting and wellbeing",
				Description: "Cross-sectional survey",
				OwnerName:   "Alice",
				Methodology: models.MethodologyMixed,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateProjectResponse) {
				if resp.Project.ID == uuid.Nil {
					t.Error("Expected non-nil project id")
				}
				if resp.ProjectKey == "" {
					t.Error("Expected non-empty project_key")
				}

				expectedKey := auth.GenerateProjectKey(resp.Project.ID.String(), cfg.ProjectKeySalt)
				if resp.ProjectKey != expectedKey {
					t.Error("Project key does not match expected value")
				}

				stored, err := repo.GetProject(context.Background(), resp.Project.ID)
				if err != nil {
					t.Fatalf("Failed to query project: %v", err)
				}
				if stored.Methodology != models.MethodologyMixed {
					t.Errorf("Expected methodology 'mixed', got '%s'", stored.Methodology)
				}
			},
		},
		{
			name: "methodology defaults to quantitative",
			requestBody: models.CreateProjectRequest{
				Title:     "Default methodology",
				OwnerName: "Bob",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.CreateProjectResponse) {
				if resp.Project.Methodology != models.MethodologyQuantitative {
					t.Errorf("Expected methodology 'quantitative', got '%s'", resp.Project.Methodology)
				}
			},
		},
		{
			name: "missing title",
			requestBody: models.CreateProjectRequest{
				OwnerName: "Alice",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing owner name",
			requestBody: models.CreateProjectRequest{
				Title: "No owner",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown methodology",
			requestBody: models.CreateProjectRequest{
				Title:       "Bad methodology",
				OwnerName:   "Alice",
				Methodology: "astrology",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/projects", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateProject(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated && tt.checkResponse != nil {
				var resp models.CreateProjectResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetProject(t *testing.T) {
	repo := testutil.SetupTestDB(t)
	defer repo.Close()

	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(repo, cfg)
	project, projectKey := testutil.CreateTestProject(t, repo, cfg)

	// A key that is valid for an id that was never stored
	missingID := uuid.Must(uuid.NewV7()).String()
	missingKey := auth.GenerateProjectKey(missingID, cfg.ProjectKeySalt)

	tests := []struct {
		name           string
		projectID      string
		projectKey     string
		expectedStatus int
	}{
		{"valid request", project.ID.String(), projectKey, http.StatusOK},
		{"missing project key", project.ID.String(), "", http.StatusUnauthorized},
		{"wrong project key", project.ID.String(), "wrong-key", http.StatusUnauthorized},
		{"malformed project id", "not-a-uuid", projectKey, http.StatusBadRequest},
		{"unknown project", missingID, missingKey, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.projectKey != "" {
				headers[auth.HeaderProjectKey] = tt.projectKey
			}
			req := testutil.MakeRequest("GET", "/projects/"+tt.projectID, nil, headers)
			req.SetPathValue("id", tt.projectID)
			w := httptest.NewRecorder()

			handler.GetProject(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK {
				var resp models.Project
				testutil.AssertJSON(t, w, &resp)
				if resp.Title != project.Title {
					t.Errorf("Expected title '%s', got '%s'", project.Title, resp.Title)
				}
			}
		})
	}
}

func TestUpdateProject(t *testing.T) {
	repo := testutil.SetupTestDB(t)
	defer repo.Close()

	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(repo, cfg)
	project, projectKey := testutil.CreateTestProject(t, repo, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Project)
	}{
		{
			name:           "partial update keeps other fields",
			requestBody:    models.UpdateProjectRequest{Title: "Renamed"},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.Project) {
				if resp.Title != "Renamed" {
					t.Errorf("Expected title 'Renamed', got '%s'", resp.Title)
				}
				if resp.Description != project.Description {
					t.Errorf("Expected description to be kept, got '%s'", resp.Description)
				}
				if resp.Methodology != project.Methodology {
					t.Errorf("Expected methodology to be kept, got '%s'", resp.Methodology)
				}
			},
		},
		{
			name:           "change methodology",
			requestBody:    models.UpdateProjectRequest{Methodology: models.MethodologyQualitative},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *models.Project) {
				if resp.Methodology != models.MethodologyQualitative {
					t.Errorf("Expected methodology 'qualitative', got '%s'", resp.Methodology)
				}
				if resp.Title != "Renamed" {
					t.Errorf("Expected earlier title update to persist, got '%s'", resp.Title)
				}
			},
		},
		{
			name:           "unknown methodology",
			requestBody:    models.UpdateProjectRequest{Methodology: "vibes"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PATCH", "/projects/"+project.ID.String(), tt.requestBody,
				map[string]string{auth.HeaderProjectKey: projectKey})
			req.SetPathValue("id", project.ID.String())
			w := httptest.NewRecorder()

			handler.UpdateProject(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusOK && tt.checkResponse != nil {
				var resp models.Project
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestDeleteProject(t *testing.T) {
	repo := testutil.SetupTestDB(t)
	defer repo.Close()

	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(repo, cfg)
	project, projectKey := testutil.CreateTestProject(t, repo, cfg)
	inst := testutil.CreateTestInstrument(t, repo, cfg, project, models.StatusOpen)
	testutil.SubmitTestResponse(t, repo, inst, map[string]string{"0": "7"})

	req := testutil.MakeRequest("DELETE", "/projects/"+project.ID.String(), nil,
		map[string]string{auth.HeaderProjectKey: projectKey})
	req.SetPathValue("id", project.ID.String())
	w := httptest.NewRecorder()

	handler.DeleteProject(w, req)

	testutil.AssertStatus(t, w, http.StatusNoContent)

	ctx := context.Background()
	if _, err := repo.GetProject(ctx, project.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected project to be gone, got err=%v", err)
	}
	if _, err := repo.GetInstrumentBySlug(ctx, *inst.ShareSlug); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("Expected instrument to be deleted with its project, got err=%v", err)
	}

	// Deleting again reports the project as missing
	req = testutil.MakeRequest("DELETE", "/projects/"+project.ID.String(), nil,
		map[string]string{auth.HeaderProjectKey: projectKey})
	req.SetPathValue("id", project.ID.String())
	w = httptest.NewRecorder()

	handler.DeleteProject(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetProgress(t *testing.T) {
	repo := testutil.SetupTestDB(t)
	defer repo.Close()

	cfg := testutil.GetTestConfig()
	handler := NewProjectHandler(repo, cfg)
	sampleHandler := NewSampleHandler(repo, cfg)
	project, projectKey := testutil.CreateTestProject(t, repo, cfg)

	getProgress := func(t *testing.T) models.ProgressResponse {
		t.Helper()
		req := testutil.MakeRequest("GET", "/projects/"+project.ID.String()+"/progress", nil,
			map[string]string{auth.HeaderProjectKey: projectKey})
		req.SetPathValue("id", project.ID.String())
		w := httptest.NewRecorder()

		handler.GetProgress(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ProgressResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	t.Run("no sample definition", func(t *testing.T) {
		resp := getProgress(t)
		if resp.TargetSampleSize != 0 || resp.PercentComplete != 0 || resp.SampleDefinitionID != nil {
			t.Errorf("Expected empty progress, got %+v", resp)
		}
	})

	// Target of 4 for a population of 4 at 99% / ±1%
	req := testutil.MakeRequest("POST", "/projects/"+project.ID.String()+"/sample-definitions",
		models.CreateSampleDefinitionRequest{
			SampleSizeRequest: models.SampleSizeRequest{ConfidenceLevel: 99, MarginOfError: 1, PopulationSize: int64Ptr(4)},
		},
		map[string]string{auth.HeaderProjectKey: projectKey})
	req.SetPathValue("id", project.ID.String())
	w := httptest.NewRecorder()
	sampleHandler.CreateDefinition(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	inst := testutil.CreateTestInstrument(t, repo, cfg, project, models.StatusOpen)

	t.Run("partial progress", func(t *testing.T) {
		testutil.SubmitTestResponse(t, repo, inst, map[string]string{"0": "8"})

		resp := getProgress(t)
		if resp.TargetSampleSize != 4 {
			t.Fatalf("Expected target 4, got %d", resp.TargetSampleSize)
		}
		if resp.ResponseCount != 1 || resp.Remaining != 3 {
			t.Errorf("Expected 1 collected and 3 remaining, got %d and %d", resp.ResponseCount, resp.Remaining)
		}
		if resp.PercentComplete != 25 {
			t.Errorf("Expected 25%% complete, got %v", resp.PercentComplete)
		}
		if resp.SampleDefinitionID == nil {
			t.Error("Expected sample_definition_id to be set")
		}
	})

	t.Run("overshoot is capped", func(t *testing.T) {
		for range 5 {
			testutil.SubmitTestResponse(t, repo, inst, map[string]string{"0": "6"})
		}

		resp := getProgress(t)
		if resp.ResponseCount != 6 {
			t.Errorf("Expected 6 responses, got %d", resp.ResponseCount)
		}
		if resp.Remaining != 0 {
			t.Errorf("Expected 0 remaining, got %d", resp.Remaining)
		}
		if resp.PercentComplete != 100 {
			t.Errorf("Expected 100%% complete, got %v", resp.PercentComplete)
		}
	})
}
