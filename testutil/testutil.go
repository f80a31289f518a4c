// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/fieldwork/auth"
	"github.com/danielhkuo/fieldwork/cliparse"
	"github.com/danielhkuo/fieldwork/db"
	"github.com/danielhkuo/fieldwork/models"
)

// SetupTestDB opens a migrated SQLite database in a temp directory.
// Callers close the repository when done.
func SetupTestDB(t *testing.T) *db.Repository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fieldwork_test.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return db.NewRepository(conn)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "fieldwork_test.db",
		DatabaseType:   db.TypeSQLite,
		ProjectKeySalt: "test-project-salt",
		SlugSalt:       "test-slug-salt",
		BaseURL:        "http://localhost:3318",
	}
}

// CreateTestProject stores a project and returns it with its project key
func CreateTestProject(t *testing.T, repo *db.Repository, cfg cliparse.Config) (*models.Project, string) {
	t.Helper()

	project, err := repo.CreateProject(context.Background(), models.Project{
		Title:       "Test Project",
		Description: "A test project",
		OwnerName:   "TestUser",
		Methodology: models.MethodologyQuantitative,
	})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return project, auth.GenerateProjectKey(project.ID.String(), cfg.ProjectKeySalt)
}

// CreateTestInstrument adds an instrument to a project.
// status should be "draft", "open", or "closed"; open and closed
// instruments get a share slug.
func CreateTestInstrument(t *testing.T, repo *db.Repository, cfg cliparse.Config, project *models.Project, status string, items ...string) *models.Instrument {
	t.Helper()

	if len(items) == 0 {
		items = []string{"How many hours do you sleep?", "How many hours do you study?"}
	}

	ctx := context.Background()
	inst, err := repo.CreateInstrument(ctx, project.ID, "Test Instrument", items)
	if err != nil {
		t.Fatalf("Failed to create test instrument: %v", err)
	}

	if status == models.StatusOpen || status == models.StatusClosed {
		slug := auth.GenerateShareSlug(inst.ID.String(), cfg.SlugSalt)
		if err := repo.PublishInstrument(ctx, inst.ID, slug); err != nil {
			t.Fatalf("Failed to publish test instrument: %v", err)
		}
		inst.Status = models.StatusOpen
		inst.ShareSlug = &slug
	}

	if status == models.StatusClosed {
		closedAt, err := repo.CloseInstrument(ctx, inst.ID)
		if err != nil {
			t.Fatalf("Failed to close test instrument: %v", err)
		}
		inst.Status = models.StatusClosed
		inst.ClosedAt = &closedAt
	}

	return inst
}

// SubmitTestResponse records a response for an instrument
func SubmitTestResponse(t *testing.T, repo *db.Repository, inst *models.Instrument, answers map[string]string) *models.Response {
	t.Helper()

	resp := &models.Response{
		InstrumentID: inst.ID,
		Answers:      answers,
	}
	if err := repo.CreateResponse(context.Background(), resp); err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	return resp
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var jsonBody []byte
		if s, ok := body.(string); ok {
			jsonBody = []byte(s)
		} else {
			jsonBody, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
