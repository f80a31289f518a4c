// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// captureLogs routes the default slog logger into a buffer for one test
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func TestWithLogging_RecordsOutcome(t *testing.T) {
	testCases := []struct {
		name          string
		handler       http.HandlerFunc
		expectedCode  int
		expectedLevel string
		expectedBytes float64
	}{
		{
			name: "implicit 200",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("OK"))
			},
			expectedCode:  http.StatusOK,
			expectedLevel: "INFO",
			expectedBytes: 2,
		},
		{
			name: "created",
			handler: func(w http.ResponseWriter, r *http.Request) {
				JSONResponse(w, http.StatusCreated, map[string]int{"required_sample_size": 385})
			},
			expectedCode:  http.StatusCreated,
			expectedLevel: "INFO",
			expectedBytes: float64(len("{\"required_sample_size\":385}\n")),
		},
		{
			name: "no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			expectedCode:  http.StatusNoContent,
			expectedLevel: "INFO",
		},
		{
			name: "conflict",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusConflict, "Instrument is not open")
			},
			expectedCode:  http.StatusConflict,
			expectedLevel: "WARN",
			expectedBytes: -1,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				ErrorResponse(w, http.StatusInternalServerError, "Database error")
			},
			expectedCode:  http.StatusInternalServerError,
			expectedLevel: "ERROR",
			expectedBytes: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)

			req := httptest.NewRequest("POST", "/projects", nil)
			w := httptest.NewRecorder()

			WithLogging(tc.handler)(w, req)

			if w.Code != tc.expectedCode {
				t.Errorf("Expected status %d, got %d", tc.expectedCode, w.Code)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(logs.Bytes(), &entry); err != nil {
				t.Fatalf("Expected a single JSON log line, got %q: %v", logs.String(), err)
			}

			if entry["msg"] != "request completed" {
				t.Errorf("Expected msg 'request completed', got %v", entry["msg"])
			}
			if entry["level"] != tc.expectedLevel {
				t.Errorf("Expected level %s, got %v", tc.expectedLevel, entry["level"])
			}
			if entry["status"] != float64(tc.expectedCode) {
				t.Errorf("Expected logged status %d, got %v", tc.expectedCode, entry["status"])
			}
			if entry["path"] != "/projects" || entry["method"] != "POST" {
				t.Errorf("Expected method and path to be logged, got %v %v", entry["method"], entry["path"])
			}
			if _, ok := entry["duration_ms"]; !ok {
				t.Error("Expected duration_ms to be logged")
			}
			if tc.expectedBytes >= 0 && entry["bytes"] != tc.expectedBytes {
				t.Errorf("Expected %v bytes logged, got %v", tc.expectedBytes, entry["bytes"])
			}
		})
	}
}

func TestWithLogging_FirstStatusWins(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusAccepted)
	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusAccepted {
		t.Errorf("Expected recorded status %d, got %d", http.StatusAccepted, rec.status)
	}
}
