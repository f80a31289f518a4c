// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/fieldwork/models"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	JSONResponse(w, http.StatusOK, models.SampleSizeResponse{RequiredSampleSize: 385, Interpretation: "ok"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got '%s'", ct)
	}

	expected := "{\"required_sample_size\":385,\"interpretation\":\"ok\"}"
	if got := strings.TrimSpace(w.Body.String()); got != expected {
		t.Errorf("Expected body %s, got %s", expected, got)
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorResponse(w, http.StatusConflict, "Instrument is not open")

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Error != "Conflict" || resp.Message != "Instrument is not open" {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectedErr error
	}{
		{"valid body", "{\"answers\": {\"0\": \"21\"}}", nil},
		{"valid body with trailing whitespace", "{\"answers\": {\"0\": \"21\"}}\n\n", nil},
		{"empty body", "", ErrInvalidJSON},
		{"malformed body", "{\"answers\": ", ErrInvalidJSON},
		{"wrong type", "{\"answers\": [1, 2]}", ErrInvalidJSON},
		{"two values", "{\"answers\": {}}{\"answers\": {}}", ErrInvalidJSON},
		{"oversized body", "{\"answers\": {\"0\": \"" + strings.Repeat("a", MaxBodyBytes) + "\"}}", ErrBodyTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/collect/slug/responses", strings.NewReader(tc.body))
			w := httptest.NewRecorder()

			var parsed models.SubmitResponseRequest
			err := ParseJSONBody(w, req, &parsed)

			if tc.expectedErr == nil {
				if err != nil {
					t.Fatalf("ParseJSONBody() error = %v", err)
				}
				if parsed.Answers["0"] != "21" {
					t.Errorf("Expected answer '21', got '%s'", parsed.Answers["0"])
				}
				return
			}

			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("Expected error wrapping %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestBodyErrorResponse(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"too large", ErrBodyTooLarge, http.StatusRequestEntityTooLarge},
		{"invalid", ErrInvalidJSON, http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			BodyErrorResponse(w, tc.err)

			if w.Code != tc.expectedCode {
				t.Errorf("Expected status %d, got %d", tc.expectedCode, w.Code)
			}
		})
	}
}
