package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sathira/codewizard/internal/apperror"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"validation", apperror.ValidationFailed("title", "title is required"), http.StatusBadRequest, "validation_error"},
		{"invalid credentials", apperror.InvalidCredentials(), http.StatusBadRequest, "invalid_credentials"},
		{"unauthorized", apperror.Unauthorized("no token"), http.StatusUnauthorized, "unauthorized"},
		{"not found", apperror.NotFound("comment", "abc"), http.StatusNotFound, "not_found"},
		{"duplicate key", apperror.DuplicateKey("user", "email"), http.StatusConflict, "duplicate_key"},
		{"store unavailable", apperror.Unavailable(errors.New("locked")), http.StatusServiceUnavailable, "store_unavailable"},
		{"unknown error", errors.New("sql: something leaked"), http.StatusInternalServerError, "internal_error"},
		{"wrapped not found", fmt.Errorf("adding reply: %w", apperror.NotFound("comment", "x")), http.StatusNotFound, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, tt.err)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}

			var body ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Error != tt.wantType {
				t.Errorf("error type = %q, want %q", body.Error, tt.wantType)
			}
			// Raw internals must never reach the client.
			if strings.Contains(body.Message, "sql:") {
				t.Errorf("message leaks internals: %q", body.Message)
			}
		})
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Text string `json:"text"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi","extra":1}`))
	err := decodeJSON(req, &dst)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("decodeJSON() with unknown field error = %v, want ErrValidation", err)
	}
}

func TestDecodeJSON_RejectsMalformedBody(t *testing.T) {
	var dst struct{}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{not json`))
	if err := decodeJSON(req, &dst); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("decodeJSON() with malformed body error = %v, want ErrValidation", err)
	}
}
