// Package handler is the HTTP layer: it decodes request bodies, calls the
// services, and writes JSON responses. Domain errors are mapped to status
// codes in exactly one place, writeError.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sathira/codewizard/internal/apperror"
)

// ErrorResponse is the error shape every endpoint returns:
//
//	{"error":"not_found","message":"comment not found with id abc123"}
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable error type
	Message string `json:"message"` // human-readable description
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already out; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps the domain taxonomy to HTTP:
//
//	ErrValidation         → 400 validation_error
//	ErrInvalidCredentials → 400 invalid_credentials
//	ErrUnauthorized       → 401 unauthorized
//	ErrNotFound           → 404 not_found
//	ErrDuplicateKey       → 409 duplicate_key
//	ErrUnavailable        → 503 store_unavailable
//	anything else         → 500 internal_error (details never leak out)
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrInvalidCredentials):
			status = http.StatusBadRequest
			errorType = "invalid_credentials"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrDuplicateKey):
			status = http.StatusConflict
			errorType = "duplicate_key"
		case errors.Is(err, apperror.ErrUnavailable):
			status = http.StatusServiceUnavailable
			errorType = "store_unavailable"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON decodes a request body into dst, rejecting unknown fields.
// Every endpoint has an explicit request struct, so a typo'd or extra field
// is a client error, not something to silently drop.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}
