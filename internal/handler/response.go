// Package handler contains the HTTP handlers for the gallery API.
//
// Handlers are the glue between HTTP and the service layer: they parse the
// request (path values, JSON bodies, multipart forms), call one service
// method, and translate the result or error into a JSON response. They hold
// no business rules of their own.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/couple-gallery/internal/apperror"
)

// ErrorResponse is the standard JSON error shape returned by every API
// endpoint except login and upload, which keep their {success: false, ...}
// envelopes for the frontend.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse acknowledges a mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is returned with 201 after an insert.
type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// maxJSONBody caps request bodies on the JSON endpoints.
const maxJSONBody = 1 << 20

// writeJSON writes a JSON response with the given status code.
//
// The header order matters: Content-Type must be set before WriteHeader,
// and nothing written to the header map after WriteHeader reaches the client.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps an error from the service layer to an HTTP response.
//
// ERROR MAPPING:
//   - apperror validation  → 400
//   - apperror unauthorized → 401
//   - apperror not found   → 404
//   - anything else        → 500, cause logged, generic message sent
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(appErr.Err, apperror.ErrValidation):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: appErr.Message})
			return
		case errors.Is(appErr.Err, apperror.ErrUnauthorized):
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: appErr.Message})
			return
		case errors.Is(appErr.Err, apperror.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: appErr.Message})
			return
		}
	}

	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// parseID reads the {id} path value. Anything that is not a positive
// integer is a client error, never a lookup.
func parseID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed("id", fmt.Sprintf("invalid id %q", raw))
	}
	return id, nil
}

// decodeJSON decodes the request body into dst. Malformed, empty or
// oversized bodies all surface as validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperror.ValidationFailed("body", "request body too large")
		case errors.Is(err, io.EOF):
			return apperror.ValidationFailed("body", "request body is empty")
		default:
			return apperror.ValidationFailed("body", "invalid JSON body")
		}
	}
	return nil
}
