// Package response provides HTTP response formatting and error mapping
// for the linkding-compatible API. Success bodies are written verbatim
// (no envelope) and errors follow the {"detail": ...} convention the
// client ecosystem expects.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/linkhive/linkhive-server/internal/errors"
	"github.com/linkhive/linkhive-server/internal/store"
)

// ErrorBody is the error payload shape.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes a JSON response with the given status code using json/v2.
// The payload is written as-is; wire compatibility forbids wrapping it.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	buf, err := json.Marshal(data)
	if err == nil {
		_, err = w.Write(buf)
	}
	if err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// NoContent writes a no content response (204 No Content).
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, detail string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	buf, err := json.Marshal(ErrorBody{Detail: detail})
	if err == nil {
		_, err = w.Write(buf)
	}
	if err != nil {
		if logger != nil {
			logger.Error("Failed to encode error response", "error", err)
		}
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, detail, logger)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusUnauthorized, detail, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, detail, logger)
}

// Conflict writes a 409 Conflict response.
func Conflict(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusConflict, detail, logger)
}

// TooManyRequests writes a 429 Too Many Requests response.
func TooManyRequests(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, detail, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, detail string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, detail, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain and store errors are mapped to their HTTP codes, unknown
// errors become 500 with a generic detail.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
		return
	}

	var storeErr *store.Error
	if errors.As(err, &storeErr) {
		Error(w, storeErr.HTTPCode(), storeErr.Message, logger)
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, "internal server error", logger)
}
