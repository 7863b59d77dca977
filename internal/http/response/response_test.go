package response

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/linkhive/linkhive-server/internal/errors"
	"github.com/linkhive/linkhive-server/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSON_NoEnvelope(t *testing.T) {
	w := httptest.NewRecorder()

	data := map[string]string{"message": "test"}
	JSON(w, http.StatusOK, data, testLogger())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	// The payload is the body; nothing wraps it.
	var result map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"message": "test"}, result)
}

func TestJSON_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()

	Created(w, map[string]int{"id": 7}, testLogger())

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	NoContent(w)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestError_DetailShape(t *testing.T) {
	w := httptest.NewRecorder()

	NotFound(w, "Not found.", testLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(http.ResponseWriter, string, *slog.Logger)
		code int
	}{
		{"bad request", BadRequest, http.StatusBadRequest},
		{"unauthorized", Unauthorized, http.StatusUnauthorized},
		{"not found", NotFound, http.StatusNotFound},
		{"conflict", Conflict, http.StatusConflict},
		{"too many requests", TooManyRequests, http.StatusTooManyRequests},
		{"internal", InternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.fn(w, "detail text", testLogger())

			assert.Equal(t, tt.code, w.Code)

			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "detail text", body.Detail)
		})
	}
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.Conflict("bookmark with this URL already exists"), testLogger())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"bookmark with this URL already exists"}`, w.Body.String())
}

func TestHandleError_StoreError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, store.ErrNotFound, testLogger())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleError_Unknown(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, errors.New("boom"), testLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// The raw error never leaks to the client.
	assert.NotContains(t, w.Body.String(), "boom")
}
