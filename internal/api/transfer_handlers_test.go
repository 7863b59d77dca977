package api

import (
	"net/http"
	"testing"

	"encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	server := setupTestServer(t)

	payload := `[
		{"url": "https://go.dev", "title": "Go", "tag_names": ["go"]},
		{"url": "https://sqlite.org", "title": "SQLite"},
		{"title": "record without a url"}
	]`

	w := doRequest(server, http.MethodPost, "/api/import/", payload)
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		Imported int `json:"imported"`
		Skipped  int `json:"skipped"`
		Total    int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 3, summary.Total)

	w = doRequest(server, http.MethodGet, "/api/bookmarks/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
}

func TestImport_NonArrayBody(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/import/", `{"not": "an array"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestExport_DefaultHTML(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/bookmarks/",
		`{"url": "https://go.dev", "title": "Go", "tag_names": ["go"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(server, http.MethodGet, "/api/export/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<!DOCTYPE NETSCAPE-Bookmark-file-1>")
	assert.Contains(t, w.Body.String(), `HREF="https://go.dev"`)
}

func TestExport_JSONRoundTrip(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/bookmarks/",
		`{"url": "https://go.dev", "title": "Go", "notes": "round trip", "tag_names": ["go"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(server, http.MethodGet, "/api/export/?format=json", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	// The export feeds straight back into import.
	other := setupTestServer(t)
	imported := doRequest(other, http.MethodPost, "/api/import/", w.Body.String())
	require.Equal(t, http.StatusOK, imported.Code)

	check := doRequest(other, http.MethodGet, "/api/bookmarks/check/?url=https%3A%2F%2Fgo.dev", "")
	require.Equal(t, http.StatusOK, check.Code)
	var body struct {
		Bookmark *bookmarkBody `json:"bookmark"`
	}
	require.NoError(t, json.Unmarshal(check.Body.Bytes(), &body))
	require.NotNil(t, body.Bookmark)
	assert.Equal(t, "round trip", body.Bookmark.Notes)
}
