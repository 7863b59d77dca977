package api

import (
	"net/http"
	"testing"

	"encoding/json"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tagListBody struct {
	Count   int       `json:"count"`
	Results []tagJSON `json:"results"`
}

func TestListTags(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/bookmarks/",
		`{"url": "https://go.dev", "tag_names": ["go", "programming"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(server, http.MethodGet, "/api/tags/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body tagListBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "go", body.Results[0].Name)
	assert.Equal(t, "programming", body.Results[1].Name)
}

func TestListTags_Empty(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodGet, "/api/tags/", "")
	require.Equal(t, http.StatusOK, w.Code)

	// results is an empty array, never null.
	assert.Contains(t, w.Body.String(), `"results":[]`)
}

func TestDeleteTag_KeepsBookmarks(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/bookmarks/",
		`{"url": "https://go.dev", "tag_names": ["go", "keep"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(server, http.MethodGet, "/api/tags/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var tags tagListBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags.Results, 2)

	w = doRequest(server, http.MethodDelete, "/api/tags/1/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// The bookmark survives with the remaining tag.
	w = doRequest(server, http.MethodGet, "/api/bookmarks/1/", "")
	require.Equal(t, http.StatusOK, w.Code)
	var bm bookmarkBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bm))
	assert.Equal(t, []string{"keep"}, bm.TagNames)

	w = doRequest(server, http.MethodDelete, "/api/tags/1/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTag(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(server, http.MethodPost, "/api/bookmarks/",
		`{"url": "https://go.dev", "tag_names": ["go"]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(server, http.MethodGet, "/api/tags/1/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var tag tagJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tag))
	assert.Equal(t, "go", tag.Name)
}
