package api

import (
	"encoding/json"
	"net/http"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/http/response"
	"github.com/linkhive/linkhive-server/internal/service"
)

// listResponse is the paginated collection shape linkding clients
// expect. next/previous are always null; count plus limit/offset is
// enough for clients to page.
type listResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// handleListBookmarks returns a filtered, paginated bookmark list.
func (s *Server) handleListBookmarks(w http.ResponseWriter, r *http.Request) {
	query := parseListQuery(r)

	posts, total, err := s.bookmarkService.List(r.Context(), query)
	if err != nil {
		s.logger.Error("Failed to list bookmarks", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, listResponse{
		Count:   total,
		Results: posts,
	}, s.logger)
}

// handleCreateBookmark creates a new bookmark.
func (s *Server) handleCreateBookmark(w http.ResponseWriter, r *http.Request) {
	var params service.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}

	post, err := s.bookmarkService.Create(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, post, s.logger)
}

// handleGetBookmark returns a single bookmark.
func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		response.NotFound(w, "Not found.", s.logger)
		return
	}

	post, err := s.bookmarkService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, post, s.logger)
}

// bookmarkPatchRequest is the wire shape of an update. Pointer fields
// distinguish absent from zero; absent fields keep their stored value.
// PUT and PATCH share this shape, both partial.
type bookmarkPatchRequest struct {
	URL         *string  `json:"url"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Notes       *string  `json:"notes"`
	Unread      *bool    `json:"unread"`
	Shared      *bool    `json:"shared"`
	TagNames    []string `json:"tag_names"`
}

// handleUpdateBookmark applies a partial update to a bookmark.
func (s *Server) handleUpdateBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		response.NotFound(w, "Not found.", s.logger)
		return
	}

	var req bookmarkPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body", s.logger)
		return
	}

	post, err := s.bookmarkService.Update(r.Context(), id, domain.PostPatch{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Notes:       req.Notes,
		Unread:      req.Unread,
		Shared:      req.Shared,
		TagNames:    req.TagNames,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, post, s.logger)
}

// handleDeleteBookmark removes a bookmark.
func (s *Server) handleDeleteBookmark(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		response.NotFound(w, "Not found.", s.logger)
		return
	}

	if err := s.bookmarkService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// checkResponse is the /api/bookmarks/check/ payload. metadata and
// auto_tags exist for client compatibility; no scraping happens here.
type checkResponse struct {
	Bookmark *domain.Post  `json:"bookmark"`
	Metadata checkMetadata `json:"metadata"`
	AutoTags []string      `json:"auto_tags"`
}

type checkMetadata struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// handleCheckBookmark reports whether a URL is already bookmarked.
func (s *Server) handleCheckBookmark(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		response.BadRequest(w, "url parameter is required", s.logger)
		return
	}

	post, err := s.bookmarkService.CheckURL(r.Context(), url)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	resp := checkResponse{
		Bookmark: post,
		Metadata: checkMetadata{URL: url},
		AutoTags: []string{},
	}
	if post != nil {
		resp.Metadata.Title = post.Title
		resp.Metadata.Description = post.Description
	}

	response.Success(w, resp, s.logger)
}
