package api

import (
	"net/http"
	"time"

	"github.com/linkhive/linkhive-server/internal/domain"
	"github.com/linkhive/linkhive-server/internal/http/response"
)

// tagJSON is the tag wire shape.
type tagJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	DateAdded time.Time `json:"date_added"`
}

func toTagJSON(t *domain.Tag) tagJSON {
	return tagJSON{
		ID:        t.ID,
		Name:      t.Name,
		DateAdded: t.CreatedAt,
	}
}

// handleListTags returns the whole tag vocabulary in name order.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.tagService.List(r.Context())
	if err != nil {
		s.logger.Error("Failed to list tags", "error", err)
		response.HandleError(w, err, s.logger)
		return
	}

	results := make([]tagJSON, 0, len(tags))
	for _, t := range tags {
		results = append(results, toTagJSON(t))
	}

	response.Success(w, listResponse{
		Count:   len(results),
		Results: results,
	}, s.logger)
}

// handleGetTag returns a single tag.
func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		response.NotFound(w, "Not found.", s.logger)
		return
	}

	tag, err := s.tagService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, toTagJSON(tag), s.logger)
}

// handleDeleteTag removes a tag from the vocabulary.
func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(r)
	if !ok {
		response.NotFound(w, "Not found.", s.logger)
		return
	}

	if err := s.tagService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
