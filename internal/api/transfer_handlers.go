package api

import (
	"net/http"

	"github.com/linkhive/linkhive-server/internal/http/response"
)

// handleImport ingests a linkding JSON export from the request body.
// Partial failure is a success: bad records are counted in the summary.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.transferService.ImportJSON(r.Context(), r.Body)
	if err != nil {
		response.BadRequest(w, "Invalid import payload: expected a JSON array of bookmarks", s.logger)
		return
	}

	response.Success(w, summary, s.logger)
}

// handleExport streams the full collection. format=json gives a
// linkding JSON export; anything else (including absent) gives
// Netscape HTML.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("format") {
	case "json":
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.json"`)
		if err := s.transferService.ExportJSON(r.Context(), w); err != nil {
			s.logger.Error("JSON export failed", "error", err)
		}
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bookmarks.html"`)
		if err := s.transferService.ExportHTML(r.Context(), w); err != nil {
			s.logger.Error("HTML export failed", "error", err)
		}
	}
}
