package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/linkhive/linkhive-server/internal/domain"
)

// urlParamID parses the {id} route parameter.
func urlParamID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// parseListQuery builds a post query from request parameters.
// `#tag` tokens inside q become tag filters; the rest is the search
// string. Malformed values fall back to defaults and unknown
// parameters are ignored, both silently: lenient parsing is part of
// the wire contract.
func parseListQuery(r *http.Request) domain.PostQuery {
	params := r.URL.Query()

	q := domain.PostQuery{
		Unread: parseTriState(params.Get("unread")),
		Shared: parseTriState(params.Get("shared")),
	}

	var terms []string
	for _, token := range strings.Fields(params.Get("q")) {
		if name, ok := strings.CutPrefix(token, "#"); ok {
			if name != "" {
				q.TagNames = append(q.TagNames, name)
			}
			continue
		}
		terms = append(terms, token)
	}
	q.Search = strings.Join(terms, " ")

	if limitStr := params.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			q.Limit = limit
		}
	}
	if offsetStr := params.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			q.Offset = offset
		}
	}

	return q
}

// parseTriState maps the yes/no query values onto a filter state.
// Anything else means "don't filter".
func parseTriState(value string) domain.TriState {
	switch strings.ToLower(value) {
	case "yes", "true":
		return domain.FilterYes
	case "no", "false":
		return domain.FilterNo
	default:
		return domain.FilterAny
	}
}
