package api

import (
	"net/http"
	"strconv"

	"github.com/campushub/campus-server/internal/http/response"
	"github.com/campushub/campus-server/internal/search"
)

// maxSearchLimit caps the page size of a search request.
const maxSearchLimit = 100

// handleSearch runs a full-text query across notices, communities, and
// projects.
//
// Supported parameters: q (required), type (repeatable: notice|community|
// project), kind (repeatable), tag (repeatable), limit, offset, sort
// (relevance|name|recent), order (asc|desc).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := search.DefaultSearchParams()
	params.Query = q.Get("q")
	params.Types = q["type"]
	params.Kinds = q["kind"]
	params.Tags = q["tag"]

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			response.BadRequest(w, "limit must be a positive integer", s.logger)
			return
		}
		params.Limit = min(limit, maxSearchLimit)
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			response.BadRequest(w, "offset must be a non-negative integer", s.logger)
			return
		}
		params.Offset = offset
	}
	if sortBy := q.Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := q.Get("order"); order != "" {
		params.SortOrder = order
	}

	result, err := s.searchService.Search(r.Context(), params)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, result, s.logger)
}
