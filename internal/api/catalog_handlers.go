package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/http/response"
)

// handleQueryCatalog returns catalog items filtered by the query parameters.
//
// Supported parameters: q (substring search), area, subject, status
// (available|loaned), view (all|favorites|reserved). The view selectors need
// an authenticated caller; anonymously they select nothing.
func (s *Server) handleQueryCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	spec := catalog.FilterSpec{
		Query:   q.Get("q"),
		Area:    q.Get("area"),
		Subject: q.Get("subject"),
	}

	switch status := q.Get("status"); status {
	case "":
	case string(domain.StatusAvailable), string(domain.StatusLoaned):
		spec.Status = domain.ItemStatus(status)
	default:
		response.BadRequest(w, "status must be available or loaned", s.logger)
		return
	}

	switch view := q.Get("view"); view {
	case "", string(catalog.ViewAll):
	case string(catalog.ViewFavorites), string(catalog.ViewReserved):
		spec.View = catalog.ViewSelector(view)
	default:
		response.BadRequest(w, "view must be all, favorites, or reserved", s.logger)
		return
	}

	items, err := s.catalogService.Query(r.Context(), getEmail(r.Context()), spec)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, map[string]any{
		"items": items,
		"total": len(items),
	}, s.logger)
}

// handleListAreas returns the configured subject areas.
func (s *Server) handleListAreas(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.catalogService.Areas(), s.logger)
}

// handleGetCatalogItem returns one catalog item by its per-load-cycle ID.
func (s *Server) handleGetCatalogItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.catalogService.Item(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, item, s.logger)
}

// handleListFavorites returns the caller's favorited catalog items.
func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := s.catalogService.Favorites(r.Context(), getEmail(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, items, s.logger)
}

// handleToggleFavorite flips the caller's favorite state for an item.
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	favorited, err := s.catalogService.ToggleFavorite(r.Context(), getEmail(r.Context()), chi.URLParam(r, "itemID"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, map[string]bool{"favorited": favorited}, s.logger)
}
