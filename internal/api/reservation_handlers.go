package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/http/response"
)

// CreateReservationRequest represents the request body for placing a hold.
type CreateReservationRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// handleCreateReservation places a hold on a catalog item for the caller.
func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	view, err := s.reservationService.Reserve(r.Context(), getEmail(r.Context()), req.ItemID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, view, s.logger)
}

// handleListReservations returns the caller's holds with live countdowns.
func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	views, err := s.reservationService.List(r.Context(), getEmail(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, views, s.logger)
}

// handleCancelReservation removes the caller's hold on an item.
func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	if err := s.reservationService.Cancel(r.Context(), getEmail(r.Context()), chi.URLParam(r, "itemID")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
