package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campushub/campus-server/internal/http/response"
	"github.com/campushub/campus-server/internal/service"
)

// BookingRequestBody represents the request body for creating or
// rescheduling a booking.
type BookingRequestBody struct {
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Start           string `json:"start" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	BookedBy        string `json:"booked_by" validate:"max=100"`
}

func (b BookingRequestBody) toRequest(roomID string) service.BookingRequest {
	return service.BookingRequest{
		RoomID:          roomID,
		Date:            b.Date,
		Start:           b.Start,
		DurationMinutes: b.DurationMinutes,
		BookedBy:        b.BookedBy,
	}
}

// handleListBookings returns a room's bookings for the requested day.
func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", s.logger)
		return
	}

	bookings, err := s.bookingService.List(r.Context(), chi.URLParam(r, "roomID"), date)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, bookings, s.logger)
}

// handleCreateBooking books a slot in the room for the caller.
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingRequestBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(body); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if body.BookedBy == "" {
		body.BookedBy = getDisplayName(r.Context())
	}

	booking, err := s.bookingService.Create(r.Context(), getEmail(r.Context()), body.toRequest(chi.URLParam(r, "roomID")))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, booking, s.logger)
}

// handleUpdateBooking reschedules a booking the caller owns.
func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	var body BookingRequestBody
	if err := json.UnmarshalRead(r.Body, &body); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(body); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	ctx := r.Context()
	booking, err := s.bookingService.Update(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id"), body.toRequest(""))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, booking, s.logger)
}

// handleDeleteBooking cancels a booking the caller owns.
func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.bookingService.Delete(ctx, getEmail(ctx), isAdmin(ctx), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
