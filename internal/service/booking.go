package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// BookingService manages room booking slots. Ownership checks happen here;
// the store only enforces the overlap invariant.
type BookingService struct {
	store  *store.Store
	events *sse.Manager
	logger *slog.Logger
}

// NewBookingService creates a booking service. events may be nil in tests.
func NewBookingService(st *store.Store, events *sse.Manager, logger *slog.Logger) *BookingService {
	return &BookingService{
		store:  st,
		events: events,
		logger: logger,
	}
}

// BookingRequest carries the fields of a create or reschedule call.
type BookingRequest struct {
	RoomID          string
	Date            string // YYYY-MM-DD
	Start           string // HH:MM
	DurationMinutes int
	BookedBy        string // Free-text display name
}

// buildInterval validates and resolves the request's time fields.
func buildInterval(req BookingRequest) (start, end domain.MinuteOfDay, err error) {
	if err := domain.ValidateDate(req.Date); err != nil {
		return 0, 0, errors.Validation(err.Error())
	}
	start, err = domain.ParseClock(req.Start)
	if err != nil {
		return 0, 0, errors.Validation(err.Error())
	}
	end, err = domain.BookingEnd(start, req.DurationMinutes)
	if err != nil {
		return 0, 0, errors.Validation(err.Error())
	}
	return start, end, nil
}

// Create books a slot for the owner identified by ownerKey.
func (s *BookingService) Create(ctx context.Context, ownerKey string, req BookingRequest) (*domain.RoomBooking, error) {
	start, end, err := buildInterval(req)
	if err != nil {
		return nil, err
	}

	bookingID, err := id.Generate("bk")
	if err != nil {
		return nil, fmt.Errorf("generate booking ID: %w", err)
	}

	now := time.Now()
	b := &domain.RoomBooking{
		ID:        bookingID,
		RoomID:    req.RoomID,
		Date:      req.Date,
		Start:     start,
		End:       end,
		BookedBy:  req.BookedBy,
		OwnerKey:  domain.NormalizeEmail(ownerKey),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.ValidateInterval(); err != nil {
		return nil, errors.Validation(err.Error())
	}

	if err := s.store.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		"booking_id", b.ID,
		"room_id", b.RoomID,
		"date", b.Date,
		"slot", fmt.Sprintf("%s-%s", b.Start, b.End),
	)

	if s.events != nil {
		s.events.Emit(sse.NewBookingCreatedEvent(b))
	}

	return b, nil
}

// Update reschedules a booking. Only the owner (or an admin) may change it.
func (s *BookingService) Update(ctx context.Context, ownerKey string, isAdmin bool, bookingID string, req BookingRequest) (*domain.RoomBooking, error) {
	existing, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(existing, ownerKey, isAdmin); err != nil {
		return nil, err
	}

	// Room is fixed; only the day, slot, and display name can change.
	if req.RoomID == "" {
		req.RoomID = existing.RoomID
	}
	if req.RoomID != existing.RoomID {
		return nil, errors.Validation("a booking cannot move to another room; cancel and rebook")
	}
	if req.BookedBy == "" {
		req.BookedBy = existing.BookedBy
	}

	start, end, err := buildInterval(req)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Date = req.Date
	updated.Start = start
	updated.End = end
	updated.BookedBy = req.BookedBy
	updated.UpdatedAt = time.Now()

	if err := s.store.UpdateBooking(ctx, &updated); err != nil {
		return nil, err
	}

	s.logger.Info("booking rescheduled",
		"booking_id", updated.ID,
		"room_id", updated.RoomID,
		"date", updated.Date,
		"slot", fmt.Sprintf("%s-%s", updated.Start, updated.End),
	)

	if s.events != nil {
		s.events.Emit(sse.NewBookingUpdatedEvent(&updated))
	}

	return &updated, nil
}

// Delete cancels a booking. Only the owner (or an admin) may cancel it.
func (s *BookingService) Delete(ctx context.Context, ownerKey string, isAdmin bool, bookingID string) error {
	existing, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.authorize(existing, ownerKey, isAdmin); err != nil {
		return err
	}

	if err := s.store.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	s.logger.Info("booking cancelled",
		"booking_id", bookingID,
		"room_id", existing.RoomID,
		"date", existing.Date,
	)

	if s.events != nil {
		s.events.Emit(sse.NewBookingDeletedEvent(existing))
	}

	return nil
}

// List returns a room's bookings for one day, ordered by start time.
func (s *BookingService) List(ctx context.Context, roomID, date string) ([]*domain.RoomBooking, error) {
	if err := domain.ValidateDate(date); err != nil {
		return nil, errors.Validation(err.Error())
	}
	return s.store.ListBookings(ctx, roomID, date)
}

func (s *BookingService) authorize(b *domain.RoomBooking, ownerKey string, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if b.OwnerKey != domain.NormalizeEmail(ownerKey) {
		return errors.Forbidden("only the booking owner can modify it")
	}
	return nil
}
