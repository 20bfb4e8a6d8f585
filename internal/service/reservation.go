package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// ReservationService places and cancels item holds under the portal's
// capacity and exclusivity policy.
type ReservationService struct {
	store     *store.Store
	catalog   *CatalogService
	events    *sse.Manager
	holdFor   time.Duration
	maxActive int
	logger    *slog.Logger
}

// NewReservationService creates a reservation service. events may be nil in tests.
func NewReservationService(
	st *store.Store,
	cat *CatalogService,
	events *sse.Manager,
	holdFor time.Duration,
	maxActive int,
	logger *slog.Logger,
) *ReservationService {
	return &ReservationService{
		store:     st,
		catalog:   cat,
		events:    events,
		holdFor:   holdFor,
		maxActive: maxActive,
		logger:    logger,
	}
}

// ReservationView is a reservation with its live remaining time.
type ReservationView struct {
	*domain.Reservation
	RemainingSeconds int64 `json:"remaining_seconds"` // Negative once expired
	Active           bool  `json:"active"`
}

// Reserve places a hold on a catalog item for the user.
func (s *ReservationService) Reserve(ctx context.Context, userEmail, itemID string) (*ReservationView, error) {
	item, err := s.catalog.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resID, err := id.Generate("res")
	if err != nil {
		return nil, fmt.Errorf("generate reservation ID: %w", err)
	}

	r := domain.NewReservation(resID, item, domain.NormalizeEmail(userEmail), s.holdFor)

	if err := s.store.CreateReservation(ctx, r, s.maxActive); err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		"reservation_id", r.ID,
		"item_id", r.ItemID,
		"user_email", r.UserEmail,
		"expires_at", r.ExpiresAt,
	)

	if s.events != nil {
		s.events.Emit(sse.NewReservationCreatedEvent(r))
	}

	return s.view(r, time.Now()), nil
}

// Cancel removes the user's hold on an item, active or expired.
func (s *ReservationService) Cancel(ctx context.Context, userEmail, itemID string) error {
	// Load the reservation first so the cancellation event can carry it.
	reservations, err := s.store.ListReservations(ctx, userEmail)
	if err != nil {
		return err
	}
	var cancelled *domain.Reservation
	for _, r := range reservations {
		if r.ItemID == itemID {
			cancelled = r
			break
		}
	}

	if err := s.store.DeleteReservation(ctx, userEmail, itemID); err != nil {
		return err
	}

	s.logger.Info("reservation cancelled",
		"item_id", itemID,
		"user_email", domain.NormalizeEmail(userEmail),
	)

	if s.events != nil && cancelled != nil {
		s.events.Emit(sse.NewReservationCancelledEvent(cancelled))
	}

	return nil
}

// List returns the user's reservations with live countdowns, expired holds
// included until the user cancels them.
func (s *ReservationService) List(ctx context.Context, userEmail string) ([]*ReservationView, error) {
	reservations, err := s.store.ListReservations(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]*ReservationView, 0, len(reservations))
	for _, r := range reservations {
		views = append(views, s.view(r, now))
	}
	return views, nil
}

func (s *ReservationService) view(r *domain.Reservation, now time.Time) *ReservationView {
	return &ReservationView{
		Reservation:      r,
		RemainingSeconds: int64(r.Remaining(now).Seconds()),
		Active:           r.IsActive(now),
	}
}
