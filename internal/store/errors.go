package store

import "github.com/campushub/campus-server/internal/errors"

// Sentinel errors returned by store operations. They are domain errors so
// handlers can map them to HTTP statuses without translation layers.
var (
	ErrNotFound      = errors.ErrNotFound
	ErrAlreadyExists = errors.ErrAlreadyExists

	// Reservations.
	ErrReservationNotFound  = errors.NotFound("reservation not found")
	ErrDuplicateReservation = errors.AlreadyExists("you already hold a reservation on this item")
	ErrReservationLimit     = errors.CapacityExceeded("reservation limit reached")
	ErrItemHeld             = errors.Conflict("item is already reserved by another user")

	// Bookings.
	ErrBookingNotFound = errors.NotFound("booking not found")
	ErrSlotOccupied    = errors.SlotOccupied("slot occupied")

	// Portal collections.
	ErrNoticeNotFound  = errors.NotFound("notice not found")
	ErrMessageNotFound = errors.NotFound("message not found")
	ErrUserNotFound    = errors.NotFound("user not found")
)
