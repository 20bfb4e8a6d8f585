package domain

import "time"

// DefaultHoldDuration is the fixed reservation window: 20 days.
const DefaultHoldDuration = 20 * 24 * time.Hour

// Reservation is a time-bounded claim by one user on one catalog item.
//
// A hold expires ExpiresAt and then stops blocking other users and stops
// counting toward the holder's capacity. It remains listed for its owner
// (with negative remaining time) until explicitly cancelled, so countdown
// displays keep working past the deadline.
type Reservation struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	UserEmail string    `json:"user_email"`
	ItemTitle string    `json:"item_title"` // Denormalized for display; item IDs don't survive reloads
	Area      string    `json:"area"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewReservation creates a hold on an item starting now.
func NewReservation(id string, item *CatalogItem, userEmail string, hold time.Duration) *Reservation {
	now := time.Now()
	return &Reservation{
		ID:        id,
		ItemID:    item.ID,
		UserEmail: userEmail,
		ItemTitle: item.Title,
		Area:      item.Area,
		CreatedAt: now,
		ExpiresAt: now.Add(hold),
	}
}

// IsActive reports whether the hold still blocks the item at the given time.
func (r *Reservation) IsActive(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// Remaining returns the time left on the hold, recomputed live.
// Negative once the hold has expired.
func (r *Reservation) Remaining(now time.Time) time.Duration {
	return r.ExpiresAt.Sub(now)
}
