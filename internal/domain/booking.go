package domain

import (
	"fmt"
	"time"
)

// MinuteOfDay is a clock time expressed as minutes since midnight.
// Bookings are minute-resolution and same-day only.
type MinuteOfDay int

// minutesPerDay bounds valid MinuteOfDay values.
const minutesPerDay = 24 * 60

// ParseClock parses "HH:MM" into a MinuteOfDay.
func ParseClock(s string) (MinuteOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

// String formats the time as "HH:MM".
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Valid reports whether the value lies within one day.
func (m MinuteOfDay) Valid() bool {
	return m >= 0 && m <= minutesPerDay
}

// BookingEnd derives the end of a slot from its start and duration in minutes.
// A duration that would cross midnight is rejected: same-day slots only.
func BookingEnd(start MinuteOfDay, durationMinutes int) (MinuteOfDay, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %d minutes", durationMinutes)
	}
	end := start + MinuteOfDay(durationMinutes)
	if end > minutesPerDay {
		return 0, fmt.Errorf("booking from %s for %d minutes crosses midnight", start, durationMinutes)
	}
	return end, nil
}

// RoomBooking reserves a half-open time interval [Start, End) on one room for
// one calendar day. Dates carry no timezone: they are plain "YYYY-MM-DD" days.
type RoomBooking struct {
	ID        string      `json:"id"`
	RoomID    string      `json:"room_id"`
	Date      string      `json:"date"` // YYYY-MM-DD
	Start     MinuteOfDay `json:"start"`
	End       MinuteOfDay `json:"end"`
	BookedBy  string      `json:"booked_by"` // Free-text display name
	OwnerKey  string      `json:"owner_key"` // Identity key authorizing edit/delete
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Overlaps reports whether two bookings on the same room and day share time.
// Half-open convention: a slot ending at 10:00 and one starting at 10:00 do
// not overlap.
func (b *RoomBooking) Overlaps(other *RoomBooking) bool {
	if b.RoomID != other.RoomID || b.Date != other.Date {
		return false
	}
	return b.Start < other.End && b.End > other.Start
}

// ValidateInterval checks the booking's interval invariants.
func (b *RoomBooking) ValidateInterval() error {
	if !b.Start.Valid() || !b.End.Valid() {
		return fmt.Errorf("booking interval %s-%s out of range", b.Start, b.End)
	}
	if b.End <= b.Start {
		return fmt.Errorf("booking must end after it starts, got %s-%s", b.Start, b.End)
	}
	return nil
}

// ValidateDate checks the calendar-day format.
func ValidateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	return nil
}
