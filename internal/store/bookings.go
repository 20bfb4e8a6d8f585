package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/campushub/campus-server/internal/domain"
)

func bookingKey(id string) []byte {
	return []byte("booking:" + id)
}

func bookingSlotPrefix(roomID, date string) string {
	return "idx:bookings:slot:" + roomID + ":" + date + ":"
}

func bookingSlotKey(b *domain.RoomBooking) []byte {
	return []byte(bookingSlotPrefix(b.RoomID, b.Date) + b.ID)
}

// checkOverlap scans every booking on the same room and day and returns
// ErrSlotOccupied if any overlaps b. exceptID excludes a booking being
// rescheduled from colliding with itself.
func checkOverlap(txn *badger.Txn, b *domain.RoomBooking, exceptID string) error {
	prefix := []byte(bookingSlotPrefix(b.RoomID, b.Date))
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		id := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
		if id == exceptID {
			continue
		}

		var other domain.RoomBooking
		err := getInTxn(txn, bookingKey(id), &other)
		if errors.Is(err, badger.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load booking %s: %w", id, err)
		}
		if b.Overlaps(&other) {
			return ErrSlotOccupied.WithDetails(map[string]string{
				"conflicting_booking": other.ID,
				"start":               other.Start.String(),
				"end":                 other.End.String(),
			})
		}
	}
	return nil
}

// CreateBooking stores a booking after checking, in the same transaction,
// that no existing booking on the room and day overlaps it.
func (s *Store) CreateBooking(ctx context.Context, b *domain.RoomBooking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := checkOverlap(txn, b, ""); err != nil {
			return err
		}
		if err := setInTxn(txn, bookingKey(b.ID), b); err != nil {
			return fmt.Errorf("failed to store booking: %w", err)
		}
		if err := txn.Set(bookingSlotKey(b), []byte(b.ID)); err != nil {
			return fmt.Errorf("failed to index booking slot: %w", err)
		}
		return nil
	})
}

// UpdateBooking reschedules an existing booking. The overlap check excludes
// the booking itself, so shrinking or shifting within its own old slot works.
func (s *Store) UpdateBooking(ctx context.Context, b *domain.RoomBooking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var old domain.RoomBooking
		err := getInTxn(txn, bookingKey(b.ID), &old)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if err := checkOverlap(txn, b, b.ID); err != nil {
			return err
		}

		if err := txn.Delete(bookingSlotKey(&old)); err != nil {
			return fmt.Errorf("failed to drop old slot index: %w", err)
		}
		if err := setInTxn(txn, bookingKey(b.ID), b); err != nil {
			return fmt.Errorf("failed to store booking: %w", err)
		}
		if err := txn.Set(bookingSlotKey(b), []byte(b.ID)); err != nil {
			return fmt.Errorf("failed to index booking slot: %w", err)
		}
		return nil
	})
}

// GetBooking retrieves a booking by ID.
func (s *Store) GetBooking(ctx context.Context, id string) (*domain.RoomBooking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var b domain.RoomBooking
	err := s.get(bookingKey(id), &b)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &b, nil
}

// DeleteBooking removes a booking and its slot index.
// Returns ErrBookingNotFound if no such booking exists.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var b domain.RoomBooking
		err := getInTxn(txn, bookingKey(id), &b)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if err := txn.Delete(bookingSlotKey(&b)); err != nil {
			return fmt.Errorf("failed to delete slot index: %w", err)
		}
		if err := txn.Delete(bookingKey(id)); err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}
		return nil
	})
}

// ListBookings returns all bookings for a room on a calendar day, ordered by
// start time.
func (s *Store) ListBookings(ctx context.Context, roomID, date string) ([]*domain.RoomBooking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bookings []*domain.RoomBooking
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(bookingSlotPrefix(roomID, date))
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var b domain.RoomBooking
			if err := getInTxn(txn, bookingKey(id), &b); err != nil {
				return fmt.Errorf("failed to load booking %s: %w", id, err)
			}
			bookings = append(bookings, &b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(bookings, func(a, b *domain.RoomBooking) int {
		if a.Start != b.Start {
			return int(a.Start - b.Start)
		}
		return strings.Compare(a.ID, b.ID)
	})
	return bookings, nil
}
