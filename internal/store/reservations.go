package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/campushub/campus-server/internal/domain"
)

// Reservation keys. The item index points at whichever reservation currently
// claims the item; expired reservations stay stored (their owner still sees
// them) but lose the claim.
func reservationKey(id string) []byte {
	return []byte("reservation:" + id)
}

func reservationUserIndexPrefix(email string) string {
	return "idx:reservations:user:" + domain.NormalizeEmail(email) + ":"
}

func reservationUserIndexKey(email, id string) []byte {
	return []byte(reservationUserIndexPrefix(email) + id)
}

func reservationItemIndexKey(itemID string) []byte {
	return []byte("idx:reservations:item:" + itemID)
}

// CreateReservation places a hold on an item, enforcing exclusivity and the
// per-user capacity limit inside one transaction.
//
// Returns ErrItemHeld when another user holds an active reservation on the
// item, ErrDuplicateReservation when the caller already holds an active one,
// and ErrReservationLimit when the caller is at maxActive live holds. Expired
// holds block nothing: a new reservation simply takes over the item claim,
// and a user's own expired hold on the item is replaced in place.
func (s *Store) CreateReservation(ctx context.Context, r *domain.Reservation, maxActive int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	now := time.Now()

	return s.db.Update(func(txn *badger.Txn) error {
		// Who claims this item right now?
		var claimID string
		item, err := txn.Get(reservationItemIndexKey(r.ItemID))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				claimID = string(val)
				return nil
			}); err != nil {
				return fmt.Errorf("failed to read item claim: %w", err)
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check item claim: %w", err)
		}

		if claimID != "" {
			var claim domain.Reservation
			err := getInTxn(txn, reservationKey(claimID), &claim)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// Stale index entry, claim was cancelled. Fall through.
			case err != nil:
				return fmt.Errorf("failed to load claiming reservation: %w", err)
			case claim.IsActive(now):
				if domain.NormalizeEmail(claim.UserEmail) == domain.NormalizeEmail(r.UserEmail) {
					return ErrDuplicateReservation
				}
				return ErrItemHeld
			case domain.NormalizeEmail(claim.UserEmail) == domain.NormalizeEmail(r.UserEmail):
				// The caller's own expired hold on this item: replace it so
				// their list shows one entry, not a live and a dead one.
				if err := txn.Delete(reservationKey(claim.ID)); err != nil {
					return fmt.Errorf("failed to replace expired reservation: %w", err)
				}
				if err := txn.Delete(reservationUserIndexKey(claim.UserEmail, claim.ID)); err != nil {
					return fmt.Errorf("failed to drop expired reservation index: %w", err)
				}
			}
		}

		// Capacity counts live holds only. Expired ones still listed for the
		// user have already released their slot.
		active := 0
		prefix := []byte(reservationUserIndexPrefix(r.UserEmail))
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var existing domain.Reservation
			if err := getInTxn(txn, reservationKey(id), &existing); err != nil {
				it.Close()
				return fmt.Errorf("failed to load reservation %s: %w", id, err)
			}
			if existing.IsActive(now) {
				active++
			}
		}
		it.Close()

		if active >= maxActive {
			return ErrReservationLimit
		}

		if err := setInTxn(txn, reservationKey(r.ID), r); err != nil {
			return fmt.Errorf("failed to store reservation: %w", err)
		}
		if err := txn.Set(reservationUserIndexKey(r.UserEmail, r.ID), []byte(r.ID)); err != nil {
			return fmt.Errorf("failed to index reservation by user: %w", err)
		}
		if err := txn.Set(reservationItemIndexKey(r.ItemID), []byte(r.ID)); err != nil {
			return fmt.Errorf("failed to claim item: %w", err)
		}
		return nil
	})
}

// DeleteReservation cancels a user's reservation on an item, active or
// expired. Returns ErrReservationNotFound when the user holds none.
func (s *Store) DeleteReservation(ctx context.Context, userEmail, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		// Scan the user's own reservations: the item claim may already point
		// at someone else if this hold expired and was superseded.
		prefix := []byte(reservationUserIndexPrefix(userEmail))
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)

		var found *domain.Reservation
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var r domain.Reservation
			if err := getInTxn(txn, reservationKey(id), &r); err != nil {
				it.Close()
				return fmt.Errorf("failed to load reservation %s: %w", id, err)
			}
			if r.ItemID == itemID {
				found = &r
				break
			}
		}
		it.Close()

		if found == nil {
			return ErrReservationNotFound
		}

		if err := txn.Delete(reservationKey(found.ID)); err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}
		if err := txn.Delete(reservationUserIndexKey(found.UserEmail, found.ID)); err != nil {
			return fmt.Errorf("failed to delete reservation index: %w", err)
		}

		// Release the item claim only if this reservation still owns it.
		item, err := txn.Get(reservationItemIndexKey(itemID))
		if err == nil {
			var claimID string
			if err := item.Value(func(val []byte) error {
				claimID = string(val)
				return nil
			}); err != nil {
				return fmt.Errorf("failed to read item claim: %w", err)
			}
			if claimID == found.ID {
				if err := txn.Delete(reservationItemIndexKey(itemID)); err != nil {
					return fmt.Errorf("failed to release item claim: %w", err)
				}
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check item claim: %w", err)
		}

		return nil
	})
}

// ListReservations returns all of a user's reservations, expired ones
// included, ordered by creation time.
func (s *Store) ListReservations(ctx context.Context, userEmail string) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var reservations []*domain.Reservation
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(reservationUserIndexPrefix(userEmail))
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			var r domain.Reservation
			if err := getInTxn(txn, reservationKey(id), &r); err != nil {
				return fmt.Errorf("failed to load reservation %s: %w", id, err)
			}
			reservations = append(reservations, &r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(reservations, func(a, b *domain.Reservation) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return reservations, nil
}

// ActiveHeldItemIDs returns the IDs of every item with a live hold, any
// user's. The catalog uses this to overlay reserved status.
func (s *Store) ActiveHeldItemIDs(ctx context.Context, now time.Time) (map[string]bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	held := make(map[string]bool)
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte("idx:reservations:item:")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id string
			if err := it.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			var r domain.Reservation
			err := getInTxn(txn, reservationKey(id), &r)
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to load reservation %s: %w", id, err)
			}
			if r.IsActive(now) {
				held[r.ItemID] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return held, nil
}
