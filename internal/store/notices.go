package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/campushub/campus-server/internal/domain"
)

// Notices themselves live in the generic Notices entity; this file holds the
// per-user pinned set, which follows the favorites pattern.

func pinnedNoticesKey(email string) []byte {
	return []byte("pinned:" + domain.NormalizeEmail(email))
}

// GetPinnedNotices returns a user's pinned notice set, empty if none.
func (s *Store) GetPinnedNotices(ctx context.Context, email string) (*domain.PinnedNotices, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pins := &domain.PinnedNotices{UserEmail: domain.NormalizeEmail(email)}
	err := s.get(pinnedNoticesKey(email), pins)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return pins, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pinned notices: %w", err)
	}
	return pins, nil
}

// ToggleNoticePin flips pinned state for a notice and reports the new state.
func (s *Store) ToggleNoticePin(ctx context.Context, email, noticeID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := pinnedNoticesKey(email)
	var pinned bool

	err := s.db.Update(func(txn *badger.Txn) error {
		pins := &domain.PinnedNotices{UserEmail: domain.NormalizeEmail(email)}
		err := getInTxn(txn, key, pins)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to get pinned notices: %w", err)
		}

		pinned = pins.Toggle(noticeID)
		return setInTxn(txn, key, pins)
	})
	if err != nil {
		return false, err
	}
	return pinned, nil
}
