package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/campushub/campus-server/internal/domain"
)

func favoritesKey(email string) []byte {
	return []byte("favorites:" + domain.NormalizeEmail(email))
}

// GetFavorites returns a user's favorite set.
// A user with no favorites gets an empty set, not an error.
func (s *Store) GetFavorites(ctx context.Context, email string) (*domain.FavoriteSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	favs := &domain.FavoriteSet{UserEmail: domain.NormalizeEmail(email)}
	err := s.get(favoritesKey(email), favs)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return favs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	return favs, nil
}

// ToggleFavorite flips favorite membership for an item and reports the new
// state. The read-modify-write happens in one transaction so two rapid
// toggles cannot lose an update.
func (s *Store) ToggleFavorite(ctx context.Context, email, itemID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	key := favoritesKey(email)
	var nowFavorite bool

	err := s.db.Update(func(txn *badger.Txn) error {
		favs := &domain.FavoriteSet{UserEmail: domain.NormalizeEmail(email)}
		err := getInTxn(txn, key, favs)
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to get favorites: %w", err)
		}

		nowFavorite = favs.Toggle(itemID)
		return setInTxn(txn, key, favs)
	})
	if err != nil {
		return false, err
	}
	return nowFavorite, nil
}
