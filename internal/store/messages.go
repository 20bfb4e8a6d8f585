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

// Messages get a hand-rolled store rather than Entity because they need two
// non-unique indexes (sender and recipient), and Entity indexes are unique.

func messageKey(id string) []byte {
	return []byte("message:" + id)
}

func messageToPrefix(email string) string {
	return "idx:messages:to:" + domain.NormalizeEmail(email) + ":"
}

func messageFromPrefix(email string) string {
	return "idx:messages:from:" + domain.NormalizeEmail(email) + ":"
}

// CreateMessage stores a message and indexes it for both mailboxes.
func (s *Store) CreateMessage(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := setInTxn(txn, messageKey(m.ID), m); err != nil {
			return fmt.Errorf("failed to store message: %w", err)
		}
		if err := txn.Set([]byte(messageToPrefix(m.ToEmail)+m.ID), []byte(m.ID)); err != nil {
			return fmt.Errorf("failed to index message recipient: %w", err)
		}
		if err := txn.Set([]byte(messageFromPrefix(m.FromEmail)+m.ID), []byte(m.ID)); err != nil {
			return fmt.Errorf("failed to index message sender: %w", err)
		}
		return nil
	})
}

// GetMessage retrieves a message by ID.
func (s *Store) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m domain.Message
	err := s.get(messageKey(id), &m)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

// UpdateMessage overwrites a stored message. Sender and recipient are
// immutable, so no index maintenance is needed.
func (s *Store) UpdateMessage(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(messageKey(m.ID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMessageNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check message: %w", err)
		}
		return setInTxn(txn, messageKey(m.ID), m)
	})
}

// DeleteMessage removes a message and both mailbox index entries.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		var m domain.Message
		err := getInTxn(txn, messageKey(id), &m)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrMessageNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load message: %w", err)
		}

		if err := txn.Delete([]byte(messageToPrefix(m.ToEmail) + id)); err != nil {
			return fmt.Errorf("failed to delete recipient index: %w", err)
		}
		if err := txn.Delete([]byte(messageFromPrefix(m.FromEmail) + id)); err != nil {
			return fmt.Errorf("failed to delete sender index: %w", err)
		}
		if err := txn.Delete(messageKey(id)); err != nil {
			return fmt.Errorf("failed to delete message: %w", err)
		}
		return nil
	})
}

// ListInbox returns messages received by a user, newest first.
func (s *Store) ListInbox(ctx context.Context, email string) ([]*domain.Message, error) {
	return s.listMessages(ctx, messageToPrefix(email))
}

// ListSent returns messages sent by a user, newest first.
func (s *Store) ListSent(ctx context.Context, email string) ([]*domain.Message, error) {
	return s.listMessages(ctx, messageFromPrefix(email))
}

func (s *Store) listMessages(ctx context.Context, indexPrefix string) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []*domain.Message
	err := s.db.View(func(txn *badger.Txn) error {
		prefix := []byte(indexPrefix)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := strings.TrimPrefix(string(it.Item().Key()), indexPrefix)
			var m domain.Message
			if err := getInTxn(txn, messageKey(id), &m); err != nil {
				return fmt.Errorf("failed to load message %s: %w", id, err)
			}
			messages = append(messages, &m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(messages, func(a, b *domain.Message) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return messages, nil
}
