package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/store"
)

// MessageService handles direct messages between portal users.
type MessageService struct {
	store  *store.Store
	events *sse.Manager
	logger *slog.Logger
}

// NewMessageService creates a message service. events may be nil in tests.
func NewMessageService(st *store.Store, events *sse.Manager, logger *slog.Logger) *MessageService {
	return &MessageService{
		store:  st,
		events: events,
		logger: logger,
	}
}

// Send delivers a message to another portal user.
// The recipient must have logged in at least once.
func (s *MessageService) Send(ctx context.Context, fromEmail, toEmail, subject, body string) (*domain.Message, error) {
	from := domain.NormalizeEmail(fromEmail)
	to := domain.NormalizeEmail(toEmail)
	if from == to {
		return nil, errors.Validation("cannot send a message to yourself")
	}

	if _, err := s.store.Users.GetByIndex(ctx, "email", to); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("recipient %s not found", to)
		}
		return nil, err
	}

	msgID, err := id.Generate("msg")
	if err != nil {
		return nil, fmt.Errorf("generate message ID: %w", err)
	}

	m := domain.NewMessage(msgID, from, to, subject, body)
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("message sent", "message_id", m.ID, "from", from, "to", to)

	if s.events != nil {
		s.events.Emit(sse.NewMessageReceivedEvent(m))
	}
	return m, nil
}

// Inbox returns messages received by the user, newest first.
func (s *MessageService) Inbox(ctx context.Context, userEmail string) ([]*domain.Message, error) {
	return s.store.ListInbox(ctx, userEmail)
}

// Sent returns messages sent by the user, newest first.
func (s *MessageService) Sent(ctx context.Context, userEmail string) ([]*domain.Message, error) {
	return s.store.ListSent(ctx, userEmail)
}

// MarkRead marks a message read. Only the recipient may do this.
func (s *MessageService) MarkRead(ctx context.Context, userEmail, messageID string) (*domain.Message, error) {
	m, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if m.ToEmail != domain.NormalizeEmail(userEmail) {
		return nil, errors.Forbidden("only the recipient can mark a message read")
	}
	if m.Read {
		return m, nil
	}

	m.Read = true
	if err := s.store.UpdateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a message. Sender and recipient may both delete it.
func (s *MessageService) Delete(ctx context.Context, userEmail, messageID string) error {
	m, err := s.store.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	email := domain.NormalizeEmail(userEmail)
	if m.ToEmail != email && m.FromEmail != email {
		return errors.Forbidden("only the sender or recipient can delete a message")
	}
	return s.store.DeleteMessage(ctx, messageID)
}
